package service

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/KOFI-GYIMAH/github-connector/internal/config"
	"github.com/KOFI-GYIMAH/github-connector/internal/github"
	"github.com/KOFI-GYIMAH/github-connector/internal/models"
	"github.com/KOFI-GYIMAH/github-connector/pkg/errors"
	"github.com/KOFI-GYIMAH/github-connector/pkg/logger"
)

// * GitHubClient is the upstream surface the dispatcher needs. Every call
// * returns the upstream payload as GitHub sent it.
type GitHubClient interface {
	ListIssues(ctx context.Context, owner, repo string, opts github.ListOptions) (json.RawMessage, error)
	ListBranches(ctx context.Context, owner, repo string, opts github.ListOptions) (json.RawMessage, error)
	ListPullRequests(ctx context.Context, owner, repo string, opts github.ListOptions) (json.RawMessage, error)
	GetIssue(ctx context.Context, owner, repo string, number int) (json.RawMessage, error)
	GetPullRequest(ctx context.Context, owner, repo string, number int) (json.RawMessage, error)
}

// * RateReporter is implemented by clients that track GitHub's rate limit
type RateReporter interface {
	RateLimit() (github.RateStatus, bool)
}

var (
	_ GitHubClient = (*github.Client)(nil)
	_ RateReporter = (*github.Client)(nil)
)

// * Dispatcher maps invocations onto a single upstream call each. It holds no
// * per-invocation state and is safe for concurrent use.
type Dispatcher struct {
	githubClient GitHubClient
	cfg          *config.Config
	db           models.Database
}

// * NewDispatcher wires the dispatcher. db may be nil, which disables auditing.
func NewDispatcher(githubClient GitHubClient, cfg *config.Config, db models.Database) *Dispatcher {
	return &Dispatcher{
		githubClient: githubClient,
		cfg:          cfg,
		db:           db,
	}
}

func (d *Dispatcher) Config() *config.Config {
	return d.cfg
}

// * Handle answers an action event
func (d *Dispatcher) Handle(ctx context.Context, source models.Source, event models.Event) models.Response {
	logger.Info("Received %s event: action=%q", source, event.Action)

	action, err := models.ParseAction(event.Action)
	if err != nil {
		logger.Warn("Unknown action: %s", event.Action)
		resp := ErrorResponse(err)
		d.record(ctx, source, event.Action, resp, time.Now(), err)
		return resp
	}

	return d.Respond(ctx, source, models.Request{Action: action}, event.Action)
}

// * Respond executes a resolved request and serializes the outcome
func (d *Dispatcher) Respond(ctx context.Context, source models.Source, req models.Request, label string) models.Response {
	start := time.Now()

	body, err := d.Execute(ctx, req)
	if err != nil {
		if errors.IsReference(err, errors.RefGitHubRateLimited) {
			if status, ok := d.RateLimit(); ok {
				logger.Warn("GitHub rate limit exhausted for %s, resets at %s", label, status.Reset.Format(time.RFC1123))
			}
		}
		logger.Error("%s failed for %s: %v", label, d.cfg.Repository, err)
		resp := ErrorResponse(err)
		d.record(ctx, source, label, resp, start, err)
		return resp
	}

	resp := models.Response{StatusCode: http.StatusOK, Body: string(body)}
	d.record(ctx, source, label, resp, start, nil)
	return resp
}

// * Execute performs exactly one upstream call for req
func (d *Dispatcher) Execute(ctx context.Context, req models.Request) (json.RawMessage, error) {
	owner, name := d.cfg.Owner, d.cfg.Name

	switch req.Action {
	case models.ActionGetIssues:
		return d.githubClient.ListIssues(ctx, owner, name, d.listOptions(true))
	case models.ActionGetBranches:
		return d.githubClient.ListBranches(ctx, owner, name, d.listOptions(false))
	case models.ActionGetPullRequests:
		return d.githubClient.ListPullRequests(ctx, owner, name, d.listOptions(true))
	case models.ActionGetIssue:
		return d.githubClient.GetIssue(ctx, owner, name, req.Number)
	case models.ActionGetPullRequest:
		return d.githubClient.GetPullRequest(ctx, owner, name, req.Number)
	default:
		return nil, errors.UnknownAction(req.Action.String())
	}
}

// * Branch listing has no state filter upstream, so it never sends one
func (d *Dispatcher) listOptions(withState bool) github.ListOptions {
	opts := github.ListOptions{Page: d.cfg.Page, PerPage: d.cfg.PerPage}
	if withState {
		opts.State = d.cfg.State
	}
	return opts
}

// * RateLimit is the last limit the upstream client observed, if it tracks one
func (d *Dispatcher) RateLimit() (github.RateStatus, bool) {
	reporter, ok := d.githubClient.(RateReporter)
	if !ok {
		return github.RateStatus{}, false
	}
	return reporter.RateLimit()
}

// * Invocations returns recent audit rows, or none when auditing is off
func (d *Dispatcher) Invocations(ctx context.Context, limit int) ([]models.Invocation, error) {
	if d.db == nil {
		return []models.Invocation{}, nil
	}
	return d.db.ListInvocations(ctx, limit)
}

func (d *Dispatcher) record(ctx context.Context, source models.Source, label string, resp models.Response, start time.Time, cause error) {
	if d.db == nil {
		return
	}

	inv := &models.Invocation{
		Source:     source,
		Action:     label,
		StatusCode: resp.StatusCode,
		DurationMS: time.Since(start).Milliseconds(),
		InvokedAt:  start.UTC(),
	}
	if cause != nil {
		inv.Error = errors.Message(cause)
	}

	// * Audit failures never change the response
	if err := d.db.RecordInvocation(ctx, inv); err != nil {
		logger.Warn("Failed to record invocation %s: %v", label, err)
	}
}

// * ErrorResponse maps err to a status and a JSON string body
func ErrorResponse(err error) models.Response {
	return models.Response{
		StatusCode: errors.StatusCode(err),
		Body:       jsonString(errors.Message(err)),
	}
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
