package github

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/github-connector/pkg/errors"
	"github.com/KOFI-GYIMAH/github-connector/pkg/logger"
	gogithub "github.com/google/go-github/v80/github"
	"github.com/google/go-querystring/query"
	"golang.org/x/oauth2"
)

// * Requester is the part of *gogithub.Client the connector drives. Payloads
// * are decoded into json.RawMessage so callers get GitHub's bytes untouched.
type Requester interface {
	NewRequest(method, urlStr string, body any, opts ...gogithub.RequestOption) (*http.Request, error)
	Do(ctx context.Context, req *http.Request, v any) (*gogithub.Response, error)
}

var _ Requester = (*gogithub.Client)(nil)

type Client struct {
	requester   Requester
	rateLimiter *RateLimiter
}

func NewClient(token string) *Client {
	client, _ := newClient(token, "")
	return client
}

// * NewClientWithBaseURL points the client at another API root, such as a
// * GitHub Enterprise host or a test server
func NewClientWithBaseURL(token, baseURL string) (*Client, error) {
	return newClient(token, baseURL)
}

func newClient(token, baseURL string) (*Client, error) {
	rl := NewRateLimiter()

	base := &http.Client{
		Timeout:   30 * time.Second,
		Transport: rl.Middleware(http.DefaultTransport),
	}

	httpClient := base
	if token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
		httpClient.Timeout = base.Timeout
	}

	gh := gogithub.NewClient(httpClient)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub base URL %q: %w", baseURL, err)
		}
		gh.BaseURL = u
	}

	return &Client{
		requester:   gh,
		rateLimiter: rl,
	}, nil
}

func NewClientWithRequester(requester Requester) *Client {
	return &Client{requester: requester}
}

// * RateLimit reports the last limit seen on a response. ok is false before
// * the first call and for clients built around a substituted requester.
func (c *Client) RateLimit() (status RateStatus, ok bool) {
	if c.rateLimiter == nil {
		return RateStatus{}, false
	}
	return c.rateLimiter.Snapshot()
}

func listOptions(opts ListOptions) gogithub.ListOptions {
	return gogithub.ListOptions{Page: opts.Page, PerPage: opts.PerPage}
}

func (c *Client) ListIssues(ctx context.Context, owner, repo string, opts ListOptions) (json.RawMessage, error) {
	path := fmt.Sprintf("repos/%v/%v/issues", owner, repo)
	raw, err := c.get(ctx, path, &gogithub.IssueListByRepoOptions{
		State:       opts.State,
		ListOptions: listOptions(opts),
	})
	if err != nil {
		return nil, upstreamError("list issues", err)
	}

	logger.Debug("Fetched issues from %s/%s (%d bytes)", owner, repo, len(raw))
	return raw, nil
}

func (c *Client) ListBranches(ctx context.Context, owner, repo string, opts ListOptions) (json.RawMessage, error) {
	path := fmt.Sprintf("repos/%v/%v/branches", owner, repo)
	raw, err := c.get(ctx, path, &gogithub.BranchListOptions{
		ListOptions: listOptions(opts),
	})
	if err != nil {
		return nil, upstreamError("list branches", err)
	}

	logger.Debug("Fetched branches from %s/%s (%d bytes)", owner, repo, len(raw))
	return raw, nil
}

func (c *Client) ListPullRequests(ctx context.Context, owner, repo string, opts ListOptions) (json.RawMessage, error) {
	path := fmt.Sprintf("repos/%v/%v/pulls", owner, repo)
	raw, err := c.get(ctx, path, &gogithub.PullRequestListOptions{
		State:       opts.State,
		ListOptions: listOptions(opts),
	})
	if err != nil {
		return nil, upstreamError("list pull requests", err)
	}

	logger.Debug("Fetched pull requests from %s/%s (%d bytes)", owner, repo, len(raw))
	return raw, nil
}

func (c *Client) GetIssue(ctx context.Context, owner, repo string, number int) (json.RawMessage, error) {
	raw, err := c.get(ctx, fmt.Sprintf("repos/%v/%v/issues/%d", owner, repo, number), nil)
	if err != nil {
		return nil, upstreamError(fmt.Sprintf("get issue #%d", number), err)
	}
	return raw, nil
}

func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (json.RawMessage, error) {
	raw, err := c.get(ctx, fmt.Sprintf("repos/%v/%v/pulls/%d", owner, repo, number), nil)
	if err != nil {
		return nil, upstreamError(fmt.Sprintf("get pull request #%d", number), err)
	}
	return raw, nil
}

// * get issues one GET and returns the response body as sent. An empty body
// * is reported as JSON null.
func (c *Client) get(ctx context.Context, path string, opts any) (json.RawMessage, error) {
	u := path
	if opts != nil {
		var err error
		if u, err = addOptions(path, opts); err != nil {
			return nil, err
		}
	}

	req, err := c.requester.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if _, err := c.requester.Do(ctx, req, &raw); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	return raw, nil
}

// * addOptions encodes opts (url-tagged go-github option structs) onto path
func addOptions(path string, opts any) (string, error) {
	u, err := url.Parse(path)
	if err != nil {
		return path, err
	}

	qs, err := query.Values(opts)
	if err != nil {
		return path, err
	}

	u.RawQuery = qs.Encode()
	return u.String(), nil
}

// * upstreamError keeps GitHub's own message as Detail so callers can surface it verbatim
func upstreamError(op string, err error) *errors.ApplicationError {
	ref := errors.RefGitHubAPI
	var rateErr *gogithub.RateLimitError
	var abuseErr *gogithub.AbuseRateLimitError
	if stderrors.As(err, &rateErr) || stderrors.As(err, &abuseErr) {
		ref = errors.RefGitHubRateLimited
	}

	return errors.New(
		ref,
		fmt.Sprintf("Failed to %s from GitHub", op),
		upstreamMessage(err),
		err,
		errors.LevelError,
	)
}

// * upstreamMessage is the message GitHub put in the error document. Transport
// * failures carry no such document and keep their own text.
func upstreamMessage(err error) string {
	var rateErr *gogithub.RateLimitError
	if stderrors.As(err, &rateErr) && rateErr.Message != "" {
		return rateErr.Message
	}

	var abuseErr *gogithub.AbuseRateLimitError
	if stderrors.As(err, &abuseErr) && abuseErr.Message != "" {
		return abuseErr.Message
	}

	var respErr *gogithub.ErrorResponse
	if stderrors.As(err, &respErr) {
		if respErr.Message != "" {
			return respErr.Message
		}
		if respErr.Response != nil {
			return respErr.Response.Status
		}
	}

	return err.Error()
}
