package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/github-connector/internal/models"
	"github.com/KOFI-GYIMAH/github-connector/pkg/errors"
	"github.com/KOFI-GYIMAH/github-connector/pkg/logger"
)

// * HandleAgent answers an agent action-group event. Every outcome, including
// * routing failures, is wrapped in the agent response envelope.
func (d *Dispatcher) HandleAgent(ctx context.Context, event models.AgentEvent) models.AgentResponse {
	logger.Info("Received agent event: %s %s (actionGroup=%s)", event.HTTPMethod, event.APIPath, event.ActionGroup)

	var resp models.Response
	req, err := RouteAgentEvent(event)
	if err != nil {
		logger.Warn("Rejected agent event: %s", errors.Message(err))
		resp = ErrorResponse(err)
		d.record(ctx, models.SourceAgent, event.APIPath, resp, time.Now(), err)
	} else {
		resp = d.Respond(ctx, models.SourceAgent, req, req.Action.String())
	}

	return models.AgentResponse{
		MessageVersion: event.MessageVersion,
		Response: models.AgentActionResponse{
			ActionGroup:    event.ActionGroup,
			APIPath:        event.APIPath,
			HTTPMethod:     event.HTTPMethod,
			HTTPStatusCode: resp.StatusCode,
			ResponseBody: map[string]models.AgentContent{
				models.AgentContentType: {Body: resp.Body},
			},
		},
	}
}

// * RouteAgentEvent resolves an agent event to a request:
// *   GET /issues, /branches, /pull-requests
// *   GET /issue/{issueNumber}, /pull-request/{pullRequestNumber}
func RouteAgentEvent(event models.AgentEvent) (models.Request, error) {
	if !strings.EqualFold(event.HTTPMethod, http.MethodGet) {
		return models.Request{}, errors.New(
			errors.RefUnsupportedMethod,
			"Unsupported HTTP method",
			fmt.Sprintf("Unsupported HTTP method: %s", event.HTTPMethod),
			nil,
			errors.LevelWarning,
		)
	}

	path := event.APIPath
	switch {
	case path == "/issues":
		return models.Request{Action: models.ActionGetIssues}, nil
	case path == "/branches":
		return models.Request{Action: models.ActionGetBranches}, nil
	case path == "/pull-requests":
		return models.Request{Action: models.ActionGetPullRequests}, nil
	case strings.HasPrefix(path, "/issue/"):
		n, err := agentNumber(event, "issueNumber")
		if err != nil {
			return models.Request{}, err
		}
		return models.Request{Action: models.ActionGetIssue, Number: n}, nil
	case strings.HasPrefix(path, "/pull-request/"):
		n, err := agentNumber(event, "pullRequestNumber")
		if err != nil {
			return models.Request{}, err
		}
		return models.Request{Action: models.ActionGetPullRequest, Number: n}, nil
	default:
		return models.Request{}, errors.UnknownAction(path)
	}
}

// * agentNumber reads the named parameter, falling back to the last path
// * segment when the agent sent a concrete path instead of a template
func agentNumber(event models.AgentEvent, param string) (int, error) {
	raw, ok := event.Param(param)
	if !ok {
		raw = event.APIPath[strings.LastIndex(event.APIPath, "/")+1:]
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, errors.New(
			errors.RefInvalidEvent,
			"Invalid number",
			fmt.Sprintf("Invalid %s: %q", param, raw),
			err,
			errors.LevelWarning,
		)
	}
	return n, nil
}
