package handler

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/KOFI-GYIMAH/github-connector/internal/models"
	"github.com/KOFI-GYIMAH/github-connector/internal/service"
	"github.com/KOFI-GYIMAH/github-connector/pkg/errors"
	"github.com/KOFI-GYIMAH/github-connector/pkg/logger"
	"github.com/aws/aws-lambda-go/lambdacontext"
)

// * LambdaHandler is the function entrypoint. Failures are reported in the
// * returned document, never as a function error.
type LambdaHandler struct {
	dispatcher *service.Dispatcher
}

func NewLambdaHandler(dispatcher *service.Dispatcher) *LambdaHandler {
	return &LambdaHandler{dispatcher: dispatcher}
}

// * Handle accepts either an action event or an agent action-group event.
// * Agent events are recognised by carrying both apiPath and httpMethod.
func (h *LambdaHandler) Handle(ctx context.Context, raw json.RawMessage) (any, error) {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger.Info("Received lambda invocation: request_id=%s function=%s", lc.AwsRequestID, lambdacontext.FunctionName)
	}
	if logger.Enabled(logger.LevelDebug) {
		logger.Debug("Received lambda event: %s", compact(raw))
	}

	var probe struct {
		APIPath    string `json:"apiPath"`
		HTTPMethod string `json:"httpMethod"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return service.ErrorResponse(invalidEvent(err)), nil
	}

	if probe.APIPath != "" && probe.HTTPMethod != "" {
		var event models.AgentEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			return service.ErrorResponse(invalidEvent(err)), nil
		}
		return h.dispatcher.HandleAgent(ctx, event), nil
	}

	var event models.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return service.ErrorResponse(invalidEvent(err)), nil
	}
	return h.dispatcher.Handle(ctx, models.SourceLambda, event), nil
}

// * compact strips insignificant whitespace so the event logs on one line
func compact(raw json.RawMessage) string {
	var b bytes.Buffer
	if err := json.Compact(&b, raw); err != nil {
		return string(raw)
	}
	return b.String()
}

func invalidEvent(err error) error {
	logger.Warn("Undecodable lambda event: %v", err)
	return errors.New(errors.RefInvalidEvent, "Invalid event", "Invalid event: "+err.Error(), err, errors.LevelWarning)
}
