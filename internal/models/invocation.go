package models

import (
	"encoding/json"
	"time"
)

// * Event is the invocation input: {"action": "get_issues"}
type Event struct {
	Action string `json:"action"`
}

// * UnmarshalJSON accepts any JSON value as the action. A non-string action
// * keeps its JSON text ({"action":123} reads as "123") so it is answered as an
// * unknown action rather than a malformed event.
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw struct {
		Action json.RawMessage `json:"action"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Action = actionText(raw.Action)
	return nil
}

func actionText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// * Response is the invocation output. Body always holds a JSON document.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type Source string

const (
	SourceLambda Source = "lambda"
	SourceHTTP   Source = "http"
	SourceQueue  Source = "queue"
	SourceAgent  Source = "agent"
)

// * Invocation is an audit row. It never carries listing payloads.
type Invocation struct {
	ID         int64     `json:"id"`
	Source     Source    `json:"source"`
	Action     string    `json:"action"`
	StatusCode int       `json:"status_code"`
	DurationMS int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	InvokedAt  time.Time `json:"invoked_at"`
}
