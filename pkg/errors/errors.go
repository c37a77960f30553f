package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/KOFI-GYIMAH/github-connector/pkg/logger"
)

type ErrorLevel int

const (
	LevelFatal ErrorLevel = iota + 1
	LevelError
	LevelWarning
	LevelInfo
)

func (l ErrorLevel) String() string {
	return [...]string{"", "Fatal", "Error", "Warning", "Info"}[l]
}

// * References shared across packages
const (
	RefUnknownAction     = "UNKNOWN_ACTION"
	RefInvalidEvent      = "INVALID_EVENT"
	RefUnsupportedMethod = "UNSUPPORTED_METHOD"
	RefGitHubAPI         = "GITHUB_API_ERROR"
	RefGitHubRateLimited = "GITHUB_RATE_LIMITED"
	RefConfiguration     = "CONFIGURATION_ERROR"
)

type ApplicationError struct {
	Reference   string
	Title       string
	Detail      string
	RootCause   error
	Level       ErrorLevel
	OccurredAt  time.Time
	CallerTrace []string
}

func (e *ApplicationError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s][%s] %s", e.OccurredAt.Format(time.RFC3339), e.Reference, e.Title)

	if e.Detail != "" {
		fmt.Fprintf(&b, " - %s", e.Detail)
	}

	if e.RootCause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.RootCause)
	}

	return b.String()
}

func (e *ApplicationError) Unwrap() error {
	return e.RootCause
}

func New(ref, title, detail string, cause error, level ErrorLevel) *ApplicationError {
	return &ApplicationError{
		Reference:   ref,
		Title:       title,
		Detail:      detail,
		RootCause:   cause,
		Level:       level,
		OccurredAt:  time.Now().UTC(),
		CallerTrace: captureCallerInfo(3),
	}
}

// * UnknownAction is returned for any action outside the supported set
func UnknownAction(action string) *ApplicationError {
	return New(
		RefUnknownAction,
		"Unknown action",
		fmt.Sprintf("Unknown action: %s", action),
		nil,
		LevelWarning,
	)
}

func captureCallerInfo(skip int) []string {
	pc := make([]uintptr, 10)
	n := runtime.Callers(skip, pc)
	if n == 0 {
		return nil
	}

	pc = pc[:n]
	frames := runtime.CallersFrames(pc)

	var trace []string
	for {
		frame, more := frames.Next()
		trace = append(trace, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		if !more {
			break
		}
	}

	return trace
}

// * IsReference reports whether err carries the given reference anywhere in its chain
func IsReference(err error, ref string) bool {
	var appErr *ApplicationError
	return errors.As(err, &appErr) && appErr.Reference == ref
}

// * StatusCode maps an error to the status an invocation answers with.
// * Anything that is not a caller mistake is a 500.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var appErr *ApplicationError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}

	switch appErr.Reference {
	case RefUnknownAction, RefInvalidEvent, RefUnsupportedMethod:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// * Message is the text a caller sees. For upstream failures this is the
// * upstream message unchanged.
func Message(err error) string {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		if appErr.Detail != "" {
			return appErr.Detail
		}
		return appErr.Title
	}
	return err.Error()
}

type HTTPErrorResponse struct {
	Status    int       `json:"status"`
	ErrorRef  string    `json:"error_reference,omitempty"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func WriteHTTPError(w http.ResponseWriter, err error) {
	var appErr *ApplicationError

	resp := HTTPErrorResponse{
		Status:    StatusCode(err),
		Title:     "An unexpected error occurred",
		Detail:    Message(err),
		Timestamp: time.Now().UTC(),
	}

	if errors.As(err, &appErr) {
		resp.ErrorRef = appErr.Reference
		resp.Title = appErr.Title
	}

	if resp.Status >= http.StatusInternalServerError {
		logger.Error("%v", err)
	} else {
		logger.Warn("%v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}
