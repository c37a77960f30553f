package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/KOFI-GYIMAH/github-connector/internal/models"
	"github.com/KOFI-GYIMAH/github-connector/internal/service"
	"github.com/KOFI-GYIMAH/github-connector/pkg/errors"
	"github.com/KOFI-GYIMAH/github-connector/pkg/logger"
	"github.com/gorilla/mux"
)

type HTTPHandler struct {
	dispatcher *service.Dispatcher
}

func NewHTTPHandler(dispatcher *service.Dispatcher) *HTTPHandler {
	return &HTTPHandler{dispatcher: dispatcher}
}

func (h *HTTPHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/invoke", h.invoke).Methods("POST")
	r.HandleFunc("/agent", h.agent).Methods("POST")
	r.HandleFunc("/issues", h.listing(models.ActionGetIssues)).Methods("GET")
	r.HandleFunc("/branches", h.listing(models.ActionGetBranches)).Methods("GET")
	r.HandleFunc("/pull-requests", h.listing(models.ActionGetPullRequests)).Methods("GET")
	r.HandleFunc("/issues/{number:[0-9]+}", h.single(models.ActionGetIssue)).Methods("GET")
	r.HandleFunc("/pull-requests/{number:[0-9]+}", h.single(models.ActionGetPullRequest)).Methods("GET")
	r.HandleFunc("/invocations", h.invocations).Methods("GET")
	r.HandleFunc("/health", h.health).Methods("GET")
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// * writeResponse unwraps an invocation Response: the status becomes the HTTP
// * status and the serialized body is written as-is
func writeResponse(w http.ResponseWriter, resp models.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	w.Write([]byte(resp.Body))
}

// invoke godoc
// @Summary Invoke the connector
// @Description Runs one invocation event exactly as the Lambda would and returns the invocation response object
// @Tags Invocation
// @Accept json
// @Produce json
// @Param event body models.Event true "Invocation event"
// @Success 200 {object} models.Response
// @Failure 400 {object} errors.HTTPErrorResponse
// @Router /invoke [post]
func (h *HTTPHandler) invoke(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		errors.WriteHTTPError(w, errors.New(errors.RefInvalidEvent, "Invalid event", err.Error(), err, errors.LevelWarning))
		return
	}

	resp := h.dispatcher.Handle(r.Context(), models.SourceHTTP, event)
	writeJSON(w, http.StatusOK, resp)
}

// agent godoc
// @Summary Invoke the connector as an agent action group
// @Description Routes an agent action-group event by HTTP method and API path
// @Tags Invocation
// @Accept json
// @Produce json
// @Param event body models.AgentEvent true "Agent event"
// @Success 200 {object} models.AgentResponse
// @Failure 400 {object} errors.HTTPErrorResponse
// @Router /agent [post]
func (h *HTTPHandler) agent(w http.ResponseWriter, r *http.Request) {
	var event models.AgentEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		errors.WriteHTTPError(w, errors.New(errors.RefInvalidEvent, "Invalid agent event", err.Error(), err, errors.LevelWarning))
		return
	}

	writeJSON(w, http.StatusOK, h.dispatcher.HandleAgent(r.Context(), event))
}

// listing godoc
// @Summary List open issues, branches or open pull requests
// @Description Fetches the first page (30 items) straight from GitHub
// @Tags GitHub
// @Produce json
// @Success 200 {array} object
// @Failure 500 {string} string "Upstream failure message"
// @Router /issues [get]
// @Router /branches [get]
// @Router /pull-requests [get]
func (h *HTTPHandler) listing(action models.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := h.dispatcher.Respond(r.Context(), models.SourceHTTP, models.Request{Action: action}, action.String())
		writeResponse(w, resp)
	}
}

// single godoc
// @Summary Get one issue or pull request
// @Tags GitHub
// @Produce json
// @Param number path int true "Issue or pull request number"
// @Success 200 {object} object
// @Failure 500 {string} string "Upstream failure message"
// @Router /issues/{number} [get]
// @Router /pull-requests/{number} [get]
func (h *HTTPHandler) single(action models.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := strconv.Atoi(mux.Vars(r)["number"])
		if err != nil || number < 1 {
			errors.WriteHTTPError(w, errors.New(errors.RefInvalidEvent, "Invalid number", mux.Vars(r)["number"], err, errors.LevelWarning))
			return
		}

		resp := h.dispatcher.Respond(r.Context(), models.SourceHTTP, models.Request{Action: action, Number: number}, action.String())
		writeResponse(w, resp)
	}
}

// invocations godoc
// @Summary Recent invocations
// @Description Lists audit rows, newest first. Empty when auditing is disabled.
// @Tags Audit
// @Produce json
// @Param limit query int false "Max rows" default(50)
// @Success 200 {array} models.Invocation
// @Failure 500 {object} errors.HTTPErrorResponse
// @Router /invocations [get]
func (h *HTTPHandler) invocations(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 500 {
		limit = 50
	}

	rows, err := h.dispatcher.Invocations(r.Context(), limit)
	if err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	logger.Debug("Fetched %d invocations", len(rows))
	writeJSON(w, http.StatusOK, rows)
}

func (h *HTTPHandler) health(w http.ResponseWriter, r *http.Request) {
	health := map[string]any{
		"status":     "ok",
		"repository": h.dispatcher.Config().Repository,
	}
	if status, ok := h.dispatcher.RateLimit(); ok {
		health["rate_limit"] = status
	}

	writeJSON(w, http.StatusOK, health)
}
