// Package httpapi serves the action catalogue and dispatch over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/SolAgent-Network/agent_layer/internal/actions"
	"github.com/SolAgent-Network/agent_layer/internal/agent"
	"github.com/SolAgent-Network/agent_layer/internal/chain"
	"github.com/SolAgent-Network/agent_layer/internal/metrics"
	"github.com/SolAgent-Network/agent_layer/internal/wallet"
	"github.com/SolAgent-Network/agent_layer/pkg/logger"
)

// maxInputBytes caps dispatch request bodies.
const maxInputBytes = 1 << 20

// Server routes HTTP requests to the action registry.
type Server struct {
	registry *actions.Registry
	agent    *agent.Agent
	log      *logger.Logger
	auth     *authMiddleware
}

// NewServer constructs the HTTP surface. authSecret may be empty, in which
// case dispatch routes are unauthenticated.
func NewServer(registry *actions.Registry, ag *agent.Agent, authSecret string, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	var auth *authMiddleware
	if authSecret != "" {
		auth = newAuthMiddleware([]byte(authSecret), log)
	}
	return &Server{
		registry: registry,
		agent:    ag,
		log:      log,
		auth:     auth,
	}
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/actions", s.handleCatalogue).Methods(http.MethodGet)

	dispatch := http.Handler(http.HandlerFunc(s.handleDispatch))
	if s.auth != nil {
		dispatch = s.auth.Handler(dispatch)
	}
	v1.Handle("/actions/{name}", dispatch).Methods(http.MethodPost)

	return metrics.InstrumentHandler(s.withRequestID(r))
}

// withRequestID tags every request with an ID for log correlation.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"address": s.agent.Address().String(),
		"actions": s.registry.Len(),
	})
}

func (s *Server) handleCatalogue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"actions": s.registry.Catalogue(),
	})
}

func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	requestID := w.Header().Get("X-Request-ID")
	log := s.log.WithField("action", name).WithField("request_id", requestID)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxInputBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	start := time.Now()
	result, err := s.registry.Execute(r.Context(), name, s.agent, body)
	duration := time.Since(start)

	if err != nil {
		metrics.RecordDispatch(name, "failed", duration)
		status, message := mapError(err)
		log.WithError(err).WithField("status", status).Warn("dispatch failed")
		writeError(w, status, message)
		return
	}

	outcome := "success"
	if status, ok := result["status"].(string); ok && status != "success" {
		outcome = "error"
	}
	metrics.RecordDispatch(name, outcome, duration)
	log.WithField("outcome", outcome).Info("dispatch complete")
	writeJSON(w, http.StatusOK, result)
}

// mapError translates the dispatch error taxonomy onto HTTP statuses.
func mapError(err error) (int, string) {
	var invalid *actions.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest, invalid.Error()
	case errors.Is(err, actions.ErrUnknownAction):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, wallet.ErrSigningUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	}
	var rejected *chain.SubmissionRejectedError
	if errors.As(err, &rejected) {
		return http.StatusBadGateway, rejected.Error()
	}
	return http.StatusInternalServerError, "internal error"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"status":  "error",
		"message": message,
	})
}
