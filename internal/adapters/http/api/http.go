// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"

	service "github.com/okian/fflboard/internal/app"
	"github.com/okian/fflboard/internal/domain/ranking"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	LeaderboardDependencies
	TeamDependencies
	TransactionDependencies
}

// Server wires HTTP routes for the read API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	leaderboardHandler  *LeaderboardHandler
	teamHandler         *TeamHandler
	transactionsHandler *TransactionsHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps the
// leaderboard limit parameter.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		leaderboardHandler:  NewLeaderboardHandler(deps, maxLimit),
		teamHandler:         NewTeamHandler(deps),
		transactionsHandler: NewTransactionsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/teams", MetricsMiddleware(s.teamHandler.HandleGetTeams, "teams"))
	mux.HandleFunc("/roster/", MetricsMiddleware(s.teamHandler.HandleGetRoster, "roster"))
	mux.HandleFunc("/transactions", MetricsMiddleware(s.transactionsHandler.HandleGetTransactions, "transactions"))
}

// Handler returns a mux with every route registered, wrapped in the
// request-id middleware. extra registers additional routes (API docs) on the
// same mux.
func (s *Server) Handler(extra ...func(*http.ServeMux)) http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	for _, register := range extra {
		register(mux)
	}
	return RequestIDMiddleware(mux)
}

type healthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, RequestID: RequestIDFromContext(r.Context())})
}

// writeServiceError maps service and domain errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	err = opError(op, err)
	switch {
	case errors.Is(err, service.ErrTeamNotFound):
		writeError(w, r, http.StatusNotFound, "not_found", err)
	case errors.Is(err, ranking.ErrInvalidTopN),
		errors.Is(err, ranking.ErrInvalidThreshold),
		errors.Is(err, service.ErrInvalidDays):
		writeError(w, r, http.StatusBadRequest, "bad_request", err)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusGatewayTimeout, "timeout", err)
	case errors.Is(err, service.ErrUpstream):
		writeError(w, r, http.StatusBadGateway, "upstream_error", err)
	default:
		writeError(w, r, http.StatusInternalServerError, "internal_error", err)
	}
}

func opError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
