package api

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	service "github.com/okian/fflboard/internal/app"
	"github.com/okian/fflboard/internal/config"
	"github.com/okian/fflboard/internal/domain/types"
)

// LeaderboardDependencies defines the interface for leaderboard operations.
type LeaderboardDependencies interface {
	DefaultQuery() service.LeaderboardQuery
	FreeAgentLeaderboard(ctx context.Context, q service.LeaderboardQuery) (types.Leaderboard, error)
}

// LeaderboardHandler handles leaderboard requests.
type LeaderboardHandler struct {
	deps     LeaderboardDependencies
	maxLimit int
}

// NewLeaderboardHandler creates a new leaderboard handler.
func NewLeaderboardHandler(deps LeaderboardDependencies, maxLimit int) *LeaderboardHandler {
	return &LeaderboardHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetLeaderboard handles GET /leaderboard?limit=N&min_owned=X&positions=A,B.
// Missing parameters fall back to the service defaults.
func (h *LeaderboardHandler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_leaderboard"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := h.deps.DefaultQuery()
	params := r.URL.Query()

	if s := params.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "bad_request", opError(op, fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest)))
			return
		}
		q.TopN = n
	}
	if q.TopN > h.maxLimit {
		writeError(w, r, http.StatusBadRequest, "limit_exceeded", opError(op, fmt.Errorf("%w: max %d", ErrLimitExceeded, h.maxLimit)))
		return
	}

	if s := params.Get("min_owned"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || v < 0 || v > 100 {
			writeError(w, r, http.StatusBadRequest, "bad_request", opError(op, fmt.Errorf("%w: min_owned must be within [0,100]", ErrBadRequest)))
			return
		}
		q.MinOwned = v
	}

	if s := params.Get("positions"); s != "" {
		positions := config.ParsePositions(s)
		for _, p := range positions {
			if !config.IsKnownPosition(p) {
				writeError(w, r, http.StatusBadRequest, "bad_request", opError(op, fmt.Errorf("%w: unknown position %q", ErrBadRequest, p)))
				return
			}
		}
		if len(positions) > 0 {
			q.Positions = positions
		}
	}

	board, err := h.deps.FreeAgentLeaderboard(r.Context(), q)
	if err != nil {
		writeServiceError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, board)
}
