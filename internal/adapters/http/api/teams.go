package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/fflboard/internal/domain/types"
)

// TeamDependencies defines the interface for team and roster reads.
type TeamDependencies interface {
	Teams(ctx context.Context) ([]types.TeamSummary, error)
	Roster(ctx context.Context, teamID int) (types.TeamRoster, error)
}

// TeamHandler handles team and roster requests.
type TeamHandler struct {
	deps TeamDependencies
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(deps TeamDependencies) *TeamHandler {
	return &TeamHandler{deps: deps}
}

// HandleGetTeams handles GET /teams requests.
func (h *TeamHandler) HandleGetTeams(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_teams"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	teams, err := h.deps.Teams(r.Context())
	if err != nil {
		writeServiceError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// HandleGetRoster handles GET /roster/{team_id} requests.
func (h *TeamHandler) HandleGetRoster(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_roster"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(r.URL.Path, "/roster/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, r, http.StatusBadRequest, "bad_request", opError(op, ErrBadRequest))
		return
	}
	teamID, err := strconv.Atoi(path)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", opError(op, ErrBadRequest))
		return
	}

	roster, err := h.deps.Roster(r.Context(), teamID)
	if err != nil {
		writeServiceError(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}
