package espn

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/okian/fflboard/internal/domain/model"
	"github.com/okian/fflboard/pkg/logger"
	"github.com/okian/fflboard/pkg/metrics"
)

// ErrInvalidLimit is returned when a free-agent page size is below one.
var ErrInvalidLimit = errors.New("free agent limit must be positive")

// League fetches settings, teams and rosters.
func (c *Client) League(ctx context.Context) (model.League, error) {
	var resp leagueResponse
	err := c.get(ctx, request{
		path:  c.leaguePath(),
		views: []string{"mSettings", "mTeam", "mRoster"},
	}, &resp)
	if err != nil {
		return model.League{}, fmt.Errorf("fetch league %d: %w", c.leagueID, err)
	}

	league := toLeague(resp, c.year)
	if league.ID == 0 {
		league.ID = c.leagueID
	}
	c.logger.Debug(ctx, "league fetched",
		logger.String("name", league.Name),
		logger.Int("teams", len(league.Teams)),
		logger.Int("scoring_period", league.CurrentScoringPeriod),
	)
	return league, nil
}

// ProTeams fetches NFL team abbreviations and bye weeks keyed by pro team id.
func (c *Client) ProTeams(ctx context.Context) (map[int]model.ProTeam, error) {
	var resp proTeamsResponse
	err := c.get(ctx, request{
		path:  c.seasonPath(),
		views: []string{"proTeamSchedules_wl"},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch pro teams %d: %w", c.year, err)
	}

	out := make(map[int]model.ProTeam, len(resp.Settings.ProTeams))
	for _, t := range resp.Settings.ProTeams {
		if t.ID == 0 {
			continue // free agents pseudo-team
		}
		abbrev := strings.ToUpper(t.Abbrev)
		if known, ok := ProTeamAbbrev(t.ID); ok {
			abbrev = known
		}
		out[t.ID] = model.ProTeam{ID: t.ID, Abbrev: abbrev, ByeWeek: t.ByeWeek}
	}
	return out, nil
}

type playerFilter struct {
	Players playerFilterBody `json:"players"`
}

type playerFilterBody struct {
	FilterStatus  filterValues[string] `json:"filterStatus"`
	FilterSlotIDs filterValues[int]    `json:"filterSlotIds"`
	Limit         int                  `json:"limit"`
	SortPercOwned sortSpec             `json:"sortPercOwned"`
}

type filterValues[T any] struct {
	Value []T `json:"value"`
}

type sortSpec struct {
	SortPriority int  `json:"sortPriority"`
	SortAsc      bool `json:"sortAsc"`
}

// FreeAgents returns up to limit free agents and waiver-wire players eligible
// for position, most owned first. Fields ESPN omits stay absent.
func (c *Client) FreeAgents(ctx context.Context, position string, limit int) ([]model.Candidate, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidLimit, limit)
	}
	slot, err := SlotID(position)
	if err != nil {
		return nil, err
	}

	var resp playersResponse
	err = c.get(ctx, request{
		path:  c.leaguePath(),
		views: []string{"kona_player_info"},
		filter: playerFilter{Players: playerFilterBody{
			FilterStatus:  filterValues[string]{Value: []string{"FREEAGENT", "WAIVERS"}},
			FilterSlotIDs: filterValues[int]{Value: []int{slot}},
			Limit:         limit,
			SortPercOwned: sortSpec{SortPriority: 1, SortAsc: false},
		}},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch free agents %s: %w", position, err)
	}

	out := make([]model.Candidate, 0, len(resp.Players))
	for _, e := range resp.Players {
		out = append(out, e.candidate(position, c.year))
	}
	metrics.RecordCandidatesFetched(position, len(out))
	return out, nil
}

// Transactions fetches the league transactions of one scoring period.
func (c *Client) Transactions(ctx context.Context, scoringPeriod int) ([]model.Transaction, error) {
	var resp transactionsResponse
	err := c.get(ctx, request{
		path:  c.leaguePath(),
		views: []string{"mTransactions2"},
		query: url.Values{"scoringPeriodId": []string{strconv.Itoa(scoringPeriod)}},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions period %d: %w", scoringPeriod, err)
	}

	out := make([]model.Transaction, 0, len(resp.Transactions))
	for _, t := range resp.Transactions {
		out = append(out, t.transaction())
	}
	return out, nil
}

// Timestamps below this are epoch seconds, not milliseconds.
const millisThreshold = 1e11

func epochTime(v any) time.Time {
	n := toInt64(v)
	switch {
	case n <= 0:
		return time.Time{}
	case n < millisThreshold:
		return time.Unix(n, 0).UTC()
	default:
		return time.UnixMilli(n).UTC()
	}
}
