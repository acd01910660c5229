package espn

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/okian/fflboard/internal/domain/model"
)

const (
	statSourceProjected = 1
	statSplitSeason     = 0
)

// idString normalises ids that arrive as numbers or strings. The first
// non-empty value wins.
func idString(vs ...any) string {
	for _, v := range vs {
		if v == nil {
			continue
		}
		if s := strings.TrimSpace(cast.ToString(v)); s != "" {
			return s
		}
	}
	return ""
}

func toInt64(v any) int64 {
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0
	}
	return n
}

func toLeague(resp leagueResponse, year int) model.League {
	period := resp.ScoringPeriodID
	if period == 0 {
		period = resp.Status.LatestScoringPeriod
	}
	if resp.SeasonID != 0 {
		year = resp.SeasonID
	}

	league := model.League{
		ID:                   resp.ID,
		Year:                 year,
		Name:                 resp.Settings.Name,
		CurrentScoringPeriod: period,
		Teams:                make([]model.Team, 0, len(resp.Teams)),
	}
	for _, t := range resp.Teams {
		league.Teams = append(league.Teams, t.team(year))
	}
	return league
}

func (t teamWire) team(year int) model.Team {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		name = strings.TrimSpace(t.Location + " " + t.Nickname)
	}

	team := model.Team{
		ID:           t.ID,
		Abbreviation: t.Abbreviation,
		Name:         name,
		Wins:         t.Record.Overall.Wins,
		Losses:       t.Record.Overall.Losses,
		Ties:         t.Record.Overall.Ties,
		Roster:       make([]model.RosterSlot, 0, len(t.Roster.Entries)),
	}
	for _, e := range t.Roster.Entries {
		c := e.PlayerPoolEntry.candidate("", year)
		if c.PlayerID == "" {
			c.PlayerID = idString(e.PlayerID)
		}
		team.Roster = append(team.Roster, model.RosterSlot{
			Player:     c,
			LineupSlot: SlotName(e.LineupSlotID),
		})
	}
	return team
}

// candidate converts a player pool entry. fallbackPosition labels players
// whose default position id is unknown.
func (e playerEntryWire) candidate(fallbackPosition string, year int) model.Candidate {
	p := e.Player

	position := PositionName(p.DefaultPositionID)
	if position == "" {
		position = strings.ToUpper(fallbackPosition)
	}

	c := model.Candidate{
		PlayerID: idString(e.ID, p.ID),
		Name:     p.FullName,
		Position: position,
	}
	if abbrev, ok := ProTeamAbbrev(p.ProTeamID); ok {
		c.ProTeam = model.Some(abbrev)
	}
	if p.Ownership != nil {
		c.OwnedPct = model.FromPtr(p.Ownership.PercentOwned)
		c.StartedPct = model.FromPtr(p.Ownership.PercentStarted)
	}
	if s, ok := projection(p.Stats, year); ok {
		c.ProjTotalPoints = model.FromPtr(s.AppliedTotal)
		c.ProjAvgPoints = model.FromPtr(s.AppliedAverage)
	}
	if p.InjuryStatus != "" {
		c.InjuryStatus = model.Some(p.InjuryStatus)
	}
	return c
}

// projection picks the season-long projected stat line.
func projection(stats []statWire, year int) (statWire, bool) {
	for _, s := range stats {
		if s.StatSourceID != statSourceProjected || s.StatSplitTypeID != statSplitSeason {
			continue
		}
		if s.SeasonID != 0 && s.SeasonID != year {
			continue
		}
		return s, true
	}
	return statWire{}, false
}

func (t transactionWire) transaction() model.Transaction {
	tx := model.Transaction{
		ID:          idString(t.ID),
		Type:        t.Type,
		Status:      t.Status,
		TeamID:      t.TeamID,
		ProcessedAt: epochTime(t.ProcessedDate),
		Items:       make([]model.TransactionItem, 0, len(t.Items)),
	}
	for _, it := range t.Items {
		tx.Items = append(tx.Items, model.TransactionItem{
			PlayerID:   idString(it.PlayerID),
			Type:       it.Type,
			FromTeamID: it.FromTeamID,
			ToTeamID:   it.ToTeamID,
		})
	}
	return tx
}
