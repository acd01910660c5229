// Package types contains the read shapes shared by the service, the HTTP API
// and the report printer.
package types

import "time"

// Entry is one row of the free-agent ownership leaderboard.
type Entry struct {
	Rank            int     `json:"rank"`
	PlayerID        string  `json:"player_id"`
	Name            string  `json:"name"`
	Position        string  `json:"position"`
	ProTeam         string  `json:"pro_team,omitempty"`
	OwnedPct        float64 `json:"owned_pct"`
	StartedPct      float64 `json:"started_pct"`
	ProjAvgPoints   float64 `json:"proj_avg_points"`
	ProjTotalPoints float64 `json:"proj_total_points"`
	InjuryStatus    string  `json:"injury_status,omitempty"`
	ByeWeek         int     `json:"bye_week,omitempty"`
}

// Leaderboard is the result of one ranking run.
type Leaderboard struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Positions   []string  `json:"positions"`
	MinOwned    float64   `json:"min_owned"`
	TopN        int       `json:"top_n"`
	Entries     []Entry   `json:"entries"`
}

// TeamSummary is a league team without its roster.
type TeamSummary struct {
	TeamID       int    `json:"team_id"`
	Abbreviation string `json:"abbreviation,omitempty"`
	Name         string `json:"name"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Ties         int    `json:"ties"`
}

// RosterPlayer is one rostered player with display-ready numbers.
type RosterPlayer struct {
	PlayerID      string  `json:"player_id"`
	Name          string  `json:"name"`
	Position      string  `json:"position"`
	ProTeam       string  `json:"pro_team,omitempty"`
	ProjAvgPoints float64 `json:"proj_avg_points"`
	OwnedPct      float64 `json:"owned_pct"`
	StartedPct    float64 `json:"started_pct"`
	InjuryStatus  string  `json:"injury_status,omitempty"`
	LineupSlot    string  `json:"lineup_slot,omitempty"`
}

// TeamRoster is a team with its players.
type TeamRoster struct {
	TeamID   int            `json:"team_id"`
	TeamName string         `json:"team_name"`
	Players  []RosterPlayer `json:"players"`
}

// TeamActivity counts a team's transactions inside a trailing window.
type TeamActivity struct {
	TeamID       int    `json:"team_id"`
	TeamName     string `json:"team_name"`
	Transactions int    `json:"transactions"`
	Adds         int    `json:"adds"`
	Drops        int    `json:"drops"`
}

// ActivitySummary wraps the per-team counts with the window that produced them.
type ActivitySummary struct {
	Since time.Time      `json:"since"`
	Days  int            `json:"days"`
	Teams []TeamActivity `json:"teams"`
}
