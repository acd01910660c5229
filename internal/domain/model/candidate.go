// Package model contains domain models passed between layers.
package model

import "math"

// Candidate is a player considered for the ownership leaderboard, as handed
// over by the league provider. Numeric fields stay absent until Resolved.
type Candidate struct {
	PlayerID        string // empty means the record is malformed
	Name            string
	Position        string
	ProTeam         Opt[string]
	OwnedPct        Opt[float64]
	StartedPct      Opt[float64]
	ProjAvgPoints   Opt[float64]
	ProjTotalPoints Opt[float64]
	InjuryStatus    Opt[string]
	ByeWeek         Opt[int]
}

// Resolved is a Candidate with every default applied.
type Resolved struct {
	PlayerID        string
	Name            string
	Position        string
	ProTeam         string
	OwnedPct        float64
	StartedPct      float64
	ProjAvgPoints   float64
	ProjTotalPoints float64
	InjuryStatus    string
	ByeWeek         int // 0 when unknown
}

// Resolve applies the defaulting rules: absent numbers become 0, absent
// strings become "". NaN counts as absent.
func (c Candidate) Resolve() Resolved {
	return Resolved{
		PlayerID:        c.PlayerID,
		Name:            c.Name,
		Position:        c.Position,
		ProTeam:         c.ProTeam.Or(""),
		OwnedPct:        number(c.OwnedPct),
		StartedPct:      number(c.StartedPct),
		ProjAvgPoints:   number(c.ProjAvgPoints),
		ProjTotalPoints: number(c.ProjTotalPoints),
		InjuryStatus:    c.InjuryStatus.Or(""),
		ByeWeek:         c.ByeWeek.Or(0),
	}
}

func number(o Opt[float64]) float64 {
	v, ok := o.Get()
	if !ok || math.IsNaN(v) {
		return 0
	}
	return v
}
