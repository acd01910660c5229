// Package ranking builds the free-agent ownership leaderboard from candidates
// fetched once per position.
//
// Ordering: owned% DESC, then projected average points DESC. Remaining ties
// keep merge order (batch order, then order inside a batch).
package ranking

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/okian/fflboard/internal/domain/model"
	"github.com/okian/fflboard/internal/domain/types"
)

const roundingScale = 100 // two decimal places

// Batch is the candidate list fetched for one position query.
type Batch struct {
	Position   string
	Candidates []model.Candidate
}

// MergeStats reports what Merge discarded.
type MergeStats struct {
	Skipped    int // candidates without a player id
	Duplicates int // candidates whose id was already seen
}

// Merge collapses all batches into one record per player id. On collision
// the candidate with strictly greater owned% wins; on equality the first one
// seen is kept. The survivor keeps the slot of the first occurrence.
func Merge(batches []Batch) ([]model.Resolved, MergeStats) {
	var stats MergeStats
	index := make(map[string]int)
	var out []model.Resolved

	for _, b := range batches {
		for _, c := range b.Candidates {
			id := strings.TrimSpace(c.PlayerID)
			if id == "" {
				stats.Skipped++
				continue
			}
			r := c.Resolve()
			r.PlayerID = id

			i, seen := index[id]
			if !seen {
				index[id] = len(out)
				out = append(out, r)
				continue
			}
			stats.Duplicates++
			if r.OwnedPct > out[i].OwnedPct {
				out[i] = r
			}
		}
	}
	return out, stats
}

// Rank merges, filters, orders and caps the candidates. The result holds at
// most topN entries, each with owned% >= minOwned and a distinct player id.
// No candidates (or none passing the filter) yields an empty, non-nil slice.
func Rank(batches []Batch, minOwned float64, topN int) ([]types.Entry, error) {
	entries, _, err := rank(batches, minOwned, topN)
	return entries, err
}

func rank(batches []Batch, minOwned float64, topN int) ([]types.Entry, MergeStats, error) {
	if topN < 1 {
		return nil, MergeStats{}, fmt.Errorf("%w, got %d", ErrInvalidTopN, topN)
	}
	if math.IsNaN(minOwned) || minOwned < 0 || minOwned > 100 {
		return nil, MergeStats{}, fmt.Errorf("%w, got %v", ErrInvalidThreshold, minOwned)
	}

	merged, stats := Merge(batches)

	kept := merged[:0]
	for _, r := range merged {
		if r.OwnedPct >= minOwned {
			kept = append(kept, r)
		}
	}

	sortResolved(kept)

	if len(kept) > topN {
		kept = kept[:topN]
	}

	out := make([]types.Entry, len(kept))
	for i, r := range kept {
		out[i] = toEntry(r)
	}
	assignRanksWithTies(out)
	return out, stats, nil
}

// sortResolved orders by owned% desc, then projected average desc. The sort
// is stable so equal keys keep merge order.
func sortResolved(rs []model.Resolved) {
	sort.SliceStable(rs, func(i, j int) bool {
		if rs[i].OwnedPct != rs[j].OwnedPct {
			return rs[i].OwnedPct > rs[j].OwnedPct
		}
		return rs[i].ProjAvgPoints > rs[j].ProjAvgPoints
	})
}

func toEntry(r model.Resolved) types.Entry {
	return types.Entry{
		PlayerID:        r.PlayerID,
		Name:            r.Name,
		Position:        r.Position,
		ProTeam:         r.ProTeam,
		OwnedPct:        Round2(r.OwnedPct),
		StartedPct:      Round2(r.StartedPct),
		ProjAvgPoints:   Round2(r.ProjAvgPoints),
		ProjTotalPoints: Round2(r.ProjTotalPoints),
		InjuryStatus:    r.InjuryStatus,
		ByeWeek:         r.ByeWeek,
	}
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*roundingScale) / roundingScale
}

// assignRanksWithTies gives entries with the same (owned%, proj avg) the same
// rank; the next distinct entry takes the next consecutive rank.
func assignRanksWithTies(entries []types.Entry) {
	currentRank := 0
	for i := range entries {
		if i == 0 ||
			entries[i].OwnedPct != entries[i-1].OwnedPct ||
			entries[i].ProjAvgPoints != entries[i-1].ProjAvgPoints {
			currentRank++
		}
		entries[i].Rank = currentRank
	}
}
