// Package activity summarises league transactions per team over a trailing
// time window.
package activity

import (
	"sort"
	"time"

	"github.com/okian/fflboard/internal/domain/model"
	"github.com/okian/fflboard/internal/domain/types"
)

// Since returns the start of a trailing window of days ending at now.
func Since(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

// Summarize counts executed free-agent, waiver and trade transactions
// processed at or after since, per team. Every team in teams is present in the result, even with no activity.
// Transactions for teams outside teams are still counted under their id.
//
// Order: transactions DESC, then team name ASC, then team id ASC.
func Summarize(txs []model.Transaction, teams []model.Team, since time.Time) []types.TeamActivity {
	byTeam := make(map[int]*types.TeamActivity, len(teams))
	for _, t := range teams {
		byTeam[t.ID] = &types.TeamActivity{TeamID: t.ID, TeamName: t.Name}
	}

	for _, tx := range txs {
		if !tx.IsActivity() || tx.ProcessedAt.Before(since) {
			continue
		}
		a, ok := byTeam[tx.TeamID]
		if !ok {
			a = &types.TeamActivity{TeamID: tx.TeamID}
			byTeam[tx.TeamID] = a
		}
		a.Transactions++
		for _, item := range tx.Items {
			switch item.Type {
			case model.TxItemAdd:
				a.Adds++
			case model.TxItemDrop:
				a.Drops++
			}
		}
	}

	out := make([]types.TeamActivity, 0, len(byTeam))
	for _, a := range byTeam {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Transactions != out[j].Transactions {
			return out[i].Transactions > out[j].Transactions
		}
		if out[i].TeamName != out[j].TeamName {
			return out[i].TeamName < out[j].TeamName
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}

// Total returns the number of transactions across all teams.
func Total(teams []types.TeamActivity) int {
	n := 0
	for _, t := range teams {
		n += t.Transactions
	}
	return n
}
