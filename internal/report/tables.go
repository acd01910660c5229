package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/okian/fflboard/internal/domain/types"
)

const (
	rosterHeaderFormat = "%-24s %-3s %-3s %6s %6s %7s %8s %6s"
	rosterRowFormat    = "%-24s %-3s %-3s %6.2f %6.1f %7.1f %-8s %-6s"

	leaderboardHeaderFormat = "%4s %-24s %-4s %-3s %6s %7s %6s %-8s %3s"
	leaderboardRowFormat    = "%4d %-24s %-4s %-3s %6.1f %7.1f %6.2f %-8s %3s"

	activityHeaderFormat = "%-28s %5s %5s %5s"
	activityRowFormat    = "%-28s %5d %5d %5d"
)

// errWriter keeps the first write error so table code can print unconditionally.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) header(format string, cols ...any) {
	h := fmt.Sprintf(format, cols...)
	ew.printf("%s\n%s\n", h, strings.Repeat("-", len(h)))
}

// WriteLeague prints the league name line.
func WriteLeague(w io.Writer, name string) error {
	ew := &errWriter{w: w}
	ew.printf("League: %s\n", name)
	return ew.err
}

// WriteTeams prints one "id name" line per team.
func WriteTeams(w io.Writer, teams []types.TeamSummary) error {
	ew := &errWriter{w: w}
	ew.printf("Teams:\n")
	for _, t := range teams {
		ew.printf("%d %s\n", t.TeamID, t.Name)
	}
	return ew.err
}

// WriteRoster prints a team's roster as a fixed-width table.
func WriteRoster(w io.Writer, r types.TeamRoster) error {
	ew := &errWriter{w: w}
	ew.printf("\n%s Roster (key metrics)\n", r.TeamName)
	ew.header(rosterHeaderFormat, "Name", "Pos", "NFL", "Proj", "Own%", "Start%", "Injury", "Slot")
	for _, p := range r.Players {
		ew.printf(rosterRowFormat+"\n",
			p.Name, p.Position, p.ProTeam, p.ProjAvgPoints, p.OwnedPct, p.StartedPct, p.InjuryStatus, p.LineupSlot)
	}
	return ew.err
}

// WriteLeaderboard prints the free-agent ownership leaderboard.
func WriteLeaderboard(w io.Writer, lb types.Leaderboard) error {
	ew := &errWriter{w: w}
	ew.printf("\nTop %d free agents by ownership (min %.1f%%, positions %s)\n",
		lb.TopN, lb.MinOwned, strings.Join(lb.Positions, ","))
	ew.header(leaderboardHeaderFormat, "Rank", "Name", "Pos", "NFL", "Own%", "Start%", "Proj", "Injury", "Bye")
	for _, e := range lb.Entries {
		bye := ""
		if e.ByeWeek > 0 {
			bye = fmt.Sprint(e.ByeWeek)
		}
		ew.printf(leaderboardRowFormat+"\n",
			e.Rank, e.Name, e.Position, e.ProTeam, e.OwnedPct, e.StartedPct, e.ProjAvgPoints, e.InjuryStatus, bye)
	}
	if len(lb.Entries) == 0 {
		ew.printf("(no free agents matched)\n")
	}
	return ew.err
}

// WriteActivity prints per-team transaction counts for the trailing window.
func WriteActivity(w io.Writer, s types.ActivitySummary) error {
	ew := &errWriter{w: w}
	ew.printf("\nTransactions in the last %d days (since %s)\n", s.Days, s.Since.Format("2006-01-02"))
	ew.header(activityHeaderFormat, "Team", "Txns", "Adds", "Drops")
	for _, t := range s.Teams {
		ew.printf(activityRowFormat+"\n", t.TeamName, t.Transactions, t.Adds, t.Drops)
	}
	return ew.err
}
