// Package report renders league data as the plain-text tables printed by the
// league-report command.
package report

import (
	"context"
	"fmt"
	"io"

	service "github.com/okian/fflboard/internal/app"
	"github.com/okian/fflboard/internal/domain/types"
)

// Kind selects which sections Run prints.
type Kind string

// Report kinds.
const (
	KindAll          Kind = "all"
	KindTeams        Kind = "teams"
	KindRoster       Kind = "roster"
	KindFreeAgents   Kind = "free-agents"
	KindTransactions Kind = "transactions"
)

// ParseKind validates a report name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindAll, KindTeams, KindRoster, KindFreeAgents, KindTransactions:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownReport, s)
	}
}

// Source is the league read side the report needs.
type Source interface {
	LeagueName(ctx context.Context) (string, error)
	Teams(ctx context.Context) ([]types.TeamSummary, error)
	Roster(ctx context.Context, teamID int) (types.TeamRoster, error)
	FreeAgentLeaderboard(ctx context.Context, q service.LeaderboardQuery) (types.Leaderboard, error)
	TransactionSummary(ctx context.Context, days int) (types.ActivitySummary, error)
}

// Options selects what Run prints and with which parameters.
type Options struct {
	Kind   Kind
	TeamID int
	Query  service.LeaderboardQuery
	Days   int
}

// Run fetches and prints the sections selected by opts.Kind. It stops at the
// first failing section.
func Run(ctx context.Context, src Source, w io.Writer, opts Options) error {
	const op = "report.Run"

	if _, err := ParseKind(string(opts.Kind)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	all := opts.Kind == KindAll

	if all || opts.Kind == KindTeams {
		name, err := src.LeagueName(ctx)
		if err != nil {
			return fmt.Errorf("%s: league: %w", op, err)
		}
		teams, err := src.Teams(ctx)
		if err != nil {
			return fmt.Errorf("%s: teams: %w", op, err)
		}
		if err := WriteLeague(w, name); err != nil {
			return err
		}
		if err := WriteTeams(w, teams); err != nil {
			return err
		}
	}

	if all || opts.Kind == KindRoster {
		roster, err := src.Roster(ctx, opts.TeamID)
		if err != nil {
			return fmt.Errorf("%s: roster for team %d: %w", op, opts.TeamID, err)
		}
		if err := WriteRoster(w, roster); err != nil {
			return err
		}
	}

	if all || opts.Kind == KindFreeAgents {
		lb, err := src.FreeAgentLeaderboard(ctx, opts.Query)
		if err != nil {
			return fmt.Errorf("%s: free agents: %w", op, err)
		}
		if err := WriteLeaderboard(w, lb); err != nil {
			return err
		}
	}

	if all || opts.Kind == KindTransactions {
		summary, err := src.TransactionSummary(ctx, opts.Days)
		if err != nil {
			return fmt.Errorf("%s: transactions: %w", op, err)
		}
		if err := WriteActivity(w, summary); err != nil {
			return err
		}
	}

	return nil
}
