package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	app "github.com/okian/fflboard/internal/app"
	"github.com/okian/fflboard/internal/config"
	"github.com/okian/fflboard/internal/report"
	"github.com/okian/fflboard/pkg/logger"
)

const usage = `League Report
=============

Prints the league, its teams, a team roster, the free-agent ownership
leaderboard and recent transaction counts.

Credentials come from LEAGUE_ID, YEAR, ESPN_S2 and SWID (environment or .env).
Other settings use FFL_* variables or the YAML file named by FFL_CONFIG.

Usage:
  league-report [options]

Options:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit status. Flags are
// parsed before config is loaded so -help works without credentials; unset
// flags then take their defaults from config.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("league-report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		kind     = fs.String("report", string(report.KindAll), "Report to print: all, teams, roster, free-agents, transactions")
		teamID   = fs.Int("team", 0, "Team id for the roster report (default my_team_id)")
		topN     = fs.Int("top", 0, "Number of free agents to list (default top_n)")
		minOwned = fs.Float64("min-owned", 0, "Minimum owned percentage for free agents (default min_owned)")
		days     = fs.Int("days", 0, "Trailing window in days for transaction counts (default transaction_days)")
		help     = fs.Bool("help", false, "Show help")
	)
	fs.Usage = func() {
		_, _ = io.WriteString(stderr, usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if *help {
		fs.SetOutput(stdout)
		_, _ = io.WriteString(stdout, usage)
		fs.PrintDefaults()
		return 0
	}

	k, err := report.ParseKind(*kind)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["team"] {
		*teamID = cfg.MyTeamID
	}
	if !set["top"] {
		*topN = cfg.TopN
	}
	if !set["min-owned"] {
		*minOwned = cfg.MinOwned
	}
	if !set["days"] {
		*days = cfg.TransactionDays
	}

	// Logs go to stderr so the tables on stdout stay clean.
	if err := logger.InitWithWriter(stderr, cfg.LogFormat); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("warn")
	}

	svc := app.NewFromConfig(cfg, logger.Get())

	q := svc.DefaultQuery()
	q.TopN = *topN
	q.MinOwned = *minOwned

	opts := report.Options{Kind: k, TeamID: *teamID, Query: q, Days: *days}
	if err := report.Run(ctx, svc, stdout, opts); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}
