// Package config defines process configuration and its loading hooks.
//
// Conventions:
//   - Config is built once at startup (Load) and passed down explicitly.
//   - Nothing outside this package reads the process environment.
//   - Validation errors wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/multierr"
)

// KnownPositions lists the positions the league provider can be queried for.
var KnownPositions = []string{"QB", "RB", "WR", "TE", "K", "D/ST", "FLEX", "OP"}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// League credentials. All four are required.
	LeagueID int    `koanf:"league_id"`
	Year     int    `koanf:"year"`
	EspnS2   string `koanf:"espn_s2"`
	SWID     string `koanf:"swid"`

	// BaseURL points at the fantasy football read API.
	BaseURL string `koanf:"base_url"`

	// RequestTimeoutMS bounds a single provider request.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// MaxRetries caps provider retries on 5xx/429.
	MaxRetries int `koanf:"max_retries"`

	// Positions queried for the free-agent leaderboard, in merge order.
	Positions []string `koanf:"positions"`

	// SizePerPos bounds the number of candidates fetched per position.
	SizePerPos int `koanf:"size_per_pos"`

	// MinOwned drops candidates owned by fewer than this percentage of rosters.
	MinOwned float64 `koanf:"min_owned"`

	// TopN caps the leaderboard length.
	TopN int `koanf:"top_n"`

	// MyTeamID selects the roster printed by the report CLI.
	MyTeamID int `koanf:"my_team_id"`

	// TransactionDays is the trailing window for the activity summary.
	TransactionDays int `koanf:"transaction_days"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// CacheTTLMS controls how long league snapshots are reused.
	CacheTTLMS int `koanf:"cache_ttl_ms"`

	// RefreshIntervalMS re-fetches the league snapshot in the background.
	// Zero disables the refresher.
	RefreshIntervalMS int `koanf:"refresh_interval_ms"`
}

// New creates a Config populated with defaults. Credentials are left empty.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		BaseURL:             "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl",
		RequestTimeoutMS:    20_000,
		MaxRetries:          2,
		Positions:           []string{"QB", "RB", "WR", "TE", "K", "D/ST"},
		SizePerPos:          250,
		MinOwned:            0,
		TopN:                50,
		MyTeamID:            10,
		TransactionDays:     7,
		MaxLeaderboardLimit: 500,
		CacheTTLMS:          60_000,
	}
}

// Validate checks the whole configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs error
	add := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf(format, args...))
	}

	if c.LeagueID <= 0 {
		add("missing LEAGUE_ID")
	}
	if c.Year <= 0 {
		add("missing YEAR")
	}
	if strings.TrimSpace(c.EspnS2) == "" {
		add("missing ESPN_S2")
	}
	if strings.TrimSpace(c.SWID) == "" {
		add("missing SWID")
	}
	if c.Addr == "" {
		add("addr must not be empty")
	}
	if c.BaseURL == "" {
		add("base_url must not be empty")
	}
	if c.TopN < 1 {
		add("top_n must be >= 1, got %d", c.TopN)
	}
	if c.SizePerPos < 1 {
		add("size_per_pos must be >= 1, got %d", c.SizePerPos)
	}
	if math.IsNaN(c.MinOwned) || c.MinOwned < 0 || c.MinOwned > 100 {
		add("min_owned must be within [0,100], got %v", c.MinOwned)
	}
	if c.RefreshIntervalMS < 0 {
		add("refresh_interval_ms must be >= 0, got %d", c.RefreshIntervalMS)
	}
	if c.MaxLeaderboardLimit < 1 {
		add("max_leaderboard_limit must be >= 1, got %d", c.MaxLeaderboardLimit)
	}
	if c.TransactionDays < 1 {
		add("transaction_days must be >= 1, got %d", c.TransactionDays)
	}
	if len(c.Positions) == 0 {
		add("positions must not be empty")
	}
	for _, p := range c.Positions {
		if !IsKnownPosition(p) {
			add("unknown position %q", p)
		}
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errs)
	}
	return nil
}

// IsKnownPosition reports whether p is one of KnownPositions.
func IsKnownPosition(p string) bool {
	for _, k := range KnownPositions {
		if k == p {
			return true
		}
	}
	return false
}

// ParsePositions splits a comma-separated list, trimming blanks and upper-casing.
func ParsePositions(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToUpper(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
