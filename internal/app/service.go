// Package service wires the league provider, the snapshot cache and the
// ownership ranker into the operations used by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/okian/fflboard/internal/adapters/repository"
	"github.com/okian/fflboard/internal/domain/activity"
	"github.com/okian/fflboard/internal/domain/model"
	"github.com/okian/fflboard/internal/domain/ranking"
	"github.com/okian/fflboard/internal/domain/types"
	"github.com/okian/fflboard/pkg/logger"
	"github.com/okian/fflboard/pkg/metrics"
)

const (
	leagueKey   = "league"
	proTeamsKey = "pro_teams"
	daysPerWeek = 7
)

// Provider is the league data source.
type Provider interface {
	League(ctx context.Context) (model.League, error)
	ProTeams(ctx context.Context) (map[int]model.ProTeam, error)
	FreeAgents(ctx context.Context, position string, limit int) ([]model.Candidate, error)
	Transactions(ctx context.Context, scoringPeriod int) ([]model.Transaction, error)
}

// LeaderboardQuery parameterises one ranking run.
type LeaderboardQuery struct {
	Positions  []string // queried in this order; empty means the service default
	SizePerPos int      // <= 0 means the service default
	MinOwned   float64
	TopN       int
}

// Service implements the read operations of the league reporter.
type Service struct {
	lifecycle sync.Mutex // serialises Start and Stop
	mu        sync.RWMutex

	provider Provider
	ranker   *ranking.Ranker
	leagues  *repository.Store[model.League]
	proTeams *repository.Store[map[int]model.ProTeam]
	group    singleflight.Group

	// Configuration
	defaults        LeaderboardQuery
	transactionDays int
	cacheTTL        time.Duration
	refreshInterval time.Duration
	now             func() time.Time

	// State
	started bool
	stopCh  chan struct{}
	done    chan struct{}
	lastRun types.Leaderboard

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaults sets the query used when callers leave fields unset.
func WithDefaults(q LeaderboardQuery) Option {
	return func(s *Service) {
		if len(q.Positions) > 0 {
			s.defaults.Positions = append([]string(nil), q.Positions...)
		}
		if q.SizePerPos > 0 {
			s.defaults.SizePerPos = q.SizePerPos
		}
		if q.TopN > 0 {
			s.defaults.TopN = q.TopN
		}
		s.defaults.MinOwned = q.MinOwned
	}
}

// WithTransactionDays sets the default activity window.
func WithTransactionDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.transactionDays = days
		}
	}
}

// WithCacheTTL sets how long league snapshots are reused. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl >= 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithRefreshInterval enables the background league refresher.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a Service reading from provider.
func New(provider Provider, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		defaults: LeaderboardQuery{
			Positions:  []string{"QB", "RB", "WR", "TE", "K", "D/ST"},
			SizePerPos: 250,
			TopN:       50,
		},
		transactionDays: daysPerWeek,
		cacheTTL:        time.Minute,
		now:             time.Now,
		stopCh:          make(chan struct{}),
		done:            make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.ranker = ranking.NewRanker(ranking.WithLogger(s.logger.Named("ranking")))
	s.leagues = repository.NewStore[model.League](repository.WithTTL(s.cacheTTL), repository.WithClock(s.now))
	s.proTeams = repository.NewStore[map[int]model.ProTeam](repository.WithTTL(s.cacheTTL), repository.WithClock(s.now))
	return s
}

// Start warms the league cache and launches the refresher when enabled.
// A failed warm-up is logged, not returned: the provider may recover later.
// The state lock is not held during the warm-up fetch.
func (s *Service) Start(ctx context.Context) error {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if started {
		return nil
	}
	s.logger.Info(ctx, "starting league service...")

	if _, err := s.League(ctx); err != nil {
		s.logger.Warn(ctx, "league warm-up failed", logger.Error(err))
	}

	s.mu.Lock()
	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	if s.refreshInterval > 0 {
		go s.refreshLoop(ctx, s.stopCh, s.done)
	} else {
		close(s.done)
	}
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "league service started",
		logger.Duration("cacheTTL", s.cacheTTL),
		logger.Duration("refreshInterval", s.refreshInterval),
	)
	return nil
}

// Stop stops the refresher and waits for it to exit.
func (s *Service) Stop() {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.logger.Info(context.Background(), "stopping league service...")
	close(s.stopCh)
	done := s.done
	s.started = false
	s.mu.Unlock()

	<-done
	s.logger.Info(context.Background(), "league service stopped")
}

// DefaultQuery returns a copy of the default leaderboard parameters.
func (s *Service) DefaultQuery() LeaderboardQuery {
	q := s.defaults
	q.Positions = append([]string(nil), s.defaults.Positions...)
	return q
}

// TransactionDays returns the default activity window.
func (s *Service) TransactionDays() int {
	return s.transactionDays
}

// League returns the league snapshot, fetching it when the cached one is
// missing or stale. Concurrent misses share one provider call.
func (s *Service) League(ctx context.Context) (model.League, error) {
	if l, _, err := s.leagues.Get(ctx, leagueKey); err == nil {
		return l, nil
	}

	v, err := s.shared(ctx, leagueKey, func(fctx context.Context) (any, error) {
		return s.fetchLeague(fctx)
	})
	if err != nil {
		return model.League{}, err
	}
	return v.(model.League), nil //nolint:forcetypeassert // only fetchLeague writes this key
}

// shared runs fetch once per key for all concurrent callers. The fetch is
// detached from any single caller's cancellation; each caller still returns
// as soon as its own ctx is done.
func (s *Service) shared(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error) {
	ch := s.group.DoChan(key, func() (any, error) {
		return fetch(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

func (s *Service) fetchLeague(ctx context.Context) (model.League, error) {
	l, err := s.provider.League(ctx)
	if err != nil {
		return model.League{}, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	l.FetchedAt = s.now().UTC()
	s.leagues.Put(ctx, leagueKey, l)
	metrics.UpdateTeamCount(len(l.Teams))
	return l, nil
}

// proTeamsByAbbrev returns the NFL teams keyed by abbreviation. Failures are
// logged and yield an empty map; bye weeks are decoration only.
func (s *Service) proTeamsByAbbrev(ctx context.Context) map[string]model.ProTeam {
	teams, _, err := s.proTeams.Get(ctx, proTeamsKey)
	if err != nil {
		v, ferr := s.shared(ctx, proTeamsKey, func(fctx context.Context) (any, error) {
			t, err := s.provider.ProTeams(fctx)
			if err != nil {
				return nil, err
			}
			s.proTeams.Put(fctx, proTeamsKey, t)
			return t, nil
		})
		if ferr != nil {
			s.logger.Warn(ctx, "pro team lookup failed, bye weeks omitted", logger.Error(ferr))
			metrics.RecordErrorByComponent("service", "pro_teams")
			return map[string]model.ProTeam{}
		}
		teams = v.(map[int]model.ProTeam) //nolint:forcetypeassert // only this closure writes the key
	}

	out := make(map[string]model.ProTeam, len(teams))
	for _, t := range teams {
		out[t.Abbrev] = t
	}
	return out
}

// Teams lists the league teams ordered by id.
func (s *Service) Teams(ctx context.Context) ([]types.TeamSummary, error) {
	league, err := s.League(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]types.TeamSummary, 0, len(league.Teams))
	for _, t := range league.Teams {
		out = append(out, types.TeamSummary{
			TeamID:       t.ID,
			Abbreviation: t.Abbreviation,
			Name:         t.Name,
			Wins:         t.Wins,
			Losses:       t.Losses,
			Ties:         t.Ties,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}

// LeagueName returns the league display name.
func (s *Service) LeagueName(ctx context.Context) (string, error) {
	league, err := s.League(ctx)
	if err != nil {
		return "", err
	}
	return league.Name, nil
}

// Roster returns a team's players in roster order with defaults applied.
func (s *Service) Roster(ctx context.Context, teamID int) (types.TeamRoster, error) {
	league, err := s.League(ctx)
	if err != nil {
		return types.TeamRoster{}, err
	}

	team, ok := league.Team(teamID)
	if !ok {
		return types.TeamRoster{}, fmt.Errorf("%w: %d", ErrTeamNotFound, teamID)
	}

	out := types.TeamRoster{
		TeamID:   team.ID,
		TeamName: team.Name,
		Players:  make([]types.RosterPlayer, 0, len(team.Roster)),
	}
	for _, slot := range team.Roster {
		r := slot.Player.Resolve()
		out.Players = append(out.Players, types.RosterPlayer{
			PlayerID:      r.PlayerID,
			Name:          r.Name,
			Position:      r.Position,
			ProTeam:       r.ProTeam,
			ProjAvgPoints: ranking.Round2(r.ProjAvgPoints),
			OwnedPct:      ranking.Round2(r.OwnedPct),
			StartedPct:    ranking.Round2(r.StartedPct),
			InjuryStatus:  r.InjuryStatus,
			LineupSlot:    slot.LineupSlot,
		})
	}
	return out, nil
}

// FreeAgentLeaderboard fetches every position concurrently, then ranks the
// merged candidates. Any provider failure fails the whole run.
func (s *Service) FreeAgentLeaderboard(ctx context.Context, q LeaderboardQuery) (types.Leaderboard, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := s.logger.With(logger.String("run_id", runID))

	if len(q.Positions) == 0 {
		q.Positions = s.defaults.Positions
	}
	if q.SizePerPos <= 0 {
		q.SizePerPos = s.defaults.SizePerPos
	}

	batches, err := s.fetchBatches(ctx, q)
	if err != nil {
		metrics.RecordRankingRun("upstream_error", 0, msSince(start))
		log.Error(ctx, "free agent fetch failed", logger.Error(err))
		return types.Leaderboard{}, err
	}

	entries, err := s.ranker.Rank(ctx, batches, q.MinOwned, q.TopN)
	if err != nil {
		metrics.RecordRankingRun("invalid_params", 0, msSince(start))
		return types.Leaderboard{}, err
	}

	board := types.Leaderboard{
		RunID:       runID,
		GeneratedAt: s.now().UTC(),
		Positions:   append([]string(nil), q.Positions...),
		MinOwned:    q.MinOwned,
		TopN:        q.TopN,
		Entries:     entries,
	}
	metrics.RecordRankingRun("ok", len(entries), msSince(start))
	log.Info(ctx, "leaderboard built",
		logger.Int("entries", len(entries)),
		logger.Duration("took", time.Since(start)),
	)

	s.mu.Lock()
	s.lastRun = board
	s.mu.Unlock()
	return board, nil
}

// fetchBatches runs one provider call per position. Results are stored by
// position index so merge order follows q.Positions.
func (s *Service) fetchBatches(ctx context.Context, q LeaderboardQuery) ([]ranking.Batch, error) {
	batches := make([]ranking.Batch, len(q.Positions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(q.Positions))
	for i, pos := range q.Positions {
		g.Go(func() error {
			cands, err := s.provider.FreeAgents(gctx, pos, q.SizePerPos)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrUpstream, pos, err)
			}
			batches[i] = ranking.Batch{Position: pos, Candidates: cands}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byes := s.proTeamsByAbbrev(ctx)
	for i := range batches {
		for j := range batches[i].Candidates {
			c := &batches[i].Candidates[j]
			if c.ByeWeek.Present() {
				continue
			}
			if t, ok := byes[c.ProTeam.Or("")]; ok && t.ByeWeek > 0 {
				c.ByeWeek = model.Some(t.ByeWeek)
			}
		}
	}
	return batches, nil
}

// TransactionSummary counts each team's executed transactions over the last
// days days.
func (s *Service) TransactionSummary(ctx context.Context, days int) (types.ActivitySummary, error) {
	if days < 1 {
		return types.ActivitySummary{}, fmt.Errorf("%w, got %d", ErrInvalidDays, days)
	}

	league, err := s.League(ctx)
	if err != nil {
		return types.ActivitySummary{}, err
	}

	txs, err := s.fetchTransactions(ctx, league.CurrentScoringPeriod, days)
	if err != nil {
		return types.ActivitySummary{}, err
	}

	since := activity.Since(s.now(), days).UTC()
	teams := activity.Summarize(txs, league.Teams, since)
	metrics.RecordTransactionsSummarized(activity.Total(teams))

	return types.ActivitySummary{Since: since, Days: days, Teams: teams}, nil
}

// fetchTransactions reads enough scoring periods (one per week) to cover the
// window, dropping transactions reported by more than one period.
func (s *Service) fetchTransactions(ctx context.Context, current, days int) ([]model.Transaction, error) {
	last := max(current, 1)
	first := max(last-(days+daysPerWeek-1)/daysPerWeek, 1)

	perPeriod := make([][]model.Transaction, last-first+1)
	g, gctx := errgroup.WithContext(ctx)
	for i := range perPeriod {
		g.Go(func() error {
			txs, err := s.provider.Transactions(gctx, first+i)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrUpstream, err)
			}
			perPeriod[i] = txs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []model.Transaction
	for _, txs := range perPeriod {
		for _, tx := range txs {
			if tx.ID != "" {
				if seen[tx.ID] {
					continue
				}
				seen[tx.ID] = true
			}
			out = append(out, tx)
		}
	}
	return out, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":           s.started,
		"cacheTTLMs":        s.cacheTTL.Milliseconds(),
		"refreshIntervalMs": s.refreshInterval.Milliseconds(),
		"cachedSnapshots":   s.leagues.Len(ctx) + s.proTeams.Len(ctx),
		"positions":         s.defaults.Positions,
	}

	if l, _, err := s.leagues.Get(ctx, leagueKey); err == nil {
		stats["league"] = l.Name
		stats["teams"] = len(l.Teams)
		stats["leagueFetchedAt"] = l.FetchedAt
	}
	if s.lastRun.RunID != "" {
		stats["lastRunId"] = s.lastRun.RunID
		stats["lastRunAt"] = s.lastRun.GeneratedAt
		stats["lastRunEntries"] = len(s.lastRun.Entries)
	}
	return stats
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
