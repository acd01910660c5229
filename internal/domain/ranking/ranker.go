package ranking

import (
	"context"

	"github.com/okian/fflboard/internal/domain/types"
	"github.com/okian/fflboard/pkg/logger"
	"github.com/okian/fflboard/pkg/metrics"
)

// Ranker wraps Rank with logging and metrics for use inside the service.
type Ranker struct {
	logger logger.Logger
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithLogger sets the logger used for per-run diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(r *Ranker) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRanker creates a Ranker.
func NewRanker(opts ...Option) *Ranker {
	r := &Ranker{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank is Rank plus bookkeeping of skipped and duplicate candidates.
func (r *Ranker) Rank(ctx context.Context, batches []Batch, minOwned float64, topN int) ([]types.Entry, error) {
	entries, stats, err := rank(batches, minOwned, topN)
	if err != nil {
		metrics.RecordErrorByComponent("ranking", "invalid_params")
		return nil, err
	}

	metrics.RecordCandidatesSkipped(stats.Skipped)
	metrics.RecordDuplicatesMerged(stats.Duplicates)

	if r.logger != nil {
		if stats.Skipped > 0 {
			r.logger.Debug(ctx, "skipped candidates without player id", logger.Int("count", stats.Skipped))
		}
		r.logger.Debug(ctx, "leaderboard ranked",
			logger.Int("batches", len(batches)),
			logger.Int("duplicates", stats.Duplicates),
			logger.Int("entries", len(entries)),
		)
	}
	return entries, nil
}
