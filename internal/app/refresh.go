package service

import (
	"context"
	"time"

	"github.com/okian/fflboard/pkg/logger"
)

// refreshLoop re-fetches the league snapshot every refreshInterval until ctx
// is canceled or Stop is called.
func (s *Service) refreshLoop(ctx context.Context, stop <-chan struct{}, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			if _, err := s.fetchLeague(ctx); err != nil {
				s.logger.Warn(ctx, "league refresh failed", logger.Error(err))
				continue
			}
			s.logger.Debug(ctx, "league refreshed")
		}
	}
}
