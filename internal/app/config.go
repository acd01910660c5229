package service

import (
	"time"

	"github.com/okian/fflboard/internal/adapters/espn"
	"github.com/okian/fflboard/internal/config"
	"github.com/okian/fflboard/pkg/logger"
)

// NewFromConfig builds an ESPN client and a Service from validated config.
func NewFromConfig(cfg *config.Config, l logger.Logger) *Service {
	client := espn.NewClient(cfg.LeagueID, cfg.Year, cfg.EspnS2, cfg.SWID,
		espn.WithBaseURL(cfg.BaseURL),
		espn.WithTimeout(time.Duration(cfg.RequestTimeoutMS)*time.Millisecond),
		espn.WithRetries(cfg.MaxRetries, 0),
		espn.WithLogger(l.Named("espn")),
	)

	return New(client,
		WithLogger(l.Named("service")),
		WithDefaults(LeaderboardQuery{
			Positions:  cfg.Positions,
			SizePerPos: cfg.SizePerPos,
			MinOwned:   cfg.MinOwned,
			TopN:       cfg.TopN,
		}),
		WithTransactionDays(cfg.TransactionDays),
		WithCacheTTL(time.Duration(cfg.CacheTTLMS)*time.Millisecond),
		WithRefreshInterval(time.Duration(cfg.RefreshIntervalMS)*time.Millisecond),
	)
}
