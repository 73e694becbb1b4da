package marketdata

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SyncJob refreshes the price cache for a watched symbol list.
// It implements scheduler.Job.
type SyncJob struct {
	service *Service
	symbols []string
	days    int
	log     zerolog.Logger
}

// NewSyncJob creates a sync job for the given symbols.
func NewSyncJob(service *Service, symbols []string, days int, log zerolog.Logger) *SyncJob {
	return &SyncJob{
		service: service,
		symbols: symbols,
		days:    days,
		log:     log.With().Str("component", "price_sync").Logger(),
	}
}

// Name implements scheduler.Job.
func (j *SyncJob) Name() string {
	return "price_sync"
}

// Run syncs every watched symbol. Individual failures are logged and
// skipped so one bad symbol does not block the rest.
func (j *SyncJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var synced, failed int
	for _, sym := range j.symbols {
		n, err := j.service.Sync(ctx, sym, j.days)
		if err != nil {
			failed++
			j.log.Warn().Err(err).Str("symbol", sym).Msg("Symbol sync failed")
			continue
		}
		synced++
		j.log.Debug().Str("symbol", sym).Int("bars", n).Msg("Symbol synced")
	}

	j.log.Info().
		Int("synced", synced).
		Int("failed", failed).
		Msg("Price sync completed")
	return nil
}
