package calculations

import "github.com/rs/zerolog"

// PurgeJob periodically removes expired cache entries.
// It implements scheduler.Job.
type PurgeJob struct {
	cache *Cache
	log   zerolog.Logger
}

// NewPurgeJob creates a purge job for cache.
func NewPurgeJob(cache *Cache, log zerolog.Logger) *PurgeJob {
	return &PurgeJob{
		cache: cache,
		log:   log.With().Str("component", "cache_purge").Logger(),
	}
}

// Name implements scheduler.Job.
func (j *PurgeJob) Name() string {
	return "cache_purge"
}

// Run implements scheduler.Job.
func (j *PurgeJob) Run() error {
	_, err := j.cache.PurgeExpired()
	return err
}
