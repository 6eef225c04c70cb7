package cache

import (
	"github.com/rs/zerolog"
)

// Checkpointer truncates the write-ahead log after a cleanup pass.
// Satisfied by *database.DB.
type Checkpointer interface {
	WALCheckpoint(mode string) error
}

// CleanupJob removes expired score cache entries and checkpoints the
// WAL so deletions do not leave the log file growing. It is scheduled
// on a cron interval by the server startup.
type CleanupJob struct {
	repo *Repository
	ckpt Checkpointer
	log  zerolog.Logger
}

// NewCleanupJob creates a score cache cleanup job. ckpt may be nil
// when the backing store has no WAL to maintain.
func NewCleanupJob(repo *Repository, ckpt Checkpointer, log zerolog.Logger) *CleanupJob {
	return &CleanupJob{
		repo: repo,
		ckpt: ckpt,
		log:  log.With().Str("job", "score_cache_cleanup").Logger(),
	}
}

// Run deletes all expired entries. Implements cron.Job.
func (j *CleanupJob) Run() {
	deleted, err := j.repo.DeleteExpired()
	if err != nil {
		j.log.Error().Err(err).Msg("Failed to delete expired score cache entries")
		return
	}
	if deleted > 0 {
		j.log.Info().
			Int64("deleted", deleted).
			Msg("Cleaned up expired score cache entries")
	}

	if j.ckpt != nil {
		if err := j.ckpt.WALCheckpoint("TRUNCATE"); err != nil {
			j.log.Error().Err(err).Msg("WAL checkpoint failed after cache cleanup")
		}
	}
}

// Name returns the job name for scheduling and logging.
func (j *CleanupJob) Name() string {
	return "score_cache_cleanup"
}
