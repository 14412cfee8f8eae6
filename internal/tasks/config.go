package tasks

import "time"

// Config tunes the task queue. Zero values are not usable; start from
// DefaultConfig and override per deployment.
type Config struct {
	Workers           int           // concurrent task workers
	MaxRetries        int           // default attempts before a task is abandoned
	RetryDelay        time.Duration // default backoff between attempts
	TaskTimeout       time.Duration // default per-task execution deadline
	ReleaseAfter      time.Duration // stuck tasks return to the queue after this
	CleanupInterval   time.Duration // how often completed tasks are purged
	RetentionDuration time.Duration // how long completed tasks stay queryable
}

// DefaultConfig returns the defaults used when no overrides are configured.
func DefaultConfig() Config {
	return Config{
		Workers:           2,
		MaxRetries:        3,
		RetryDelay:        time.Minute,
		TaskTimeout:       5 * time.Minute,
		ReleaseAfter:      15 * time.Minute,
		CleanupInterval:   time.Hour,
		RetentionDuration: 24 * time.Hour,
	}
}
