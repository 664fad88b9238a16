package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// MaxRetries bounds the optimistic-transaction retry loop in
	// UpdateAccount. Once exhausted the update fails with
	// model.ErrTxAborted.
	MaxRetries int

	// RetryBackoff is the base delay between conflicting attempts.
	// The actual delay grows with the attempt number and is jittered.
	RetryBackoff time.Duration

	// DedupTTL is how long a recorded request ID stays replayable.
	DedupTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   16,
		RetryBackoff: 2 * time.Millisecond,
		DedupTTL:     24 * time.Hour,
	}
}
