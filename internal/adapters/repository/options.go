package repository

import "time"

type options struct {
	ttl time.Duration
	now func() time.Time
}

// Option applies a configuration option to a Store.
type Option func(*options)

// WithTTL sets how long a snapshot is served after Put.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}
