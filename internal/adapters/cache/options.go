package cache

type config struct {
	maxSize int
}

// Option applies a configuration option to NewInMemoryCache.
type Option func(*config)

// WithMaxSize sets the maximum number of entries to keep in memory.
// If maxSize > 0: bounded mode, the oldest entry is evicted first.
// If maxSize <= 0: unbounded mode.
func WithMaxSize(maxSize int) Option {
	return func(c *config) {
		c.maxSize = maxSize
	}
}
