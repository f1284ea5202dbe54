package cinema

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	catalogPath string
	matrixPath  string

	driver     string // "valkey", "redis" or empty for no cache
	addrs      []string
	password   string
	standalone bool
	cacheTTL   time.Duration

	logger *zap.Logger
}

// WithArtifacts sets the catalog and similarity matrix files. Required.
func WithArtifacts(catalogPath, matrixPath string) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogPath = catalogPath
		c.matrixPath = matrixPath
	})
}

// WithValkey caches recommendations in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis caches recommendations in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithStandalone disables cluster topology discovery for the cache.
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithCacheTTL sets the lifetime of cached recommendations. Default: 1h.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = ttl
	})
}

// WithLogger enables structured logging. Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}
