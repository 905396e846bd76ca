package pokedex

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
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
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	rosterSize int

	driver   string // "valkey", "redis" or "" (in-process only)
	addrs    []string
	password string
	cacheTTL time.Duration

	pageSize int

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithEndpoint overrides the GraphQL endpoint.
// Default: the public graphql-pokemon2 deployment.
func WithEndpoint(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.endpoint = url
	})
}

// WithHTTPClient sets the HTTP client used for GraphQL requests.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithTimeout bounds each GraphQL request. Ignored when WithHTTPClient is set.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithRosterSize sets how many records are fetched. Default: 151.
func WithRosterSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.rosterSize = n
	})
}

// WithValkey shares the roster cache through a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis shares the roster cache through a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithCacheTTL sets how long a fetched roster stays cached. Default: 1h.
func WithCacheTTL(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = d
	})
}

// WithPageSize sets the default page size for Query. Default: 9.
func WithPageSize(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.pageSize = n
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
