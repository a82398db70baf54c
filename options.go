package luceneql

import "github.com/rs/zerolog"

// DefaultMaxDepth is the nesting-depth limit applied when WithMaxDepth is
// not supplied.
const DefaultMaxDepth = 1024

// Config holds the functional-options configuration for Parse. There is
// deliberately no environment-variable or file-based configuration layer;
// every setting is supplied in-process through an Option.
type Config struct {
	maxDepth int
	logger   zerolog.Logger
	metrics  *Metrics
}

// Option configures a Parse call.
type Option func(*Config)

func newConfig(opts []Option) *Config {
	cfg := &Config{
		maxDepth: DefaultMaxDepth,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithMaxDepth overrides the nesting-depth limit used to reject
// pathological "(((...)))" input with a DepthExceeded error. The limit is
// checked while the parsed tree is converted to an AST; the grammar's own
// recursive parse of the input runs first and is not bounded by it.
func WithMaxDepth(n int) Option {
	return func(c *Config) { c.maxDepth = n }
}

// WithLogger attaches a structured logger. The default is a no-op logger,
// so omitting this option never changes parse behavior or output.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) { c.logger = l }
}

// WithMetrics attaches a *Metrics created with NewMetrics. Omitting this
// option leaves Parse a no-op with respect to metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Config) { c.metrics = m }
}
