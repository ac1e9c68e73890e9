package dimred

import "log/slog"

type options struct {
	logger  *Logger
	metrics MetricsCollector
}

// Option configures Fit and model loading behavior.
type Option func(*options)

// WithLogger configures structured logging. If nil is passed, logging is
// disabled.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel enables text logging to stderr at the given level.
// Shorthand for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetrics configures a metrics collector. If nil is passed,
// NoopMetricsCollector is used.
func WithMetrics(collector MetricsCollector) Option {
	return func(o *options) {
		if collector == nil {
			collector = NoopMetricsCollector{}
		}
		o.metrics = collector
	}
}

func applyOptions(opts []Option) options {
	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
