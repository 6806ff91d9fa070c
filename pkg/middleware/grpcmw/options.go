package grpcmw

import "github.com/tildelog/tildelog"

// Option defines a configuration option for the gRPC middleware.
type Option func(*options)

type options struct {
	logger *tildelog.Logger
}

// WithLogger routes interceptor output to the given logger instead of the
// process-wide active one.
func WithLogger(logger *tildelog.Logger) Option {
	return func(o *options) {
		if o == nil || logger == nil {
			return
		}

		o.logger = logger
	}
}

func actualOptions(opts ...Option) options {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// target resolves the logger the interceptor writes through.
func (o options) target() *tildelog.Logger {
	if o.logger != nil {
		return o.logger
	}

	return tildelog.Active()
}
