// Package httpmw provides net/http middleware that logs requests through a
// tildelog logger.
package httpmw

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tildelog/tildelog"
)

// Option configures the behaviour of the logging middleware.
type Option func(*options)

type options struct {
	logger *tildelog.Logger
}

// WithLogger routes middleware output to the given logger instead of the
// process-wide active one.
func WithLogger(logger *tildelog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Logging returns a middleware that logs one info line per request, carrying
// method and path with a lazily produced status/duration block. When the
// info rank is filtered out the request is served without recording anything.
func Logging(opts ...Option) func(http.Handler) http.Handler {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := cfg.logger
			if log == nil {
				log = tildelog.Active()
			}

			if log == nil || !log.InfoEnabled() {
				next.ServeHTTP(w, r)

				return
			}

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)

			// A failed log write never fails the request.
			_ = log.Info(r.Method+" "+r.URL.Path, func() string {
				return strconv.Itoa(rec.status) + " in " + elapsed.String()
			})
		})
	}
}

// statusRecorder captures the response status for the log line.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
