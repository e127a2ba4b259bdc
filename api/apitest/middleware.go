package apitest

import (
	"net/http"
	"runtime/debug"
	"time"
)

type middleware func(http.HandlerFunc) http.HandlerFunc

// chainMiddleware wraps routeFunction so that mw[0] runs first.
func chainMiddleware(routeFunction http.HandlerFunc, mw ...middleware) http.HandlerFunc {
	chainedHandler := routeFunction
	for i := len(mw) - 1; i >= 0; i-- {
		chainedHandler = mw[i](chainedHandler)
	}
	return chainedHandler
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", r.Header.Get("X-Request-ID")).
			Int("status", rec.status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

// recoverMiddleware turns a handler panic into a 500 envelope.
func (s *Server) recoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error().
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Str("path", r.URL.Path).
					Msg("recovered from panic")
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next(w, r)
	}
}
