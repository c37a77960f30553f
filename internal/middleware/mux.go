package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/KOFI-GYIMAH/github-connector/pkg/errors"
	"github.com/KOFI-GYIMAH/github-connector/pkg/logger"
)

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rr := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rr, r)

		duration := time.Since(start)

		switch {
		case rr.statusCode >= http.StatusInternalServerError:
			logger.Error("%s %s %d %dB %s", r.Method, r.RequestURI, rr.statusCode, rr.bytes, duration)
		case rr.statusCode >= http.StatusBadRequest:
			logger.Warn("%s %s %d %dB %s", r.Method, r.RequestURI, rr.statusCode, rr.bytes, duration)
		default:
			logger.Info("%s %s %d %dB %s", r.Method, r.RequestURI, rr.statusCode, rr.bytes, duration)
		}
	})
}

// * RecoveryMiddleware turns a handler panic into a 500 error document
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				errors.WriteHTTPError(w, errors.New(
					"INTERNAL_ERROR",
					"Internal server error",
					"",
					fmt.Errorf("panic: %v", p),
					errors.LevelFatal,
				))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.statusCode = code
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	n, err := rr.ResponseWriter.Write(b)
	rr.bytes += n
	return n, err
}
