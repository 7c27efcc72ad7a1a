package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

// PanicReporter is notified of every panic the middleware recovers.
type PanicReporter interface {
	ReportPanic(ctx context.Context, recovered any)
}

// AlertOnPanic recovers handler panics, logs them, reports them through
// reporter (when non-nil) and answers 500. http.ErrAbortHandler is re-raised
// so net/http can abort the connection as usual.
func AlertOnPanic(reporter PanicReporter, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("correlation_id", GetCorrelationID(r.Context())),
					zap.Stack("stack"),
				)
				if reporter != nil {
					reporter.ReportPanic(context.WithoutCancel(r.Context()), rec)
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"internal server error"}` + "\n"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
