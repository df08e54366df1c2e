package article

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type ctxKey int8

const ctxKeyLogger ctxKey = iota

// Logger middleware stores a request scoped logger, tagged with the chi
// request id when one is present, on the request context.
func Logger(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := logger
			if id := middleware.GetReqID(r.Context()); id != "" {
				l = l.With("request_id", id)
			}

			next.ServeHTTP(w, r.WithContext(WithLogger(r.Context(), l)))
		})
	}
}

func WithLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, logger)
}

func LoggerFromContext(ctx context.Context) (*zap.SugaredLogger, bool) {
	logger, ok := ctx.Value(ctxKeyLogger).(*zap.SugaredLogger)

	return logger, ok && logger != nil
}
