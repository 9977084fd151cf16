package middleware

import (
	"context"
	"net/http"

	"laundry-be/internal/logger"
	"laundry-be/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// responseRecorder lets us capture HTTP status codes
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

type accessKey struct{}

// accessEntry is filled by inner middleware and read back once the
// handler returns.
type accessEntry struct {
	userID uuid.UUID
}

func noteUser(ctx context.Context, id uuid.UUID) {
	if e, ok := ctx.Value(accessKey{}).(*accessEntry); ok {
		e.userID = id
	}
}

// LoggingMiddleware writes one structured access log line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timer := metrics.StartTimer()

		entry := &accessEntry{}
		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), accessKey{}, entry)))

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.statusCode),
			zap.Duration("duration", timer.Duration()),
			zap.String("remote_ip", r.RemoteAddr),
		}
		if entry.userID != uuid.Nil {
			fields = append(fields, zap.String("user_id", entry.userID.String()))
		}

		logger.FromCtx(r.Context()).Info("HTTP Request", fields...)
	})
}
