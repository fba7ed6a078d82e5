package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"

	requestIDKey contextKey = "request_id"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AccessLog присваивает запросу id (или берет входящий X-Request-ID) и пишет строку в лог
func AccessLog(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(HeaderRequestID)
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, requestID)

			rec := newStatusRecorder(w)
			ctx := context.WithValue(r.Context(), requestIDKey, requestID)
			next.ServeHTTP(rec, r.WithContext(ctx))

			duration := time.Since(start)
			switch {
			case rec.status >= http.StatusInternalServerError:
				log.Error("%s %s %d %s request_id=%s", r.Method, r.URL.Path, rec.status, duration, requestID)
			case rec.status >= http.StatusBadRequest:
				log.Warn("%s %s %d %s request_id=%s", r.Method, r.URL.Path, rec.status, duration, requestID)
			default:
				log.Info("%s %s %d %s request_id=%s", r.Method, r.URL.Path, rec.status, duration, requestID)
			}
		})
	}
}

// GetRequestID id текущего запроса
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
