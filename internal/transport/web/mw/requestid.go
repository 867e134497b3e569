package mw

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey string

const reqIDKey ctxKey = "request_id"

// WithRequestID берёт X-Request-ID клиента или генерирует свой.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx := context.WithValue(r.Context(), reqIDKey, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequestIDFromCtx(ctx context.Context) string {
	if s, ok := ctx.Value(reqIDKey).(string); ok {
		return s
	}
	return ""
}
