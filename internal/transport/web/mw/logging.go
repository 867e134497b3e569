package mw

import (
	"log"
	"net/http"
	"time"
)

// Logging — middleware: старт/финиш запроса, статус, размер, длительность
func Logging(l *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := RequestIDFromCtx(r.Context())
			start := time.Now()

			mw := &metaWriter{ResponseWriter: w}

			next.ServeHTTP(mw, r)

			dur := time.Since(start)
			l.Printf("lvl=info req_id=%s method=%s path=%q status=%d size=%d duration_ms=%d",
				reqID, r.Method, r.URL.Path, mw.Status(), mw.size, dur.Milliseconds())
		})
	}
}

// metaWriter запоминает статус и объём ответа для access-лога.
type metaWriter struct {
	http.ResponseWriter
	status int
	size   int64
}

func (m *metaWriter) WriteHeader(code int) {
	if m.status == 0 {
		m.status = code
	}
	m.ResponseWriter.WriteHeader(code)
}

func (m *metaWriter) Write(b []byte) (int, error) {
	if m.status == 0 {
		m.status = http.StatusOK
	}
	n, err := m.ResponseWriter.Write(b)
	m.size += int64(n)
	return n, err
}

func (m *metaWriter) Status() int {
	if m.status == 0 {
		return http.StatusOK
	}
	return m.status
}
