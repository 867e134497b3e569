package web

import (
	"log"
	"net/http"

	"github.com/rs/cors"

	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web/mw"
	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web/v1/health"
	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web/v1/video"
)

func newRouter(hh *health.Handler, vh *video.Handler, origins []string, maxUploadBytes int64, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /v1/healthz", hh.Liveness)
	mux.HandleFunc("GET /v1/readyz", hh.Readiness)

	// каталог
	mux.HandleFunc("POST /upload", limitBody(maxUploadBytes, vh.Upload))
	mux.HandleFunc("GET /videos", vh.List)
	mux.HandleFunc("GET /stream/{filename}", vh.Stream) // паттерн GET обслуживает и HEAD
	mux.HandleFunc("PUT /update/{id}", limitBody(maxUploadBytes, vh.Update))
	mux.HandleFunc("DELETE /delete/{id}", vh.Delete)

	// CORS под фронтенд-плеер
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"*"},
	})

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(c.Handler(mux)))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
