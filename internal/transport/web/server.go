package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Gautamshailendra50/video-stream-app/internal/catalog"
	"github.com/Gautamshailendra50/video-stream-app/internal/config"
	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web/v1/health"
	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web/v1/video"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, db health.Pinger, bs Storage, cache health.Pinger, svc *catalog.Service) *Server {
	healthLog := log.New(logger.Writer(), logger.Prefix()+"[health] ", logger.Flags())
	videoLog := log.New(logger.Writer(), logger.Prefix()+"[video] ", logger.Flags())

	healthHandler := &health.Handler{DB: db, Cache: cache, Storage: bs, Log: healthLog}
	videoHandler := &video.Handler{Log: videoLog, Catalog: svc, Storage: bs}

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(healthHandler, videoHandler, cfg.Origins(), cfg.MaxUploadMB<<20, logger),
		ReadTimeout:       0, // загрузка больших файлов не должна отваливаться по таймауту
		WriteTimeout:      0, // как и длинный стрим
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
