package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Gautamshailendra50/video-stream-app/internal/catalog"
	"github.com/Gautamshailendra50/video-stream-app/internal/config"
	"github.com/Gautamshailendra50/video-stream-app/internal/domain"
	redisx "github.com/Gautamshailendra50/video-stream-app/internal/infra/cache/redis"
	"github.com/Gautamshailendra50/video-stream-app/internal/infra/database/postgres"
	fsstorage "github.com/Gautamshailendra50/video-stream-app/internal/infra/storage/fs"
	s3storage "github.com/Gautamshailendra50/video-stream-app/internal/infra/storage/s3"
	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web"
)

type App struct {
	config *config.Config
	server *web.Server
	log    *log.Logger
	cache  domain.Cache
	repo   domain.VideosRepo
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	storageLog := log.New(base.Writer(), base.Prefix()+"[storage] ", base.Flags())
	redisLog := log.New(base.Writer(), base.Prefix()+"[redis] ", base.Flags())
	catalogLog := log.New(base.Writer(), base.Prefix()+"[catalog] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	base.Println("init blob storage")
	var storage web.Storage
	switch cfg.StorageDriver {
	case config.StorageDriverS3:
		s3cfg := s3storage.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
			PathStyle: cfg.S3PathStyle,
		}
		storage, err = s3storage.New(ctx, s3cfg, storageLog)
	default:
		storage, err = fsstorage.New(cfg.UploadDir, storageLog)
	}
	if err != nil {
		return nil, fmt.Errorf("failed init storage (%s): %w", cfg.StorageDriver, err)
	}
	base.Printf("blob storage is initialized (driver=%s)", cfg.StorageDriver)

	base.Println("init Redis")
	rc := redisx.New(redisx.Config{
		Addr:     cfg.RedisAddr,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	}, redisLog)
	if err := rc.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed init redis: %w", err)
	}
	base.Println("Redis is initialized")

	svc := catalog.New(catalogLog, pgRepo, storage, rc, cfg.PageSize, cfg.ListTTL)

	base.Println("init Server")
	server := web.New(serverLog, cfg, pgRepo, storage, rc, svc)
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config: cfg,
		server: server,
		log:    base,
		repo:   pgRepo,
		cache:  rc,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.repo.Close()
	a.cache.Close()

	return nil
}
