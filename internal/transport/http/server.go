package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"vidora/internal/cache"
	"vidora/internal/config"
	"vidora/internal/database"
	"vidora/internal/handler"
	"vidora/internal/queue"
	redisclient "vidora/internal/redis"
	"vidora/internal/repository"
	"vidora/internal/service"
	"vidora/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// Run assembles the whole server and blocks until shutdown.
func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	debug := !cfg.IsProduction()

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := database.Migrate(cfg); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	userRepo := repository.NewUserRepository(db)
	channelRepo := repository.NewChannelRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Redis is optional: without it there is no listing cache and views are
	// not folded into channel totals, but every endpoint still works.
	var (
		listCache cache.VideoListCache
		publisher queue.Publisher
		workers   *worker.Manager
	)
	if cfg.RedisURL != "" {
		rdb, err := redisclient.NewClient(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()

		if err := rdb.Ping(ctx); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}

		listCache = cache.NewVideoListCache(rdb.Client)
		publisher = queue.NewPublisher(rdb.Client)

		consumer := queue.NewConsumer(rdb.Client)
		workers = worker.NewManager(consumer, worker.NewHandler(channelRepo), worker.DefaultManagerConfig())
		if err := workers.Start(ctx); err != nil {
			return fmt.Errorf("failed to start view workers: %w", err)
		}
		defer workers.Stop()
	} else {
		log.Println("REDIS_URL not set; running without cache and view aggregation")
	}

	authService := service.NewAuthService(userRepo, cfg)
	channelService := service.NewChannelService(channelRepo, videoRepo)
	videoService := service.NewVideoService(videoRepo, channelRepo, commentRepo, listCache, publisher)
	commentService := service.NewCommentService(commentRepo, videoRepo, userRepo)

	var mediaService *service.MediaService
	if cfg.MediaConfigured() {
		mediaService, err = service.NewMediaService(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to init media service: %w", err)
		}
	} else {
		log.Println("R2 not configured; media upload endpoints disabled")
	}

	router := NewRouter(RouterConfig{
		AuthHandler:    handler.NewAuthHandler(authService, debug),
		VideoHandler:   handler.NewVideoHandler(videoService, debug),
		CommentHandler: handler.NewCommentHandler(commentService, debug),
		ChannelHandler: handler.NewChannelHandler(channelService, debug),
		MediaHandler:   handler.NewMediaHandler(mediaService, authService, debug),
		JWTSecret:      cfg.JWTSecret,
		UserLoader:     userRepo,
	})

	server := &stdhttp.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
