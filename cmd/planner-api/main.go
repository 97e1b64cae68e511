package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/noah-isme/academic-planner-api/internal/handler"
	"github.com/noah-isme/academic-planner-api/internal/repository"
	"github.com/noah-isme/academic-planner-api/internal/repository/memory"
	"github.com/noah-isme/academic-planner-api/internal/router"
	"github.com/noah-isme/academic-planner-api/internal/service"
	"github.com/noah-isme/academic-planner-api/pkg/cache"
	"github.com/noah-isme/academic-planner-api/pkg/config"
	"github.com/noah-isme/academic-planner-api/pkg/database"
	"github.com/noah-isme/academic-planner-api/pkg/logger"
)

// @title Academic Planner API
// @version 1.0.0
// @description Terms, courses, assignments and events for a single student's academic planner
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	repos, store, closeStore, err := openStore(cfg, logr)
	if err != nil {
		logr.Fatal("failed to open store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer closeStore()

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewRedis(ctx, cfg.Redis)
		cancel()
		if err != nil {
			logr.Warn("redis unavailable, snapshot cache disabled", zap.Error(err))
		} else {
			redisRepo := repository.NewCacheRepository(client, "planner:")
			defer redisRepo.Close() //nolint:errcheck
			cacheRepo = redisRepo
		}
	}

	svcs := router.NewServices(cfg, repos, cacheRepo, logr)
	engine := router.New(cfg, svcs, store, logr)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.StoreDriver, "cache", svcs.Cache.Enabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

func openStore(cfg *config.Config, logr *zap.Logger) (service.Repositories, handler.Pinger, func(), error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		store := memory.NewStore()
		repos := service.Repositories{
			Users:       store.Users(),
			Terms:       store.Terms(),
			Courses:     store.Courses(),
			Assignments: store.Assignments(),
			Events:      store.Events(),
		}
		return repos, store, func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return service.Repositories{}, nil, nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, logr); err != nil {
			_ = db.Close()
			return service.Repositories{}, nil, nil, err
		}
	}

	repos := service.Repositories{
		Users:       repository.NewUserRepository(db),
		Terms:       repository.NewTermRepository(db),
		Courses:     repository.NewCourseRepository(db),
		Assignments: repository.NewAssignmentRepository(db),
		Events:      repository.NewEventRepository(db),
	}
	return repos, handler.PingFunc(db.PingContext), func() { _ = db.Close() }, nil
}
