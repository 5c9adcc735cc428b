package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-dao/internal/handler"
	"github.com/noah-isme/scolarite-dao/internal/repository"
	"github.com/noah-isme/scolarite-dao/internal/service"
	"github.com/noah-isme/scolarite-dao/pkg/config"
	"github.com/noah-isme/scolarite-dao/pkg/database"
	"github.com/noah-isme/scolarite-dao/pkg/logger"
)

// @title Scolarite mock backend
// @version 1.0.0
// @description Local REST backend for students, training tracks, course units and grades
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, ready, closeStore, err := openStores(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("store init failed", zap.String("store", cfg.Mock.Store), zap.Error(err))
	}
	defer closeStore()

	router := handler.NewRouter(handler.RouterDeps{
		Config:  cfg,
		Logger:  logr,
		Metrics: service.NewMetricsService(),
		Stores:  stores,
		Ready:   ready,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("mock backend starting",
			"addr", srv.Addr,
			"env", cfg.Env,
			"store", cfg.Mock.Store,
			"pascal_case", cfg.Mock.PascalCase,
			"wrap_responses", cfg.Mock.WrapResponses,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("mock backend stopped")
}

func openStores(ctx context.Context, cfg *config.Config, logr *zap.Logger) (repository.Set, func(context.Context) error, func(), error) {
	if cfg.Mock.Store != config.StorePostgres {
		return repository.NewMemorySet(), nil, func() {}, nil
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return repository.Set{}, nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return repository.Set{}, nil, nil, err
	}
	logr.Info("postgres schema up to date", zap.String("database", cfg.Database.Name))

	closeDB := func() {
		if err := db.Close(); err != nil {
			logr.Warn("closing database failed", zap.Error(err))
		}
	}
	return repository.NewPostgresSet(db), pinger(db), closeDB, nil
}

func pinger(db *sqlx.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}
