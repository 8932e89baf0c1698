package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patient-profile-service/internal/api/handlers"
	"patient-profile-service/internal/bridge"
	"patient-profile-service/internal/config"
	"patient-profile-service/internal/report"
	"patient-profile-service/internal/store"
	"patient-profile-service/internal/view"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	var recordStore store.RecordStoreContract
	if cfg.DatabaseURL != "" {
		pg, err := store.NewPostgresStore(cfg.DatabaseURL, cfg.Collection, logger)
		if err != nil {
			logger.Fatal("could not open record store", zap.Error(err))
		}
		defer pg.Close()
		recordStore = pg
		logger.Info("using postgres record store", zap.String("collection", cfg.Collection))
	} else {
		mem := store.NewMemoryStore()
		defer mem.Close()
		recordStore = mem
		logger.Info("no DATABASE_URL set, using in-memory record store")
	}

	b := bridge.NewBridge(recordStore, logger)
	if err := b.Start(context.Background()); err != nil {
		logger.Fatal("could not start sync bridge", zap.Error(err))
	}

	app := fiber.New(fiber.Config{AppName: "patient-profile-service"})
	handler := handlers.NewRecordHandler(
		b,
		view.NewDeleteConfirm(view.DefaultConfirmWindow),
		report.SystemClipboard{},
		logger,
	)
	handlers.RegisterRecordRoutes(app, handler)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()
	logger.Info("patient profiler listening", zap.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if err := b.Stop(shutdownCtx); err != nil {
		logger.Warn("bridge shutdown", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
