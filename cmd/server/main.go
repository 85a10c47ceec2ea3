package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"embarques/internal/config"
	"embarques/internal/infra"
	"embarques/internal/router"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// @title EMBARQUES API
// @version 1.0
// @description Back-office de reservas y seguimiento de embarques.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: pretty in development, JSON in production
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	var db *gorm.DB
	if cfg.DataConfigured() {
		db, err = infra.NewDatabase(cfg.DatabaseURL, cfg.DBAutoMigrate)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to postgres")
		}
	} else {
		log.Warn().Msg("DATABASE_URL not set: data routes will answer with the configuration error")
	}
	if !cfg.AuthConfigured() {
		log.Warn().Msg("JWT_SECRET not set: sign in is disabled")
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
	} else {
		log.Info().Msg("REDIS_URL not set: using in-process caches")
	}

	blobs, err := infra.NewFileStorage(cfg.StoragePath, cfg.StoragePublicURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare document storage")
	}

	r := router.New(cfg, db, rdb, blobs)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("embarques backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	log.Info().Msg("server exited")
}
