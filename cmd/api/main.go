// @title           TuneUp Accounts API
// @version         1.0
// @description     User account backend: signup, signin, user lookup.
// @BasePath        /
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tuneup/accounts-api/internal/api"
	"github.com/tuneup/accounts-api/internal/core/ports"
	mongodb "github.com/tuneup/accounts-api/internal/infrastructure/db/mongo"
	redisdb "github.com/tuneup/accounts-api/internal/infrastructure/db/redis"
	"github.com/tuneup/accounts-api/internal/infrastructure/mail"
	"github.com/tuneup/accounts-api/internal/infrastructure/queue"
	"github.com/tuneup/accounts-api/internal/infrastructure/token"
	"github.com/tuneup/accounts-api/internal/pkg/config"
	"github.com/tuneup/accounts-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	cache := redisdb.NewUserCache(rdb, 0)
	repo := redisdb.NewCachedUserRepository(userRepo, cache, log)

	var notifier ports.Notifier = mail.NoopNotifier{}
	if cfg.SMTP.Enabled {
		notifier = mail.NewSMTPNotifier(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}, userRepo)
	}
	dispatcher := queue.NewMailDispatcher(cfg.SMTP.Workers, notifier, log)
	dispatcher.Start(ctx)

	issuer := token.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)

	e := api.NewRouter(db, rdb, repo, issuer, dispatcher, cfg.JWTSecret, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("accounts api listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close failed")
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect failed")
	}
}
