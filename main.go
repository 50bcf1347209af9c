package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kevinaaaquil/bookshelf/backend/config"
	"github.com/kevinaaaquil/bookshelf/backend/handlers"
	"github.com/kevinaaaquil/bookshelf/backend/logger"
	"github.com/kevinaaaquil/bookshelf/backend/service"
	"github.com/kevinaaaquil/bookshelf/backend/session"
	"github.com/kevinaaaquil/bookshelf/backend/store"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}
	logg, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal("logger: ", err)
	}

	ctx := context.Background()
	accounts, closeStore, err := openStore(ctx, cfg, logg)
	if err != nil {
		logg.WithError(err).Fatal("store")
	}
	defer closeStore()

	tokens, err := service.NewTokenService(service.TokenConfig{Secret: []byte(cfg.JWTSecret)})
	if err != nil {
		logg.WithError(err).Fatal("token service")
	}

	resolver := &session.Resolver{Tokens: tokens, Log: logg}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			logg.WithError(err).Warn("redis unreachable; invalid-token probes will not be counted until it recovers")
		}
		resolver.Probes = service.NewProbeCounter(rdb, cfg.ProbeWindow, cfg.ProbeThreshold)
	} else {
		logg.Info("REDIS_ADDR not set; invalid-token probes are only logged")
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Accounts:    &service.AccountService{Store: accounts, Tokens: tokens, BcryptCost: cfg.BcryptCost, Log: logg},
		Collection:  &service.CollectionService{Store: accounts, Log: logg},
		Resolver:    resolver,
		Log:         logg,
		CORSOrigins: cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logg.WithField("addr", server.Addr).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.WithError(err).Fatal("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.WithError(err).Error("shutdown")
	}
}

func openStore(ctx context.Context, cfg *config.Config, logg *logrus.Logger) (service.AccountStore, func(), error) {
	if cfg.StoreDriver == config.StoreMemory {
		logg.Warn("using in-memory store; accounts are lost on restart")
		return store.NewMemory(), func() {}, nil
	}
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	db, err := store.NewMongoDB(connectCtx, cfg.MongoURI, cfg.DBName, logg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.EnsureIndexes(connectCtx); err != nil {
		_ = db.Disconnect(context.Background())
		return nil, nil, err
	}
	return db.Accounts(), func() {
		if err := db.Disconnect(context.Background()); err != nil {
			logg.WithError(err).Error("mongodb disconnect")
		}
	}, nil
}
