package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"graph-embedder/internal/config"
	"graph-embedder/internal/db"
	"graph-embedder/internal/graph"
	apihttp "graph-embedder/internal/http"
	"graph-embedder/internal/repository"
	"graph-embedder/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	graphClient, err := graph.NewNeo4jClient(cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase, logger)
	if err != nil {
		logger.Fatal("neo4j client", zap.Error(err))
	}
	defer graphClient.Close(context.Background())

	ctxVerify, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := graphClient.VerifyConnectivity(ctxVerify); err != nil {
		logger.Warn("neo4j not reachable at startup", zap.Error(err))
	}
	cancel()

	var embedCache service.EmbedCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			embedCache = service.NewRedisEmbedCache(redisClient)
		}
		cancel()
	}

	tokenRepo := repository.NewPgEmbedTokenRepository(pool)
	embedSvc := service.NewEmbedService(logger, tokenRepo, embedCache, cfg.EmbedBaseURL, cfg.DefaultTokenExpiryDays, cfg.MaxTokenExpiryDays)
	queryProxy := service.NewQueryProxy(logger, graphClient)

	embedHandler := apihttp.NewEmbedHandler(logger, embedSvc)
	proxyHandler := apihttp.NewProxyHandler(logger, queryProxy)
	healthHandler := apihttp.NewHealthHandler(pool, graphClient)
	router := apihttp.NewRouter(logger, embedHandler, proxyHandler, healthHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	logger, err := zapCfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
