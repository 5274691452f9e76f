package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/arjun/news_aggregator/internal/api"
	"github.com/arjun/news_aggregator/internal/auth"
	"github.com/arjun/news_aggregator/internal/cache"
	"github.com/arjun/news_aggregator/internal/service"
	"github.com/arjun/news_aggregator/internal/store"
)

func envOrDefault(key, d string) string {
	v := os.Getenv(key)
	if v == "" {
		return d
	}
	return v
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	dbHost := envOrDefault("DB_HOST", "localhost")
	dbPort := envOrDefault("DB_PORT", "5432")
	dbName := envOrDefault("DB_NAME", "news_db")
	dbUser := envOrDefault("DB_USER", "news_user")
	dbPass := envOrDefault("DB_PASS", "news_pass")
	redisAddr := envOrDefault("REDIS_ADDR", "localhost:6379")
	port := envOrDefault("PORT", "8080")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	pgUrl := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", pgUrl)
	if err != nil {
		logger.Fatal("db open", zap.Error(err))
	}
	// simple ping + wait (db might be starting in docker)
	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		logger.Warn("waiting for db", zap.Int("attempt", i+1), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		logger.Fatal("could not connect to db", zap.Error(err))
	}

	if err := store.RunMigrations(db); err != nil {
		logger.Fatal("migrations", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping failed, cache degrades to passthrough", zap.Error(err))
	}

	repo := store.NewPgStore(db)
	responseCache := cache.NewRedisCache(rdb, logger)
	svc := service.NewService(repo, responseCache, logger)
	authSvc := auth.NewService(repo)
	handler := api.NewHandler(svc, authSvc)

	router := gin.Default()
	api.RegisterRoutes(router, handler)

	logger.Info("listening", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
