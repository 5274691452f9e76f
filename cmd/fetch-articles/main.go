// fetch-articles runs the ingestion cycle: fetch each provider, normalize,
// and upsert into the store. One-shot by default; pass -every to keep running
// on an interval. Provider failures are logged and skipped, never fatal.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/arjun/news_aggregator/internal/ingest"
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
	every := flag.Duration("every", 0, "run continuously on this interval (default: run once and exit)")
	flag.Parse()

	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	dbHost := envOrDefault("DB_HOST", "localhost")
	dbPort := envOrDefault("DB_PORT", "5432")
	dbName := envOrDefault("DB_NAME", "news_db")
	dbUser := envOrDefault("DB_USER", "news_user")
	dbPass := envOrDefault("DB_PASS", "news_pass")

	pgUrl := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", pgUrl)
	if err != nil {
		logger.Fatal("db open", zap.Error(err))
	}
	if err := db.Ping(); err != nil {
		logger.Fatal("could not connect to db", zap.Error(err))
	}
	if err := store.RunMigrations(db); err != nil {
		logger.Fatal("migrations", zap.Error(err))
	}

	runner := ingest.NewRunner(store.NewPgStore(db), logger)

	runOnce := func() {
		if err := runner.Run(context.Background()); err != nil {
			logger.Error("ingestion cycle completed with provider failures", zap.Error(err))
			return
		}
		logger.Info("articles fetched and stored successfully")
	}

	runOnce()
	if *every <= 0 {
		return
	}

	ticker := time.NewTicker(*every)
	defer ticker.Stop()
	for range ticker.C {
		runOnce()
	}
}
