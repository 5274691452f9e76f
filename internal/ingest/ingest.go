package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/arjun/news_aggregator/pkg/models"
)

// Store is the persistence surface the pipeline writes to.
type Store interface {
	SaveIncoming(ctx context.Context, sourceName string, articles []models.IncomingArticle) error
}

// Runner drives one ingestion cycle across all configured providers.
type Runner struct {
	fetcher   *Fetcher
	store     Store
	log       *zap.Logger
	providers []Provider
}

func NewRunner(store Store, log *zap.Logger) *Runner {
	return &Runner{
		fetcher:   NewFetcher(),
		store:     store,
		log:       log,
		providers: Providers(),
	}
}

// Run executes one cycle: every provider's fetch → normalize → store pipeline
// runs in its own goroutine, isolated so one provider's failure never blocks
// or aborts the others. The returned error joins the per-provider failures;
// callers treat it as a report, not a reason to abort scheduling.
func (r *Runner) Run(ctx context.Context) error {
	runID := uuid.New().String()
	log := r.log.With(zap.String("run_id", runID))
	started := time.Now()
	log.Info("ingestion cycle started", zap.Int("providers", len(r.providers)))

	errs := make([]error, len(r.providers))
	var wg sync.WaitGroup
	for i, provider := range r.providers {
		i, provider := i, provider
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = r.runProvider(ctx, log, provider)
		}()
	}
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	log.Info("ingestion cycle finished",
		zap.Int("failed_providers", failed),
		zap.Duration("elapsed", time.Since(started)))
	return errors.Join(errs...)
}

func (r *Runner) runProvider(ctx context.Context, log *zap.Logger, provider Provider) error {
	log = log.With(zap.String("provider", provider.Name))

	payload, err := r.fetcher.Fetch(ctx, provider.URL)
	if err != nil {
		log.Error("fetch failed, skipping provider for this cycle", zap.Error(err))
		return fmt.Errorf("%s: %w", provider.Name, err)
	}

	articles := Normalize(payload, provider.Fields, time.Now().UTC())
	if len(articles) == 0 {
		log.Warn("provider returned no articles")
		return nil
	}

	if err := r.store.SaveIncoming(ctx, provider.Name, articles); err != nil {
		log.Error("store failed", zap.Error(err), zap.Int("articles", len(articles)))
		return fmt.Errorf("%s: %w", provider.Name, err)
	}

	log.Info("provider ingested", zap.Int("articles", len(articles)))
	return nil
}
