// Package service implements the retrieval layer: validated filter queries,
// the personalized feed, preference upserts, and the cache discipline around
// all of them. It receives an already-authenticated user identity; permission
// checks happen at the API edge before any method here runs.
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/arjun/news_aggregator/internal/cache"
	"github.com/arjun/news_aggregator/pkg/models"
)

type ArticleStore interface {
	ListArticles(ctx context.Context, f models.ArticleFilters) (*models.ArticlePage, error)
	GetArticle(ctx context.Context, id int64) (*models.Article, error)
	PersonalizedFeed(ctx context.Context, prefs models.UserPreference, page int) (*models.ArticlePage, error)
	GetPreferences(ctx context.Context, userID int64) (*models.UserPreference, error)
	SavePreferences(ctx context.Context, pref models.UserPreference) error
	FilterExisting(ctx context.Context, table string, ids []int64) ([]int64, error)
}

type Service struct {
	repo  ArticleStore
	cache cache.Store
	log   *zap.Logger
}

func NewService(repo ArticleStore, c cache.Store, log *zap.Logger) *Service {
	return &Service{repo: repo, cache: c, log: log}
}

// ListArticles serves a filtered, paginated article listing, cached under a
// key derived from the full filter set.
func (s *Service) ListArticles(ctx context.Context, f models.ArticleFilters) (*models.ArticlePage, error) {
	if verr := validateFilters(f); verr != nil {
		return nil, verr
	}
	if f.Page < 1 {
		f.Page = 1
	}
	page, err := cache.GetOrCompute(ctx, s.cache, cache.ListKey(f), func() (*models.ArticlePage, error) {
		return s.repo.ListArticles(ctx, f)
	})
	if err != nil {
		s.log.Error("article listing failed", zap.Any("filters", f), zap.Error(err))
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return page, nil
}

// GetArticle serves a single article by ID, cached per ID. A missing article
// is ErrNotFound, never cached.
func (s *Service) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	article, err := cache.GetOrCompute(ctx, s.cache, cache.ArticleKey(id), func() (*models.Article, error) {
		a, err := s.repo.GetArticle(ctx, id)
		if err != nil {
			return nil, err
		}
		if a == nil {
			return nil, ErrNotFound
		}
		return a, nil
	})
	if errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err != nil {
		s.log.Error("article lookup failed", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("get article: %w", err)
	}
	return article, nil
}

// PersonalizedFeed serves the requesting user's preference-filtered feed,
// newest first, cached per user. A user with no saved preferences gets
// ErrNoPreferences so callers can answer with an explicit "no preferences
// set" result instead of an unfiltered or empty listing.
func (s *Service) PersonalizedFeed(ctx context.Context, userID int64, page int) (*models.ArticlePage, error) {
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		s.log.Error("preference lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	if prefs == nil {
		return nil, ErrNoPreferences
	}
	if page < 1 {
		page = 1
	}
	feed, err := cache.GetOrCompute(ctx, s.cache, cache.FeedKey(userID), func() (*models.ArticlePage, error) {
		return s.repo.PersonalizedFeed(ctx, *prefs, page)
	})
	if err != nil {
		s.log.Error("personalized feed failed", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("personalized feed: %w", err)
	}
	return feed, nil
}

// UpdatePreferences validates and upserts the user's preference lists, then
// evicts the user's feed cache entry before returning. The eviction is part
// of the write's success contract: a stale personalized feed served after
// this call returns would be a correctness bug, so a failed eviction fails
// the update.
func (s *Service) UpdatePreferences(ctx context.Context, pref models.UserPreference) (*models.UserPreference, error) {
	verr, err := s.validatePreferenceIDs(ctx, pref)
	if err != nil {
		s.log.Error("preference validation failed", zap.Int64("user_id", pref.UserID), zap.Error(err))
		return nil, fmt.Errorf("validate preferences: %w", err)
	}
	if verr != nil {
		return nil, verr
	}

	if err := s.repo.SavePreferences(ctx, pref); err != nil {
		s.log.Error("preference save failed",
			zap.Int64("user_id", pref.UserID),
			zap.Any("preferences", pref),
			zap.Error(err))
		return nil, fmt.Errorf("save preferences: %w", err)
	}

	if err := s.cache.Delete(ctx, cache.FeedKey(pref.UserID)); err != nil {
		s.log.Error("feed cache eviction failed", zap.Int64("user_id", pref.UserID), zap.Error(err))
		return nil, fmt.Errorf("evict feed cache: %w", err)
	}

	saved, err := s.repo.GetPreferences(ctx, pref.UserID)
	if err != nil {
		return nil, fmt.Errorf("reload preferences: %w", err)
	}
	return saved, nil
}
