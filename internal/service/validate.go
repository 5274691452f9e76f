package service

import (
	"context"
	"fmt"
	"time"

	"github.com/arjun/news_aggregator/pkg/models"
)

const maxFilterLength = 255

// validateFilters enforces the listing filter rules: bounded strings, a
// strict YYYY-MM-DD date, a positive page. Returns nil when everything holds.
func validateFilters(f models.ArticleFilters) *ValidationError {
	verr := newValidationError()
	if len(f.Keyword) > maxFilterLength {
		verr.Fields["keyword"] = fmt.Sprintf("must be at most %d characters", maxFilterLength)
	}
	if len(f.Category) > maxFilterLength {
		verr.Fields["category"] = fmt.Sprintf("must be at most %d characters", maxFilterLength)
	}
	if len(f.Source) > maxFilterLength {
		verr.Fields["source"] = fmt.Sprintf("must be at most %d characters", maxFilterLength)
	}
	if f.Date != "" {
		if _, err := time.Parse("2006-01-02", f.Date); err != nil {
			verr.Fields["date"] = "must match format YYYY-MM-DD"
		}
	}
	if f.Page < 0 {
		verr.Fields["page"] = "must be a positive integer"
	}
	if len(verr.Fields) == 0 {
		return nil
	}
	return verr
}

// validatePreferenceIDs checks that every referenced entity ID exists,
// recording unknown IDs under their field name.
func (s *Service) validatePreferenceIDs(ctx context.Context, pref models.UserPreference) (*ValidationError, error) {
	verr := newValidationError()
	checks := []struct {
		field string
		table string
		ids   []int64
	}{
		{"preferred_categories", "categories", pref.PreferredCategories},
		{"preferred_sources", "sources", pref.PreferredSources},
		{"preferred_authors", "authors", pref.PreferredAuthors},
	}
	for _, check := range checks {
		if len(check.ids) == 0 {
			continue
		}
		existing, err := s.repo.FilterExisting(ctx, check.table, check.ids)
		if err != nil {
			return nil, err
		}
		known := make(map[int64]bool, len(existing))
		for _, id := range existing {
			known[id] = true
		}
		for _, id := range check.ids {
			if !known[id] {
				verr.Fields[check.field] = fmt.Sprintf("unknown id %d", id)
				break
			}
		}
	}
	if len(verr.Fields) == 0 {
		return nil, nil
	}
	return verr, nil
}
