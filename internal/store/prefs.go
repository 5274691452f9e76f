package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/arjun/news_aggregator/pkg/models"
)

// GetPreferences fetches a user's saved preferences, or nil when the user has
// never saved any.
func (p *PgStore) GetPreferences(ctx context.Context, userID int64) (*models.UserPreference, error) {
	query := `
SELECT id, user_id, preferred_categories, preferred_sources, preferred_authors, updated_at
FROM user_preferences
WHERE user_id = $1
`
	var pref models.UserPreference
	if err := p.db.GetContext(ctx, &pref, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &pref, nil
}

// SavePreferences upserts the single preference row for a user: created on
// first save, replaced in place afterwards.
func (p *PgStore) SavePreferences(ctx context.Context, pref models.UserPreference) error {
	stmt := `
INSERT INTO user_preferences (user_id, preferred_categories, preferred_sources, preferred_authors, updated_at)
VALUES ($1,$2,$3,$4,now())
ON CONFLICT (user_id) DO UPDATE SET
 preferred_categories=EXCLUDED.preferred_categories,
 preferred_sources=EXCLUDED.preferred_sources,
 preferred_authors=EXCLUDED.preferred_authors,
 updated_at=now();
`
	_, err := p.db.ExecContext(ctx, stmt,
		pref.UserID,
		pref.PreferredCategories,
		pref.PreferredSources,
		pref.PreferredAuthors,
	)
	return err
}
