package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/arjun/news_aggregator/pkg/models"
)

const articleColumns = `
a.id, a.article_identifier, a.title, a.description, a.content, a.published_at, a.created_at, a.updated_at,
c.id AS "category.id", c.name AS "category.name",
s.id AS "source.id", s.name AS "source.name",
au.id AS "author.id", au.name AS "author.name"`

const articleJoins = `
FROM articles a
JOIN categories c ON c.id = a.category_id
JOIN sources s ON s.id = a.source_id
JOIN authors au ON au.id = a.author_id`

// buildListClauses composes the conjunctive WHERE clause for the recognized
// listing filters. Absent filters contribute no predicate.
func buildListClauses(f models.ArticleFilters) (string, []interface{}) {
	conds := []string{}
	args := []interface{}{}
	add := func(cond string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Keyword != "" {
		add("a.title ILIKE $%d", "%"+f.Keyword+"%")
	}
	if f.Date != "" {
		add("a.published_at::date = $%d::date", f.Date)
	}
	if f.Category != "" {
		add("c.name = $%d", f.Category)
	}
	if f.Source != "" {
		add("s.name = $%d", f.Source)
	}

	if len(conds) == 0 {
		return "", args
	}
	return "\nWHERE " + strings.Join(conds, " AND "), args
}

// buildFeedClauses composes the membership predicates for a personalized
// feed. Empty preference lists impose no constraint on their dimension.
func buildFeedClauses(prefs models.UserPreference) (string, []interface{}) {
	conds := []string{}
	args := []interface{}{}
	add := func(col string, ids []int64) {
		args = append(args, pq.Array(ids))
		conds = append(conds, fmt.Sprintf("%s = ANY($%d)", col, len(args)))
	}

	if len(prefs.PreferredCategories) > 0 {
		add("a.category_id", prefs.PreferredCategories)
	}
	if len(prefs.PreferredSources) > 0 {
		add("a.source_id", prefs.PreferredSources)
	}
	if len(prefs.PreferredAuthors) > 0 {
		add("a.author_id", prefs.PreferredAuthors)
	}

	if len(conds) == 0 {
		return "", args
	}
	return "\nWHERE " + strings.Join(conds, " AND "), args
}

func (p *PgStore) pageOf(ctx context.Context, where string, args []interface{}, orderBy string, page int) (*models.ArticlePage, error) {
	if page < 1 {
		page = 1
	}

	var total int64
	countQuery := "SELECT count(*)" + articleJoins + where
	if err := p.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s %s %s\nORDER BY %s\nLIMIT %d OFFSET %d",
		articleColumns, articleJoins, where, orderBy, models.PageSize, (page-1)*models.PageSize)
	rows := []*models.Article{}
	if err := p.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return models.NewArticlePage(rows, total, page), nil
}

// ListArticles returns one page of articles matching the given filters, each
// with its category, source and author populated. The plain listing is served
// in insertion order (ascending surrogate ID), stable within a page.
func (p *PgStore) ListArticles(ctx context.Context, f models.ArticleFilters) (*models.ArticlePage, error) {
	where, args := buildListClauses(f)
	return p.pageOf(ctx, where, args, "a.id", f.Page)
}

// PersonalizedFeed returns one page of articles matching the user's saved
// preference lists, newest first.
func (p *PgStore) PersonalizedFeed(ctx context.Context, prefs models.UserPreference, page int) (*models.ArticlePage, error) {
	where, args := buildFeedClauses(prefs)
	return p.pageOf(ctx, where, args, "a.published_at DESC", page)
}

// GetArticle fetches a single article by ID with its relations, or nil when
// no such row exists.
func (p *PgStore) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	query := fmt.Sprintf("SELECT %s %s\nWHERE a.id = $1", articleColumns, articleJoins)
	var a models.Article
	if err := p.db.GetContext(ctx, &a, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
