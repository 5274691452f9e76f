package models

import (
	"time"

	dbtypes "github.com/arjun/news_aggregator/internal/db"
)

// Category is a named grouping for articles, created lazily during ingestion.
type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Source is the upstream provider an article was ingested from.
type Source struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Author is the byline attached to an article, created lazily during ingestion.
type Author struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Article is a stored, deduplicated news article. ArticleIdentifier is the
// dedup fingerprint: the same (title, source, published_at) always maps to the
// same row no matter how many times it is re-fetched.
type Article struct {
	ID                int64     `db:"id" json:"id"`
	ArticleIdentifier string    `db:"article_identifier" json:"article_identifier"`
	Title             string    `db:"title" json:"title"`
	Description       string    `db:"description" json:"description"`
	Content           string    `db:"content" json:"content"`
	PublishedAt       time.Time `db:"published_at" json:"published_at"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`

	Category Category `db:"category" json:"category"`
	Source   Source   `db:"source" json:"source"`
	Author   Author   `db:"author" json:"author"`
}

// IncomingArticle is a provider-agnostic article as produced by the
// normalizer, before entity resolution assigns it category/source/author IDs.
type IncomingArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	PublishedAt time.Time `json:"published_at"`
}

// ArticleFilters are the recognized listing filters. All are optional and
// conjunctive: an empty value imposes no constraint on that dimension.
type ArticleFilters struct {
	Keyword  string `form:"keyword" json:"keyword,omitempty"`
	Date     string `form:"date" json:"date,omitempty"` // YYYY-MM-DD, exact day
	Category string `form:"category" json:"category,omitempty"`
	Source   string `form:"source" json:"source,omitempty"`
	Page     int    `form:"page" json:"page,omitempty"`
}

// UserPreference holds one user's saved feed preferences. Each list is
// independently optional; an empty list means no filter on that dimension.
type UserPreference struct {
	ID                  int64              `db:"id" json:"id"`
	UserID              int64              `db:"user_id" json:"user_id"`
	PreferredCategories dbtypes.Int64Slice `db:"preferred_categories" json:"preferred_categories"`
	PreferredSources    dbtypes.Int64Slice `db:"preferred_sources" json:"preferred_sources"`
	PreferredAuthors    dbtypes.Int64Slice `db:"preferred_authors" json:"preferred_authors"`
	UpdatedAt           time.Time          `db:"updated_at" json:"updated_at"`
}

// IsEmpty reports whether no preference dimension is set.
func (p UserPreference) IsEmpty() bool {
	return len(p.PreferredCategories) == 0 &&
		len(p.PreferredSources) == 0 &&
		len(p.PreferredAuthors) == 0
}

// PageSize is the fixed page size for every paginated listing.
const PageSize = 10

// ArticlePage is one page of articles plus pagination metadata.
type ArticlePage struct {
	Data        []*Article `json:"data"`
	Total       int64      `json:"total"`
	PerPage     int        `json:"per_page"`
	CurrentPage int        `json:"current_page"`
	LastPage    int        `json:"last_page"`
}

// NewArticlePage assembles pagination metadata around one page of rows.
func NewArticlePage(rows []*Article, total int64, page int) *ArticlePage {
	last := int((total + PageSize - 1) / PageSize)
	if last < 1 {
		last = 1
	}
	if rows == nil {
		rows = []*Article{}
	}
	return &ArticlePage{
		Data:        rows,
		Total:       total,
		PerPage:     PageSize,
		CurrentPage: page,
		LastPage:    last,
	}
}
