package store

import (
	"context"
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/arjun/news_aggregator/pkg/models"
)

type PgStore struct {
	db *sqlx.DB
}

func NewPgStore(db *sql.DB) *PgStore {
	return &PgStore{db: sqlx.NewDb(db, "postgres")}
}

func RunMigrations(db *sql.DB) error {
	initSQL := `
CREATE TABLE IF NOT EXISTS categories(
  id BIGSERIAL PRIMARY KEY,
  name TEXT UNIQUE NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS sources(
  id BIGSERIAL PRIMARY KEY,
  name TEXT UNIQUE NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS authors(
  id BIGSERIAL PRIMARY KEY,
  name TEXT UNIQUE NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS articles(
  id BIGSERIAL PRIMARY KEY,
  article_identifier TEXT UNIQUE NOT NULL,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  content TEXT NOT NULL DEFAULT '',
  category_id BIGINT REFERENCES categories(id) ON DELETE CASCADE,
  source_id BIGINT REFERENCES sources(id) ON DELETE CASCADE,
  author_id BIGINT REFERENCES authors(id) ON DELETE CASCADE,
  published_at TIMESTAMPTZ NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_at);
CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category_id);
CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source_id);
CREATE INDEX IF NOT EXISTS idx_articles_author ON articles(author_id);

CREATE TABLE IF NOT EXISTS users(
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT UNIQUE NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user',
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_tokens(
  token_digest TEXT PRIMARY KEY,
  user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_preferences(
  id BIGSERIAL PRIMARY KEY,
  user_id BIGINT UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  preferred_categories JSONB NOT NULL DEFAULT '[]',
  preferred_sources JSONB NOT NULL DEFAULT '[]',
  preferred_authors JSONB NOT NULL DEFAULT '[]',
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`
	_, err := db.Exec(initSQL)
	return err
}

// Fingerprint derives the dedup identity of an article. It is a deterministic
// function of (title, source, published_at): re-fetching the same article
// always produces the same identifier, so the upsert converges on one row.
// MD5 is used as a stable hash here, not for security.
func Fingerprint(title string, sourceID int64, publishedAt time.Time) string {
	sum := md5.Sum([]byte(title + strconv.FormatInt(sourceID, 10) + publishedAt.UTC().Format(time.RFC3339)))
	return hex.EncodeToString(sum[:])
}

// resolveOrCreate resolves a named entity to its ID, creating the row if the
// name is not yet known. The no-op DO UPDATE makes RETURNING yield the id on
// both paths, so concurrent callers racing on the same name all get one row.
func (p *PgStore) resolveOrCreate(ctx context.Context, q sqlx.QueryerContext, table, name string) (int64, error) {
	// table is always one of the fixed entity tables, never user input.
	stmt := fmt.Sprintf(`
INSERT INTO %s (name) VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`, table)
	var id int64
	if err := sqlx.GetContext(ctx, q, &id, stmt, name); err != nil {
		return 0, fmt.Errorf("resolve %s %q: %w", table, name, err)
	}
	return id, nil
}

// ResolveSource resolves or creates a source by name.
func (p *PgStore) ResolveSource(ctx context.Context, name string) (int64, error) {
	return p.resolveOrCreate(ctx, p.db, "sources", name)
}

// SaveIncoming stores one provider's normalized batch: it resolves the source
// plus every distinct category and author name once, fingerprints each
// article, and bulk-upserts keyed on article_identifier inside a single
// transaction. An empty batch is a no-op. On conflict the mutable fields and
// updated_at are overwritten; created_at keeps its first-insert value.
func (p *PgStore) SaveIncoming(ctx context.Context, sourceName string, articles []models.IncomingArticle) error {
	if len(articles) == 0 {
		return nil
	}

	sourceID, err := p.ResolveSource(ctx, sourceName)
	if err != nil {
		return err
	}

	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	categoryIDs := map[string]int64{}
	authorIDs := map[string]int64{}
	for _, a := range articles {
		if _, ok := categoryIDs[a.Category]; !ok {
			id, err := p.resolveOrCreate(ctx, tx, "categories", a.Category)
			if err != nil {
				return err
			}
			categoryIDs[a.Category] = id
		}
		if _, ok := authorIDs[a.Author]; !ok {
			id, err := p.resolveOrCreate(ctx, tx, "authors", a.Author)
			if err != nil {
				return err
			}
			authorIDs[a.Author] = id
		}
	}

	stmt := `
INSERT INTO articles (article_identifier, title, description, content, category_id, source_id, author_id, published_at, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now(),now())
ON CONFLICT (article_identifier) DO UPDATE SET
 title=EXCLUDED.title,
 description=EXCLUDED.description,
 content=EXCLUDED.content,
 category_id=EXCLUDED.category_id,
 source_id=EXCLUDED.source_id,
 author_id=EXCLUDED.author_id,
 published_at=EXCLUDED.published_at,
 updated_at=now();
`

	for _, a := range articles {
		identifier := Fingerprint(a.Title, sourceID, a.PublishedAt)
		_, err := tx.ExecContext(ctx, stmt,
			identifier,
			a.Title,
			a.Description,
			a.Content,
			categoryIDs[a.Category],
			sourceID,
			authorIDs[a.Author],
			a.PublishedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert article %q (identifier=%s): %w", a.Title, identifier, err)
		}
	}

	return tx.Commit()
}

// FilterExisting returns the subset of ids that exist in the given entity
// table. Used to validate preference ID lists before saving them.
func (p *PgStore) FilterExisting(ctx context.Context, table string, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}
	switch table {
	case "categories", "sources", "authors":
	default:
		return nil, fmt.Errorf("unknown entity table %q", table)
	}
	query, args, err := sqlx.In(fmt.Sprintf("SELECT id FROM %s WHERE id IN (?)", table), ids)
	if err != nil {
		return nil, err
	}
	query = p.db.Rebind(query)
	existing := []int64{}
	if err := p.db.SelectContext(ctx, &existing, query, args...); err != nil {
		return nil, err
	}
	return existing, nil
}
