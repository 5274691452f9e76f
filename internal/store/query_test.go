package store

import (
	"strings"
	"testing"

	dbtypes "github.com/arjun/news_aggregator/internal/db"
	"github.com/arjun/news_aggregator/pkg/models"
)

func TestBuildListClausesNoFilters(t *testing.T) {
	where, args := buildListClauses(models.ArticleFilters{})
	if where != "" {
		t.Errorf("no filters should produce no WHERE clause, got %q", where)
	}
	if len(args) != 0 {
		t.Errorf("no filters should produce no args, got %v", args)
	}
}

func TestBuildListClausesConjunction(t *testing.T) {
	where, args := buildListClauses(models.ArticleFilters{
		Keyword:  "laravel",
		Date:     "2024-01-01",
		Category: "Technology",
		Source:   "BBC News",
	})

	for _, cond := range []string{
		"a.title ILIKE $1",
		"a.published_at::date = $2::date",
		"c.name = $3",
		"s.name = $4",
	} {
		if !strings.Contains(where, cond) {
			t.Errorf("WHERE clause missing %q: %s", cond, where)
		}
	}
	if strings.Count(where, " AND ") != 3 {
		t.Errorf("four filters should be joined by three ANDs: %s", where)
	}
	if len(args) != 4 {
		t.Fatalf("expected 4 args, got %d", len(args))
	}
	if args[0] != "%laravel%" {
		t.Errorf("keyword should be a substring match, got %v", args[0])
	}
}

func TestBuildListClausesSingleFilter(t *testing.T) {
	where, args := buildListClauses(models.ArticleFilters{Source: "BBC News"})
	if !strings.Contains(where, "s.name = $1") {
		t.Errorf("unexpected clause: %s", where)
	}
	if strings.Contains(where, "AND") {
		t.Errorf("single filter should have no AND: %s", where)
	}
	if len(args) != 1 || args[0] != "BBC News" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBuildFeedClauses(t *testing.T) {
	where, args := buildFeedClauses(models.UserPreference{
		PreferredCategories: dbtypes.Int64Slice{1, 2},
		PreferredAuthors:    dbtypes.Int64Slice{9},
	})

	if !strings.Contains(where, "a.category_id = ANY($1)") {
		t.Errorf("missing category membership filter: %s", where)
	}
	if strings.Contains(where, "a.source_id") {
		t.Errorf("empty source preference should impose no constraint: %s", where)
	}
	if !strings.Contains(where, "a.author_id = ANY($2)") {
		t.Errorf("missing author membership filter: %s", where)
	}
	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}
}

func TestBuildFeedClausesEmptyPreferences(t *testing.T) {
	where, args := buildFeedClauses(models.UserPreference{})
	if where != "" || len(args) != 0 {
		t.Errorf("empty preferences should produce no constraints, got %q %v", where, args)
	}
}
