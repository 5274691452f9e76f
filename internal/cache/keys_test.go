package cache

import (
	"strings"
	"testing"

	"github.com/arjun/news_aggregator/pkg/models"
)

func TestListKeyDeterministic(t *testing.T) {
	f := models.ArticleFilters{Keyword: "go", Category: "Technology", Page: 2}
	if ListKey(f) != ListKey(f) {
		t.Error("identical filters must derive identical keys")
	}
	if !strings.HasPrefix(ListKey(f), "articles_") {
		t.Errorf("unexpected key shape: %s", ListKey(f))
	}
}

func TestListKeyDistinguishesFilters(t *testing.T) {
	base := ListKey(models.ArticleFilters{Keyword: "go"})
	cases := map[string]models.ArticleFilters{
		"different keyword": {Keyword: "rust"},
		"added category":    {Keyword: "go", Category: "Technology"},
		"different page":    {Keyword: "go", Page: 2},
		"keyword as source": {Source: "go"},
	}
	for name, f := range cases {
		if ListKey(f) == base {
			t.Errorf("%s should derive a different key", name)
		}
	}
}

func TestListKeyNormalizesPage(t *testing.T) {
	// Page 0 and page 1 are the same request.
	a := ListKey(models.ArticleFilters{Keyword: "go"})
	b := ListKey(models.ArticleFilters{Keyword: "go", Page: 1})
	if a != b {
		t.Error("default page and explicit page 1 should derive the same key")
	}
}

func TestEntityKeys(t *testing.T) {
	if got := ArticleKey(42); got != "article_42" {
		t.Errorf("ArticleKey(42) = %q", got)
	}
	if got := FeedKey(7); got != "user_feed_7" {
		t.Errorf("FeedKey(7) = %q", got)
	}
	if ArticleKey(7) == FeedKey(7) {
		t.Error("article and feed keys must not collide")
	}
}
