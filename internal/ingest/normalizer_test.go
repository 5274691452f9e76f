package ingest

import (
	"testing"
	"time"
)

var testFields = FieldMap{
	TitleKey:    "title",
	DescKey:     "description",
	ContentKey:  "content",
	AuthorKey:   "author",
	CategoryKey: "category",
	DateKey:     "publishedAt",
	DataPath:    "articles",
}

func TestNormalizeMapsFields(t *testing.T) {
	payload := []byte(`{"articles":[{"title":"X","description":"d","content":"c","author":"A","category":"Tech","publishedAt":"2024-01-01T00:00:00Z"}]}`)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	got := Normalize(payload, testFields, now)
	if len(got) != 1 {
		t.Fatalf("expected 1 article, got %d", len(got))
	}
	a := got[0]
	if a.Title != "X" || a.Description != "d" || a.Content != "c" {
		t.Errorf("unexpected text fields: %+v", a)
	}
	if a.Author != "A" {
		t.Errorf("author = %q, want A", a.Author)
	}
	if a.Category != "Tech" {
		t.Errorf("category = %q, want Tech", a.Category)
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !a.PublishedAt.Equal(want) {
		t.Errorf("published_at = %v, want %v", a.PublishedAt, want)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"articles":[{}]}`)

	got := Normalize(payload, testFields, now)
	if len(got) != 1 {
		t.Fatalf("expected 1 article, got %d", len(got))
	}
	a := got[0]
	if a.Title != DefaultTitle {
		t.Errorf("title = %q, want %q", a.Title, DefaultTitle)
	}
	if a.Description != "" || a.Content != "" {
		t.Errorf("description/content should default empty: %+v", a)
	}
	if a.Author != DefaultAuthor {
		t.Errorf("author = %q, want %q", a.Author, DefaultAuthor)
	}
	if a.Category != DefaultCategory {
		t.Errorf("category = %q, want %q", a.Category, DefaultCategory)
	}
	if !a.PublishedAt.Equal(now) {
		t.Errorf("missing date should fall back to ingestion time, got %v", a.PublishedAt)
	}
}

func TestNormalizeAbsentKeysUseDefaults(t *testing.T) {
	// The Guardian-style map: no author key at all.
	fields := FieldMap{
		TitleKey:    "webTitle",
		DescKey:     "webTitle",
		ContentKey:  "webTitle",
		CategoryKey: "pillarName",
		DateKey:     "webPublicationDate",
		DataPath:    "response.results",
	}
	payload := []byte(`{"response":{"results":[{"webTitle":"Headline","pillarName":"News","webPublicationDate":"2024-03-04T10:00:00Z"}]}}`)

	got := Normalize(payload, fields, time.Now())
	if len(got) != 1 {
		t.Fatalf("expected 1 article, got %d", len(got))
	}
	if got[0].Author != DefaultAuthor {
		t.Errorf("absent author key should default, got %q", got[0].Author)
	}
	if got[0].Title != "Headline" {
		t.Errorf("nested data path not followed, title = %q", got[0].Title)
	}
}

func TestNormalizeUnparseableDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"articles":[{"title":"X","publishedAt":"not a date"}]}`)

	got := Normalize(payload, testFields, now)
	if len(got) != 1 {
		t.Fatalf("expected 1 article, got %d", len(got))
	}
	if !got[0].PublishedAt.Equal(now) {
		t.Errorf("unparseable date should fall back to ingestion time, got %v", got[0].PublishedAt)
	}
}

func TestNormalizeMalformedPayloads(t *testing.T) {
	cases := map[string][]byte{
		"not json":        []byte("<html>rate limited</html>"),
		"empty object":    []byte("{}"),
		"wrong data path": []byte(`{"items":[{"title":"X"}]}`),
		"path not array":  []byte(`{"articles":{"title":"X"}}`),
	}
	for name, payload := range cases {
		got := Normalize(payload, testFields, time.Now())
		if got == nil {
			t.Errorf("%s: expected empty slice, got nil", name)
		}
		if len(got) != 0 {
			t.Errorf("%s: expected no articles, got %d", name, len(got))
		}
	}
}

func TestNormalizePreservesOrder(t *testing.T) {
	payload := []byte(`{"articles":[{"title":"first"},{"title":"second"},{"title":"third"}]}`)
	got := Normalize(payload, testFields, time.Now())
	if len(got) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Title != want {
			t.Errorf("articles[%d].Title = %q, want %q", i, got[i].Title, want)
		}
	}
}
