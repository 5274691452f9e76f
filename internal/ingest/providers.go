// Package ingest implements the fetch → normalize → store pipeline that pulls
// articles from the external news providers.
package ingest

import (
	"os"
)

// FieldMap declares where each canonical article field lives in a provider's
// JSON response. An empty key means the provider does not supply that field
// and the normalizer substitutes its default. DataPath is a dot path to the
// array of raw article objects (nested paths like "response.results" work).
type FieldMap struct {
	TitleKey    string
	DescKey     string
	ContentKey  string
	AuthorKey   string
	CategoryKey string
	DateKey     string
	DataPath    string
}

// Provider pairs a named source with its endpoint and field map. Adding a
// provider means adding a row here, never new pipeline code.
type Provider struct {
	Name   string
	URL    string
	Fields FieldMap
}

// Providers returns the provider table with API keys resolved from the
// environment (NEWSAPI_KEY, GUARDIAN_KEY, NYTIMES_KEY).
func Providers() []Provider {
	return []Provider{
		{
			Name: "NewsAPI",
			URL:  "https://newsapi.org/v2/top-headlines?country=us&apiKey=" + os.Getenv("NEWSAPI_KEY"),
			Fields: FieldMap{
				TitleKey:    "title",
				DescKey:     "description",
				ContentKey:  "content",
				AuthorKey:   "author",
				CategoryKey: "category",
				DateKey:     "publishedAt",
				DataPath:    "articles",
			},
		},
		{
			Name: "The Guardian",
			URL:  "https://content.guardianapis.com/search?api-key=" + os.Getenv("GUARDIAN_KEY"),
			Fields: FieldMap{
				TitleKey:    "webTitle",
				DescKey:     "webTitle",
				ContentKey:  "webTitle",
				CategoryKey: "pillarName",
				DateKey:     "webPublicationDate",
				DataPath:    "response.results",
			},
		},
		{
			Name: "New York Times",
			URL:  "https://api.nytimes.com/svc/topstories/v2/home.json?api-key=" + os.Getenv("NYTIMES_KEY"),
			Fields: FieldMap{
				TitleKey:    "title",
				DescKey:     "abstract",
				ContentKey:  "abstract",
				AuthorKey:   "byline",
				CategoryKey: "section",
				DateKey:     "published_date",
				DataPath:    "results",
			},
		},
	}
}
