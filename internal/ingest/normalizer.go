package ingest

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/arjun/news_aggregator/pkg/models"
)

// Defaults substituted when a provider omits a field or maps it to nothing.
const (
	DefaultTitle    = "No Title"
	DefaultAuthor   = "Unknown"
	DefaultCategory = "General"
)

// Normalize extracts the raw article array at the field map's DataPath and
// maps each element to a canonical record, substituting defaults for missing
// fields. Unparseable or absent publication dates fall back to now — a
// deliberately lossy default carried over from the source behavior; it
// fabricates ordering data for dateless articles but keeps every payload
// ingestible. Pure: an empty or malformed payload yields an empty slice,
// never an error, and output order mirrors input order.
func Normalize(payload []byte, fields FieldMap, now time.Time) []models.IncomingArticle {
	var root map[string]any
	if err := json.Unmarshal(payload, &root); err != nil {
		return []models.IncomingArticle{}
	}

	items, ok := dig(root, fields.DataPath).([]any)
	if !ok {
		return []models.IncomingArticle{}
	}

	out := make([]models.IncomingArticle, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, models.IncomingArticle{
			Title:       stringField(raw, fields.TitleKey, DefaultTitle),
			Description: stringField(raw, fields.DescKey, ""),
			Content:     stringField(raw, fields.ContentKey, ""),
			Author:      stringField(raw, fields.AuthorKey, DefaultAuthor),
			Category:    stringField(raw, fields.CategoryKey, DefaultCategory),
			PublishedAt: dateField(raw, fields.DateKey, now),
		})
	}
	return out
}

// dig walks a dot path through nested JSON objects. An empty path returns the
// root; a broken path returns nil.
func dig(root map[string]any, path string) any {
	if path == "" {
		return root
	}
	var current any = root
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current = obj[part]
	}
	return current
}

func stringField(raw map[string]any, key, fallback string) string {
	if key == "" {
		return fallback
	}
	if v, ok := raw[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func dateField(raw map[string]any, key string, now time.Time) time.Time {
	if key == "" {
		return now
	}
	v, ok := raw[key].(string)
	if !ok || v == "" {
		return now
	}
	t, err := dateparse.ParseAny(v)
	if err != nil {
		return now
	}
	return t
}
