package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/arjun/news_aggregator/pkg/models"
)

// ListKey derives the cache key for an article listing from the full set of
// applied filters. The encoding is canonical (sorted key=value pairs, empty
// filters omitted), so equivalent requests hash to the same key regardless of
// parameter order.
func ListKey(f models.ArticleFilters) string {
	page := f.Page
	if page < 1 {
		page = 1
	}
	pairs := []string{fmt.Sprintf("page=%d", page)}
	for k, v := range map[string]string{
		"keyword":  f.Keyword,
		"date":     f.Date,
		"category": f.Category,
		"source":   f.Source,
	} {
		if v != "" {
			pairs = append(pairs, k+"="+v)
		}
	}
	sort.Strings(pairs)
	sum := md5.Sum([]byte(strings.Join(pairs, "&")))
	return "articles_" + hex.EncodeToString(sum[:])
}

// ArticleKey is the cache key for a single article lookup.
func ArticleKey(id int64) string {
	return fmt.Sprintf("article_%d", id)
}

// FeedKey is the cache key for a user's personalized feed. Any preference
// write for the user must evict this key before it returns.
func FeedKey(userID int64) string {
	return fmt.Sprintf("user_feed_%d", userID)
}
