package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/nikbrunner/vt/internal/model"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Item           *model.Item
	MatchedIndexes []int
	Score          int
}

// itemLabels implements fuzzy.Source over item display labels.
type itemLabels []*model.Item

func (il itemLabels) String(i int) string {
	return il[i].Label()
}

func (il itemLabels) Len() int {
	return len(il)
}

// FuzzySearch matches the query against the labels of the given items.
// Returns results sorted by match score (best first).
func FuzzySearch(items []*model.Item, query string) []SearchResult {
	if query == "" {
		return nil
	}

	matches := fuzzy.FindFrom(query, itemLabels(items))

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Item:           items[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}

// FuzzySearchVideos searches all videos in the store by title.
func FuzzySearchVideos(store *model.Store, query string) []SearchResult {
	var videos []*model.Item
	for _, item := range store.Items() {
		if item.IsVideo() {
			videos = append(videos, item)
		}
	}
	return FuzzySearch(videos, query)
}
