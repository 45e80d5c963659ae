package search_test

import (
	"testing"

	"github.com/nikbrunner/vt/internal/model"
	"github.com/nikbrunner/vt/internal/search"
)

func searchStore() *model.Store {
	return model.NewStoreFromItems([]model.Item{
		{ID: "g1", Kind: model.KindGroup, Name: "Go Talks", Order: 0},
		{ID: "v1", Kind: model.KindVideo, Title: "Concurrency Patterns in Go", Order: 1},
		{ID: "v2", Kind: model.KindVideo, Title: "Understanding Channels", Order: 2},
		{ID: "v3", Kind: model.KindVideo, Title: "Cooking Pasta", Order: 3},
	})
}

func TestFuzzySearch(t *testing.T) {
	store := searchStore()

	results := search.FuzzySearch(store.Items(), "concurrency")
	if len(results) == 0 {
		t.Fatal("expected at least one match")
	}
	if results[0].Item.ID != "v1" {
		t.Errorf("expected v1 as best match, got %s", results[0].Item.ID)
	}
	if len(results[0].MatchedIndexes) == 0 {
		t.Error("expected matched indexes for highlighting")
	}
}

func TestFuzzySearch_MatchesGroupNames(t *testing.T) {
	store := searchStore()

	results := search.FuzzySearch(store.Items(), "go talks")
	found := false
	for _, r := range results {
		if r.Item.ID == "g1" {
			found = true
		}
	}
	if !found {
		t.Error("expected group matched by name")
	}
}

func TestFuzzySearch_EmptyQuery(t *testing.T) {
	if results := search.FuzzySearch(searchStore().Items(), ""); results != nil {
		t.Errorf("expected nil for empty query, got %d results", len(results))
	}
}

func TestFuzzySearch_NoMatch(t *testing.T) {
	if results := search.FuzzySearch(searchStore().Items(), "zzzzqqqq"); len(results) != 0 {
		t.Errorf("expected no matches, got %d", len(results))
	}
}

func TestFuzzySearchVideos(t *testing.T) {
	store := searchStore()

	// "go" appears in both the group name and a video title; only the
	// video may surface here
	results := search.FuzzySearchVideos(store, "go")
	for _, r := range results {
		if !r.Item.IsVideo() {
			t.Errorf("non-video in video search: %s", r.Item.ID)
		}
	}

	results = search.FuzzySearchVideos(store, "channels")
	if len(results) == 0 || results[0].Item.ID != "v2" {
		t.Error("expected v2 as best match")
	}
}
