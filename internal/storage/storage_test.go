package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/vt/internal/model"
	"github.com/nikbrunner/vt/internal/storage"
)

func stringPtr(s string) *string { return &s }

func testItems() []model.Item {
	groupID := "11111111-1111-4111-8111-111111111111"
	return []model.Item{
		{
			ID:         groupID,
			Kind:       model.KindGroup,
			Order:      0,
			CreatedAt:  1700000000000,
			Name:       "Talks",
			IsExpanded: true,
		},
		{
			ID:          "22222222-2222-4222-9222-222222222222",
			Kind:        model.KindVideo,
			ParentID:    stringPtr(groupID),
			Order:       0,
			CreatedAt:   1700000000001,
			Title:       "Concurrency Patterns",
			SourceURL:   "https://www.youtube.com/watch?v=f6kdp27TYZs",
			ExternalID:  "f6kdp27TYZs",
			Status:      model.StatusToWatch,
			Description: "GopherCon talk",
		},
	}
}

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "videos.json")
	store := storage.NewJSONStorage(path)

	saved := testItems()
	if err := store.Save(saved); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(loaded) != len(saved) {
		t.Fatalf("expected %d items, got %d", len(saved), len(loaded))
	}

	for i := range saved {
		want, got := saved[i], loaded[i]
		if got.ID != want.ID || got.Kind != want.Kind {
			t.Errorf("item %d identity mismatch: %+v", i, got)
		}
		if got.Label() != want.Label() {
			t.Errorf("item %d label mismatch: got %q, want %q", i, got.Label(), want.Label())
		}
	}

	video := loaded[1]
	if video.ParentID == nil || *video.ParentID != saved[0].ID {
		t.Error("parent reference lost")
	}
	if video.Status != model.StatusToWatch {
		t.Errorf("status lost: %q", video.Status)
	}
	if video.Description != "GopherCon talk" {
		t.Errorf("description lost: %q", video.Description)
	}
}

func TestJSONStorage_LoadMissingFile(t *testing.T) {
	store := storage.NewJSONStorage(filepath.Join(t.TempDir(), "does-not-exist.json"))

	items, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil {
		t.Fatal("expected empty set, got nil")
	}
	if len(items) != 0 {
		t.Errorf("expected 0 items, got %d", len(items))
	}
}

func TestJSONStorage_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "videos.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := storage.NewJSONStorage(path).Load(); err == nil {
		t.Error("expected error for corrupt file")
	}
}

func TestJSONStorage_SaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "videos.json")
	store := storage.NewJSONStorage(path)

	if err := store.Save(testItems()); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %v", err)
	}
}

func TestJSONStorage_SaveEmptySet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "videos.json")
	store := storage.NewJSONStorage(path)

	if err := store.Save([]model.Item{}); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	items, err := store.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected 0 items, got %d", len(items))
	}
}

func TestLoadConfig_CreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	config, err := storage.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !config.AutoFetchTitles || !config.ExpandNewGroups {
		t.Errorf("expected defaults on, got %+v", config)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to be created: %v", err)
	}
}

func TestLoadConfig_MissingKeysFallBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"autoFetchTitles": false}`), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := storage.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.AutoFetchTitles {
		t.Error("explicit false overridden")
	}
	if !config.ExpandNewGroups {
		t.Error("missing key should fall back to default true")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	saved := storage.Config{AutoFetchTitles: false, ExpandNewGroups: true}
	if err := storage.SaveConfig(path, &saved); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := storage.LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if *loaded != saved {
		t.Errorf("got %+v, want %+v", *loaded, saved)
	}
}
