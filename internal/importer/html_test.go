package importer_test

import (
	"strings"
	"testing"

	"github.com/nikbrunner/vt/internal/importer"
	"github.com/nikbrunner/vt/internal/model"
)

func TestParseHTMLBookmarks_FlatVideos(t *testing.T) {
	input := `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<DL><p>
	<DT><A HREF="https://www.youtube.com/watch?v=f6kdp27TYZs" ADD_DATE="1700000000">Concurrency Patterns</A>
	<DT><A HREF="https://youtu.be/oV9rvDllKEg">Context Talk</A>
</DL><p>`

	items, skipped, err := importer.ParseHTMLBookmarks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("expected 0 skipped, got %d", skipped)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	first := items[0]
	if first.Kind != model.KindVideo {
		t.Errorf("expected video, got %q", first.Kind)
	}
	if first.Title != "Concurrency Patterns" {
		t.Errorf("unexpected title: %q", first.Title)
	}
	if first.ExternalID != "f6kdp27TYZs" {
		t.Errorf("unexpected external id: %q", first.ExternalID)
	}
	if first.CreatedAt != 1700000000000 {
		t.Errorf("ADD_DATE seconds not converted to millis: %d", first.CreatedAt)
	}
	if first.ParentID != nil {
		t.Error("expected root level item")
	}
	if first.Order != 0 || items[1].Order != 1 {
		t.Errorf("expected sequential orders, got %d and %d", first.Order, items[1].Order)
	}
}

func TestParseHTMLBookmarks_FoldersBecomeGroups(t *testing.T) {
	input := `<DL><p>
	<DT><H3>Talks</H3>
	<DL><p>
		<DT><A HREF="https://www.youtube.com/watch?v=f6kdp27TYZs">Inside</A>
		<DT><H3>Nested</H3>
		<DL><p>
			<DT><A HREF="https://youtu.be/oV9rvDllKEg">Deep</A>
		</DL><p>
	</DL><p>
	<DT><A HREF="https://youtu.be/dQw4w9WgXcQ">Outside</A>
</DL><p>`

	items, _, err := importer.ParseHTMLBookmarks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}

	byName := map[string]model.Item{}
	for _, item := range items {
		byName[item.Label()] = item
	}

	talks := byName["Talks"]
	if talks.Kind != model.KindGroup || talks.ParentID != nil {
		t.Error("expected Talks as a root group")
	}
	if talks.IsExpanded {
		t.Error("imported folders start collapsed")
	}

	inside := byName["Inside"]
	if inside.ParentID == nil || *inside.ParentID != talks.ID {
		t.Error("expected Inside under Talks")
	}

	nested := byName["Nested"]
	if nested.ParentID == nil || *nested.ParentID != talks.ID {
		t.Error("expected Nested under Talks")
	}

	deep := byName["Deep"]
	if deep.ParentID == nil || *deep.ParentID != nested.ID {
		t.Error("expected Deep under Nested")
	}

	outside := byName["Outside"]
	if outside.ParentID != nil {
		t.Error("expected Outside back at root level")
	}
}

func TestParseHTMLBookmarks_SkipsNonVideoLinks(t *testing.T) {
	input := `<DL><p>
	<DT><A HREF="https://example.com/article">Article</A>
	<DT><A HREF="https://www.youtube.com/@somechannel">Channel</A>
	<DT><A HREF="https://www.youtube.com/watch?v=f6kdp27TYZs">Video</A>
</DL><p>`

	items, skipped, err := importer.ParseHTMLBookmarks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", skipped)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Title != "Video" {
		t.Errorf("unexpected survivor: %q", items[0].Title)
	}
}

func TestParseHTMLBookmarks_FallsBackToURLTitle(t *testing.T) {
	input := `<DL><p>
	<DT><A HREF="https://youtu.be/f6kdp27TYZs"></A>
</DL><p>`

	items, _, err := importer.ParseHTMLBookmarks(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Title != "https://youtu.be/f6kdp27TYZs" {
		t.Errorf("expected URL fallback title, got %q", items[0].Title)
	}
}

func TestParseHTMLBookmarks_EmptyDocument(t *testing.T) {
	items, skipped, err := importer.ParseHTMLBookmarks(strings.NewReader("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 || skipped != 0 {
		t.Errorf("expected nothing from an empty document, got %d items, %d skipped", len(items), skipped)
	}
}
