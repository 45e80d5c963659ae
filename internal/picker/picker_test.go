package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/vt/internal/model"
	"github.com/nikbrunner/vt/internal/search"
)

func pickerResults() []search.SearchResult {
	return []search.SearchResult{
		{Item: &model.Item{ID: "v1", Kind: model.KindVideo, Title: "Concurrency Patterns", SourceURL: "https://youtu.be/f6kdp27TYZs"}},
		{Item: &model.Item{ID: "v2", Kind: model.KindVideo, Title: "Understanding Channels", SourceURL: "https://youtu.be/oV9rvDllKEg", Status: model.StatusWatched}},
	}
}

func TestPicker_InitialState(t *testing.T) {
	p := New(pickerResults(), "chan")

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
	if len(p.results) != 2 {
		t.Errorf("expected 2 results, got %d", len(p.results))
	}
}

func TestPicker_Navigate(t *testing.T) {
	p := New(pickerResults(), "chan")

	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	p = newModel.(Picker)
	if p.cursor != 1 {
		t.Errorf("after j, expected cursor 1, got %d", p.cursor)
	}

	// j at bottom stays put
	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	p = newModel.(Picker)
	if p.cursor != 1 {
		t.Errorf("j at bottom should stay at 1, got %d", p.cursor)
	}

	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("after k, expected cursor 0, got %d", p.cursor)
	}

	// k at top stays put
	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("k at top should stay at 0, got %d", p.cursor)
	}
}

func TestPicker_ArrowKeys(t *testing.T) {
	p := New(pickerResults(), "chan")

	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p = newModel.(Picker)
	if p.cursor != 1 {
		t.Errorf("expected cursor 1 after down arrow, got %d", p.cursor)
	}

	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor 0 after up arrow, got %d", p.cursor)
	}
}

func TestPicker_SelectVideo(t *testing.T) {
	p := New(pickerResults(), "chan")
	p.cursor = 1

	newModel, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = newModel.(Picker)

	if !p.selected {
		t.Error("expected selected after Enter")
	}
	if cmd == nil {
		t.Error("expected quit command after selection")
	}
	if got := p.SelectedVideo(); got == nil || got.ID != "v2" {
		t.Errorf("expected v2, got %+v", got)
	}
}

func TestPicker_Cancel(t *testing.T) {
	p := New(pickerResults(), "chan")

	newModel, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	p = newModel.(Picker)

	if !p.cancelled {
		t.Error("expected cancelled after Esc")
	}
	if cmd == nil {
		t.Error("expected quit command after cancel")
	}
	if p.SelectedVideo() != nil {
		t.Error("expected nil selection when cancelled")
	}
}

func TestPicker_View(t *testing.T) {
	p := New(pickerResults(), "chan")

	view := p.View()
	if !strings.Contains(view, "Concurrency Patterns") {
		t.Error("expected result titles in view")
	}
	if !strings.Contains(view, "watched") {
		t.Error("expected status badge in view")
	}
	if !strings.Contains(view, "2 results") {
		t.Error("expected result count in header")
	}
}
