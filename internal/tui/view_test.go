package tui_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gotest.tools/v3/assert"

	"github.com/nikbrunner/vt/internal/model"
	"github.com/nikbrunner/vt/internal/tui"
)

func TestView_StatusGlyphs(t *testing.T) {
	store := model.NewStoreFromItems([]model.Item{
		{ID: "v1", Kind: model.KindVideo, Title: "Queued", Order: 0, Status: model.StatusToWatch},
		{ID: "v2", Kind: model.KindVideo, Title: "Halfway", Order: 1, Status: model.StatusInProgress},
		{ID: "v3", Kind: model.KindVideo, Title: "Done", Order: 2, Status: model.StatusWatched},
		{ID: "v4", Kind: model.KindVideo, Title: "Starred", Order: 3, Status: model.StatusImportant},
	})
	app := tui.NewApp(tui.AppParams{Store: store})

	view := app.View()
	assert.Assert(t, strings.Contains(view, "○ Queued"))
	assert.Assert(t, strings.Contains(view, "◐ Halfway"))
	assert.Assert(t, strings.Contains(view, "● Done"))
	assert.Assert(t, strings.Contains(view, "★ Starred"))
}

func TestView_GroupMarkers(t *testing.T) {
	store := model.NewStoreFromItems([]model.Item{
		{ID: "g1", Kind: model.KindGroup, Name: "Open", Order: 0, IsExpanded: true},
		{ID: "g2", Kind: model.KindGroup, Name: "Shut", Order: 1, IsExpanded: false},
	})
	app := tui.NewApp(tui.AppParams{Store: store})

	view := app.View()
	assert.Assert(t, strings.Contains(view, "▾ Open"))
	assert.Assert(t, strings.Contains(view, "▸ Shut"))
}

func TestView_EmptyState(t *testing.T) {
	app := tui.NewApp(tui.AppParams{Store: model.NewStore()})
	assert.Assert(t, strings.Contains(app.View(), "empty"))
}

func TestView_CutMarker(t *testing.T) {
	store := model.NewStoreFromItems([]model.Item{
		{ID: "v1", Kind: model.KindVideo, Title: "Moving", Order: 0},
	})
	app := tui.NewApp(tui.AppParams{Store: store})

	updated, _ := app.Update(keyRunes('x'))
	app = updated.(tui.App)

	assert.Assert(t, strings.Contains(app.View(), "(cut)"))
}

func TestView_SelectedVideoPanel(t *testing.T) {
	store := model.NewStoreFromItems([]model.Item{
		{ID: "v1", Kind: model.KindVideo, Title: "Playing", Order: 0,
			SourceURL: "https://youtu.be/f6kdp27TYZs"},
	})
	app := tui.NewApp(tui.AppParams{Store: store})

	updated, _ := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = updated.(tui.App)

	view := app.View()
	assert.Assert(t, strings.Contains(view, "▶ Playing"))
	assert.Assert(t, strings.Contains(view, "https://youtu.be/f6kdp27TYZs"))
}

func TestView_DeletePrompt(t *testing.T) {
	store := model.NewStoreFromItems([]model.Item{
		{ID: "g1", Kind: model.KindGroup, Name: "Doomed", Order: 0},
	})
	app := tui.NewApp(tui.AppParams{Store: store})

	updated, _ := app.Update(keyRunes('d'))
	app = updated.(tui.App)

	view := app.View()
	assert.Assert(t, strings.Contains(view, "Doomed"))
	assert.Assert(t, strings.Contains(view, "everything inside"))
	assert.Assert(t, strings.Contains(view, "(y/n)"))
}

func TestView_HelpOverlay(t *testing.T) {
	app := tui.NewApp(tui.AppParams{Store: model.NewStore()})

	updated, _ := app.Update(keyRunes('?'))
	app = updated.(tui.App)

	view := app.View()
	assert.Assert(t, strings.Contains(view, "cycle watch status"))
	assert.Assert(t, strings.Contains(view, "press any key to close"))

	// Any key closes help
	updated, _ = app.Update(keyRunes('x'))
	app = updated.(tui.App)
	assert.Assert(t, !strings.Contains(app.View(), "press any key to close"))
}

func TestView_FilterOverlay(t *testing.T) {
	store := model.NewStoreFromItems([]model.Item{
		{ID: "v1", Kind: model.KindVideo, Title: "Findable", Order: 0},
	})
	app := tui.NewApp(tui.AppParams{Store: store})

	updated, _ := app.Update(keyRunes('/'))
	app = updated.(tui.App)

	view := app.View()
	assert.Assert(t, strings.Contains(view, "filter"))
	assert.Assert(t, strings.Contains(view, "no matches"))

	for _, r := range "find" {
		updated, _ = app.Update(keyRunes(r))
		app = updated.(tui.App)
	}
	assert.Assert(t, strings.Contains(app.View(), "Findable"))
}
