package tui

import (
	"context"
	"errors"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/vt/internal/model"
	"github.com/nikbrunner/vt/internal/search"
	"github.com/nikbrunner/vt/internal/storage"
	"github.com/nikbrunner/vt/internal/youtube"
)

// mode is the current interaction mode of the app.
type mode int

const (
	modeNormal mode = iota
	modeAddVideo
	modeAddGroup
	modeEdit
	modeConfirmDelete
	modeFilter
	modeHelp
)

// titleFetchedMsg carries the result of an advisory title lookup.
type titleFetchedMsg struct {
	id    string
	title string
	seq   int
}

// saveErrorMsg carries an asynchronous persistence failure.
type saveErrorMsg struct {
	err error
}

// App is the main bubbletea model for the video tree.
type App struct {
	store  *model.Store
	config storage.Config
	saver  *storage.Autosaver // nil = no background persistence
	keys   KeyMap
	styles Styles

	rows   []Row
	cursor int

	mode    mode
	input   textinput.Model
	editID  string
	cutID   string
	message string
	failed  bool // message is an error

	filterResults []search.SearchResult
	filterCursor  int

	// Advisory title fetches: a newer request supersedes and cancels
	// the one in flight.
	fetchSeq    int
	titleCancel context.CancelFunc

	// For gg command
	lastKeyWasG bool

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store  *model.Store
	Config *storage.Config // optional, uses defaults if nil
	Saver  *storage.Autosaver
	Keys   *KeyMap // optional, uses default if nil
	Styles *Styles // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	config := storage.DefaultConfig()
	if params.Config != nil {
		config = *params.Config
	}

	input := textinput.New()
	input.CharLimit = 2048
	input.Width = 60

	app := App{
		store:  params.Store,
		config: config,
		saver:  params.Saver,
		keys:   keys,
		styles: styles,
		input:  input,
		width:  80,
		height: 24,
	}

	app.refreshRows()
	return app
}

// Store returns the underlying store.
func (a App) Store() *model.Store {
	return a.store
}

// Rows returns the currently visible rows.
func (a App) Rows() []Row {
	return a.rows
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// refreshRows rebuilds the visible rows and clamps the cursor.
func (a *App) refreshRows() {
	a.rows = visibleRows(a.store)
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// currentRow returns the row under the cursor, or nil when the tree is empty.
func (a *App) currentRow() *Row {
	if len(a.rows) == 0 || a.cursor >= len(a.rows) {
		return nil
	}
	return &a.rows[a.cursor]
}

// targetParentID decides where newly created items go: into the group
// under the cursor if it is expanded, otherwise next to the cursor item.
func (a *App) targetParentID() *string {
	row := a.currentRow()
	if row == nil {
		return nil
	}
	if row.Item.IsGroup() && row.Item.IsExpanded {
		id := row.Item.ID
		return &id
	}
	return row.Item.ParentID
}

// persist hands a snapshot to the async saver. The in-memory mutation is
// already complete; durability never blocks the UI.
func (a *App) persist() {
	if a.saver != nil {
		a.saver.Save(a.store.Snapshot())
	}
}

// listenForSaveErrors surfaces async persistence failures in the status bar.
func (a App) listenForSaveErrors() tea.Cmd {
	if a.saver == nil {
		return nil
	}
	errs := a.saver.Errors()
	return func() tea.Msg {
		err, ok := <-errs
		if !ok {
			return nil
		}
		return saveErrorMsg{err: err}
	}
}

// fetchTitle starts an advisory title lookup, cancelling any in flight.
func (a *App) fetchTitle(id, sourceURL string) tea.Cmd {
	if a.titleCancel != nil {
		a.titleCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.titleCancel = cancel
	a.fetchSeq++
	seq := a.fetchSeq

	return func() tea.Msg {
		title, err := youtube.FetchTitle(ctx, sourceURL)
		if err != nil {
			return titleFetchedMsg{seq: seq}
		}
		return titleFetchedMsg{id: id, title: title, seq: seq}
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.listenForSaveErrors()
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case saveErrorMsg:
		a.message = "save failed: " + msg.err.Error()
		a.failed = true
		return a, a.listenForSaveErrors()

	case titleFetchedMsg:
		// Stale results from superseded fetches are dropped silently.
		if msg.seq != a.fetchSeq || msg.id == "" || msg.title == "" {
			return a, nil
		}
		title := msg.title
		if err := a.store.Update(msg.id, model.ItemUpdate{Title: &title}); err == nil {
			a.persist()
			a.refreshRows()
		}
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case modeNormal:
			return a.updateNormal(msg)
		case modeFilter:
			return a.updateFilter(msg)
		case modeConfirmDelete:
			return a.updateConfirmDelete(msg)
		case modeHelp:
			a.mode = modeNormal
			return a, nil
		default:
			return a.updateInput(msg)
		}
	}

	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false
	a.message = ""
	a.failed = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if len(a.rows) > 0 && a.cursor < len(a.rows)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.rows) > 0 {
			a.cursor = len(a.rows) - 1
		}

	case key.Matches(msg, a.keys.Expand):
		if row := a.currentRow(); row != nil && row.Item.IsGroup() && !row.Item.IsExpanded {
			a.store.ToggleExpanded(row.Item.ID)
			a.persist()
			a.refreshRows()
		}

	case key.Matches(msg, a.keys.Collapse):
		row := a.currentRow()
		if row == nil {
			break
		}
		if row.Item.IsGroup() && row.Item.IsExpanded {
			a.store.ToggleExpanded(row.Item.ID)
			a.persist()
			a.refreshRows()
		} else if row.Item.ParentID != nil {
			if idx := rowIndex(a.rows, *row.Item.ParentID); idx >= 0 {
				a.cursor = idx
			}
		}

	case key.Matches(msg, a.keys.Confirm):
		row := a.currentRow()
		if row == nil {
			break
		}
		if row.Item.IsGroup() {
			a.store.ToggleExpanded(row.Item.ID)
			a.persist()
			a.refreshRows()
		} else {
			a.store.SelectVideo(row.Item.ID)
		}

	case key.Matches(msg, a.keys.AddVideo):
		a.mode = modeAddVideo
		a.input.Placeholder = "https://www.youtube.com/watch?v=..."
		a.input.SetValue("")
		a.input.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.AddGroup):
		a.mode = modeAddGroup
		a.input.Placeholder = "Group name"
		a.input.SetValue("")
		a.input.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Edit):
		row := a.currentRow()
		if row == nil {
			break
		}
		a.mode = modeEdit
		a.editID = row.Item.ID
		a.input.Placeholder = ""
		a.input.SetValue(row.Item.Label())
		a.input.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Delete):
		if a.currentRow() != nil {
			a.mode = modeConfirmDelete
		}

	case key.Matches(msg, a.keys.Cut):
		if row := a.currentRow(); row != nil {
			a.cutID = row.Item.ID
			a.message = "cut: " + row.Item.Label()
		}

	case key.Matches(msg, a.keys.Paste):
		row := a.currentRow()
		if a.cutID == "" || row == nil {
			break
		}
		switch err := a.store.Drop(a.cutID, row.Item.ID); {
		case errors.Is(err, model.ErrCycle):
			a.message = "refused: cannot move a group into itself"
			a.failed = true
		case err != nil:
			a.message = err.Error()
			a.failed = true
		default:
			a.cutID = ""
			a.persist()
			a.refreshRows()
		}

	case key.Matches(msg, a.keys.Status):
		row := a.currentRow()
		if row == nil || !row.Item.IsVideo() {
			break
		}
		next := model.NextStatus(row.Item.Status)
		if err := a.store.Update(row.Item.ID, model.ItemUpdate{Status: &next}); err == nil {
			a.persist()
		}

	case key.Matches(msg, a.keys.Open):
		if row := a.currentRow(); row != nil && row.Item.IsVideo() {
			openURL(row.Item.SourceURL)
		}

	case key.Matches(msg, a.keys.YankURL):
		if row := a.currentRow(); row != nil && row.Item.IsVideo() {
			if err := clipboard.WriteAll(row.Item.SourceURL); err == nil {
				a.message = "yanked URL"
			}
		}

	case key.Matches(msg, a.keys.Filter):
		a.mode = modeFilter
		a.input.Placeholder = "Filter..."
		a.input.SetValue("")
		a.input.Focus()
		a.filterResults = nil
		a.filterCursor = 0
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Help):
		a.mode = modeHelp
	}

	return a, nil
}

func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = modeNormal
		a.input.Blur()
		return a, nil

	case tea.KeyEnter:
		value := a.input.Value()
		a.input.Blur()
		mode := a.mode
		a.mode = modeNormal

		switch mode {
		case modeAddVideo:
			return a.submitAddVideo(value)
		case modeAddGroup:
			return a.submitAddGroup(value)
		case modeEdit:
			return a.submitEdit(value)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) submitAddVideo(rawURL string) (tea.Model, tea.Cmd) {
	externalID, ok := youtube.ExtractID(rawURL)
	if !ok {
		a.message = "not a YouTube URL"
		a.failed = true
		return a, nil
	}

	item, err := a.store.AddVideo(model.AddVideoParams{
		Title:      rawURL,
		SourceURL:  rawURL,
		ExternalID: externalID,
		ParentID:   a.targetParentID(),
	})
	if err != nil {
		a.message = err.Error()
		a.failed = true
		return a, nil
	}

	a.persist()
	a.refreshRows()
	if idx := rowIndex(a.rows, item.ID); idx >= 0 {
		a.cursor = idx
	}

	if a.config.AutoFetchTitles {
		return a, a.fetchTitle(item.ID, rawURL)
	}
	return a, nil
}

func (a App) submitAddGroup(name string) (tea.Model, tea.Cmd) {
	if name == "" {
		return a, nil
	}

	item, err := a.store.AddGroup(model.AddGroupParams{
		Name:     name,
		ParentID: a.targetParentID(),
		Expanded: a.config.ExpandNewGroups,
	})
	if err != nil {
		a.message = err.Error()
		a.failed = true
		return a, nil
	}

	a.persist()
	a.refreshRows()
	if idx := rowIndex(a.rows, item.ID); idx >= 0 {
		a.cursor = idx
	}
	return a, nil
}

func (a App) submitEdit(value string) (tea.Model, tea.Cmd) {
	item := a.store.Get(a.editID)
	a.editID = ""
	if item == nil || value == "" {
		return a, nil
	}

	var update model.ItemUpdate
	if item.IsGroup() {
		update.Name = &value
	} else {
		update.Title = &value
	}
	if err := a.store.Update(item.ID, update); err == nil {
		a.persist()
		a.refreshRows()
	}
	return a, nil
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		if row := a.currentRow(); row != nil {
			a.store.Remove(row.Item.ID)
			a.persist()
			a.refreshRows()
		}
		a.mode = modeNormal
	case "n", "N", "esc", "q":
		a.mode = modeNormal
	}
	return a, nil
}

func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = modeNormal
		a.input.Blur()
		return a, nil

	case tea.KeyEnter:
		a.input.Blur()
		a.mode = modeNormal
		if a.filterCursor < len(a.filterResults) {
			a.revealItem(a.filterResults[a.filterCursor].Item.ID)
		}
		return a, nil

	case tea.KeyDown, tea.KeyCtrlN:
		if a.filterCursor < len(a.filterResults)-1 {
			a.filterCursor++
		}
		return a, nil

	case tea.KeyUp, tea.KeyCtrlP:
		if a.filterCursor > 0 {
			a.filterCursor--
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.filterResults = search.FuzzySearch(a.store.Items(), a.input.Value())
	a.filterCursor = 0
	return a, cmd
}

// revealItem expands every ancestor of id and moves the cursor onto it.
func (a *App) revealItem(id string) {
	item := a.store.Get(id)
	if item == nil {
		return
	}

	parentID := item.ParentID
	for steps := 0; parentID != nil && steps <= a.store.Len(); steps++ {
		parent := a.store.Get(*parentID)
		if parent == nil {
			break
		}
		if parent.IsGroup() && !parent.IsExpanded {
			a.store.ToggleExpanded(parent.ID)
		}
		parentID = parent.ParentID
	}

	a.refreshRows()
	if idx := rowIndex(a.rows, id); idx >= 0 {
		a.cursor = idx
	}
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}
