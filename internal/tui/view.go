package tui

import (
	"strings"

	"github.com/nikbrunner/vt/internal/model"
)

// statusGlyphs mark video watch status in the tree.
var statusGlyphs = map[model.Status]string{
	model.StatusNone:       " ",
	model.StatusToWatch:    "○",
	model.StatusInProgress: "◐",
	model.StatusWatched:    "●",
	model.StatusImportant:  "★",
}

// View implements tea.Model.
func (a App) View() string {
	if a.mode == modeHelp {
		return a.styles.App.Render(a.renderHelp())
	}
	if a.mode == modeFilter {
		return a.styles.App.Render(a.renderFilter())
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("vt") + " " + a.styles.Empty.Render("videos") + "\n\n")
	b.WriteString(a.renderTree())
	b.WriteString(a.renderFooter())

	return a.styles.App.Render(b.String())
}

func (a App) renderTree() string {
	if len(a.rows) == 0 {
		return a.styles.Empty.Render("(empty - press a to add a video, A to add a group)") + "\n"
	}

	// Keep the cursor within the visible window.
	maxLines := a.height - 8
	if maxLines < 3 {
		maxLines = 3
	}
	start := 0
	if a.cursor >= maxLines {
		start = a.cursor - maxLines + 1
	}
	end := start + maxLines
	if end > len(a.rows) {
		end = len(a.rows)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		row := a.rows[i]
		b.WriteString(a.renderRow(row, i == a.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderRow(row Row, selected bool) string {
	indent := strings.Repeat("  ", row.Depth)

	var line string
	if row.Item.IsGroup() {
		marker := "▸"
		if row.Item.IsExpanded {
			marker = "▾"
		}
		line = indent + marker + " " + row.Item.Name
	} else {
		glyph := statusGlyphs[row.Item.Status]
		line = indent + glyph + " " + row.Item.Title
	}

	if row.Item.ID == a.cutID {
		line += " " + a.styles.Status.Render("(cut)")
	}

	if selected {
		return a.styles.RowSelected.Render(line)
	}
	if row.Item.IsGroup() {
		return a.styles.Row.Render(a.styles.Group.Render(line))
	}
	return a.styles.Row.Render(line)
}

func (a App) renderFooter() string {
	var b strings.Builder

	if selected := a.store.SelectedVideo(); selected != nil {
		b.WriteString("\n")
		b.WriteString(a.styles.Status.Render("▶ "+selected.Title) + "\n")
		b.WriteString(a.styles.URL.Render("  "+selected.SourceURL) + "\n")
	}

	switch a.mode {
	case modeAddVideo:
		b.WriteString("\n" + a.styles.Status.Render("add video: ") + a.input.View())
	case modeAddGroup:
		b.WriteString("\n" + a.styles.Status.Render("add group: ") + a.input.View())
	case modeEdit:
		b.WriteString("\n" + a.styles.Status.Render("rename: ") + a.input.View())
	case modeConfirmDelete:
		if row := a.currentRow(); row != nil {
			prompt := "delete \"" + row.Item.Label() + "\""
			if row.Item.IsGroup() {
				prompt += " and everything inside"
			}
			b.WriteString("\n" + a.styles.Error.Render(prompt+"? (y/n)"))
		}
	}

	if a.message != "" {
		style := a.styles.StatusBar
		if a.failed {
			style = a.styles.Error
		}
		b.WriteString("\n" + style.Render(a.message))
	}

	b.WriteString("\n" + a.styles.Help.Render("j/k: move  enter: select  a/A: add  d: delete  x/p: move  ?: help  q: quit"))
	return b.String()
}

func (a App) renderFilter() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("filter") + " " + a.input.View() + "\n\n")

	if len(a.filterResults) == 0 {
		b.WriteString(a.styles.Empty.Render("(no matches)"))
	}
	for i, result := range a.filterResults {
		line := result.Item.Label()
		if result.Item.IsGroup() {
			line = "▸ " + line
		}
		if i == a.filterCursor {
			b.WriteString(a.styles.RowSelected.Render(line))
		} else {
			b.WriteString(a.styles.Row.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + a.styles.Help.Render("up/down: move  enter: jump to item  esc: cancel"))
	return b.String()
}

func (a App) renderHelp() string {
	help := [][2]string{
		{"j/k", "move down/up"},
		{"gg/G", "jump to top/bottom"},
		{"h/l", "collapse/expand group"},
		{"enter", "select video / toggle group"},
		{"a", "add video"},
		{"A", "add group"},
		{"e", "rename"},
		{"d", "delete (cascades)"},
		{"x", "cut item"},
		{"p", "paste onto item (group: into, video: before)"},
		{"s", "cycle watch status"},
		{"o", "open in browser"},
		{"Y", "yank URL"},
		{"/", "filter"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("vt help") + "\n\n")
	for _, entry := range help {
		b.WriteString(a.styles.Status.Render(padRight(entry[0], 8)))
		b.WriteString(a.styles.Row.Render(entry[1]) + "\n")
	}
	b.WriteString("\n" + a.styles.Help.Render("press any key to close"))
	return b.String()
}

func padRight(s string, width int) string {
	for len(s) < width {
		s += " "
	}
	return s
}
