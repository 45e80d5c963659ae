package tui

import "github.com/nikbrunner/vt/internal/model"

// Row is one visible line of the tree: an item plus its indent depth.
type Row struct {
	Item  *model.Item
	Depth int
}

// visibleRows flattens the forest into display order. Children of
// collapsed groups are hidden. Uses an explicit stack, so deep trees
// don't cost recursion depth.
func visibleRows(store *model.Store) []Row {
	type frame struct {
		item  *model.Item
		depth int
	}

	var stack []frame
	roots := store.Children(nil)
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{item: roots[i], depth: 0})
	}

	var rows []Row
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		rows = append(rows, Row{Item: top.item, Depth: top.depth})

		if top.item.IsGroup() && top.item.IsExpanded {
			children := store.Children(&top.item.ID)
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, frame{item: children[i], depth: top.depth + 1})
			}
		}
	}
	return rows
}

// rowIndex returns the index of the row holding id, or -1.
func rowIndex(rows []Row, id string) int {
	for i, row := range rows {
		if row.Item.ID == id {
			return i
		}
	}
	return -1
}
