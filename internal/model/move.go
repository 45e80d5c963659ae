package model

// Move is the single structural mutation primitive. It reparents the item
// and assigns its new order; it never renumbers other siblings. Callers
// needing insert-between semantics shift siblings first (see Drop).
func (s *Store) Move(id string, newParentID *string, newOrder int) error {
	item, ok := s.index[id]
	if !ok {
		return ErrNotFound
	}
	if err := s.checkParent(newParentID); err != nil {
		return err
	}
	if item.Kind == KindGroup && newParentID != nil && s.reaches(*newParentID, id) {
		return ErrCycle
	}

	item.ParentID = newParentID
	item.Order = newOrder
	return nil
}

// Drop applies the drag-and-drop policy using Move:
//
//   - dropped on a group: reparent into it, appended after its last child
//   - dropped on a video: take its slot under its parent; every sibling at
//     or past that slot shifts up by one, lowest order first, so order keys
//     never collide mid-shift
//
// A group dropped onto itself or one of its descendants fails with ErrCycle
// before any mutation, leaving the store untouched.
func (s *Store) Drop(id, targetID string) error {
	item, ok := s.index[id]
	if !ok {
		return ErrNotFound
	}
	target, ok := s.index[targetID]
	if !ok {
		return ErrNotFound
	}
	if id == targetID {
		return nil
	}

	if target.Kind == KindGroup {
		parentID := target.ID
		return s.Move(id, &parentID, s.nextOrder(&parentID))
	}

	newParentID := target.ParentID
	newOrder := target.Order

	if item.Kind == KindGroup && newParentID != nil && s.reaches(*newParentID, id) {
		return ErrCycle
	}

	for _, sibling := range s.Children(newParentID) {
		if sibling.ID == id {
			continue
		}
		if sibling.Order >= newOrder {
			if err := s.Move(sibling.ID, newParentID, sibling.Order+1); err != nil {
				return err
			}
		}
	}
	return s.Move(id, newParentID, newOrder)
}

// reaches reports whether the upward parent walk starting at fromID passes
// through targetID. The walk is bounded by the item count, so a corrupted
// key graph cannot loop forever.
func (s *Store) reaches(fromID, targetID string) bool {
	current := s.index[fromID]
	for steps := 0; current != nil && steps <= len(s.items); steps++ {
		if current.ID == targetID {
			return true
		}
		if current.ParentID == nil {
			return false
		}
		current = s.index[*current.ParentID]
	}
	return false
}
