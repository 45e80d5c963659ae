package model

import "sort"

// Store holds the item forest. Items live in an id-indexed arena; parent
// links are ids, never pointers, so every traversal is an index lookup and
// acyclicity is a checkable property of the key graph.
//
// The Store is the sole writer of structural fields (ParentID, Order).
type Store struct {
	items    []*Item // insertion order, used for tie-breaking
	index    map[string]*Item
	selected string // id of the selected video, "" = none
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		items: []*Item{},
		index: map[string]*Item{},
	}
}

// NewStoreFromItems creates a Store holding the given items in order.
// Later duplicates of an id are dropped.
func NewStoreFromItems(items []Item) *Store {
	s := NewStore()
	for i := range items {
		it := items[i]
		if _, ok := s.index[it.ID]; ok {
			continue
		}
		s.items = append(s.items, &it)
		s.index[it.ID] = &it
	}
	return s
}

// Len returns the number of items in the store.
func (s *Store) Len() int {
	return len(s.items)
}

// Get finds an item by id, returns nil if not found.
func (s *Store) Get(id string) *Item {
	return s.index[id]
}

// Items returns all items in insertion order.
func (s *Store) Items() []*Item {
	out := make([]*Item, len(s.items))
	copy(out, s.items)
	return out
}

// Snapshot returns a value copy of all items, safe to hand to another
// goroutine (the async persister).
func (s *Store) Snapshot() []Item {
	out := make([]Item, len(s.items))
	for i, it := range s.items {
		out[i] = *it
		if it.ParentID != nil {
			pid := *it.ParentID
			out[i].ParentID = &pid
		}
	}
	return out
}

// Children returns the items under the given parent, sorted by Order.
// Equal orders keep insertion order. Pass nil for root level items.
func (s *Store) Children(parentID *string) []*Item {
	var result []*Item
	for _, it := range s.items {
		if ptrEqual(it.ParentID, parentID) {
			result = append(result, it)
		}
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].Order < result[b].Order
	})
	return result
}

// AddVideoParams holds parameters for creating a new video.
type AddVideoParams struct {
	Title       string
	SourceURL   string
	ExternalID  string
	ParentID    *string
	Status      Status
	Description string
}

// AddVideo creates a video appended as the last sibling under ParentID.
func (s *Store) AddVideo(params AddVideoParams) (*Item, error) {
	if err := s.checkParent(params.ParentID); err != nil {
		return nil, err
	}

	status := params.Status
	if status == "" {
		status = StatusNone
	}

	item := &Item{
		ID:          GenerateUUID(),
		Kind:        KindVideo,
		ParentID:    params.ParentID,
		Order:       s.nextOrder(params.ParentID),
		CreatedAt:   nowMillis(),
		Title:       params.Title,
		SourceURL:   params.SourceURL,
		ExternalID:  params.ExternalID,
		Status:      status,
		Description: params.Description,
	}
	s.items = append(s.items, item)
	s.index[item.ID] = item
	return item, nil
}

// AddGroupParams holds parameters for creating a new group.
type AddGroupParams struct {
	Name     string
	ParentID *string
	Expanded bool
}

// AddGroup creates a group appended as the last sibling under ParentID.
func (s *Store) AddGroup(params AddGroupParams) (*Item, error) {
	if err := s.checkParent(params.ParentID); err != nil {
		return nil, err
	}

	item := &Item{
		ID:         GenerateUUID(),
		Kind:       KindGroup,
		ParentID:   params.ParentID,
		Order:      s.nextOrder(params.ParentID),
		CreatedAt:  nowMillis(),
		Name:       params.Name,
		IsExpanded: params.Expanded,
	}
	s.items = append(s.items, item)
	s.index[item.ID] = item
	return item, nil
}

// ItemUpdate holds a partial field merge for Update. Nil fields are left
// untouched; id, kind and the structural fields cannot be written here.
type ItemUpdate struct {
	Name        *string
	IsExpanded  *bool
	Title       *string
	SourceURL   *string
	ExternalID  *string
	Status      *Status
	Description *string
}

// Update merges the given fields into the item. Fields that do not apply
// to the item's kind are ignored.
func (s *Store) Update(id string, u ItemUpdate) error {
	item, ok := s.index[id]
	if !ok {
		return ErrNotFound
	}

	switch item.Kind {
	case KindGroup:
		if u.Name != nil {
			item.Name = *u.Name
		}
		if u.IsExpanded != nil {
			item.IsExpanded = *u.IsExpanded
		}
	case KindVideo:
		if u.Title != nil {
			item.Title = *u.Title
		}
		if u.SourceURL != nil {
			item.SourceURL = *u.SourceURL
		}
		if u.ExternalID != nil {
			item.ExternalID = *u.ExternalID
		}
		if u.Status != nil {
			item.Status = *u.Status
		}
		if u.Description != nil {
			item.Description = *u.Description
		}
	}
	return nil
}

// Remove deletes the item and every descendant in one step. Unknown ids
// are a silent no-op; calling Remove twice with a stale id is safe.
func (s *Store) Remove(id string) {
	if _, ok := s.index[id]; !ok {
		return
	}

	// Collect the doomed set with an explicit worklist; no recursion,
	// so arbitrarily deep trees cost no stack.
	doomed := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, it := range s.items {
			if it.ParentID != nil && *it.ParentID == current && !doomed[it.ID] {
				doomed[it.ID] = true
				queue = append(queue, it.ID)
			}
		}
	}

	kept := make([]*Item, 0, len(s.items)-len(doomed))
	for _, it := range s.items {
		if doomed[it.ID] {
			delete(s.index, it.ID)
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept

	if doomed[s.selected] {
		s.selected = ""
	}
}

// ToggleExpanded flips IsExpanded on a group. No-op on unknown ids and
// on videos.
func (s *Store) ToggleExpanded(id string) {
	item, ok := s.index[id]
	if !ok || item.Kind != KindGroup {
		return
	}
	item.IsExpanded = !item.IsExpanded
}

// SelectVideo marks a video as selected. Passing an unknown id or a group
// id clears the selection.
func (s *Store) SelectVideo(id string) {
	item, ok := s.index[id]
	if !ok || item.Kind != KindVideo {
		s.selected = ""
		return
	}
	s.selected = id
}

// ClearSelection drops the current selection.
func (s *Store) ClearSelection() {
	s.selected = ""
}

// SelectedVideo returns the selected video, or nil when none is selected.
func (s *Store) SelectedVideo() *Item {
	if s.selected == "" {
		return nil
	}
	return s.index[s.selected]
}

// Replace swaps the entire item set atomically and resets the selection.
// The caller is expected to pass an already validated set.
func (s *Store) Replace(items []Item) {
	s.items = s.items[:0]
	s.index = make(map[string]*Item, len(items))
	s.selected = ""
	for i := range items {
		it := items[i]
		if _, ok := s.index[it.ID]; ok {
			continue
		}
		s.items = append(s.items, &it)
		s.index[it.ID] = &it
	}
}

// checkParent verifies that parentID is nil or references an existing group.
func (s *Store) checkParent(parentID *string) error {
	if parentID == nil {
		return nil
	}
	parent, ok := s.index[*parentID]
	if !ok || parent.Kind != KindGroup {
		return ErrInvalidParent
	}
	return nil
}

// nextOrder returns max sibling order + 1, or 0 when there are no siblings.
func (s *Store) nextOrder(parentID *string) int {
	next := 0
	for _, it := range s.items {
		if ptrEqual(it.ParentID, parentID) && it.Order >= next {
			next = it.Order + 1
		}
	}
	return next
}

// ptrEqual compares two string pointers for equality.
func ptrEqual(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
