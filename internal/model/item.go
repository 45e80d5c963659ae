package model

import "time"

// Kind discriminates the two item variants.
type Kind string

const (
	KindGroup Kind = "group"
	KindVideo Kind = "video"
)

// Status tracks watch progress on a video.
// An absent status means StatusNone; the two are equivalent everywhere.
type Status string

const (
	StatusNone       Status = "none"
	StatusToWatch    Status = "to-watch"
	StatusInProgress Status = "in-progress"
	StatusWatched    Status = "watched"
	StatusImportant  Status = "important"
)

// ValidStatus reports whether s is one of the five known statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNone, StatusToWatch, StatusInProgress, StatusWatched, StatusImportant:
		return true
	}
	return false
}

// NextStatus returns the status following s in cycle order.
func NextStatus(s Status) Status {
	switch s {
	case StatusNone:
		return StatusToWatch
	case StatusToWatch:
		return StatusInProgress
	case StatusInProgress:
		return StatusWatched
	case StatusWatched:
		return StatusImportant
	default:
		return StatusNone
	}
}

// Item is a single node in the forest: either a group (container) or a
// video (leaf). Kind decides which of the variant fields are meaningful.
type Item struct {
	ID        string
	Kind      Kind
	ParentID  *string // nil = root level
	Order     int
	CreatedAt int64 // epoch milliseconds

	// Group fields
	Name       string
	IsExpanded bool

	// Video fields
	Title       string
	SourceURL   string
	ExternalID  string
	Status      Status
	Description string
}

// IsGroup reports whether the item is a group.
func (i *Item) IsGroup() bool {
	return i.Kind == KindGroup
}

// IsVideo reports whether the item is a video.
func (i *Item) IsVideo() bool {
	return i.Kind == KindVideo
}

// Label returns the display text for the item regardless of kind.
func (i *Item) Label() string {
	if i.Kind == KindGroup {
		return i.Name
	}
	return i.Title
}

// nowMillis returns the current time as epoch milliseconds.
func nowMillis() int64 {
	return time.Now().UnixMilli()
}
