package model

import (
	"encoding/json"
	"fmt"
)

// groupRecord is the wire shape of a group item.
type groupRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ParentID  *string `json:"parentId"`
	Order     int     `json:"order"`
	Kind      Kind    `json:"kind"`
	IsExpanded bool   `json:"isExpanded"`
	CreatedAt int64   `json:"createdAt"`
}

// videoRecord is the wire shape of a video item.
type videoRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	SourceURL   string  `json:"sourceUrl"`
	ExternalID  string  `json:"externalId"`
	ParentID    *string `json:"parentId"`
	Order       int     `json:"order"`
	Kind        Kind    `json:"kind"`
	CreatedAt   int64   `json:"createdAt"`
	Status      Status  `json:"status,omitempty"`
	Description string  `json:"description,omitempty"`
}

// MarshalJSON emits the flat per-kind record shape. Video-only fields are
// omitted for groups and vice versa; a StatusNone status is omitted.
func (i Item) MarshalJSON() ([]byte, error) {
	switch i.Kind {
	case KindGroup:
		return json.Marshal(groupRecord{
			ID:         i.ID,
			Name:       i.Name,
			ParentID:   i.ParentID,
			Order:      i.Order,
			Kind:       KindGroup,
			IsExpanded: i.IsExpanded,
			CreatedAt:  i.CreatedAt,
		})
	case KindVideo:
		status := i.Status
		if status == StatusNone {
			status = ""
		}
		return json.Marshal(videoRecord{
			ID:          i.ID,
			Title:       i.Title,
			SourceURL:   i.SourceURL,
			ExternalID:  i.ExternalID,
			ParentID:    i.ParentID,
			Order:       i.Order,
			Kind:        KindVideo,
			CreatedAt:   i.CreatedAt,
			Status:      status,
			Description: i.Description,
		})
	}
	return nil, fmt.Errorf("unknown item kind %q", i.Kind)
}

// UnmarshalJSON reads either record shape, discriminated by kind.
// This path trusts its input; untrusted snapshots go through the importer.
func (i *Item) UnmarshalJSON(data []byte) error {
	var probe struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	switch probe.Kind {
	case KindGroup:
		var rec groupRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		*i = Item{
			ID:         rec.ID,
			Kind:       KindGroup,
			ParentID:   rec.ParentID,
			Order:      rec.Order,
			CreatedAt:  rec.CreatedAt,
			Name:       rec.Name,
			IsExpanded: rec.IsExpanded,
		}
		return nil
	case KindVideo:
		var rec videoRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		status := rec.Status
		if status == "" {
			status = StatusNone
		}
		*i = Item{
			ID:          rec.ID,
			Kind:        KindVideo,
			ParentID:    rec.ParentID,
			Order:       rec.Order,
			CreatedAt:   rec.CreatedAt,
			Title:       rec.Title,
			SourceURL:   rec.SourceURL,
			ExternalID:  rec.ExternalID,
			Status:      status,
			Description: rec.Description,
		}
		return nil
	}
	return fmt.Errorf("unknown item kind %q", probe.Kind)
}
