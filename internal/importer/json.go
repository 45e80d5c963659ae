// Package importer validates untrusted snapshots before they may replace
// the store's contents.
package importer

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strings"

	"github.com/nikbrunner/vt/internal/model"
)

const (
	// MaxBytes is the input size cap callers must enforce before reading
	// a snapshot into memory.
	MaxBytes = 10 * 1024 * 1024

	// MaxItems caps the number of items in a single snapshot.
	MaxItems = 10000
)

// uuidPattern matches UUID v4 exactly.
var uuidPattern = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// externalIDPattern is the exact 11-character video id format.
var externalIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)

// sourceURLPrefixes is the allow-list of accepted video URL prefixes.
var sourceURLPrefixes = []string{
	"https://www.youtube.com/",
	"https://youtube.com/",
	"https://youtu.be/",
}

// forbiddenKeys are key names associated with prototype-pollution payloads.
// Snapshots are interchange files for web clients too, so these are
// rejected at any depth before any schema interpretation.
var forbiddenKeys = map[string]bool{
	"__proto__":   true,
	"constructor": true,
	"prototype":   true,
}

// Validate checks an untrusted snapshot blob and returns the sanitized
// item set, or the first failure. The result is all-or-nothing.
func Validate(data []byte) ([]model.Item, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, ErrMalformedJSON
	}

	// Key names are the danger here, not field values, so this scan runs
	// before the shape is interpreted at all.
	if hasForbiddenKeys(parsed) {
		return nil, ErrForbiddenKeys
	}

	list, ok := parsed.([]any)
	if !ok {
		return nil, ErrNotAnArray
	}
	if len(list) > MaxItems {
		return nil, ErrTooManyItems
	}

	seen := make(map[string]bool, len(list))
	items := make([]model.Item, 0, len(list))
	for i, raw := range list {
		item, ok := validateItem(raw)
		if !ok {
			return nil, &ItemError{Index: i}
		}
		if seen[item.ID] {
			return nil, &DuplicateIDError{ID: item.ID}
		}
		seen[item.ID] = true

		// Sanitize only after the item validated, so stripping can never
		// mask a validation failure.
		sanitizeItem(&item)
		items = append(items, item)
	}

	for i := range items {
		if items[i].ParentID != nil && !seen[*items[i].ParentID] {
			return nil, &DanglingParentError{ID: *items[i].ParentID}
		}
	}

	if id, found := findCycle(items); found {
		return nil, &CircularReferenceError{ID: id}
	}

	return items, nil
}

// hasForbiddenKeys recursively scans maps and lists for reserved key names.
func hasForbiddenKeys(value any) bool {
	switch v := value.(type) {
	case map[string]any:
		for key, nested := range v {
			if forbiddenKeys[key] || hasForbiddenKeys(nested) {
				return true
			}
		}
	case []any:
		for _, nested := range v {
			if hasForbiddenKeys(nested) {
				return true
			}
		}
	}
	return false
}

// validateItem checks one raw record by type and by domain constraint.
func validateItem(raw any) (model.Item, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return model.Item{}, false
	}

	switch obj["kind"] {
	case string(model.KindVideo):
		return validateVideo(obj)
	case string(model.KindGroup):
		return validateGroup(obj)
	}
	return model.Item{}, false
}

func validateVideo(obj map[string]any) (model.Item, bool) {
	id, ok := uuidField(obj["id"])
	if !ok {
		return model.Item{}, false
	}
	parentID, ok := nullableUUIDField(obj["parentId"])
	if !ok {
		return model.Item{}, false
	}
	order, ok := orderField(obj["order"])
	if !ok {
		return model.Item{}, false
	}
	createdAt, ok := timestampField(obj["createdAt"])
	if !ok {
		return model.Item{}, false
	}

	title, ok := obj["title"].(string)
	if !ok || title == "" {
		return model.Item{}, false
	}
	sourceURL, ok := obj["sourceUrl"].(string)
	if !ok || sourceURL == "" {
		return model.Item{}, false
	}
	externalID, ok := obj["externalId"].(string)
	if !ok || !externalIDPattern.MatchString(externalID) {
		return model.Item{}, false
	}
	if !allowedSourceURL(sourceURL) {
		return model.Item{}, false
	}

	status := model.StatusNone
	if rawStatus, present := obj["status"]; present {
		str, ok := rawStatus.(string)
		if !ok || !model.ValidStatus(model.Status(str)) {
			return model.Item{}, false
		}
		status = model.Status(str)
	}

	description := ""
	if rawDesc, present := obj["description"]; present {
		str, ok := rawDesc.(string)
		if !ok {
			return model.Item{}, false
		}
		description = str
	}

	return model.Item{
		ID:          id,
		Kind:        model.KindVideo,
		ParentID:    parentID,
		Order:       order,
		CreatedAt:   createdAt,
		Title:       title,
		SourceURL:   sourceURL,
		ExternalID:  externalID,
		Status:      status,
		Description: description,
	}, true
}

func validateGroup(obj map[string]any) (model.Item, bool) {
	id, ok := uuidField(obj["id"])
	if !ok {
		return model.Item{}, false
	}
	parentID, ok := nullableUUIDField(obj["parentId"])
	if !ok {
		return model.Item{}, false
	}
	order, ok := orderField(obj["order"])
	if !ok {
		return model.Item{}, false
	}
	createdAt, ok := timestampField(obj["createdAt"])
	if !ok {
		return model.Item{}, false
	}

	name, ok := obj["name"].(string)
	if !ok || name == "" {
		return model.Item{}, false
	}
	isExpanded, ok := obj["isExpanded"].(bool)
	if !ok {
		return model.Item{}, false
	}

	return model.Item{
		ID:         id,
		Kind:       model.KindGroup,
		ParentID:   parentID,
		Order:      order,
		CreatedAt:  createdAt,
		Name:       name,
		IsExpanded: isExpanded,
	}, true
}

func uuidField(value any) (string, bool) {
	str, ok := value.(string)
	if !ok || !uuidPattern.MatchString(str) {
		return "", false
	}
	return str, true
}

func nullableUUIDField(value any) (*string, bool) {
	if value == nil {
		return nil, true
	}
	str, ok := uuidField(value)
	if !ok {
		return nil, false
	}
	return &str, true
}

// orderField accepts a non-negative finite integral number.
func orderField(value any) (int, bool) {
	f, ok := value.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// timestampField accepts any non-negative finite number; fractional
// milliseconds are truncated.
func timestampField(value any) (int64, bool) {
	f, ok := value.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	return int64(f), true
}

func allowedSourceURL(sourceURL string) bool {
	for _, prefix := range sourceURLPrefixes {
		if strings.HasPrefix(sourceURL, prefix) {
			return true
		}
	}
	return false
}

// sanitizeItem strips control characters from every free-text field.
func sanitizeItem(item *model.Item) {
	item.Title = sanitizeString(item.Title)
	item.Name = sanitizeString(item.Name)
	item.Description = sanitizeString(item.Description)
}

// sanitizeString removes control characters below 0x20, except newline
// and tab, plus DEL (0x7F).
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7F {
			return -1
		}
		return r
	}, s)
}

// findCycle walks upward from every item with a visited set and returns
// the first id at which a cycle closes. Covers self-parenting and longer
// cycles regardless of kind.
func findCycle(items []model.Item) (string, bool) {
	byID := make(map[string]*model.Item, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	for i := range items {
		visited := make(map[string]bool)
		current := &items[i]
		for current != nil {
			if visited[current.ID] {
				return current.ID, true
			}
			visited[current.ID] = true
			if current.ParentID == nil {
				break
			}
			current = byID[*current.ParentID]
		}
	}
	return "", false
}
