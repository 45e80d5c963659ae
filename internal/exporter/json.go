// Package exporter flattens the item forest into the snapshot format the
// importer accepts, so export followed by import round-trips.
package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nikbrunner/vt/internal/model"
)

// Marshal serializes items to a compact snapshot.
func Marshal(items []model.Item) ([]byte, error) {
	return json.Marshal(items)
}

// MarshalIndent serializes items to a pretty-printed snapshot.
func MarshalIndent(items []model.Item) ([]byte, error) {
	return json.MarshalIndent(items, "", "  ")
}

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/vt-export-YYYY-MM-DD.json
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("vt-export-%s.json", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}
