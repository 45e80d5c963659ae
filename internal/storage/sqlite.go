package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/vt/internal/model"
)

const currentSchemaVersion = 1

// SQLiteStorage implements Storage using a SQLite database with one table
// per item kind, mirroring the snapshot record shape.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS groups (
			id TEXT PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			parent_id TEXT,
			sort_order INTEGER NOT NULL DEFAULT 0,
			expanded INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			FOREIGN KEY (parent_id) REFERENCES groups(id) ON DELETE SET NULL
		);

		CREATE INDEX IF NOT EXISTS idx_groups_parent_id ON groups(parent_id);

		CREATE TABLE IF NOT EXISTS videos (
			id TEXT PRIMARY KEY NOT NULL,
			title TEXT NOT NULL,
			source_url TEXT NOT NULL,
			external_id TEXT NOT NULL,
			parent_id TEXT,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'none',
			description TEXT NOT NULL DEFAULT '',
			FOREIGN KEY (parent_id) REFERENCES groups(id) ON DELETE SET NULL
		);

		CREATE INDEX IF NOT EXISTS idx_videos_parent_id ON videos(parent_id);
		CREATE INDEX IF NOT EXISTS idx_videos_external_id ON videos(external_id);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads all items from the SQLite database, groups first.
func (s *SQLiteStorage) Load() ([]model.Item, error) {
	items := []model.Item{}

	rows, err := s.db.Query(`
		SELECT id, name, parent_id, sort_order, expanded, created_at
		FROM groups
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item := model.Item{Kind: model.KindGroup}
		var parentID sql.NullString
		var expanded int

		if err := rows.Scan(&item.ID, &item.Name, &parentID, &item.Order, &expanded, &item.CreatedAt); err != nil {
			return nil, err
		}

		if parentID.Valid {
			item.ParentID = &parentID.String
		}
		item.IsExpanded = expanded == 1

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT id, title, source_url, external_id, parent_id, sort_order, created_at, status, description
		FROM videos
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item := model.Item{Kind: model.KindVideo}
		var parentID sql.NullString
		var status string

		if err := rows.Scan(
			&item.ID, &item.Title, &item.SourceURL, &item.ExternalID,
			&parentID, &item.Order, &item.CreatedAt, &status, &item.Description,
		); err != nil {
			return nil, err
		}

		if parentID.Valid {
			item.ParentID = &parentID.String
		}
		item.Status = model.Status(status)
		if item.Status == "" {
			item.Status = model.StatusNone
		}

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Save writes the full item set to the SQLite database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(items []model.Item) error {
	// Temporarily disable foreign key checks for bulk insert
	// (groups may reference parents that haven't been inserted yet)
	// Note: PRAGMA foreign_keys cannot be changed inside a transaction
	if _, err := s.db.Exec("PRAGMA foreign_keys = OFF"); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		s.db.Exec("PRAGMA foreign_keys = ON")
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM videos"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM groups"); err != nil {
		return err
	}

	groupStmt, err := tx.Prepare(`
		INSERT INTO groups (id, name, parent_id, sort_order, expanded, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer groupStmt.Close()

	videoStmt, err := tx.Prepare(`
		INSERT INTO videos (id, title, source_url, external_id, parent_id, sort_order, created_at, status, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer videoStmt.Close()

	for _, item := range items {
		switch item.Kind {
		case model.KindGroup:
			expanded := 0
			if item.IsExpanded {
				expanded = 1
			}
			if _, err := groupStmt.Exec(item.ID, item.Name, item.ParentID, item.Order, expanded, item.CreatedAt); err != nil {
				return err
			}
		case model.KindVideo:
			status := item.Status
			if status == "" {
				status = model.StatusNone
			}
			if _, err := videoStmt.Exec(
				item.ID, item.Title, item.SourceURL, item.ExternalID,
				item.ParentID, item.Order, item.CreatedAt, string(status), item.Description,
			); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	_, _ = s.db.Exec("PRAGMA foreign_keys = ON")

	return nil
}

// DefaultSQLitePath returns the default database path: ~/.config/vt/videos.db
func DefaultSQLitePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "vt", "videos.db"), nil
}
