package settings

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inovacc/curatr/internal/model"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS view_settings (
	page    TEXT PRIMARY KEY,
	history TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS config (
	id   INTEGER PRIMARY KEY CHECK (id = 1),
	data TEXT NOT NULL
);
`

// SQLite implements the Store interface using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// NewSQLite creates a new SQLite settings store with the given database path.
func NewSQLite(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't handle multiple writers well
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Load returns the current settings for the page, or defaults when unset.
func (s *SQLite) Load(page string) (model.ViewSettings, error) {
	var h history

	found, err := s.loadHistory(page, &h)
	if err != nil {
		return model.ViewSettings{}, err
	}

	if found {
		if vs, ok := h.current(); ok {
			return vs, nil
		}
	}

	return model.DefaultViewSettings(), nil
}

// Save persists vs as the page's current settings using the given mode.
func (s *SQLite) Save(page string, vs model.ViewSettings, mode SaveMode) error {
	var h history

	if _, err := s.loadHistory(page, &h); err != nil {
		return err
	}

	h.apply(vs, mode)

	return s.saveHistory(page, &h)
}

// Back moves to the previously pushed entry for the page.
func (s *SQLite) Back(page string) (model.ViewSettings, bool, error) {
	return s.step(page, (*history).back)
}

// Forward undoes a Back for the page.
func (s *SQLite) Forward(page string) (model.ViewSettings, bool, error) {
	return s.step(page, (*history).forward)
}

func (s *SQLite) step(page string, move func(*history) (model.ViewSettings, bool)) (model.ViewSettings, bool, error) {
	var h history

	if _, err := s.loadHistory(page, &h); err != nil {
		return model.ViewSettings{}, false, err
	}

	vs, ok := move(&h)
	if !ok {
		return model.ViewSettings{}, false, nil
	}

	if err := s.saveHistory(page, &h); err != nil {
		return model.ViewSettings{}, false, err
	}

	return vs, true, nil
}

// GetConfig returns the stored application configuration, or defaults.
func (s *SQLite) GetConfig() (*model.Config, error) {
	var data string

	err := s.db.QueryRow(`SELECT data FROM config WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		def := model.DefaultConfig()

		return &def, nil
	}

	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var cfg model.Config
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig persists the application configuration.
func (s *SQLite) SaveConfig(cfg *model.Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	_, err = s.db.Exec(`INSERT INTO config (id, data) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data`, string(raw))

	return err
}

func (s *SQLite) loadHistory(page string, h *history) (bool, error) {
	var raw string

	err := s.db.QueryRow(`SELECT history FROM view_settings WHERE page = ?`, page).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("load settings for page %q: %w", page, err)
	}

	if err := json.Unmarshal([]byte(raw), h); err != nil {
		return false, fmt.Errorf("decode settings for page %q: %w", page, err)
	}

	return true, nil
}

func (s *SQLite) saveHistory(page string, h *history) error {
	raw, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("encode settings for page %q: %w", page, err)
	}

	_, err = s.db.Exec(`INSERT INTO view_settings (page, history) VALUES (?, ?)
		ON CONFLICT (page) DO UPDATE SET history = excluded.history`, page, string(raw))

	return err
}
