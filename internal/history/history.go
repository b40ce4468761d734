// Package history provides a best-effort store of past run configurations
// and totals. It is an external collaborator of the conversion core: read
// and write failures never fail a run.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vadondaniel/image-to-webp-optimizer/internal/config"
	"github.com/vadondaniel/image-to-webp-optimizer/internal/summary"
)

// MaxEntries caps the number of retained history entries. Older entries
// are dropped first.
const MaxEntries = 20

// Entry records one finished run: the configuration that produced it and
// its aggregate totals.
type Entry struct {
	Timestamp        time.Time            `json:"timestamp"`
	Folders          []string             `json:"folders"`
	Quality          int                  `json:"quality"`
	ArchiveFormat    config.ArchiveFormat `json:"archive_format"`
	ReplaceOriginals bool                 `json:"replace_originals"`
	SkipExistingWebP bool                 `json:"skip_existing_webp"`
	Cancelled        bool                 `json:"cancelled"`
	DurationSeconds  float64              `json:"duration_seconds"`
	Totals           summary.Totals       `json:"totals"`
}

// Store persists history entries as a JSON file.
type Store struct {
	path string
}

// DefaultPath returns the default history file following XDG Base Directory
// Spec: $XDG_STATE_HOME/webpopt/history.json.
func DefaultPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "webpopt", "history.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "webpopt", "history.json")
	}
	return filepath.Join(home, ".local", "state", "webpopt", "history.json")
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewEntry builds a history entry from a run's configuration and summary.
func NewEntry(cfg *config.Config, run *summary.RunSummary) Entry {
	return Entry{
		Timestamp:        time.Now(),
		Folders:          cfg.Folders,
		Quality:          cfg.Quality,
		ArchiveFormat:    cfg.ArchiveFormat,
		ReplaceOriginals: cfg.ReplaceOriginals,
		SkipExistingWebP: cfg.SkipExistingWebP,
		Cancelled:        run.Cancelled,
		DurationSeconds:  run.DurationSeconds,
		Totals:           run.Totals,
	}
}

// Append adds an entry, keeping at most MaxEntries newest entries.
func (s *Store) Append(entry Entry) error {
	entries, err := s.List()
	if err != nil {
		// A corrupt or unreadable file is replaced rather than fatal.
		entries = nil
	}

	entries = append(entries, entry)
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}

	return s.write(entries)
}

// List returns the stored entries, oldest first. A missing file yields an
// empty list.
func (s *Store) List() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history %s: %w", s.path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse history %s: %w", s.path, err)
	}
	return entries, nil
}

// Clear removes all stored entries.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear history %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) write(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write history %s: %w", s.path, err)
	}
	return nil
}
