package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adityarawat/prepometer/internal/constants"
	"github.com/adityarawat/prepometer/internal/ident"
	"github.com/adityarawat/prepometer/internal/logger"
	"github.com/adityarawat/prepometer/internal/models"
)

// JSONStore keeps each collection in its own file under the config dir,
// one serialized array per file.
type JSONStore struct {
	dir string
}

func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

func (s *JSONStore) Init() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) checklistPath() string {
	return filepath.Join(s.dir, constants.ChecklistFile)
}

func (s *JSONStore) dailyLogPath() string {
	return filepath.Join(s.dir, constants.DailyLogFile)
}

func (s *JSONStore) LoadChecklist() []models.ChecklistItem {
	var items []models.ChecklistItem
	if !s.loadCollection(s.checklistPath(), &items) || items == nil {
		return s.seedChecklist()
	}
	return items
}

// seedChecklist mints the default topics and writes them back right away,
// so the seeded ids stay stable across process runs and id-addressed
// commands can resolve them on the next invocation.
func (s *JSONStore) seedChecklist() []models.ChecklistItem {
	items := models.DefaultChecklist(ident.NewTemporary)
	if err := s.SaveChecklist(items); err != nil {
		logger.Warn("Failed to persist seeded checklist", "error", err)
	}
	return items
}

func (s *JSONStore) SaveChecklist(items []models.ChecklistItem) error {
	return s.saveCollection(s.checklistPath(), items)
}

func (s *JSONStore) LoadDailyLog() []models.DailyLogEntry {
	var entries []models.DailyLogEntry
	if !s.loadCollection(s.dailyLogPath(), &entries) || entries == nil {
		return []models.DailyLogEntry{}
	}
	return entries
}

func (s *JSONStore) SaveDailyLog(entries []models.DailyLogEntry) error {
	return s.saveCollection(s.dailyLogPath(), entries)
}

// loadCollection reads one collection file into dst. It returns false when
// the file is missing or unreadable so callers can fall back to defaults;
// parse failures are logged, never surfaced.
func (s *JSONStore) loadCollection(path string, dst interface{}) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read local collection", "path", path, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.Warn("Malformed local collection, using defaults", "path", path, "error", err)
		return false
	}
	return true
}

func (s *JSONStore) saveCollection(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize collection: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write collection: %w", err)
	}
	return nil
}

func (s *JSONStore) GetPath() string {
	return s.dir
}
