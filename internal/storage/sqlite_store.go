package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/adityarawat/prepometer/internal/ident"
	"github.com/adityarawat/prepometer/internal/logger"
	"github.com/adityarawat/prepometer/internal/models"
)

// SQLiteStore offers the same whole-collection contract as JSONStore backed
// by a single database file. Record ids keep their dual-space encoding by
// storing the RecordID's string form and reparsing on load.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS checklist_items (
	record_id   TEXT NOT NULL,
	subject     TEXT NOT NULL,
	topic       TEXT NOT NULL,
	status      TEXT NOT NULL,
	notes       TEXT NOT NULL DEFAULT '',
	position    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS daily_logs (
	record_id   TEXT NOT NULL DEFAULT '',
	log_date    TEXT NOT NULL,
	hours       REAL NOT NULL,
	maths_q     INTEGER NOT NULL,
	reasoning_q INTEGER NOT NULL,
	mock        REAL,
	notes       TEXT NOT NULL DEFAULT '',
	position    INTEGER NOT NULL
);
`

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) LoadChecklist() []models.ChecklistItem {
	if s.db == nil {
		return models.DefaultChecklist(ident.NewTemporary)
	}

	rows, err := s.db.Query(`
SELECT record_id, subject, topic, status, notes
FROM checklist_items ORDER BY position`)
	if err != nil {
		logger.Warn("Failed to load checklist", "error", err)
		return s.seedChecklist()
	}
	defer rows.Close()

	var items []models.ChecklistItem
	for rows.Next() {
		var rawID, subject string
		var item models.ChecklistItem
		if err := rows.Scan(&rawID, &subject, &item.Topic, &item.Status, &item.Notes); err != nil {
			logger.Warn("Skipping malformed checklist row", "error", err)
			continue
		}
		id, err := models.ParseRecordID(rawID)
		if err != nil {
			logger.Warn("Skipping checklist row with bad id", "id", rawID)
			continue
		}
		item.ID = id
		item.Subject = models.Subject(subject)
		items = append(items, item)
	}
	if items == nil {
		return s.seedChecklist()
	}
	return items
}

// seedChecklist mints the default topics and writes them back right away,
// so the seeded ids stay stable across process runs.
func (s *SQLiteStore) seedChecklist() []models.ChecklistItem {
	items := models.DefaultChecklist(ident.NewTemporary)
	if err := s.SaveChecklist(items); err != nil {
		logger.Warn("Failed to persist seeded checklist", "error", err)
	}
	return items
}

func (s *SQLiteStore) SaveChecklist(items []models.ChecklistItem) error {
	if s.db == nil {
		return fmt.Errorf("storage not initialized")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM checklist_items`); err != nil {
		return fmt.Errorf("failed to clear checklist: %w", err)
	}
	for i, item := range items {
		_, err := tx.Exec(`
INSERT INTO checklist_items (record_id, subject, topic, status, notes, position)
VALUES (?, ?, ?, ?, ?, ?)`,
			item.ID.String(), string(item.Subject), item.Topic, item.Status, item.Notes, i)
		if err != nil {
			return fmt.Errorf("failed to insert checklist item: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) LoadDailyLog() []models.DailyLogEntry {
	if s.db == nil {
		return []models.DailyLogEntry{}
	}

	rows, err := s.db.Query(`
SELECT record_id, log_date, hours, maths_q, reasoning_q, mock, notes
FROM daily_logs ORDER BY position`)
	if err != nil {
		logger.Warn("Failed to load daily log", "error", err)
		return []models.DailyLogEntry{}
	}
	defer rows.Close()

	var entries []models.DailyLogEntry
	for rows.Next() {
		var rawID string
		var mock sql.NullFloat64
		var e models.DailyLogEntry
		if err := rows.Scan(&rawID, &e.Date, &e.Hours, &e.MathsQ, &e.ReasoningQ, &mock, &e.Notes); err != nil {
			logger.Warn("Skipping malformed daily log row", "error", err)
			continue
		}
		if rawID != "" {
			if id, err := models.ParseRecordID(rawID); err == nil {
				e.ID = id
			}
		}
		if mock.Valid {
			v := mock.Float64
			e.Mock = &v
		}
		entries = append(entries, e)
	}
	if entries == nil {
		return []models.DailyLogEntry{}
	}
	return entries
}

func (s *SQLiteStore) SaveDailyLog(entries []models.DailyLogEntry) error {
	if s.db == nil {
		return fmt.Errorf("storage not initialized")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM daily_logs`); err != nil {
		return fmt.Errorf("failed to clear daily logs: %w", err)
	}
	for i, e := range entries {
		var mock interface{}
		if e.Mock != nil {
			mock = *e.Mock
		}
		_, err := tx.Exec(`
INSERT INTO daily_logs (record_id, log_date, hours, maths_q, reasoning_q, mock, notes, position)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID.String(), e.Date, e.Hours, e.MathsQ, e.ReasoningQ, mock, e.Notes, i)
		if err != nil {
			return fmt.Errorf("failed to insert daily log entry: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetPath() string {
	return s.path
}
