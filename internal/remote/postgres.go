package remote

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/adityarawat/prepometer/internal/models"
)

// PostgresGateway implements Gateway against a hosted PostgreSQL database.
// All rows are owned by an identity column and every statement filters on it.
type PostgresGateway struct {
	db *sql.DB
}

const vaultSchema = `
CREATE TABLE IF NOT EXISTS checklist_items (
	id          BIGSERIAL PRIMARY KEY,
	owner_id    TEXT NOT NULL,
	subject     TEXT NOT NULL,
	topic       TEXT NOT NULL,
	status      TEXT NOT NULL,
	notes       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_checklist_owner ON checklist_items (owner_id);

CREATE TABLE IF NOT EXISTS daily_logs (
	id          BIGSERIAL PRIMARY KEY,
	owner_id    TEXT NOT NULL,
	log_date    TEXT NOT NULL,
	hours       DOUBLE PRECISION NOT NULL,
	maths_q     INTEGER NOT NULL,
	reasoning_q INTEGER NOT NULL,
	mock        DOUBLE PRECISION,
	notes       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_daily_logs_owner ON daily_logs (owner_id);
`

// OpenPostgres connects to the vault and ensures the schema exists.
func OpenPostgres(connStr string) (*PostgresGateway, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach record store: %w", err)
	}
	if _, err := db.Exec(vaultSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return &PostgresGateway{db: db}, nil
}

// NewPostgresGateway wraps an existing connection, used by the auth service
// which shares the same database.
func NewPostgresGateway(db *sql.DB) *PostgresGateway {
	return &PostgresGateway{db: db}
}

func (g *PostgresGateway) Close() error {
	if g.db == nil {
		return nil
	}
	return g.db.Close()
}

// DB exposes the underlying connection for collaborators sharing the vault.
func (g *PostgresGateway) DB() *sql.DB {
	return g.db
}

func (g *PostgresGateway) SelectChecklist(ctx context.Context, ownerID string) ([]models.ChecklistItem, error) {
	rows, err := g.db.QueryContext(ctx, `
SELECT id, subject, topic, status, notes
FROM checklist_items WHERE owner_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select checklist: %w", err)
	}
	defer rows.Close()

	var items []models.ChecklistItem
	for rows.Next() {
		var id int64
		var subject string
		var item models.ChecklistItem
		if err := rows.Scan(&id, &subject, &item.Topic, &item.Status, &item.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan checklist row: %w", err)
		}
		item.ID = models.PersistedID(id)
		item.Subject = models.Subject(subject)
		items = append(items, item)
	}
	return items, rows.Err()
}

func (g *PostgresGateway) InsertChecklist(ctx context.Context, ownerID string, item models.ChecklistItem) (int64, error) {
	var id int64
	err := g.db.QueryRowContext(ctx, `
INSERT INTO checklist_items (owner_id, subject, topic, status, notes)
VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		ownerID, string(item.Subject), item.Topic, item.Status, item.Notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert checklist item: %w", err)
	}
	return id, nil
}

func (g *PostgresGateway) UpdateChecklist(ctx context.Context, ownerID string, item models.ChecklistItem) error {
	if !item.ID.IsPersisted() {
		return fmt.Errorf("cannot update checklist item without a server id")
	}
	_, err := g.db.ExecContext(ctx, `
UPDATE checklist_items SET subject = $1, topic = $2, status = $3, notes = $4
WHERE id = $5 AND owner_id = $6`,
		string(item.Subject), item.Topic, item.Status, item.Notes, item.ID.ServerID(), ownerID)
	if err != nil {
		return fmt.Errorf("failed to update checklist item: %w", err)
	}
	return nil
}

func (g *PostgresGateway) DeleteChecklist(ctx context.Context, ownerID string, serverID int64) error {
	_, err := g.db.ExecContext(ctx, `
DELETE FROM checklist_items WHERE id = $1 AND owner_id = $2`, serverID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete checklist item: %w", err)
	}
	return nil
}

func (g *PostgresGateway) SelectDailyLog(ctx context.Context, ownerID string) ([]models.DailyLogEntry, error) {
	rows, err := g.db.QueryContext(ctx, `
SELECT id, log_date, hours, maths_q, reasoning_q, mock, notes
FROM daily_logs WHERE owner_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to select daily logs: %w", err)
	}
	defer rows.Close()

	var entries []models.DailyLogEntry
	for rows.Next() {
		var id int64
		var mock sql.NullFloat64
		var e models.DailyLogEntry
		if err := rows.Scan(&id, &e.Date, &e.Hours, &e.MathsQ, &e.ReasoningQ, &mock, &e.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan daily log row: %w", err)
		}
		e.ID = models.PersistedID(id)
		if mock.Valid {
			v := mock.Float64
			e.Mock = &v
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (g *PostgresGateway) InsertDailyLog(ctx context.Context, ownerID string, entry models.DailyLogEntry) (int64, error) {
	var mock interface{}
	if entry.Mock != nil {
		mock = *entry.Mock
	}
	var id int64
	err := g.db.QueryRowContext(ctx, `
INSERT INTO daily_logs (owner_id, log_date, hours, maths_q, reasoning_q, mock, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		ownerID, entry.Date, entry.Hours, entry.MathsQ, entry.ReasoningQ, mock, entry.Notes).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert daily log entry: %w", err)
	}
	return id, nil
}
