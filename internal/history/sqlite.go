// Package history persists completed triage calls for the patient timeline.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/janani-ai/janani-server/internal/domain"
)

// SQLiteLog implements domain.TriageLog using SQLite.
type SQLiteLog struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteLog creates a new SQLite triage log.
// It creates the database file and schema if they don't exist.
func NewSQLiteLog(dbPath string) (*SQLiteLog, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteLog{db: db, dbPath: dbPath}, nil
}

// NewWithDB wraps an existing database handle. Used by tests that need to
// inject failure modes.
func NewWithDB(db *sql.DB) *SQLiteLog {
	return &SQLiteLog{db: db}
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS triage_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		input_text TEXT NOT NULL,
		dialect TEXT NOT NULL DEFAULT '',
		risk_level TEXT NOT NULL,
		red_flags TEXT NOT NULL DEFAULT '[]',
		primary_concern TEXT DEFAULT '',
		action TEXT DEFAULT '',
		timeframe TEXT DEFAULT '',
		emergency_bridged INTEGER NOT NULL DEFAULT 0,
		confidence_score REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_triage_user_id ON triage_records(user_id);
	CREATE INDEX IF NOT EXISTS idx_triage_created_at ON triage_records(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

// Save appends one triage record.
func (l *SQLiteLog) Save(ctx context.Context, record *domain.TriageRecord) error {
	if record == nil || record.UserID == "" {
		return domain.NewValidationError("user_id", "user id is required", nil)
	}

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	flags, err := json.Marshal(record.RedFlags)
	if err != nil {
		return fmt.Errorf("failed to encode red flags: %w", err)
	}

	result, err := l.db.ExecContext(ctx, `
		INSERT INTO triage_records (
			user_id, input_text, dialect, risk_level, red_flags,
			primary_concern, action, timeframe, emergency_bridged,
			confidence_score, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.UserID, record.InputText, string(record.Dialect),
		string(record.RiskLevel), string(flags), record.PrimaryConcern,
		record.Action, record.Timeframe, record.EmergencyBridged,
		record.ConfidenceScore, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert triage record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert ID: %w", err)
	}
	record.ID = id

	return nil
}

// ListByUser returns a user's triage records, newest first, with pagination.
func (l *SQLiteLog) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.TriageRecord, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, user_id, input_text, dialect, risk_level, red_flags,
			primary_concern, action, timeframe, emergency_bridged,
			confidence_score, created_at
		FROM triage_records
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query triage records: %w", err)
	}
	defer rows.Close()

	var records []*domain.TriageRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan triage record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Count returns the number of triage records for a user.
func (l *SQLiteLog) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := l.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM triage_records WHERE user_id = ?", userID,
	).Scan(&count)
	return count, err
}

// Close closes the underlying database.
func (l *SQLiteLog) Close() error {
	return l.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (*domain.TriageRecord, error) {
	record := &domain.TriageRecord{}
	var dialect, riskLevel, flags string

	err := s.Scan(
		&record.ID, &record.UserID, &record.InputText, &dialect,
		&riskLevel, &flags, &record.PrimaryConcern, &record.Action,
		&record.Timeframe, &record.EmergencyBridged,
		&record.ConfidenceScore, &record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Dialect = domain.Dialect(dialect)
	record.RiskLevel = domain.RiskLevel(riskLevel)
	if err := json.Unmarshal([]byte(flags), &record.RedFlags); err != nil {
		return nil, fmt.Errorf("failed to decode red flags: %w", err)
	}

	return record, nil
}

// RecordFromResult converts a triage result into its persisted form.
func RecordFromResult(inputText string, result *domain.TriageResult, bridged bool) *domain.TriageRecord {
	return &domain.TriageRecord{
		UserID:           result.UserID,
		InputText:        inputText,
		Dialect:          result.Dialect,
		RiskLevel:        result.RiskLevel,
		RedFlags:         result.DetectedRedFlags,
		PrimaryConcern:   result.PrimaryConcern,
		Action:           result.ImmediateAction,
		Timeframe:        result.RecommendedTimeframe,
		EmergencyBridged: bridged,
		ConfidenceScore:  result.ConfidenceScore,
		CreatedAt:        result.CreatedAt,
	}
}
