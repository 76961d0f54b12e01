package profile

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

// Gestational week bounds applied at ingestion. The decision engine uses
// the stored week as-is, so out-of-range input is clamped here.
const (
	minGestationalWeek = 1
	maxGestationalWeek = 45
)

// SQLiteStore implements domain.ProfileStore using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite profile store.
// It creates the database file and schema if they don't exist.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
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

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		name TEXT DEFAULT '',
		age INTEGER DEFAULT 0,
		current_week INTEGER NOT NULL,
		is_first_pregnancy INTEGER NOT NULL DEFAULT 0,
		existing_conditions TEXT NOT NULL DEFAULT '[]',
		previous_complications TEXT NOT NULL DEFAULT '[]',
		raw_history_notes TEXT NOT NULL DEFAULT '[]',
		blood_group TEXT DEFAULT '',
		emergency_contact_name TEXT DEFAULT '',
		emergency_contact_phone TEXT DEFAULT '',
		overall_risk_level TEXT DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_profiles_updated_at ON profiles(updated_at);
	`

	_, err := db.Exec(schema)
	return err
}

// Save stores or updates a profile. History strings are normalized into
// canonical condition tags here; anything that matches nothing is kept in
// the raw notes for clinician review. The gestational week is clamped to
// the plausible range.
func (s *SQLiteStore) Save(ctx context.Context, p *domain.MaternalRiskProfile) error {
	if p == nil || p.UserID == "" {
		return domain.NewValidationError("user_id", "user id is required", nil)
	}

	normalizeProfile(p)

	now := time.Now().UTC()
	p.UpdatedAt = now

	conditions, err := json.Marshal(p.ExistingConditions)
	if err != nil {
		return fmt.Errorf("failed to encode conditions: %w", err)
	}
	complications, err := json.Marshal(p.PreviousComplications)
	if err != nil {
		return fmt.Errorf("failed to encode complications: %w", err)
	}
	notes, err := json.Marshal(p.RawHistoryNotes)
	if err != nil {
		return fmt.Errorf("failed to encode history notes: %w", err)
	}

	var existingCreated time.Time
	err = s.db.QueryRowContext(ctx,
		"SELECT created_at FROM profiles WHERE user_id = ?", p.UserID,
	).Scan(&existingCreated)

	if err == nil {
		p.CreatedAt = existingCreated
		_, err = s.db.ExecContext(ctx, `
			UPDATE profiles SET
				name = ?,
				age = ?,
				current_week = ?,
				is_first_pregnancy = ?,
				existing_conditions = ?,
				previous_complications = ?,
				raw_history_notes = ?,
				blood_group = ?,
				emergency_contact_name = ?,
				emergency_contact_phone = ?,
				overall_risk_level = ?,
				updated_at = ?
			WHERE user_id = ?
		`,
			p.Name, p.Age, p.CurrentWeek, p.IsFirstPregnancy,
			string(conditions), string(complications), string(notes),
			p.BloodGroup, p.EmergencyContactName, p.EmergencyContactPhone,
			p.OverallRiskLevel, now, p.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		return nil
	}

	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check existing profile: %w", err)
	}

	p.CreatedAt = now
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (
			user_id, name, age, current_week, is_first_pregnancy,
			existing_conditions, previous_complications, raw_history_notes,
			blood_group, emergency_contact_name, emergency_contact_phone,
			overall_risk_level, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.UserID, p.Name, p.Age, p.CurrentWeek, p.IsFirstPregnancy,
		string(conditions), string(complications), string(notes),
		p.BloodGroup, p.EmergencyContactName, p.EmergencyContactPhone,
		p.OverallRiskLevel, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	return nil
}

// Get retrieves a profile by user id. Returns domain.ErrNotFound when none
// exists.
func (s *SQLiteStore) Get(ctx context.Context, userID string) (*domain.MaternalRiskProfile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, name, age, current_week, is_first_pregnancy,
			existing_conditions, previous_complications, raw_history_notes,
			blood_group, emergency_contact_name, emergency_contact_phone,
			overall_risk_level, created_at, updated_at
		FROM profiles
		WHERE user_id = ?
	`, userID)

	p := &domain.MaternalRiskProfile{}
	var conditions, complications, notes string

	err := row.Scan(
		&p.UserID, &p.Name, &p.Age, &p.CurrentWeek, &p.IsFirstPregnancy,
		&conditions, &complications, &notes,
		&p.BloodGroup, &p.EmergencyContactName, &p.EmergencyContactPhone,
		&p.OverallRiskLevel, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	if err := json.Unmarshal([]byte(conditions), &p.ExistingConditions); err != nil {
		return nil, fmt.Errorf("failed to decode conditions: %w", err)
	}
	if err := json.Unmarshal([]byte(complications), &p.PreviousComplications); err != nil {
		return nil, fmt.Errorf("failed to decode complications: %w", err)
	}
	if err := json.Unmarshal([]byte(notes), &p.RawHistoryNotes); err != nil {
		return nil, fmt.Errorf("failed to decode history notes: %w", err)
	}

	return p, nil
}

// Delete removes a profile by user id. Returns ErrNotFound when no profile
// exists for the user.
func (s *SQLiteStore) Delete(ctx context.Context, userID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// normalizeProfile clamps the gestational week and converts any free-form
// strings mixed into the condition lists to canonical tags.
func normalizeProfile(p *domain.MaternalRiskProfile) {
	if p.CurrentWeek < minGestationalWeek {
		p.CurrentWeek = minGestationalWeek
	}
	if p.CurrentWeek > maxGestationalWeek {
		p.CurrentWeek = maxGestationalWeek
	}

	p.ExistingConditions, p.RawHistoryNotes = normalizeTagList(p.ExistingConditions, p.RawHistoryNotes)
	p.PreviousComplications, p.RawHistoryNotes = normalizeTagList(p.PreviousComplications, p.RawHistoryNotes)
}

func normalizeTagList(tags []domain.ConditionTag, notes []string) ([]domain.ConditionTag, []string) {
	raw := make([]string, 0, len(tags))
	for _, t := range tags {
		raw = append(raw, string(t))
	}
	normalized, unmatched := NormalizeHistory(raw)
	return normalized, append(notes, unmatched...)
}
