package profile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janani-ai/janani-server/internal/domain"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "profile-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	store, err := NewSQLiteStore(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)
	return store
}

func TestNewSQLiteStore(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "profile-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "Database file should exist")
}

func TestSQLiteStore_SaveAndGet(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	p := &domain.MaternalRiskProfile{
		UserID:                "user-1",
		Name:                  "রহিমা বেগম",
		Age:                   24,
		CurrentWeek:           28,
		IsFirstPregnancy:      true,
		ExistingConditions:    []domain.ConditionTag{domain.ConditionHypertension},
		PreviousComplications: []domain.ConditionTag{},
		BloodGroup:            "O+",
		EmergencyContactName:  "করিম মিয়া",
		EmergencyContactPhone: "01700000000",
	}

	require.NoError(t, store.Save(ctx, p))
	assert.False(t, p.CreatedAt.IsZero(), "CreatedAt should be set")
	assert.False(t, p.UpdatedAt.IsZero(), "UpdatedAt should be set")

	loaded, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "রহিমা বেগম", loaded.Name)
	assert.Equal(t, 28, loaded.CurrentWeek)
	assert.True(t, loaded.IsFirstPregnancy)
	assert.Equal(t, []domain.ConditionTag{domain.ConditionHypertension}, loaded.ExistingConditions)
	assert.Equal(t, "O+", loaded.BloodGroup)
}

func TestSQLiteStore_SaveNormalizesHistory(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	p := &domain.MaternalRiskProfile{
		UserID:      "user-2",
		CurrentWeek: 20,
		ExistingConditions: []domain.ConditionTag{
			"উচ্চ রক্তচাপ আছে",
			"Gestational Diabetes diagnosed 2024",
			"seasonal allergy",
		},
		PreviousComplications: []domain.ConditionTag{
			"premature delivery in 2022",
		},
	}

	require.NoError(t, store.Save(ctx, p))

	loaded, err := store.Get(ctx, "user-2")
	require.NoError(t, err)

	assert.ElementsMatch(t, []domain.ConditionTag{
		domain.ConditionHypertension,
		domain.ConditionGestationalDiabetes,
	}, loaded.ExistingConditions)
	assert.Equal(t, []domain.ConditionTag{domain.ConditionPretermLaborHistory}, loaded.PreviousComplications)

	// Unrecognized strings survive as raw notes.
	assert.Contains(t, loaded.RawHistoryNotes, "seasonal allergy")
}

func TestSQLiteStore_SaveClampsWeek(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	tests := []struct {
		name     string
		week     int
		expected int
	}{
		{"Negative week", -3, 1},
		{"Zero week", 0, 1},
		{"Oversized week", 60, 45},
		{"Valid week unchanged", 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &domain.MaternalRiskProfile{UserID: "user-week", CurrentWeek: tt.week}
			require.NoError(t, store.Save(ctx, p))

			loaded, err := store.Get(ctx, "user-week")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, loaded.CurrentWeek)
		})
	}
}

func TestSQLiteStore_SaveUpdatesExisting(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	p := &domain.MaternalRiskProfile{UserID: "user-3", CurrentWeek: 20}
	require.NoError(t, store.Save(ctx, p))
	created := p.CreatedAt

	p.CurrentWeek = 24
	p.BloodGroup = "AB-"
	require.NoError(t, store.Save(ctx, p))

	loaded, err := store.Get(ctx, "user-3")
	require.NoError(t, err)
	assert.Equal(t, 24, loaded.CurrentWeek)
	assert.Equal(t, "AB-", loaded.BloodGroup)
	assert.Equal(t, created.Unix(), loaded.CreatedAt.Unix())
}

func TestSQLiteStore_GetNotFound(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.MaternalRiskProfile{UserID: "user-4", CurrentWeek: 12}))
	require.NoError(t, store.Delete(ctx, "user-4"))

	_, err := store.Get(ctx, "user-4")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_DeleteMissing(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	err := store.Delete(context.Background(), "never-existed")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteStore_SaveInvalid(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	assert.Error(t, store.Save(context.Background(), nil))
	assert.Error(t, store.Save(context.Background(), &domain.MaternalRiskProfile{}))
}
