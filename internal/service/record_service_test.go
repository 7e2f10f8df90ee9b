package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/egrafes/egrafes-backend/internal/model"
	"github.com/egrafes/egrafes-backend/internal/repository"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFields() model.RecordFields {
	return model.RecordFields{
		RegistryNumber: "12",
		LastName:       "Papadopoulos",
		FirstName:      "Nikos",
		FatherName:     "Georgios",
		Street:         "Akropolis",
		StreetNumber:   "5",
		PostalCode:     "12345",
		City:           "Athens",
	}
}

func TestReconcile_CreateNewRecord(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	updated, saved, stale := Reconcile(nil, sampleFields(), "1ο Γυμνάσιο", "0101", "", now)

	assert.False(t, stale)
	require.Len(t, updated, 1)
	assert.Equal(t, saved, updated[0])

	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, now, saved.CreatedAt)
	assert.Nil(t, saved.LastModified)
	assert.Equal(t, "Papadopoulos", saved.LastName)
	assert.Equal(t, "1ο Γυμνάσιο", saved.School)
	assert.Equal(t, "0101", saved.SchoolCode)
}

func TestReconcile_EditPreservesIdentityAndCreation(t *testing.T) {
	created := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	set, original, _ := Reconcile(nil, sampleFields(), "1ο Γυμνάσιο", "0101", "", created)
	set, other, _ := Reconcile(set, sampleFields(), "1ο Γυμνάσιο", "0101", "", created.Add(time.Minute))

	edit := sampleFields()
	edit.City = "Piraeus"
	editTime := created.Add(time.Hour)

	updated, saved, stale := Reconcile(set, edit, "1ο Γυμνάσιο", "0101", original.ID, editTime)

	assert.False(t, stale)
	require.Len(t, updated, 2)

	assert.Equal(t, original.ID, saved.ID)
	assert.Equal(t, original.CreatedAt, saved.CreatedAt)
	assert.Equal(t, "Piraeus", saved.City)
	assert.Equal(t, "Papadopoulos", saved.LastName)
	require.NotNil(t, saved.LastModified)
	assert.Equal(t, editTime, *saved.LastModified)

	// In-place, order-preserving: the edited record stays first and the
	// other record is untouched.
	assert.Equal(t, saved, updated[0])
	assert.Equal(t, other, updated[1])
}

func TestReconcile_SecondEditMovesLastModifiedForward(t *testing.T) {
	created := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	set, rec, _ := Reconcile(nil, sampleFields(), "1ο Γυμνάσιο", "0101", "", created)

	set, first, _ := Reconcile(set, sampleFields(), "1ο Γυμνάσιο", "0101", rec.ID, created.Add(time.Hour))
	_, second, _ := Reconcile(set, sampleFields(), "1ο Γυμνάσιο", "0101", rec.ID, created.Add(2*time.Hour))

	require.NotNil(t, first.LastModified)
	require.NotNil(t, second.LastModified)
	assert.True(t, !second.LastModified.Before(*first.LastModified))
	assert.Equal(t, created, second.CreatedAt)
}

func TestReconcile_StaleEditTargetFallsBackToCreate(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	set, existing, _ := Reconcile(nil, sampleFields(), "1ο Γυμνάσιο", "0101", "", now)

	updated, saved, stale := Reconcile(set, sampleFields(), "1ο Γυμνάσιο", "0101", "vanished-id", now.Add(time.Minute))

	assert.True(t, stale)
	require.Len(t, updated, 2)
	assert.NotEqual(t, "vanished-id", saved.ID)
	assert.NotEqual(t, existing.ID, saved.ID)
	assert.Equal(t, now.Add(time.Minute), saved.CreatedAt)
	assert.Nil(t, saved.LastModified)
}

func TestReconcile_IdentifiersUniqueAcrossManyCreations(t *testing.T) {
	now := time.Now()
	var set []model.Record
	for i := 0; i < 1000; i++ {
		set, _, _ = Reconcile(set, sampleFields(), "1ο Γυμνάσιο", "0101", "", now)
	}

	seen := make(map[string]struct{}, len(set))
	for _, rec := range set {
		_, dup := seen[rec.ID]
		assert.False(t, dup, "duplicate identifier %s", rec.ID)
		seen[rec.ID] = struct{}{}
	}
	assert.Len(t, seen, 1000)
}

func newTestRecordService(t *testing.T) (*RecordService, *Claims) {
	t.Helper()
	repo := repository.NewRecordRepository("", zerolog.Nop())
	svc := NewRecordService(repo, nil, t.TempDir(), zerolog.Nop())
	claims := &Claims{
		Username:   "alpha",
		SchoolName: "1ο Γυμνάσιο",
		SchoolCode: "0101",
		DataFile:   "students_alpha.json",
	}
	return svc, claims
}

func TestRecordService_DeleteRemovesExactlyOne(t *testing.T) {
	svc, claims := newTestRecordService(t)
	ctx := context.Background()

	now := time.Now()
	var set []model.Record
	var victim model.Record
	for i := 0; i < 3; i++ {
		var rec model.Record
		set, rec, _ = Reconcile(set, sampleFields(), claims.SchoolName, claims.SchoolCode, "", now)
		if i == 1 {
			victim = rec
		}
	}
	require.NoError(t, svc.recordRepo.Save(filepath.Join(svc.dataDir, claims.DataFile), set))

	require.NoError(t, svc.Delete(ctx, claims, victim.ID))

	got, err := svc.List(ctx, claims)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, set[0].ID, got[0].ID)
	assert.Equal(t, set[2].ID, got[1].ID)
}

func TestRecordService_DeleteUnknownID(t *testing.T) {
	svc, claims := newTestRecordService(t)

	err := svc.Delete(context.Background(), claims, "missing-id")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRecordService_ListEmptyForNewSchool(t *testing.T) {
	svc, claims := newTestRecordService(t)

	got, err := svc.List(context.Background(), claims)
	require.NoError(t, err)
	assert.Empty(t, got)
}
