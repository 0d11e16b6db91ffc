package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"vet-practice/internal/domain/dogs"
	"vet-practice/internal/domain/owners"
	"vet-practice/internal/domain/treatments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "vet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	return db
}

func TestDogsRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewDogsRepo(setupDB(t))

	rex, err := repo.Create(ctx, dogs.Dog{Name: "Rex", Age: 3, Race: "Labrador", Weight: 25.5, OwnerID: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, rex.ID)

	_, err = repo.Create(ctx, dogs.Dog{Name: "Luna", Race: "Beagle", OwnerID: 2})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, rex.ID)
	require.NoError(t, err)
	assert.Equal(t, rex, got)

	byOwner, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byOwner, 1)
	assert.Equal(t, "Rex", byOwner[0].Name)

	// vaciar campos también debe persistir
	rex.Description = ""
	rex.Weight = 0
	rex.ImagePath = "a.png"
	require.NoError(t, repo.Update(ctx, rex))
	got, err = repo.GetByID(ctx, rex.ID)
	require.NoError(t, err)
	assert.Equal(t, rex, got)

	require.NoError(t, repo.Delete(ctx, rex.ID))
	_, err = repo.GetByID(ctx, rex.ID)
	assert.ErrorIs(t, err, dogs.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, rex.ID), dogs.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, rex), dogs.ErrNotFound)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestOwnersRepo_LastVisitRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewOwnersRepo(setupDB(t))

	visit := time.Date(2025, 5, 12, 10, 30, 0, 0, time.UTC)
	o, err := repo.Create(ctx, owners.Owner{
		FirstName: "Ana", LastName: "Pérez", Email: "ana@example.com", Phone: "555",
		Address: "Calle 1", City: "Lima", PostalCode: "15001", Country: "PE",
		LastVisit: &visit,
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastVisit)
	assert.True(t, visit.Equal(*got.LastVisit))

	got.LastVisit = nil
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LastVisit)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, owners.ErrNotFound)
}

func TestTreatmentsRepo_ListFilter(t *testing.T) {
	ctx := context.Background()
	repo := NewTreatmentsRepo(setupDB(t))

	mk := func(date string, dogID int) {
		d, err := treatments.ParseDate(date)
		require.NoError(t, err)
		_, err = repo.Create(ctx, treatments.Treatment{
			Description: "control", Date: d, Time: treatments.Clock{Hour: 9, Minute: 30}, Cost: 10, DogID: dogID,
		})
		require.NoError(t, err)
	}
	mk("2025-05-01", 1)
	mk("2025-05-15", 1)
	mk("2025-06-01", 2)

	all, err := repo.List(ctx, treatments.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "09:30:00", all[0].Time.String())

	from, _ := treatments.ParseDate("2025-05-10")
	to, _ := treatments.ParseDate("2025-06-01")
	got, err := repo.List(ctx, treatments.ListFilter{DogID: 1, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2025-05-15", got[0].Date.String())

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, treatments.ErrNotFound)
}
