package repository

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyboxlabs/skybox/internal/db"
	"github.com/skyboxlabs/skybox/internal/model"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func TestCreateAndByID(t *testing.T) {
	repo := NewFileRepository(testDB(t))

	created := int64(1756339200)
	file := &model.File{
		ID:      "abcdefghijklmnopqrstuvwxyzABCD",
		Name:    "test.txt",
		Size:    11,
		Created: &created,
	}
	require.NoError(t, repo.Create(file))

	got, err := repo.ByID(file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.ID, got.ID)
	assert.Equal(t, "test.txt", got.Name)
	assert.Equal(t, int64(11), got.Size)
	require.NotNil(t, got.Created)
	assert.Equal(t, created, *got.Created)
}

func TestCreateNullCreated(t *testing.T) {
	repo := NewFileRepository(testDB(t))

	file := &model.File{ID: "noclock", Name: "a.bin", Size: 1}
	require.NoError(t, repo.Create(file))

	got, err := repo.ByID("noclock")
	require.NoError(t, err)
	assert.Nil(t, got.Created)
}

func TestCreateDuplicateID(t *testing.T) {
	repo := NewFileRepository(testDB(t))

	file := &model.File{ID: "dup", Name: "one.txt", Size: 1}
	require.NoError(t, repo.Create(file))

	// A second insert with the same id must fail, never overwrite.
	err := repo.Create(&model.File{ID: "dup", Name: "two.txt", Size: 2})
	require.Error(t, err)

	got, err := repo.ByID("dup")
	require.NoError(t, err)
	assert.Equal(t, "one.txt", got.Name)
}

func TestByIDNotFound(t *testing.T) {
	repo := NewFileRepository(testDB(t))

	_, err := repo.ByID("missing")
	assert.ErrorIs(t, err, ErrFileNotFound)
}
