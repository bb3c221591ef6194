package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyboxlabs/skybox/internal/model"
	"github.com/skyboxlabs/skybox/internal/repository"
	"github.com/skyboxlabs/skybox/internal/storage"
)

// memStorage is an in-memory Storage for pipeline tests.
type memStorage struct {
	blobs   map[string][]byte
	saveErr error
	deleted []string
}

func newMemStorage() *memStorage {
	return &memStorage{blobs: map[string][]byte{}}
}

func (m *memStorage) Save(ctx context.Context, id string, r io.Reader) (int64, error) {
	data, _ := io.ReadAll(r)
	m.blobs[id] = data
	if m.saveErr != nil {
		return int64(len(data)), m.saveErr
	}
	return int64(len(data)), nil
}

func (m *memStorage) Open(ctx context.Context, id string) (io.ReadCloser, error) {
	data, ok := m.blobs[id]
	if !ok {
		return nil, storage.ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memStorage) Delete(ctx context.Context, id string) error {
	delete(m.blobs, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// memRepo is an in-memory FileRepository for pipeline tests.
type memRepo struct {
	rows      map[string]*model.File
	createErr error
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[string]*model.File{}}
}

func (m *memRepo) Create(file *model.File) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.rows[file.ID]; ok {
		return errors.New("UNIQUE constraint failed: files.id")
	}
	m.rows[file.ID] = file
	return nil
}

func (m *memRepo) ByID(id string) (*model.File, error) {
	file, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrFileNotFound
	}
	return file, nil
}

func TestSaveSuccess(t *testing.T) {
	repo := newMemRepo()
	store := newMemStorage()
	svc := NewFileService(repo, store)

	file, err := svc.Save(context.Background(), "test.txt", bytes.NewReader([]byte("hello world")))
	require.NoError(t, err)

	assert.Len(t, file.ID, 30)
	assert.Equal(t, "test.txt", file.Name)
	assert.Equal(t, int64(11), file.Size)
	require.NotNil(t, file.Created)

	// Record and blob agree.
	assert.Equal(t, []byte("hello world"), store.blobs[file.ID])
	stored, err := repo.ByID(file.ID)
	require.NoError(t, err)
	assert.Equal(t, file.Size, stored.Size)
}

func TestSaveEmptyBody(t *testing.T) {
	repo := newMemRepo()
	store := newMemStorage()
	svc := NewFileService(repo, store)

	_, err := svc.Save(context.Background(), "empty.txt", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrEmptyFile)

	// The empty blob was rolled back and no row was created.
	assert.Empty(t, store.blobs)
	assert.Len(t, store.deleted, 1)
	assert.Empty(t, repo.rows)
}

func TestSaveStreamFailure(t *testing.T) {
	repo := newMemRepo()
	store := newMemStorage()
	store.saveErr = errors.New("disk full")
	svc := NewFileService(repo, store)

	_, err := svc.Save(context.Background(), "doc.pdf", bytes.NewReader([]byte("partial")))
	assert.ErrorIs(t, err, ErrSaveFailed)

	// Partial blob cleaned up, metadata untouched.
	assert.Empty(t, store.blobs)
	assert.Empty(t, repo.rows)
}

func TestSaveInsertFailureKeepsBlob(t *testing.T) {
	repo := newMemRepo()
	repo.createErr = errors.New("database unreachable")
	store := newMemStorage()
	svc := NewFileService(repo, store)

	_, err := svc.Save(context.Background(), "doc.pdf", bytes.NewReader([]byte("content")))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSaveFailed)

	// The blob is orphaned, not deleted.
	assert.Len(t, store.blobs, 1)
	assert.Empty(t, store.deleted)
}

func TestInfoNotFound(t *testing.T) {
	svc := NewFileService(newMemRepo(), newMemStorage())

	_, err := svc.Info(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrFileNotFound)
}

func TestGetRoundTrip(t *testing.T) {
	repo := newMemRepo()
	store := newMemStorage()
	svc := NewFileService(repo, store)

	saved, err := svc.Save(context.Background(), "test.txt", bytes.NewReader([]byte("hello world")))
	require.NoError(t, err)

	file, rc, err := svc.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, "test.txt", file.Name)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), got)
}

func TestGetNotFound(t *testing.T) {
	svc := NewFileService(newMemRepo(), newMemStorage())

	_, _, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrFileNotFound)
}

func TestGetBlobMissing(t *testing.T) {
	repo := newMemRepo()
	store := newMemStorage()
	svc := NewFileService(repo, store)

	saved, err := svc.Save(context.Background(), "test.txt", bytes.NewReader([]byte("hello")))
	require.NoError(t, err)

	// Simulate the invariant violation: row present, blob gone.
	delete(store.blobs, saved.ID)

	_, _, err = svc.Get(context.Background(), saved.ID)
	assert.ErrorIs(t, err, ErrBlobMissing)
	assert.NotErrorIs(t, err, repository.ErrFileNotFound)
}
