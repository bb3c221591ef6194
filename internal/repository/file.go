package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/skyboxlabs/skybox/internal/model"
)

var (
	ErrFileNotFound = errors.New("file not found")
)

type FileRepository interface {
	Create(file *model.File) error
	ByID(id string) (*model.File, error)
}

type fileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) *fileRepository {
	return &fileRepository{db: db}
}

// Create inserts a new file record. The id column is the primary key, so a
// duplicate id fails here rather than silently overwriting an earlier row.
func (r *fileRepository) Create(file *model.File) error {
	query := `INSERT INTO files (id, name, size, created) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query,
		file.ID,
		file.Name,
		file.Size,
		file.Created,
	)

	return err
}

func (r *fileRepository) ByID(id string) (*model.File, error) {
	file := &model.File{}
	query := `SELECT * FROM files WHERE id = $1`

	err := r.db.Get(file, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrFileNotFound
	}

	return file, err
}
