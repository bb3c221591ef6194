package model

// File describes one stored blob. A row is created exactly once on a
// successful upload and never updated afterwards.
type File struct {
	ID      string `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Size    int64  `db:"size" json:"size"`
	Created *int64 `db:"created" json:"created"` // unix seconds, best-effort
}
