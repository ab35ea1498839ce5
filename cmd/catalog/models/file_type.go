package models

// FileType classifies a user file by drawing format (DWG, DXF, ...).
// Owned by one user, same shape as Tag.
// Maps to: file_type table
type FileType struct {
	ID      int64  `db:"id" json:"id"`
	OwnerID int64  `db:"owner_id" json:"-"`
	Type    string `db:"type" json:"type"`
}

func (f FileType) String() string {
	return f.Type
}
