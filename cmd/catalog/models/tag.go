package models

// Tag is a user-owned label attached to user files.
// Maps to: tag table
type Tag struct {
	ID      int64  `db:"id" json:"id"`
	OwnerID int64  `db:"owner_id" json:"-"`
	Name    string `db:"name" json:"name"`
}

func (t Tag) String() string {
	return t.Name
}
