package models

// UserFile is the central resource: a catalogued CAD drawing with optional
// uploaded attachment and many-to-many tag/file-type links.
// Maps to: user_file table (+ user_file_tag, user_file_file_type)
type UserFile struct {
	ID        int64   `db:"id" json:"id"`
	OwnerID   int64   `db:"owner_id" json:"-"`
	Title     string  `db:"title" json:"title"`
	CreatedOn Date    `db:"created_on" json:"created_on"`
	Link      *string `db:"link" json:"link"`

	// File is the attachment's storage key (uploads/user_files/<token>.<ext>),
	// nil until an upload succeeds.
	File *string `db:"file_path" json:"file"`

	Tags      []Tag      `json:"tags"`
	FileTypes []FileType `json:"file_types"`
}

func (f UserFile) String() string {
	return f.Title
}

// TagIDs returns the linked tag ids in link order
func (f UserFile) TagIDs() []int64 {
	ids := make([]int64, 0, len(f.Tags))
	for _, t := range f.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// FileTypeIDs returns the linked file type ids in link order
func (f UserFile) FileTypeIDs() []int64 {
	ids := make([]int64, 0, len(f.FileTypes))
	for _, ft := range f.FileTypes {
		ids = append(ids, ft.ID)
	}
	return ids
}
