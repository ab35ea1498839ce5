// Package serializer shapes user file responses. The same resource renders
// three ways depending on the operation: flat (id lists) for list and write
// operations, detail (nested objects) for single-item retrieval, and an
// upload shape exposing only the attachment. The mapping is a plain lookup
// table, selected by Action.
package serializer

import "github.com/pashadev/cadvault/cmd/catalog/models"

// Action names the operation being served
type Action string

const (
	ActionList     Action = "list"
	ActionCreate   Action = "create"
	ActionRetrieve Action = "retrieve"
	ActionUpdate   Action = "update"
	ActionUpload   Action = "upload"
)

// FlatUserFile renders tag and file type links as bare id lists
type FlatUserFile struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	CreatedOn models.Date `json:"created_on"`
	Link      *string     `json:"link"`
	Tags      []int64     `json:"tags"`
	FileTypes []int64     `json:"file_types"`
	File      *string     `json:"file"`
}

// DetailUserFile renders links as fully nested objects
type DetailUserFile struct {
	ID        int64             `json:"id"`
	Title     string            `json:"title"`
	CreatedOn models.Date       `json:"created_on"`
	Link      *string           `json:"link"`
	Tags      []models.Tag      `json:"tags"`
	FileTypes []models.FileType `json:"file_types"`
	File      *string           `json:"file"`
}

// UploadUserFile exposes only the attachment reference
type UploadUserFile struct {
	ID   int64   `json:"id"`
	File *string `json:"file"`
}

// userFileShapes is the (operation -> output shape) table
var userFileShapes = map[Action]func(*models.UserFile) any{
	ActionList:     renderFlat,
	ActionCreate:   renderFlat,
	ActionUpdate:   renderFlat,
	ActionRetrieve: renderDetail,
	ActionUpload:   renderUpload,
}

// UserFile renders one user file in the shape the action calls for.
// Unknown actions fall back to the flat shape.
func UserFile(action Action, file *models.UserFile) any {
	render, ok := userFileShapes[action]
	if !ok {
		render = renderFlat
	}
	return render(file)
}

// UserFileList renders a list of user files in the action's shape
func UserFileList(action Action, files []*models.UserFile) []any {
	out := make([]any, 0, len(files))
	for _, f := range files {
		out = append(out, UserFile(action, f))
	}
	return out
}

func renderFlat(f *models.UserFile) any {
	return FlatUserFile{
		ID:        f.ID,
		Title:     f.Title,
		CreatedOn: f.CreatedOn,
		Link:      f.Link,
		Tags:      f.TagIDs(),
		FileTypes: f.FileTypeIDs(),
		File:      f.File,
	}
}

func renderDetail(f *models.UserFile) any {
	tags := f.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	fileTypes := f.FileTypes
	if fileTypes == nil {
		fileTypes = []models.FileType{}
	}
	return DetailUserFile{
		ID:        f.ID,
		Title:     f.Title,
		CreatedOn: f.CreatedOn,
		Link:      f.Link,
		Tags:      tags,
		FileTypes: fileTypes,
		File:      f.File,
	}
}

func renderUpload(f *models.UserFile) any {
	return UploadUserFile{
		ID:   f.ID,
		File: f.File,
	}
}
