package service

import (
	"context"
	"sort"
	"time"

	"github.com/pashadev/cadvault/cmd/catalog/models"
	"github.com/pashadev/cadvault/common/errs"
	"github.com/pashadev/cadvault/common/logger"
)

func testLogger() *logger.Logger {
	return logger.New("error", "json")
}

// fakeUserFileRepo is a map-backed UserFileRepository honoring the same
// owner scoping as the SQL implementation.
type fakeUserFileRepo struct {
	nextID int64
	files  map[int64]*models.UserFile
}

func newFakeUserFileRepo() *fakeUserFileRepo {
	return &fakeUserFileRepo{files: make(map[int64]*models.UserFile)}
}

func (r *fakeUserFileRepo) Create(ctx context.Context, file *models.UserFile) error {
	r.nextID++
	file.ID = r.nextID
	stored := *file
	r.files[file.ID] = &stored
	return nil
}

func (r *fakeUserFileRepo) GetForOwner(ctx context.Context, ownerID, id int64) (*models.UserFile, error) {
	file, ok := r.files[id]
	if !ok || file.OwnerID != ownerID {
		return nil, errs.ErrNotFound
	}
	out := *file
	return &out, nil
}

func (r *fakeUserFileRepo) ListForOwner(ctx context.Context, ownerID int64, tagIDs, fileTypeIDs []int64) ([]*models.UserFile, error) {
	var out []*models.UserFile
	for _, file := range r.files {
		if file.OwnerID != ownerID {
			continue
		}
		if tagIDs != nil && !linksAny(file.TagIDs(), tagIDs) {
			continue
		}
		if fileTypeIDs != nil && !linksAny(file.FileTypeIDs(), fileTypeIDs) {
			continue
		}
		copied := *file
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeUserFileRepo) Update(ctx context.Context, file *models.UserFile) error {
	existing, ok := r.files[file.ID]
	if !ok || existing.OwnerID != file.OwnerID {
		return errs.ErrNotFound
	}
	stored := *file
	stored.File = existing.File
	r.files[file.ID] = &stored
	return nil
}

func (r *fakeUserFileRepo) SetFile(ctx context.Context, ownerID, id int64, key string) (*string, error) {
	file, ok := r.files[id]
	if !ok || file.OwnerID != ownerID {
		return nil, errs.ErrNotFound
	}
	previous := file.File
	file.File = &key
	return previous, nil
}

func (r *fakeUserFileRepo) Delete(ctx context.Context, ownerID, id int64) (*string, error) {
	file, ok := r.files[id]
	if !ok || file.OwnerID != ownerID {
		return nil, errs.ErrNotFound
	}
	delete(r.files, id)
	return file.File, nil
}

func linksAny(have, want []int64) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

// fakeTagRepo records creates and serves lists with the same semantics as
// the SQL implementation: owner-scoped, label descending, and optionally
// restricted to tags in the assigned set.
type fakeTagRepo struct {
	nextID   int64
	tags     []models.Tag
	assigned map[int64]bool
}

func (r *fakeTagRepo) Create(ctx context.Context, tag *models.Tag) error {
	r.nextID++
	tag.ID = r.nextID
	r.tags = append(r.tags, *tag)
	return nil
}

func (r *fakeTagRepo) ListForOwner(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.Tag, error) {
	var out []models.Tag
	for _, tag := range r.tags {
		if tag.OwnerID != ownerID {
			continue
		}
		if assignedOnly && !r.assigned[tag.ID] {
			continue
		}
		out = append(out, tag)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

type fakeFileTypeRepo struct {
	nextID    int64
	fileTypes []models.FileType
	assigned  map[int64]bool
}

func (r *fakeFileTypeRepo) Create(ctx context.Context, fileType *models.FileType) error {
	r.nextID++
	fileType.ID = r.nextID
	r.fileTypes = append(r.fileTypes, *fileType)
	return nil
}

func (r *fakeFileTypeRepo) ListForOwner(ctx context.Context, ownerID int64, assignedOnly bool) ([]models.FileType, error) {
	var out []models.FileType
	for _, ft := range r.fileTypes {
		if ft.OwnerID != ownerID {
			continue
		}
		if assignedOnly && !r.assigned[ft.ID] {
			continue
		}
		out = append(out, ft)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type > out[j].Type })
	return out, nil
}

// fakeUserRepo is a map-backed UserRepository
type fakeUserRepo struct {
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return errs.NewValidation("email", "already registered")
		}
	}
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	out := *user
	return &out, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	normalized := models.NormalizeEmail(email)
	for _, user := range r.users {
		if user.Email == normalized {
			out := *user
			return &out, nil
		}
	}
	return nil, errs.ErrNotFound
}

// fakeTokenStore is an in-memory TokenStore
type fakeTokenStore struct {
	tokens map[string]int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]int64)}
}

func (s *fakeTokenStore) StoreToken(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	s.tokens[token] = userID
	return nil
}

func (s *fakeTokenStore) LookupToken(ctx context.Context, token string) (int64, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return 0, errs.ErrUnauthorized
	}
	return userID, nil
}

func (s *fakeTokenStore) RevokeToken(ctx context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}
