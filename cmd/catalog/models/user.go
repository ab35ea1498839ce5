package models

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/pashadev/cadvault/common/errs"
)

// User is a tenant account. Every tag, file type and user file belongs to
// exactly one user.
// Maps to: users table
type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	IsStaff      bool      `db:"is_staff" json:"is_staff"`
	IsSuperuser  bool      `db:"is_superuser" json:"is_superuser"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

const minPasswordLength = 5

// NormalizeEmail lower-cases the domain part of an address so lookups are
// case-insensitive where mail delivery is.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// NewUser creates an active, non-staff user with a bcrypt password hash.
// An empty email is a validation error.
func NewUser(email, password string) (*User, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errs.NewValidation("email", "must not be empty")
	}
	if len(password) < minPasswordLength {
		return nil, errs.NewValidation("password", "must be at least 5 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		Email:        NormalizeEmail(email),
		PasswordHash: string(hash),
		IsActive:     true,
	}, nil
}

// NewSuperuser creates a user that is also staff and superuser
func NewSuperuser(email, password string) (*User, error) {
	user, err := NewUser(email, password)
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	user.IsSuperuser = true
	return user, nil
}

// CheckPassword reports whether password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) String() string {
	return u.Email
}
