package user

import (
	"context"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned when a requested user does not exist.
var ErrNotFound = errors.New("user not found")

// User represents a registered customer. Password is stored and compared
// as plaintext; this mirrors the behavior of the system this service
// fronts and is a known security gap.
type User struct {
	ID       string
	UserName string
	FullName string
	Email    string
	Password string
}

// Repository defines persistence operations for users.
type Repository interface {
	GetByUserName(ctx context.Context, userName string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
}
