// Package devserver is a reference implementation of the users REST API,
// used for local development of the client and in its tests.
package devserver

import (
	"context"
	"errors"

	"github.com/hairizuan-noorazman/user-admin/user"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// Store defines the interface for user persistence operations.
type Store interface {
	// Create assigns an id and timestamps and stores the user.
	Create(ctx context.Context, data user.CreateData) (*user.User, error)

	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id string) (*user.User, error)

	// Replace overwrites every editable field of the user with id.
	Replace(ctx context.Context, id string, data user.CreateData) (*user.User, error)

	// Delete removes the user with id.
	Delete(ctx context.Context, id string) error

	// List returns one page of users ordered by creation time, and the total
	// number of users.
	List(ctx context.Context, limit, offset int) ([]user.User, int, error)
}
