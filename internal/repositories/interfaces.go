package repositories

import (
	"context"
	"errors"

	"userhub/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// ListFilter narrows a listing to live rows whose full name or email
// contains Search, case-insensitively. An empty Search matches everything.
type ListFilter struct {
	Search string
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error

	// FindByEmail ignores the soft-delete scope: callers receive deleted
	// rows and decide for themselves. Login and registration both need to
	// see a deleted row to treat it correctly.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID only sees live rows; a soft-deleted ID is ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// Update applies a partial column map to a live row and returns the
	// updated record. ErrNotFound when the ID has no live match.
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.User, error)

	// SoftDelete stamps deleted_at. ErrNotFound when already deleted or missing.
	SoftDelete(ctx context.Context, id string) error

	// List returns one page of live rows ordered by created_at descending,
	// plus the total count of rows matching the filter. Page is 1-indexed.
	List(ctx context.Context, filter ListFilter, page, limit int) ([]models.User, int64, error)
}
