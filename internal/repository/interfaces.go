package repository

import (
	"context"
	"errors"

	"github.com/baharkarakas/blog-backend/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
	ErrReference = errors.New("referenced row missing")
)

type Users interface {
	// Create assigns the id. A taken email yields ErrDuplicate.
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

type Posts interface {
	// Create assigns id and timestamps. An unknown author yields ErrReference.
	Create(ctx context.Context, p models.Post) (models.Post, error)
	GetByID(ctx context.Context, id string) (models.Post, error)
	// Update rewrites title and content and bumps updated_at. Zero affected
	// rows yield ErrNotFound.
	Update(ctx context.Context, id, title, content string) (models.Post, error)
	// Delete yields ErrNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error
	// Page returns one page, newest first, and the total row count read in
	// the same scope.
	Page(ctx context.Context, limit, offset int) ([]models.PostListItem, int, error)
}
