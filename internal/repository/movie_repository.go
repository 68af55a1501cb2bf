package repository

import (
	"context"
	"errors"

	"watchlist-foodlens-service/internal/models"
)

// ErrNotFound is returned when no movie matches the given id.
var ErrNotFound = errors.New("movie not found")

// MovieRepository persists watchlist records.
type MovieRepository interface {
	Create(ctx context.Context, f models.MovieFields) (*models.Movie, error)
	// List returns every movie, newest first.
	List(ctx context.Context) ([]models.Movie, error)
	Get(ctx context.Context, id string) (*models.Movie, error)
	// Update replaces all mutable fields; it never inserts.
	Update(ctx context.Context, id string, f models.MovieFields) (*models.Movie, error)
	// Delete removes the movie and returns it as it was before removal.
	Delete(ctx context.Context, id string) (*models.Movie, error)
}
