// Package vision labels images through an external vision service.
package vision

import (
	"context"
	"errors"

	"watchlist-foodlens-service/internal/models"
)

// ErrNoImage is returned when a labeler is given an empty image.
var ErrNoImage = errors.New("empty image")

// Labeler returns labels for an image, highest confidence first.
type Labeler interface {
	Labels(ctx context.Context, image []byte) ([]models.Label, error)
}
