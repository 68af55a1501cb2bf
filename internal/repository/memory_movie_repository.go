package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"watchlist-foodlens-service/internal/models"
)

// MemoryMovieRepository keeps movies in process memory.
type MemoryMovieRepository struct {
	mu     sync.RWMutex
	movies map[string]models.Movie
	seq    map[string]uint64 // insertion order, breaks createdAt ties
	next   uint64
	now    func() time.Time
}

// NewMemoryMovieRepository creates an empty MemoryMovieRepository.
func NewMemoryMovieRepository() *MemoryMovieRepository {
	return &MemoryMovieRepository{
		movies: make(map[string]models.Movie),
		seq:    make(map[string]uint64),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryMovieRepository) Create(_ context.Context, f models.MovieFields) (*models.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	m := models.Movie{
		ID:          uuid.NewString(),
		Title:       f.Title,
		Genre:       f.Genre,
		ReleaseYear: f.ReleaseYear,
		Rating:      f.Rating,
		Watched:     f.Watched,
		Notes:       f.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.next++
	r.movies[m.ID] = m
	r.seq[m.ID] = r.next
	return &m, nil
}

func (r *MemoryMovieRepository) List(_ context.Context) ([]models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	movies := make([]models.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		movies = append(movies, m)
	}
	sort.Slice(movies, func(i, j int) bool {
		if !movies[i].CreatedAt.Equal(movies[j].CreatedAt) {
			return movies[i].CreatedAt.After(movies[j].CreatedAt)
		}
		return r.seq[movies[i].ID] > r.seq[movies[j].ID]
	})
	return movies, nil
}

func (r *MemoryMovieRepository) Get(_ context.Context, id string) (*models.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.movies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

func (r *MemoryMovieRepository) Update(_ context.Context, id string, f models.MovieFields) (*models.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.movies[id]
	if !ok {
		return nil, ErrNotFound
	}
	m.Title = f.Title
	m.Genre = f.Genre
	m.ReleaseYear = f.ReleaseYear
	m.Rating = f.Rating
	m.Watched = f.Watched
	m.Notes = f.Notes
	m.UpdatedAt = r.now()
	r.movies[id] = m
	return &m, nil
}

func (r *MemoryMovieRepository) Delete(_ context.Context, id string) (*models.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.movies[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.movies, id)
	delete(r.seq, id)
	return &m, nil
}
