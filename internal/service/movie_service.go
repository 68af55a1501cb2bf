package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"watchlist-foodlens-service/internal/cache"
	"watchlist-foodlens-service/internal/models"
	"watchlist-foodlens-service/internal/repository"
)

const (
	movieListCacheTTL   = 5 * time.Minute
	movieDetailCacheTTL = 30 * time.Minute

	movieListCacheKey = "movies:list"
)

// MovieService handles business logic for the watchlist.
type MovieService struct {
	repo  repository.MovieRepository
	cache *cache.Cache
}

// NewMovieService creates a new MovieService. c may be nil.
func NewMovieService(repo repository.MovieRepository, c *cache.Cache) *MovieService {
	return &MovieService{repo: repo, cache: c}
}

// Create validates the input and stores a new movie.
func (s *MovieService) Create(ctx context.Context, in models.MovieInput) (*models.Movie, error) {
	fields, err := in.Validate()
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Create(ctx, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	s.invalidateCache(ctx)
	slog.Info("movie created", "id", movie.ID, "title", movie.Title)
	return movie, nil
}

// List returns all movies, newest first.
func (s *MovieService) List(ctx context.Context) ([]models.Movie, error) {
	var cached []models.Movie
	if err := s.cache.Get(ctx, movieListCacheKey, &cached); err == nil {
		return cached, nil
	}

	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	s.cache.Set(ctx, movieListCacheKey, movies, movieListCacheTTL)
	return movies, nil
}

// Get returns a movie by id.
func (s *MovieService) Get(ctx context.Context, id string) (*models.Movie, error) {
	cacheKey := detailCacheKey(id)

	var cached models.Movie
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	movie, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cacheKey, movie, movieDetailCacheTTL)
	return movie, nil
}

// Update re-validates the full input and replaces the stored fields.
func (s *MovieService) Update(ctx context.Context, id string, in models.MovieInput) (*models.Movie, error) {
	fields, err := in.Validate()
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return movie, nil
}

// Delete removes a movie and returns it.
func (s *MovieService) Delete(ctx context.Context, id string) (*models.Movie, error) {
	movie, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	slog.Info("movie deleted", "id", id)
	return movie, nil
}

func (s *MovieService) invalidateCache(ctx context.Context) {
	s.cache.Invalidate(ctx, "movies:*", "movie:*")
}

func detailCacheKey(id string) string {
	return "movie:detail:" + id
}
