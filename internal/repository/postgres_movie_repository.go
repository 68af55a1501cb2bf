package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"watchlist-foodlens-service/internal/models"
)

const movieColumns = `id, title, genre, release_year, rating, watched, notes, created_at, updated_at`

// PostgresMovieRepository stores movies in the movies table.
type PostgresMovieRepository struct {
	db *sql.DB
}

// NewPostgresMovieRepository creates a new PostgresMovieRepository.
func NewPostgresMovieRepository(db *sql.DB) *PostgresMovieRepository {
	return &PostgresMovieRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	var m models.Movie
	var id int64
	if err := row.Scan(&id, &m.Title, &m.Genre, &m.ReleaseYear, &m.Rating,
		&m.Watched, &m.Notes, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.ID = strconv.FormatInt(id, 10)
	return &m, nil
}

// Create inserts a movie.
func (r *PostgresMovieRepository) Create(ctx context.Context, f models.MovieFields) (*models.Movie, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO movies (title, genre, release_year, rating, watched, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+movieColumns,
		f.Title, f.Genre, f.ReleaseYear, f.Rating, f.Watched, f.Notes)

	m, err := scanMovie(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert movie: %w", err)
	}
	return m, nil
}

// List returns all movies, newest first.
func (r *PostgresMovieRepository) List(ctx context.Context) ([]models.Movie, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list query failed: %w", err)
	}
	defer rows.Close()

	movies := make([]models.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, *m)
	}
	return movies, rows.Err()
}

// Get returns a movie by id.
func (r *PostgresMovieRepository) Get(ctx context.Context, id string) (*models.Movie, error) {
	pk, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}
	m, err := scanMovie(r.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, pk))
	return m, mapSQLErr(err)
}

// Update replaces the mutable fields of an existing movie.
func (r *PostgresMovieRepository) Update(ctx context.Context, id string, f models.MovieFields) (*models.Movie, error) {
	pk, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `
		UPDATE movies SET
			title = $1, genre = $2, release_year = $3, rating = $4,
			watched = $5, notes = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING `+movieColumns,
		f.Title, f.Genre, f.ReleaseYear, f.Rating, f.Watched, f.Notes, pk)

	m, err := scanMovie(row)
	return m, mapSQLErr(err)
}

// Delete removes a movie and returns the deleted row.
func (r *PostgresMovieRepository) Delete(ctx context.Context, id string) (*models.Movie, error) {
	pk, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}
	m, err := scanMovie(r.db.QueryRowContext(ctx, `DELETE FROM movies WHERE id = $1 RETURNING `+movieColumns, pk))
	return m, mapSQLErr(err)
}

func mapSQLErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	default:
		return fmt.Errorf("postgres operation failed: %w", err)
	}
}
