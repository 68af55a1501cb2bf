package service

import (
	"context"
	"errors"
	"testing"

	"watchlist-foodlens-service/internal/models"
	"watchlist-foodlens-service/internal/repository"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newMovieService() *MovieService {
	return NewMovieService(repository.NewMemoryMovieRepository(), nil)
}

func validInput(title string) models.MovieInput {
	return models.MovieInput{Title: strPtr(title), Genre: strPtr("Drama"), ReleaseYear: intPtr(1994)}
}

func TestMovieServiceCreateThenGet(t *testing.T) {
	ctx := context.Background()
	svc := newMovieService()

	in := validInput("The Shawshank Redemption")
	rating := 9.5
	in.Rating = &rating

	created, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "The Shawshank Redemption" || got.Genre != "Drama" || got.ReleaseYear != 1994 ||
		got.Rating != 9.5 || got.Watched || got.Notes != "" {
		t.Errorf("Get = %+v", got)
	}
}

func TestMovieServiceValidation(t *testing.T) {
	svc := newMovieService()

	_, err := svc.Create(context.Background(), models.MovieInput{Genre: strPtr("x"), ReleaseYear: intPtr(1)})
	var verr *models.ValidationError
	if !errors.As(err, &verr) || verr.Kind != models.MissingField {
		t.Fatalf("err = %v, want MissingField", err)
	}
}

func TestMovieServiceUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newMovieService()

	if _, err := svc.Update(ctx, "missing", validInput("Ghost")); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("update missing err = %v", err)
	}
	list, _ := svc.List(ctx)
	if len(list) != 0 {
		t.Fatalf("update created a record")
	}

	created, _ := svc.Create(ctx, validInput("Fargo"))
	bad := validInput("Fargo")
	high := 12.0
	bad.Rating = &high
	var verr *models.ValidationError
	if _, err := svc.Update(ctx, created.ID, bad); !errors.As(err, &verr) || verr.Kind != models.OutOfRange {
		t.Errorf("err = %v, want OutOfRange", err)
	}

	watched := true
	in := validInput("Fargo")
	in.Watched = &watched
	updated, err := svc.Update(ctx, created.ID, in)
	if err != nil || !updated.Watched {
		t.Errorf("Update = %+v, %v", updated, err)
	}
}

func TestMovieServiceDeleteTwice(t *testing.T) {
	ctx := context.Background()
	svc := newMovieService()

	created, _ := svc.Create(ctx, validInput("Memento"))
	if _, err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Delete(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("get after delete err = %v", err)
	}
}
