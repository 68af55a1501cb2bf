package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"watchlist-foodlens-service/internal/models"
)

func TestMongoMalformedIDIsNotFound(t *testing.T) {
	ctx := context.Background()
	// a nil collection panics if any of these reach the driver
	repo := NewMongoMovieRepository(nil)
	fields := models.MovieFields{Title: "t", Genre: "g", ReleaseYear: 2000}

	for _, id := range []string{"not-hex", "", "123", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		if _, err := repo.Get(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q) err = %v, want ErrNotFound", id, err)
		}
		if _, err := repo.Update(ctx, id, fields); !errors.Is(err, ErrNotFound) {
			t.Errorf("Update(%q) err = %v, want ErrNotFound", id, err)
		}
		if _, err := repo.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
			t.Errorf("Delete(%q) err = %v, want ErrNotFound", id, err)
		}
	}
}

func TestMongoDocumentToModel(t *testing.T) {
	oid := bson.NewObjectID()
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	m := movieDocument{
		ID:          oid,
		Title:       "Paprika",
		Genre:       "Animation",
		ReleaseYear: 2006,
		Rating:      8.1,
		Watched:     true,
		Notes:       "dream parade",
		CreatedAt:   created,
		UpdatedAt:   updated,
	}.toModel()

	if m.ID != oid.Hex() {
		t.Errorf("id = %q, want %q", m.ID, oid.Hex())
	}
	back, err := bson.ObjectIDFromHex(m.ID)
	if err != nil || back != oid {
		t.Errorf("id does not parse back: %v, %v", back, err)
	}
	if !m.CreatedAt.Equal(created) || !m.UpdatedAt.Equal(updated) {
		t.Errorf("timestamps = %v, %v", m.CreatedAt, m.UpdatedAt)
	}
	if m.Title != "Paprika" || m.Genre != "Animation" || m.ReleaseYear != 2006 ||
		m.Rating != 8.1 || !m.Watched || m.Notes != "dream parade" {
		t.Errorf("model = %+v", m)
	}
}

func TestMongoErrorMapping(t *testing.T) {
	if err := mapMongoErr(mongo.ErrNoDocuments); !errors.Is(err, ErrNotFound) {
		t.Errorf("ErrNoDocuments maps to %v", err)
	}
	other := errors.New("connection reset")
	if err := mapMongoErr(other); errors.Is(err, ErrNotFound) || !errors.Is(err, other) {
		t.Errorf("other error maps to %v", err)
	}
}
