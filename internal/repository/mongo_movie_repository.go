package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"watchlist-foodlens-service/internal/models"
)

// movieDocument is the BSON shape of a movie in the collection.
type movieDocument struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	Genre       string        `bson:"genre"`
	ReleaseYear int           `bson:"releaseYear"`
	Rating      float64       `bson:"rating"`
	Watched     bool          `bson:"watched"`
	Notes       string        `bson:"notes"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}

func (d movieDocument) toModel() *models.Movie {
	return &models.Movie{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Genre:       d.Genre,
		ReleaseYear: d.ReleaseYear,
		Rating:      d.Rating,
		Watched:     d.Watched,
		Notes:       d.Notes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoMovieRepository stores movies in a MongoDB collection.
type MongoMovieRepository struct {
	coll *mongo.Collection
}

// NewMongoMovieRepository creates a new MongoMovieRepository.
func NewMongoMovieRepository(coll *mongo.Collection) *MongoMovieRepository {
	return &MongoMovieRepository{coll: coll}
}

// Create inserts a movie and stamps both timestamps.
func (r *MongoMovieRepository) Create(ctx context.Context, f models.MovieFields) (*models.Movie, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := movieDocument{
		ID:          bson.NewObjectID(),
		Title:       f.Title,
		Genre:       f.Genre,
		ReleaseYear: f.ReleaseYear,
		Rating:      f.Rating,
		Watched:     f.Watched,
		Notes:       f.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert movie: %w", err)
	}
	return doc.toModel(), nil
}

// List returns all movies sorted by createdAt descending.
func (r *MongoMovieRepository) List(ctx context.Context) ([]models.Movie, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list query failed: %w", err)
	}

	var docs []movieDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode movies: %w", err)
	}

	movies := make([]models.Movie, 0, len(docs))
	for _, d := range docs {
		movies = append(movies, *d.toModel())
	}
	return movies, nil
}

// Get returns the movie with the given ObjectID hex.
func (r *MongoMovieRepository) Get(ctx context.Context, id string) (*models.Movie, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc movieDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapMongoErr(err)
	}
	return doc.toModel(), nil
}

// Update sets all mutable fields and returns the document after the update.
func (r *MongoMovieRepository) Update(ctx context.Context, id string, f models.MovieFields) (*models.Movie, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":       f.Title,
		"genre":       f.Genre,
		"releaseYear": f.ReleaseYear,
		"rating":      f.Rating,
		"watched":     f.Watched,
		"notes":       f.Notes,
		"updatedAt":   time.Now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(false)

	var doc movieDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		return nil, mapMongoErr(err)
	}
	return doc.toModel(), nil
}

// Delete removes the movie and returns the removed document.
func (r *MongoMovieRepository) Delete(ctx context.Context, id string) (*models.Movie, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc movieDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapMongoErr(err)
	}
	return doc.toModel(), nil
}

func mapMongoErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("mongo operation failed: %w", err)
}
