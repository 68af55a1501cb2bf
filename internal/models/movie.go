package models

import (
	"fmt"
	"strings"
	"time"
)

// Rating bounds for a watchlist entry.
const (
	MinRating = 0
	MaxRating = 10
)

// Movie is a watchlist record.
type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	ReleaseYear int       `json:"releaseYear"`
	Rating      float64   `json:"rating"`
	Watched     bool      `json:"watched"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MovieInput is the request body for create and update.
// Pointer fields distinguish an absent field from its zero value.
type MovieInput struct {
	Title       *string  `json:"title"`
	Genre       *string  `json:"genre"`
	ReleaseYear *int     `json:"releaseYear"`
	Rating      *float64 `json:"rating"`
	Watched     *bool    `json:"watched"`
	Notes       *string  `json:"notes"`
}

// MovieFields is a validated MovieInput with defaults applied.
type MovieFields struct {
	Title       string
	Genre       string
	ReleaseYear int
	Rating      float64
	Watched     bool
	Notes       string
}

// ErrorKind classifies a validation failure.
type ErrorKind string

const (
	MissingField ErrorKind = "MissingField"
	OutOfRange   ErrorKind = "OutOfRange"
	InvalidType  ErrorKind = "InvalidType"
)

// ValidationError reports the first invalid field of a MovieInput.
type ValidationError struct {
	Field   string
	Kind    ErrorKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewInvalidType reports a body that could not be decoded into MovieInput.
func NewInvalidType(field string) *ValidationError {
	if field == "" {
		return &ValidationError{Kind: InvalidType, Message: "request body must be a JSON object"}
	}
	return &ValidationError{
		Field:   field,
		Kind:    InvalidType,
		Message: fmt.Sprintf("%s has an invalid type", field),
	}
}

// Validate checks required fields and ranges and returns the normalized fields.
func (in MovieInput) Validate() (MovieFields, error) {
	var f MovieFields

	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return f, missing("title")
	}
	if in.Genre == nil || strings.TrimSpace(*in.Genre) == "" {
		return f, missing("genre")
	}
	if in.ReleaseYear == nil {
		return f, missing("releaseYear")
	}
	f.Title = strings.TrimSpace(*in.Title)
	f.Genre = *in.Genre
	f.ReleaseYear = *in.ReleaseYear

	if in.Rating != nil {
		if *in.Rating < MinRating || *in.Rating > MaxRating {
			return f, &ValidationError{
				Field:   "rating",
				Kind:    OutOfRange,
				Message: fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating),
			}
		}
		f.Rating = *in.Rating
	}
	if in.Watched != nil {
		f.Watched = *in.Watched
	}
	if in.Notes != nil {
		f.Notes = *in.Notes
	}
	return f, nil
}

func missing(field string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Kind:    MissingField,
		Message: fmt.Sprintf("%s is required", field),
	}
}
