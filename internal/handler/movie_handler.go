package handler

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"watchlist-foodlens-service/internal/models"
	"watchlist-foodlens-service/internal/repository"
	"watchlist-foodlens-service/internal/service"
)

// MovieHandler handles HTTP requests for the watchlist.
type MovieHandler struct {
	svc *service.MovieService
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(svc *service.MovieService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	Message string        `json:"message"`
	Movie   *models.Movie `json:"movie"`
}

// CreateMovie adds a movie to the watchlist.
// @Summary Create movie
// @Tags movies
// @Accept json
// @Produce json
// @Success 201 {object} models.Movie
// @Failure 400 {object} ErrorResponse
// @Router /movies [post]
func (h *MovieHandler) CreateMovie(c fiber.Ctx) error {
	in, err := decodeMovieInput(c.Body())
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	movie, err := h.svc.Create(c.Context(), in)
	if err != nil {
		return h.writeError(c, err, "failed to create movie")
	}
	return c.Status(fiber.StatusCreated).JSON(movie)
}

// ListMovies returns every movie, newest first.
// @Summary List movies
// @Tags movies
// @Produce json
// @Success 200 {array} models.Movie
// @Failure 500 {object} ErrorResponse
// @Router /movies [get]
func (h *MovieHandler) ListMovies(c fiber.Ctx) error {
	movies, err := h.svc.List(c.Context())
	if err != nil {
		slog.Error("failed to list movies", "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "failed to retrieve movies")
	}
	return c.JSON(movies)
}

// GetMovie returns a single movie.
// @Summary Get movie
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} models.Movie
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovie(c fiber.Ctx) error {
	movie, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err, "failed to retrieve movie")
	}
	return c.JSON(movie)
}

// UpdateMovie replaces a movie's fields.
// @Summary Update movie
// @Tags movies
// @Accept json
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} models.Movie
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /movies/{id} [put]
func (h *MovieHandler) UpdateMovie(c fiber.Ctx) error {
	in, err := decodeMovieInput(c.Body())
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	movie, err := h.svc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return h.writeError(c, err, "failed to update movie")
	}
	return c.JSON(movie)
}

// DeleteMovie removes a movie.
// @Summary Delete movie
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} DeleteResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /movies/{id} [delete]
func (h *MovieHandler) DeleteMovie(c fiber.Ctx) error {
	movie, err := h.svc.Delete(c.Context(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err, "failed to delete movie")
	}
	return c.JSON(DeleteResponse{Message: "Movie deleted successfully", Movie: movie})
}

func (h *MovieHandler) writeError(c fiber.Ctx, err error, fallback string) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return errorJSON(c, fiber.StatusBadRequest, verr.Error())
	case errors.Is(err, repository.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Movie not found")
	default:
		slog.Error(fallback, "id", c.Params("id"), "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, fallback)
	}
}

// decodeMovieInput maps JSON decoding failures onto InvalidType errors.
func decodeMovieInput(body []byte) (models.MovieInput, error) {
	var in models.MovieInput
	if err := json.Unmarshal(body, &in); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return in, models.NewInvalidType(typeErr.Field)
		}
		return in, models.NewInvalidType("")
	}
	return in, nil
}
