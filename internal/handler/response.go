package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Message string `json:"message"`
}

func errorJSON(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Message: msg})
}

// ErrorHandler renders errors that escape a handler as ErrorResponse.
func ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong!"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled error", "error", err, "status", code, "path", c.Path())
	}
	return errorJSON(c, code, msg)
}
