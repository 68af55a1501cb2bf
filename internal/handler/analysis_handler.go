package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"watchlist-foodlens-service/internal/service"
)

// AnalysisHandler handles food image uploads.
type AnalysisHandler struct {
	svc       *service.AnalysisService
	uploadDir string
}

// NewAnalysisHandler creates a new AnalysisHandler that stores uploads in uploadDir.
func NewAnalysisHandler(svc *service.AnalysisService, uploadDir string) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, uploadDir: uploadDir}
}

// AnalyzeImage labels an uploaded photo and looks up nutrition for it.
// @Summary Analyze food image
// @Tags analysis
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Food photo"
// @Success 200 {object} models.AnalysisResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /analyze-image [post]
func (h *AnalysisHandler) AnalyzeImage(c fiber.Ctx) error {
	fh, ok := formImage(c)
	if !ok {
		return errorJSON(c, fiber.StatusBadRequest, "No image uploaded")
	}

	path, cleanup, err := saveTempUpload(c, fh, h.uploadDir)
	if err != nil {
		slog.Error("failed to store upload", "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Error analyzing image")
	}
	defer cleanup()

	resp, err := h.svc.AnalyzeFile(c.Context(), path)
	if err != nil {
		slog.Error("error analyzing image", "file", fh.Filename, "error", err)
		return errorJSON(c, fiber.StatusInternalServerError, "Error analyzing image")
	}
	return c.JSON(resp)
}
