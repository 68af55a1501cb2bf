package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"watchlist-foodlens-service/internal/models"
	"watchlist-foodlens-service/internal/nutrition"
	"watchlist-foodlens-service/internal/vision"
)

// ErrVision wraps failures of the vision provider; without labels no
// downstream lookup is possible.
var ErrVision = errors.New("vision labeling failed")

// AnalysisService turns an uploaded food photo into labels, nutrition and
// optionally recipes. Calls are strictly sequential.
type AnalysisService struct {
	labeler  vision.Labeler
	provider nutrition.Provider
	recipes  nutrition.RecipeFinder
	selector *LabelSelector
}

// NewAnalysisService creates an AnalysisService. recipes may be nil to
// disable recipe lookups.
func NewAnalysisService(labeler vision.Labeler, provider nutrition.Provider, recipes nutrition.RecipeFinder, selector *LabelSelector) *AnalysisService {
	return &AnalysisService{
		labeler:  labeler,
		provider: provider,
		recipes:  recipes,
		selector: selector,
	}
}

// AnalyzeFile reads the image at path and analyzes it. The caller owns the file.
func (s *AnalysisService) AnalyzeFile(ctx context.Context, path string) (*models.AnalysisResponse, error) {
	image, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return s.Analyze(ctx, image)
}

// Analyze labels the image and looks up nutrition for the selected label.
// Only a vision failure is returned as an error; lookup failures degrade to
// missing data.
func (s *AnalysisService) Analyze(ctx context.Context, image []byte) (*models.AnalysisResponse, error) {
	labels, err := s.labeler.Labels(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVision, err)
	}
	if labels == nil {
		labels = []models.Label{}
	}

	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Description)
	}

	labelUsed, facts := s.selector.Select(ctx, names, s.provider.Lookup)

	detected := labelUsed
	if detected == "" && len(names) > 0 {
		detected = names[0]
	}
	if detected == "" {
		detected = models.UnknownFood
	}
	slog.Info("image analyzed", "labels", len(names), "detected", detected,
		"provider", s.provider.Name(), "nutrition", facts != nil)

	resp := &models.AnalysisResponse{
		DetectedFood: detected,
		FoodName:     detected,
		FoodInfo:     foodInfo(detected, facts),
		Labels:       labels,
		LabelNames:   names,
		Nutrition:    facts,
	}

	if s.recipes != nil && labelUsed != "" {
		recipes, err := s.recipes.Recipes(ctx, labelUsed)
		if err != nil {
			slog.Warn("recipe lookup failed", "query", labelUsed, "error", err)
		} else {
			resp.Recipes = recipes
		}
	}

	return resp, nil
}

func foodInfo(food string, facts *models.Nutrition) string {
	switch {
	case facts == nil:
		return fmt.Sprintf("No nutrition data found for %s.", food)
	case facts.Description != "":
		return fmt.Sprintf("%s matched %q.", food, facts.Description)
	default:
		return fmt.Sprintf("Nutrition data found for %s.", food)
	}
}
