// Package nutrition looks up nutrient facts and recipes for a food name.
package nutrition

import (
	"context"

	"watchlist-foodlens-service/internal/models"
)

// Provider looks up nutrition facts for a free-text food query.
// A nil result with a nil error means the provider had no match.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, query string) (*models.Nutrition, error)
}

// RecipeFinder looks up recipe summaries for a food name.
type RecipeFinder interface {
	Recipes(ctx context.Context, query string) ([]models.Recipe, error)
}

// MaxRecipes caps how many recipes are returned per query.
const MaxRecipes = 3

func quantity(amount float64, unit string) *models.Quantity {
	return &models.Quantity{Amount: amount, Unit: unit}
}
