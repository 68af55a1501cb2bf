package nutrition

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"watchlist-foodlens-service/internal/models"
)

// ErrMissingAPIKey is returned when a provider has no credentials configured.
var ErrMissingAPIKey = errors.New("API key is not set")

// USDA nutrient names mapped onto Nutrition fields.
const (
	usdaEnergy  = "Energy"
	usdaProtein = "Protein"
	usdaFat     = "Total lipid (fat)"
	usdaCarbs   = "Carbohydrate, by difference"
	usdaFiber   = "Fiber, total dietary"
	usdaSodium  = "Sodium, Na"
)

// USDAClient queries USDA FoodData Central.
type USDAClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewUSDAClient creates a new FoodData Central client.
func NewUSDAClient(apiKey, baseURL string) *USDAClient {
	return &USDAClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newHTTPClient(),
	}
}

type usdaSearchResponse struct {
	Foods []usdaFood `json:"foods"`
}

type usdaFood struct {
	Description   string             `json:"description"`
	BrandName     string             `json:"brandName"`
	FoodNutrients []usdaFoodNutrient `json:"foodNutrients"`
}

type usdaFoodNutrient struct {
	NutrientName string         `json:"nutrientName"`
	Value        optionalNumber `json:"value"`
	UnitName     string         `json:"unitName"`
}

func (c *USDAClient) Name() string { return "usda" }

// Lookup searches the Survey (FNDDS) dataset and maps the top hit.
func (c *USDAClient) Lookup(ctx context.Context, query string) (*models.Nutrition, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("usda: %w", ErrMissingAPIKey)
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("pageSize", "1")
	params.Set("dataType", "Survey (FNDDS)")

	var result usdaSearchResponse
	if err := getJSON(ctx, c.http, c.baseURL+"/foods/search?"+params.Encode(), nil, &result); err != nil {
		return nil, fmt.Errorf("usda search: %w", err)
	}
	if len(result.Foods) == 0 {
		return nil, nil
	}
	return mapUSDAFood(result.Foods[0]), nil
}

func mapUSDAFood(food usdaFood) *models.Nutrition {
	n := &models.Nutrition{Description: food.Description}
	if food.BrandName != "" {
		brand := food.BrandName
		n.Brand = &brand
	}

	for _, fn := range food.FoodNutrients {
		if !fn.Value.Valid {
			continue
		}
		q := quantity(fn.Value.Value, fn.UnitName)
		switch fn.NutrientName {
		case usdaEnergy:
			n.Calories = q
		case usdaProtein:
			n.Protein = q
		case usdaFat:
			n.Fat = q
		case usdaCarbs:
			n.Carbohydrates = q
		case usdaFiber:
			n.Fiber = q
		case usdaSodium:
			n.Sodium = q
		}
	}
	return n
}
