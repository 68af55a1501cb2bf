package nutrition

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"watchlist-foodlens-service/internal/models"
)

// EdamamClient queries the Edamam food database parser.
type EdamamClient struct {
	appID   string
	appKey  string
	baseURL string
	http    *http.Client
}

// NewEdamamClient creates a new Edamam food database client.
func NewEdamamClient(appID, appKey, baseURL string) *EdamamClient {
	return &EdamamClient{
		appID:   appID,
		appKey:  appKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newHTTPClient(),
	}
}

type edamamFood struct {
	FoodID    string                    `json:"foodId"`
	Label     string                    `json:"label"`
	Brand     string                    `json:"brand"`
	Nutrients map[string]optionalNumber `json:"nutrients"`
}

type edamamParserResponse struct {
	Parsed []struct {
		Food edamamFood `json:"food"`
	} `json:"parsed"`
	Hints []struct {
		Food edamamFood `json:"food"`
	} `json:"hints"`
}

func (c *EdamamClient) Name() string { return "edamam" }

// Lookup parses query and maps per-100g nutrients of the best match.
func (c *EdamamClient) Lookup(ctx context.Context, query string) (*models.Nutrition, error) {
	if c.appID == "" || c.appKey == "" {
		return nil, fmt.Errorf("edamam: %w", ErrMissingAPIKey)
	}

	params := url.Values{}
	params.Set("ingr", query)
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)

	var pr edamamParserResponse
	if err := getJSON(ctx, c.http, c.baseURL+"/parser?"+params.Encode(), nil, &pr); err != nil {
		return nil, fmt.Errorf("edamam parser: %w", err)
	}

	var food *edamamFood
	switch {
	case len(pr.Parsed) > 0:
		food = &pr.Parsed[0].Food
	case len(pr.Hints) > 0:
		food = &pr.Hints[0].Food
	default:
		return nil, nil
	}
	return mapEdamamFood(food), nil
}

func mapEdamamFood(food *edamamFood) *models.Nutrition {
	n := &models.Nutrition{Description: food.Label}
	if food.Brand != "" {
		brand := food.Brand
		n.Brand = &brand
	}
	get := func(key, unit string) *models.Quantity {
		v, ok := food.Nutrients[key]
		if !ok {
			return nil
		}
		return optionalQuantity(v, unit)
	}
	n.Calories = get("ENERC_KCAL", "kcal")
	n.Protein = get("PROCNT", "g")
	n.Fat = get("FAT", "g")
	n.Carbohydrates = get("CHOCDF", "g")
	n.Fiber = get("FIBTG", "g")
	n.Sodium = get("NA", "mg")
	return n
}
