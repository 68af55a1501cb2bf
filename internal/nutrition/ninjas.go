package nutrition

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"watchlist-foodlens-service/internal/models"
)

const ninjasSourceName = "API Ninjas"

// NinjasClient queries the API Ninjas nutrition and recipe endpoints.
type NinjasClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewNinjasClient creates a new API Ninjas client.
func NewNinjasClient(apiKey, baseURL string) *NinjasClient {
	return &NinjasClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newHTTPClient(),
	}
}

type ninjasNutrition struct {
	Name          string         `json:"name"`
	Calories      optionalNumber `json:"calories"`
	Carbohydrates optionalNumber `json:"carbohydrates_total_g"`
	Protein       optionalNumber `json:"protein_g"`
	Fat           optionalNumber `json:"fat_total_g"`
	Fiber         optionalNumber `json:"fiber_g"`
	Sodium        optionalNumber `json:"sodium_mg"`
}

type ninjasRecipe struct {
	Title        string `json:"title"`
	Instructions string `json:"instructions"`
	SourceURL    string `json:"source_url"`
}

func (c *NinjasClient) Name() string { return "ninjas" }

func (c *NinjasClient) header() http.Header {
	h := http.Header{}
	h.Set("X-Api-Key", c.apiKey)
	return h
}

// Lookup returns nutrition facts for the first item API Ninjas parses from query.
func (c *NinjasClient) Lookup(ctx context.Context, query string) (*models.Nutrition, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("ninjas: %w", ErrMissingAPIKey)
	}

	var items []ninjasNutrition
	u := c.baseURL + "/v1/nutrition?query=" + url.QueryEscape(query)
	if err := getJSON(ctx, c.http, u, c.header(), &items); err != nil {
		return nil, fmt.Errorf("ninjas nutrition: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	it := items[0]
	n := &models.Nutrition{Description: it.Name}
	n.Calories = optionalQuantity(it.Calories, "kcal")
	n.Carbohydrates = optionalQuantity(it.Carbohydrates, "g")
	n.Protein = optionalQuantity(it.Protein, "g")
	n.Fat = optionalQuantity(it.Fat, "g")
	n.Fiber = optionalQuantity(it.Fiber, "g")
	n.Sodium = optionalQuantity(it.Sodium, "mg")
	return n, nil
}

// Recipes returns up to MaxRecipes recipes whose title matches query.
func (c *NinjasClient) Recipes(ctx context.Context, query string) ([]models.Recipe, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("ninjas: %w", ErrMissingAPIKey)
	}

	var items []ninjasRecipe
	u := c.baseURL + "/v2/recipe?title=" + url.QueryEscape(query)
	if err := getJSON(ctx, c.http, u, c.header(), &items); err != nil {
		return nil, fmt.Errorf("ninjas recipe: %w", err)
	}

	if len(items) > MaxRecipes {
		items = items[:MaxRecipes]
	}
	recipes := make([]models.Recipe, 0, len(items))
	for _, r := range items {
		recipes = append(recipes, models.Recipe{
			Title:        r.Title,
			SourceName:   ninjasSourceName,
			URL:          safeLink(r.SourceURL),
			Instructions: r.Instructions,
		})
	}
	return recipes, nil
}

// safeLink keeps absolute http(s) URLs and replaces anything else with "#".
func safeLink(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return "#"
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.String()
	}
	return "#"
}

func optionalQuantity(n optionalNumber, unit string) *models.Quantity {
	if !n.Valid {
		return nil
	}
	return quantity(n.Value, unit)
}
