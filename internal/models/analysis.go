package models

// Label is a text tag with a confidence score returned by a vision provider.
type Label struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// Quantity is a nutrient amount with its unit.
type Quantity struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Nutrition holds the nutrient amounts a provider returned for a query.
// Nil fields were not reported by the provider.
type Nutrition struct {
	Description   string    `json:"description,omitempty"`
	Brand         *string   `json:"brand"`
	Calories      *Quantity `json:"calories"`
	Protein       *Quantity `json:"protein"`
	Fat           *Quantity `json:"fat"`
	Carbohydrates *Quantity `json:"carbs"`
	Fiber         *Quantity `json:"fiber"`
	Sodium        *Quantity `json:"sodium"`
}

// Recipe is a recipe summary from a recipe provider.
type Recipe struct {
	Title        string `json:"title"`
	SourceName   string `json:"sourceName"`
	URL          string `json:"url"`
	Instructions string `json:"instructions"`
}

// AnalysisResponse is the payload returned for an analyzed image.
type AnalysisResponse struct {
	DetectedFood string     `json:"detectedFood"`
	FoodName     string     `json:"foodName"`
	FoodInfo     string     `json:"foodInfo"`
	Labels       []Label    `json:"labels"`
	LabelNames   []string   `json:"labelNames"`
	Nutrition    *Nutrition `json:"nutrition"`
	Recipes      []Recipe   `json:"recipes,omitempty"`
}

// UnknownFood is reported when no label was detected.
const UnknownFood = "Unknown food"
