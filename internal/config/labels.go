package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// labelFile is the on-disk shape of LABELS_FILE.
type labelFile struct {
	GenericLabels []string `yaml:"generic_labels"`
}

// DefaultGenericLabels returns labels too broad to be a useful nutrition query.
func DefaultGenericLabels() []string {
	return []string{
		"Food",
		"Ingredient",
		"Cuisine",
		"Dish",
		"Fast food",
		"Recipe",
		"Junk food",
		"Comfort food",
		"Snack",
		"Baked goods",
		"Staple food",
	}
}

// LoadGenericLabels reads a YAML file with a generic_labels list.
func LoadGenericLabels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read labels file: %w", err)
	}

	var lf labelFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse labels file: %w", err)
	}

	labels := make([]string, 0, len(lf.GenericLabels))
	for _, l := range lf.GenericLabels {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	return labels, nil
}
