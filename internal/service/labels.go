package service

import (
	"context"
	"log/slog"

	"watchlist-foodlens-service/internal/models"
)

// SelectionMode chooses how a nutrition query is picked from labels.
type SelectionMode string

const (
	// SelectBest skips generic labels before looking up nutrition.
	SelectBest SelectionMode = "best"
	// SelectTop always queries the highest ranked label.
	SelectTop SelectionMode = "top"
)

// LookupFunc fetches nutrition for a query. A nil result means no match.
type LookupFunc func(ctx context.Context, query string) (*models.Nutrition, error)

// LabelSelector picks the label used as a nutrition query.
type LabelSelector struct {
	generic        map[string]struct{}
	mode           SelectionMode
	continueOnMiss bool
}

// NewLabelSelector creates a LabelSelector. Labels in generic are matched
// exactly, as the vision services capitalize them consistently.
func NewLabelSelector(generic []string, mode SelectionMode, continueOnMiss bool) *LabelSelector {
	set := make(map[string]struct{}, len(generic))
	for _, g := range generic {
		set[g] = struct{}{}
	}
	if mode == "" {
		mode = SelectBest
	}
	return &LabelSelector{generic: set, mode: mode, continueOnMiss: continueOnMiss}
}

// IsGeneric reports whether label is in the generic set.
func (s *LabelSelector) IsGeneric(label string) bool {
	_, ok := s.generic[label]
	return ok
}

// Select returns the label used and the nutrition found for it. An empty
// label means there was nothing to query; a nil result means no data.
// Lookup errors are logged and treated as no data.
func (s *LabelSelector) Select(ctx context.Context, labels []string, lookup LookupFunc) (string, *models.Nutrition) {
	if len(labels) == 0 {
		return "", nil
	}

	if s.mode == SelectTop {
		return labels[0], tryLookup(ctx, lookup, labels[0])
	}

	for _, label := range labels {
		if s.IsGeneric(label) {
			continue
		}
		if n := tryLookup(ctx, lookup, label); n != nil {
			return label, n
		}
		if !s.continueOnMiss {
			// the first specific label wins even without data
			return label, nil
		}
	}

	fallback := labels[0]
	if !s.IsGeneric(fallback) {
		// already queried while walking the list
		return fallback, nil
	}
	return fallback, tryLookup(ctx, lookup, fallback)
}

func tryLookup(ctx context.Context, lookup LookupFunc, query string) *models.Nutrition {
	n, err := lookup(ctx, query)
	if err != nil {
		slog.Warn("nutrition lookup failed", "query", query, "error", err)
		return nil
	}
	if n == nil {
		slog.Debug("no nutrition data", "query", query)
	}
	return n
}
