package nutrition

import (
	"context"
	"strings"
	"time"

	"watchlist-foodlens-service/internal/cache"
	"watchlist-foodlens-service/internal/models"
)

const lookupCacheTTL = 24 * time.Hour

// CachedProvider memoizes successful lookups of another Provider.
type CachedProvider struct {
	next  Provider
	cache *cache.Cache
}

// NewCachedProvider wraps p. Without an enabled cache it returns p unchanged.
func NewCachedProvider(p Provider, c *cache.Cache) Provider {
	if !c.Enabled() {
		return p
	}
	return &CachedProvider{next: p, cache: c}
}

func (p *CachedProvider) Name() string { return p.next.Name() }

func (p *CachedProvider) Lookup(ctx context.Context, query string) (*models.Nutrition, error) {
	key := "nutrition:" + p.next.Name() + ":" + normalizeQuery(query)

	var cached models.Nutrition
	if err := p.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	}

	n, err := p.next.Lookup(ctx, query)
	if err != nil || n == nil {
		return n, err
	}
	p.cache.Set(ctx, key, n, lookupCacheTTL)
	return n, nil
}

// CachedRecipeFinder memoizes non-empty recipe lookups.
type CachedRecipeFinder struct {
	next  RecipeFinder
	cache *cache.Cache
}

// NewCachedRecipeFinder wraps f. Without an enabled cache it returns f unchanged.
func NewCachedRecipeFinder(f RecipeFinder, c *cache.Cache) RecipeFinder {
	if !c.Enabled() {
		return f
	}
	return &CachedRecipeFinder{next: f, cache: c}
}

func (f *CachedRecipeFinder) Recipes(ctx context.Context, query string) ([]models.Recipe, error) {
	key := "recipes:" + normalizeQuery(query)

	var cached []models.Recipe
	if err := f.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	recipes, err := f.next.Recipes(ctx, query)
	if err != nil || len(recipes) == 0 {
		return recipes, err
	}
	f.cache.Set(ctx, key, recipes, lookupCacheTTL)
	return recipes, nil
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}
