package nutrition

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"watchlist-foodlens-service/internal/cache"
	"watchlist-foodlens-service/internal/models"
)

func newServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func assertQuantity(t *testing.T, name string, got *models.Quantity, amount float64, unit string) {
	t.Helper()
	if got == nil {
		t.Errorf("%s is nil, want %v %s", name, amount, unit)
		return
	}
	if got.Amount != amount || got.Unit != unit {
		t.Errorf("%s = %v %s, want %v %s", name, got.Amount, got.Unit, amount, unit)
	}
}

func TestUSDALookup(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/foods/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "Pizza" || q.Get("api_key") != "k" || q.Get("pageSize") != "1" {
			t.Errorf("query = %v", q)
		}
		w.Write([]byte(`{"foods":[{"description":"Pizza, cheese","foodNutrients":[
			{"nutrientName":"Energy","value":266,"unitName":"KCAL"},
			{"nutrientName":"Protein","value":11.4,"unitName":"G"},
			{"nutrientName":"Total lipid (fat)","value":9.7,"unitName":"G"},
			{"nutrientName":"Carbohydrate, by difference","value":33,"unitName":"G"},
			{"nutrientName":"Sodium, Na","value":598,"unitName":"MG"},
			{"nutrientName":"Vitamin C","value":1,"unitName":"MG"}
		]}]}`))
	})

	n, err := NewUSDAClient("k", srv.URL).Lookup(context.Background(), "Pizza")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if n.Description != "Pizza, cheese" || n.Brand != nil {
		t.Errorf("description/brand = %q/%v", n.Description, n.Brand)
	}
	assertQuantity(t, "calories", n.Calories, 266, "KCAL")
	assertQuantity(t, "protein", n.Protein, 11.4, "G")
	assertQuantity(t, "fat", n.Fat, 9.7, "G")
	assertQuantity(t, "carbs", n.Carbohydrates, 33, "G")
	assertQuantity(t, "sodium", n.Sodium, 598, "MG")
	if n.Fiber != nil {
		t.Errorf("fiber = %+v, want nil when not reported", n.Fiber)
	}
}

func TestUSDANoMatch(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foods":[]}`))
	})

	n, err := NewUSDAClient("k", srv.URL).Lookup(context.Background(), "Tableware")
	if err != nil || n != nil {
		t.Fatalf("got %+v, %v; want nil, nil", n, err)
	}
}

func TestUSDAErrors(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	})

	if _, err := NewUSDAClient("k", srv.URL).Lookup(context.Background(), "Pizza"); err == nil {
		t.Error("expected error on 429")
	}
	if _, err := NewUSDAClient("", srv.URL).Lookup(context.Background(), "Pizza"); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestNinjasLookup(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "secret" {
			t.Errorf("missing api key header")
		}
		if r.URL.Path != "/v1/nutrition" || r.URL.Query().Get("query") != "spaghetti" {
			t.Errorf("url = %s", r.URL)
		}
		w.Write([]byte(`[{"name":"spaghetti","calories":"Only available for premium subscribers.",
			"carbohydrates_total_g":30.9,"protein_g":"Only available for premium subscribers.",
			"fat_total_g":0.9,"fiber_g":1.8,"sodium_mg":1}]`))
	})

	n, err := NewNinjasClient("secret", srv.URL).Lookup(context.Background(), "spaghetti")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if n.Calories != nil || n.Protein != nil {
		t.Errorf("premium-only fields should be absent: %+v %+v", n.Calories, n.Protein)
	}
	assertQuantity(t, "carbs", n.Carbohydrates, 30.9, "g")
	assertQuantity(t, "fat", n.Fat, 0.9, "g")
	assertQuantity(t, "fiber", n.Fiber, 1.8, "g")
	assertQuantity(t, "sodium", n.Sodium, 1, "mg")
}

func TestNinjasEmptyArrayIsNoData(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	n, err := NewNinjasClient("secret", srv.URL).Lookup(context.Background(), "plate")
	if err != nil || n != nil {
		t.Fatalf("got %+v, %v; want nil, nil", n, err)
	}
}

func TestNinjasRecipes(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/recipe" || r.URL.Query().Get("title") != "pizza" {
			t.Errorf("url = %s", r.URL)
		}
		w.Write([]byte(`[
			{"title":"A","instructions":"a","source_url":"https://a"},
			{"title":"B","instructions":"b"},
			{"title":"C","instructions":"c"},
			{"title":"D","instructions":"d"}
		]`))
	})

	recipes, err := NewNinjasClient("secret", srv.URL).Recipes(context.Background(), "pizza")
	if err != nil {
		t.Fatalf("Recipes: %v", err)
	}
	if len(recipes) != MaxRecipes {
		t.Fatalf("len = %d, want %d", len(recipes), MaxRecipes)
	}
	if recipes[0].URL != "https://a" || recipes[1].URL != "#" {
		t.Errorf("urls = %q, %q", recipes[0].URL, recipes[1].URL)
	}
	if recipes[0].SourceName != "API Ninjas" {
		t.Errorf("source = %q", recipes[0].SourceName)
	}
}

func TestEdamamLookup(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/parser" || q.Get("ingr") != "apple" || q.Get("app_id") != "id" {
			t.Errorf("url = %s", r.URL)
		}
		w.Write([]byte(`{"parsed":[],"hints":[{"food":{"foodId":"f1","label":"Apple",
			"nutrients":{"ENERC_KCAL":52,"PROCNT":0.26,"FAT":0.17,"CHOCDF":13.8,"FIBTG":2.4}}}]}`))
	})

	n, err := NewEdamamClient("id", "key", srv.URL).Lookup(context.Background(), "apple")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if n.Description != "Apple" {
		t.Errorf("description = %q", n.Description)
	}
	assertQuantity(t, "calories", n.Calories, 52, "kcal")
	assertQuantity(t, "protein", n.Protein, 0.26, "g")
	assertQuantity(t, "fat", n.Fat, 0.17, "g")
	assertQuantity(t, "carbs", n.Carbohydrates, 13.8, "g")
	assertQuantity(t, "fiber", n.Fiber, 2.4, "g")
	if n.Sodium != nil {
		t.Errorf("sodium = %+v, want nil", n.Sodium)
	}
}

func TestEdamamNoMatch(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"parsed":[],"hints":[]}`))
	})

	n, err := NewEdamamClient("id", "key", srv.URL).Lookup(context.Background(), "fork")
	if err != nil || n != nil {
		t.Fatalf("got %+v, %v; want nil, nil", n, err)
	}
}

func TestCachedProviderPassThroughWithoutRedis(t *testing.T) {
	p := NewUSDAClient("k", "http://unused")
	if got := NewCachedProvider(p, cache.New(nil)); got != Provider(p) {
		t.Error("expected the provider itself when caching is disabled")
	}
	f := NewNinjasClient("k", "http://unused")
	if got := NewCachedRecipeFinder(f, nil); got != RecipeFinder(f) {
		t.Error("expected the finder itself when caching is disabled")
	}
}

func TestNinjasRecipesDropsUnsafeLinks(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"title":"A","source_url":"javascript:alert(1)"},
			{"title":"B","source_url":"http://example.com/b?x=1"},
			{"title":"C","source_url":"/relative/path"}
		]`))
	})

	recipes, err := NewNinjasClient("secret", srv.URL).Recipes(context.Background(), "pizza")
	if err != nil {
		t.Fatalf("Recipes: %v", err)
	}
	want := []string{"#", "http://example.com/b?x=1", "#"}
	for i, r := range recipes {
		if r.URL != want[i] {
			t.Errorf("recipes[%d].URL = %q, want %q", i, r.URL, want[i])
		}
	}
}

func TestSafeLink(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://example.com/r", "https://example.com/r"},
		{"HTTP://example.com", "http://example.com"},
		{"javascript:alert(1)", "#"},
		{"JavaScript:alert(1)", "#"},
		{"data:text/html,<b>x</b>", "#"},
		{"ftp://example.com/f", "#"},
		{"", "#"},
		{"%zz", "#"},
	}
	for _, tt := range tests {
		if got := safeLink(tt.in); got != tt.want {
			t.Errorf("safeLink(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
