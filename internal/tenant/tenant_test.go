package tenant

import (
	"context"
	"testing"
	"time"
)

func testTenant() *Tenant {
	return &Tenant{
		ID:                   "tenant-a",
		ExternalFeedEnabled:  true,
		ExternalFeedProvider: "resales",
		ExternalFeedConfig: map[string]interface{}{
			"api_url":           "https://api.example.com",
			"default_locale":    "es",
			"supported_locales": []interface{}{"en", "es"},
			"results_per_page":  12,
			"cache_ttl_search":  600,
			"cache_ttl_similar": "900",
		},
		ManagedPropertyTypes: []ManagedOption{
			{Key: "villa", Label: "Villa", ExternalCode: "2-1"},
			{Key: "apartment", Label: "Apartment"},
		},
		ManagedFeatures: []ManagedOption{
			{Key: "pool", Label: "Private Pool", ExternalCode: "pool_private"},
		},
	}
}

func TestFeedConfigured(t *testing.T) {
	tests := []struct {
		name   string
		tenant *Tenant
		want   bool
	}{
		{"configured", testTenant(), true},
		{"disabled", &Tenant{ExternalFeedEnabled: false, ExternalFeedProvider: "resales"}, false},
		{"no provider", &Tenant{ExternalFeedEnabled: true}, false},
		{"nil tenant", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tenant.FeedConfigured(); got != tt.want {
				t.Errorf("FeedConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigAccessors(t *testing.T) {
	tn := testTenant()

	if got := tn.ConfigString("api_url"); got != "https://api.example.com" {
		t.Errorf("ConfigString(api_url) = %q", got)
	}
	if got := tn.ConfigString("missing"); got != "" {
		t.Errorf("ConfigString(missing) = %q, want empty", got)
	}
	if got := tn.ConfigInt("results_per_page", 24); got != 12 {
		t.Errorf("ConfigInt(results_per_page) = %d, want 12", got)
	}
	if got := tn.ConfigInt("missing", 24); got != 24 {
		t.Errorf("ConfigInt(missing) = %d, want default 24", got)
	}
	// string-encoded numbers still parse
	if got := tn.ConfigInt("cache_ttl_similar", 0); got != 900 {
		t.Errorf("ConfigInt(cache_ttl_similar) = %d, want 900", got)
	}
}

func TestDefaultLocale(t *testing.T) {
	tn := testTenant()
	if got := tn.DefaultLocale(); got != "es" {
		t.Errorf("DefaultLocale() = %q, want es", got)
	}

	bare := &Tenant{ID: "bare"}
	if got := bare.DefaultLocale(); got != "en" {
		t.Errorf("DefaultLocale() fallback = %q, want en", got)
	}
}

func TestResultsPerPage(t *testing.T) {
	tn := testTenant()
	if got := tn.ResultsPerPage(); got != 12 {
		t.Errorf("ResultsPerPage() = %d, want 12 from config", got)
	}

	tn.Search.PerPage = 36
	if got := tn.ResultsPerPage(); got != 36 {
		t.Errorf("ResultsPerPage() = %d, want search default to win", got)
	}

	bare := &Tenant{ID: "bare"}
	if got := bare.ResultsPerPage(); got != 24 {
		t.Errorf("ResultsPerPage() fallback = %d, want 24", got)
	}
}

func TestCacheTTLOverrides(t *testing.T) {
	overrides := testTenant().CacheTTLOverrides()

	if got := overrides["search"]; got != 600*time.Second {
		t.Errorf("search override = %v, want 10m", got)
	}
	if got := overrides["similar"]; got != 900*time.Second {
		t.Errorf("similar override = %v, want 15m", got)
	}
	if _, exists := overrides["property"]; exists {
		t.Error("no property override was configured")
	}

	bare := &Tenant{ID: "bare"}
	if got := bare.CacheTTLOverrides(); got != nil {
		t.Errorf("overrides on bare tenant = %v, want nil", got)
	}
}

func TestKeyMappings(t *testing.T) {
	mappings := testTenant().KeyMappings()

	if got := mappings["villa"]; got != "2-1" {
		t.Errorf("villa mapping = %q, want 2-1", got)
	}
	if got := mappings["pool"]; got != "pool_private" {
		t.Errorf("pool mapping = %q", got)
	}
	if _, exists := mappings["apartment"]; exists {
		t.Error("options without an external code should not map")
	}
}

func TestConfigStore(t *testing.T) {
	store := NewConfigStore([]*Tenant{testTenant(), {ID: "tenant-b"}})
	ctx := context.Background()

	got, err := store.Get(ctx, "tenant-a")
	if err != nil {
		t.Fatalf("Get(tenant-a) failed: %v", err)
	}
	if got.ID != "tenant-a" {
		t.Errorf("Get returned tenant %q", got.ID)
	}

	if _, err := store.Get(ctx, "nope"); err == nil {
		t.Error("Get(nope) should fail")
	}

	if ids := store.List(ctx); len(ids) != 2 {
		t.Errorf("List returned %d ids, want 2", len(ids))
	}
}
