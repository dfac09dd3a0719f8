package providers

import (
	"strings"
	"testing"

	"inmofeed/internal/feederrors"
	"inmofeed/internal/tenant"
)

func TestNewBaseValidatesConfig(t *testing.T) {
	tn := &tenant.Tenant{ID: "tenant-a"}
	required := []string{"api_url", "api_key"}

	_, err := NewBase("testfeed", tn, map[string]interface{}{
		"api_url": "https://api.example.com",
		"api_key": "  ",
	}, required)
	if err == nil {
		t.Fatal("blank required key should fail construction")
	}
	if !feederrors.IsConfiguration(err) {
		t.Errorf("err = %v, want a configuration error", err)
	}
	if !strings.Contains(err.Error(), "api_key") {
		t.Errorf("error %q should name the missing key", err.Error())
	}

	base, err := NewBase("testfeed", tn, map[string]interface{}{
		"api_url": "https://api.example.com",
		"api_key": "secret",
	}, required)
	if err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	if base.Name() != "testfeed" {
		t.Errorf("Name() = %q", base.Name())
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"resales", "Resales"},
		{"some_feed", "Some Feed"},
		{"multi-word-name", "Multi Word Name"},
	}
	for _, tt := range tests {
		base := &Base{ProviderName: tt.name}
		if got := base.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSupportsLocale(t *testing.T) {
	unrestricted := &Base{Tenant: &tenant.Tenant{ID: "t"}}
	if !unrestricted.SupportsLocale("fr") {
		t.Error("empty supported list should allow any locale")
	}

	restricted := &Base{Tenant: &tenant.Tenant{
		ID: "t",
		ExternalFeedConfig: map[string]interface{}{
			"supported_locales": []interface{}{"en", "es"},
		},
	}}
	if !restricted.SupportsLocale("ES") {
		t.Error("locale match should be case-insensitive")
	}
	if restricted.SupportsLocale("fr") {
		t.Error("unsupported locale should be rejected")
	}
}

func TestPageSize(t *testing.T) {
	base := &Base{Tenant: &tenant.Tenant{
		ID:     "t",
		Search: tenant.SearchDefaults{PerPage: 24},
	}}

	if got := base.PageSize(map[string]interface{}{"per_page": 48}); got != 48 {
		t.Errorf("PageSize with explicit param = %d, want 48", got)
	}
	if got := base.PageSize(map[string]interface{}{"per_page": float64(12)}); got != 12 {
		t.Errorf("PageSize with float param = %d, want 12", got)
	}
	if got := base.PageSize(nil); got != 24 {
		t.Errorf("PageSize fallback = %d, want tenant default 24", got)
	}
}
