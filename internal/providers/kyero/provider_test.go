package kyero

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inmofeed/internal/feederrors"
	"inmofeed/internal/providers"
	"inmofeed/internal/tenant"
	"inmofeed/pkg/logger"
)

func init() {
	logger.InitLogger(io.Discard, "ERROR")
}

func testTenant() *tenant.Tenant {
	return &tenant.Tenant{
		ID:                   "tenant-a",
		ExternalFeedEnabled:  true,
		ExternalFeedProvider: ProviderName,
		Search:               tenant.SearchDefaults{PerPage: 24},
	}
}

func upstream(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "key-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Query().Get("agency") != "ag-9" {
			t.Errorf("agency query missing on %s", r.URL.Path)
		}
		handler(w, r)
	}))
}

func newTestProvider(t *testing.T, serverURL string) providers.Provider {
	t.Helper()
	p, err := New(testTenant(), map[string]interface{}{
		"api_url":   serverURL,
		"api_key":   "key-123",
		"agency_id": "ag-9",
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return p
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(testTenant(), map[string]interface{}{"api_url": "https://x"})
	if !feederrors.IsConfiguration(err) {
		t.Errorf("err = %v, want configuration error", err)
	}
}

func TestSearch(t *testing.T) {
	server := upstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("mode") != "rent" {
			t.Errorf("mode = %q, want rent", r.URL.Query().Get("mode"))
		}
		fmt.Fprint(w, `{
			"total": 30, "page": 1, "per_page": 24,
			"hits": [{"ref": "KY-1", "price": 1200, "price_freq": "month"}]
		}`)
	})
	defer server.Close()

	p := newTestProvider(t, server.URL)
	result, err := p.Search(context.Background(), map[string]interface{}{"listing_type": "rental"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if result.TotalCount != 30 || result.TotalPages != 2 {
		t.Errorf("pagination = %d/%d", result.TotalCount, result.TotalPages)
	}
	if len(result.Properties) != 1 || result.Properties[0].Reference != "KY-1" {
		t.Errorf("properties = %+v", result.Properties)
	}
}

func TestSimilarIsUnsupported(t *testing.T) {
	p := newTestProvider(t, "https://unused.example.com")
	_, err := p.Similar(context.Background(), nil, nil)
	if !feederrors.IsCode(err, feederrors.CodeUnsupportedOperation) {
		t.Errorf("err = %v, want unsupported operation", err)
	}
}

func TestFindMissingProperty(t *testing.T) {
	server := upstream(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})
	defer server.Close()

	p := newTestProvider(t, server.URL)
	_, err := p.Find(context.Background(), "KY-404", nil)
	if !feederrors.IsNotFound(err) {
		t.Errorf("err = %v, want not-found for response without property", err)
	}
}

func TestBadAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	p, err := New(testTenant(), map[string]interface{}{
		"api_url":   server.URL,
		"api_key":   "wrong",
		"agency_id": "ag-9",
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = p.Search(context.Background(), nil)
	if !feederrors.IsCode(err, feederrors.CodeAuthentication) {
		t.Errorf("err = %v, want authentication error", err)
	}
}

func TestLocations(t *testing.T) {
	server := upstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/towns" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"towns": ["Javea", "Denia", ""]}`)
	})
	defer server.Close()

	p := newTestProvider(t, server.URL)
	options, err := p.Locations(context.Background(), nil)
	if err != nil {
		t.Fatalf("Locations failed: %v", err)
	}
	if len(options) != 2 || options[0].Value != "Javea" {
		t.Errorf("options = %+v", options)
	}
}

func TestAvailable(t *testing.T) {
	server := upstream(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/ping" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"status":"ok"}`)
	})
	defer server.Close()

	p := newTestProvider(t, server.URL)
	if !p.Available(context.Background()) {
		t.Error("Available should be true when ping succeeds")
	}

	server.Close()
	if p.Available(context.Background()) {
		t.Error("Available should be false when upstream is down")
	}
}
