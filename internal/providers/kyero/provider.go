// Package kyero integrates the Kyero portal feed API. It authenticates
// with a static API key and exposes no similar-listings endpoint, so the
// Similar operation reports itself unsupported.
package kyero

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"inmofeed/internal/feederrors"
	"inmofeed/internal/models"
	"inmofeed/internal/providers"
	"inmofeed/internal/tenant"
)

const ProviderName = "kyero"

var requiredConfigKeys = []string{"api_url", "api_key", "agency_id"}

type provider struct {
	*providers.Base
	baseURL    string
	apiKey     string
	agencyID   string
	httpClient *http.Client
}

// Definition returns the registry entry for this integration.
func Definition() providers.Definition {
	return providers.Definition{
		Name:        ProviderName,
		DisplayName: "Kyero",
		New:         New,
	}
}

// New validates the tenant's provider config and builds the integration.
func New(t *tenant.Tenant, config map[string]interface{}) (providers.Provider, error) {
	base, err := providers.NewBase(ProviderName, t, config, requiredConfigKeys)
	if err != nil {
		return nil, err
	}
	return &provider{
		Base:     base,
		baseURL:  strings.TrimRight(base.ConfigString("api_url"), "/"),
		apiKey:   base.ConfigString("api_key"),
		agencyID: base.ConfigString("agency_id"),
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}, nil
}

func (p *provider) Search(ctx context.Context, params map[string]interface{}) (*models.NormalizedSearchResult, error) {
	query := url.Values{}
	query.Set("agency", p.agencyID)
	query.Set("page", fmt.Sprintf("%d", pageOf(params)))
	query.Set("per_page", fmt.Sprintf("%d", p.PageSize(params)))
	if listingType, _ := params["listing_type"].(string); listingType == models.ListingRental {
		query.Set("mode", "rent")
	} else {
		query.Set("mode", "sale")
	}
	if location, _ := params["location"].(string); location != "" {
		query.Set("town", location)
	}

	payload, err := p.getJSON(ctx, "/v3/search", query)
	if err != nil {
		return nil, err
	}

	items, _ := payload["hits"].([]interface{})
	listings := make([]models.NormalizedProperty, 0, len(items))
	for _, raw := range items {
		if item, ok := raw.(map[string]interface{}); ok {
			listings = append(listings, toNormalizedProperty(item))
		}
	}

	result := models.NewSearchResult(
		listings,
		intField(payload, "total"),
		intField(payload, "page"),
		intField(payload, "per_page"),
		0,
	)
	result.Provider = ProviderName
	return result, nil
}

func (p *provider) Find(ctx context.Context, reference string, params map[string]interface{}) (*models.NormalizedProperty, error) {
	query := url.Values{}
	query.Set("agency", p.agencyID)

	payload, err := p.getJSON(ctx, "/v3/properties/"+url.PathEscape(reference), query)
	if err != nil {
		return nil, err
	}

	item, ok := payload["property"].(map[string]interface{})
	if !ok {
		return nil, feederrors.NewPropertyNotFoundError(ProviderName, reference)
	}
	prop := toNormalizedProperty(item)
	return &prop, nil
}

// Similar is not part of the Kyero API surface.
func (p *provider) Similar(ctx context.Context, property *models.NormalizedProperty, params map[string]interface{}) ([]models.NormalizedProperty, error) {
	return nil, feederrors.NewUnsupportedOperationError(ProviderName, providers.OpSimilar)
}

func (p *provider) Locations(ctx context.Context, params map[string]interface{}) ([]models.Option, error) {
	query := url.Values{}
	query.Set("agency", p.agencyID)

	payload, err := p.getJSON(ctx, "/v3/towns", query)
	if err != nil {
		return nil, err
	}

	raw, _ := payload["towns"].([]interface{})
	options := make([]models.Option, 0, len(raw))
	for _, item := range raw {
		if name, ok := item.(string); ok && name != "" {
			options = append(options, models.Option{Value: name, Label: name})
		}
	}
	return options, nil
}

func (p *provider) PropertyTypes(ctx context.Context, params map[string]interface{}) ([]models.Option, error) {
	query := url.Values{}
	query.Set("agency", p.agencyID)

	payload, err := p.getJSON(ctx, "/v3/property-types", query)
	if err != nil {
		return nil, err
	}

	raw, _ := payload["types"].([]interface{})
	options := make([]models.Option, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		id, _ := entry["id"].(string)
		name, _ := entry["name"].(string)
		if id == "" {
			continue
		}
		if name == "" {
			name = id
		}
		options = append(options, models.Option{Value: id, Label: name})
	}
	return options, nil
}

func (p *provider) Available(ctx context.Context) bool {
	query := url.Values{}
	query.Set("agency", p.agencyID)
	_, err := p.getJSON(ctx, "/v3/ping", query)
	return err == nil
}

func (p *provider) getJSON(ctx context.Context, path string, query url.Values) (map[string]interface{}, error) {
	requestURL := p.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, feederrors.NewProviderUnavailableError(ProviderName, "failed to build request", err)
	}
	req.Header.Set("X-Api-Key", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.Log.Errorf("request failed: url=%s, error=%v", requestURL, err)
		return nil, feederrors.NewProviderUnavailableError(ProviderName, "upstream unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, feederrors.NewProviderUnavailableError(ProviderName, "failed to read response", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, feederrors.NewPropertyNotFoundError(ProviderName, path)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, feederrors.NewAuthenticationError(ProviderName, "upstream rejected API key", nil)
	case http.StatusTooManyRequests:
		return nil, feederrors.NewRateLimitError(ProviderName, "upstream rate limit hit", nil)
	default:
		return nil, feederrors.NewProviderUnavailableError(ProviderName,
			fmt.Sprintf("upstream returned %s", resp.Status), nil)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, feederrors.NewInvalidResponseError(ProviderName, "failed to decode response", err)
	}
	return payload, nil
}

func pageOf(params map[string]interface{}) int {
	switch v := params["page"].(type) {
	case int:
		if v > 0 {
			return v
		}
	case float64:
		if v > 0 {
			return int(v)
		}
	}
	return 1
}

func intField(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}
