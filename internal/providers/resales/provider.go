// Package resales integrates the Resales listing network API. The wire
// protocol here is private to this package; callers only see normalized
// shapes through the provider contract.
package resales

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"inmofeed/internal/feederrors"
	"inmofeed/internal/models"
	"inmofeed/internal/providers"
	"inmofeed/internal/tenant"
)

const ProviderName = "resales"

var requiredConfigKeys = []string{"api_url", "client_id", "client_secret"}

type provider struct {
	*providers.Base
	client *client
}

// Definition returns the registry entry for this integration.
func Definition() providers.Definition {
	return providers.Definition{
		Name:        ProviderName,
		DisplayName: "Resales",
		New:         New,
	}
}

// New validates the tenant's provider config and builds the integration.
func New(t *tenant.Tenant, config map[string]interface{}) (providers.Provider, error) {
	base, err := providers.NewBase(ProviderName, t, config, requiredConfigKeys)
	if err != nil {
		return nil, err
	}
	p := &provider{Base: base}
	p.client = newClient(base.ConfigString("api_url"), base.ConfigString("client_id"), base.ConfigString("client_secret"), base.Log)
	return p, nil
}

func (p *provider) Search(ctx context.Context, params map[string]interface{}) (*models.NormalizedSearchResult, error) {
	payload, err := p.client.getJSON(ctx, "/v6/properties", p.searchQuery(params))
	if err != nil {
		if errors.Is(err, errNotFound) {
			return models.EmptySearchResult(pageParam(params), p.PageSize(params)), nil
		}
		return nil, err
	}

	items, _ := payload["properties"].([]interface{})
	listings := make([]models.NormalizedProperty, 0, len(items))
	for _, raw := range items {
		if item, ok := raw.(map[string]interface{}); ok {
			listings = append(listings, toNormalizedProperty(item))
		}
	}

	result := models.NewSearchResult(
		listings,
		getInt(payload, "query_info.search_count"),
		getInt(payload, "query_info.current_page"),
		getInt(payload, "query_info.results_per_page"),
		getInt(payload, "query_info.pages"),
	)
	result.Provider = ProviderName
	return result, nil
}

func (p *provider) Find(ctx context.Context, reference string, params map[string]interface{}) (*models.NormalizedProperty, error) {
	query := url.Values{}
	if locale := stringParam(params, "locale"); locale != "" && p.SupportsLocale(locale) {
		query.Set("lang", locale)
	}

	payload, err := p.client.getJSON(ctx, "/v6/properties/"+url.PathEscape(reference), query)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, feederrors.NewPropertyNotFoundError(ProviderName, reference)
		}
		return nil, err
	}

	item, ok := payload["property"].(map[string]interface{})
	if !ok {
		return nil, feederrors.NewInvalidResponseError(ProviderName, "detail response missing property object", nil)
	}
	prop := toNormalizedProperty(item)
	return &prop, nil
}

func (p *provider) Similar(ctx context.Context, property *models.NormalizedProperty, params map[string]interface{}) ([]models.NormalizedProperty, error) {
	if property == nil {
		return []models.NormalizedProperty{}, nil
	}

	query := url.Values{}
	query.Set("count", fmt.Sprintf("%d", intParam(params, "count", 6)))

	payload, err := p.client.getJSON(ctx, "/v6/properties/"+url.PathEscape(property.Reference)+"/similar", query)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return []models.NormalizedProperty{}, nil
		}
		return nil, err
	}

	items, _ := payload["properties"].([]interface{})
	listings := make([]models.NormalizedProperty, 0, len(items))
	for _, raw := range items {
		if item, ok := raw.(map[string]interface{}); ok {
			listings = append(listings, toNormalizedProperty(item))
		}
	}
	return listings, nil
}

func (p *provider) Locations(ctx context.Context, params map[string]interface{}) ([]models.Option, error) {
	query := url.Values{}
	if locale := stringParam(params, "locale"); locale != "" && p.SupportsLocale(locale) {
		query.Set("lang", locale)
	}
	payload, err := p.client.getJSON(ctx, "/v6/locations", query)
	if err != nil {
		return nil, err
	}
	return toOptions(payload, "locations"), nil
}

func (p *provider) PropertyTypes(ctx context.Context, params map[string]interface{}) ([]models.Option, error) {
	query := url.Values{}
	if locale := stringParam(params, "locale"); locale != "" && p.SupportsLocale(locale) {
		query.Set("lang", locale)
	}
	payload, err := p.client.getJSON(ctx, "/v6/property-types", query)
	if err != nil {
		return nil, err
	}
	return toOptions(payload, "property_types"), nil
}

func (p *provider) Available(ctx context.Context) bool {
	_, err := p.client.getToken(ctx)
	return err == nil
}

// searchQuery translates normalized parameters into the upstream's query
// string names.
func (p *provider) searchQuery(params map[string]interface{}) url.Values {
	query := url.Values{}
	query.Set("p_page", fmt.Sprintf("%d", pageParam(params)))
	query.Set("p_size", fmt.Sprintf("%d", p.PageSize(params)))

	if listingType := stringParam(params, "listing_type"); listingType == models.ListingRental {
		query.Set("p_operation", "rent")
	} else {
		query.Set("p_operation", "sale")
	}
	if locale := stringParam(params, "locale"); locale != "" && p.SupportsLocale(locale) {
		query.Set("lang", locale)
	}
	if location := stringParam(params, "location"); location != "" {
		query.Set("p_location", location)
	}
	if sort := stringParam(params, "sort"); sort != "" {
		query.Set("p_sort", sort)
	}
	if types := sliceParam(params, "property_types"); len(types) > 0 {
		query.Set("p_types", strings.Join(types, ","))
	}
	if features := sliceParam(params, "features"); len(features) > 0 {
		query.Set("p_features", strings.Join(features, ","))
	}
	if beds := intParam(params, "bedrooms", 0); beds > 0 {
		query.Set("p_beds", fmt.Sprintf("%d", beds))
	}
	if baths := intParam(params, "bathrooms", 0); baths > 0 {
		query.Set("p_baths", fmt.Sprintf("%d", baths))
	}
	if min := intParam(params, "min_price", 0); min > 0 {
		query.Set("p_min_price", fmt.Sprintf("%d", min))
	}
	if max := intParam(params, "max_price", 0); max > 0 {
		query.Set("p_max_price", fmt.Sprintf("%d", max))
	}
	return query
}

func stringParam(params map[string]interface{}, key string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return ""
}

func intParam(params map[string]interface{}, key string, def int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

func pageParam(params map[string]interface{}) int {
	if page := intParam(params, "page", 1); page > 0 {
		return page
	}
	return 1
}

func sliceParam(params map[string]interface{}, key string) []string {
	switch v := params[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}
