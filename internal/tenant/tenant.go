package tenant

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ManagedOption is a tenant-curated filter choice. ExternalCode is the
// provider-specific identifier the internal key translates to; when blank
// the key itself is sent upstream.
type ManagedOption struct {
	Key          string `yaml:"key" json:"key"`
	Label        string `yaml:"label" json:"label"`
	ExternalCode string `yaml:"external_code" json:"external_code,omitempty"`
}

// SearchDefaults drive parameter normalization for a tenant's searches.
type SearchDefaults struct {
	ListingType  string  `yaml:"listing_type" json:"listing_type"`
	Sort         string  `yaml:"sort" json:"sort"`
	PerPage      int     `yaml:"per_page" json:"per_page"`
	PricesSale   []int64 `yaml:"prices_sale" json:"prices_sale"`
	PricesRental []int64 `yaml:"prices_rental" json:"prices_rental"`
	MaxBedrooms  int     `yaml:"max_bedrooms" json:"max_bedrooms"`
	MaxBathrooms int     `yaml:"max_bathrooms" json:"max_bathrooms"`
}

// Tenant is one isolated customer site. All cache keys and provider
// configuration lookups are scoped by its ID.
type Tenant struct {
	ID                   string                 `yaml:"id" json:"id"`
	ExternalFeedEnabled  bool                   `yaml:"external_feed_enabled" json:"external_feed_enabled"`
	ExternalFeedProvider string                 `yaml:"external_feed_provider" json:"external_feed_provider"`
	ExternalFeedConfig   map[string]interface{} `yaml:"external_feed_config" json:"external_feed_config"`
	Search               SearchDefaults         `yaml:"search" json:"search"`
	ManagedPropertyTypes []ManagedOption        `yaml:"managed_property_types" json:"managed_property_types"`
	ManagedFeatures      []ManagedOption        `yaml:"managed_features" json:"managed_features"`
}

// FeedConfigured reports whether the tenant can serve external listings
// at all. When false the manager answers with empty results and performs
// no I/O.
func (t *Tenant) FeedConfigured() bool {
	return t != nil && t.ExternalFeedEnabled && t.ExternalFeedProvider != ""
}

// ConfigString reads a string value from the provider config map.
func (t *Tenant) ConfigString(key string) string {
	if t == nil || t.ExternalFeedConfig == nil {
		return ""
	}
	if v, ok := t.ExternalFeedConfig[key]; ok && v != nil {
		return fmt.Sprintf("%v", v)
	}
	return ""
}

// ConfigInt reads an integer value from the provider config map,
// tolerating string and float encodings, with a fallback default.
func (t *Tenant) ConfigInt(key string, def int) int {
	if t == nil || t.ExternalFeedConfig == nil {
		return def
	}
	switch v := t.ExternalFeedConfig[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// DefaultLocale is the locale searches fall back to when the caller does
// not supply one.
func (t *Tenant) DefaultLocale() string {
	if loc := t.ConfigString("default_locale"); loc != "" {
		return loc
	}
	return "en"
}

// SupportedLocales lists the locales the tenant's provider account covers.
func (t *Tenant) SupportedLocales() []string {
	if t == nil || t.ExternalFeedConfig == nil {
		return nil
	}
	raw, ok := t.ExternalFeedConfig["supported_locales"]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprintf("%v", item))
		}
		return out
	case string:
		return strings.Split(v, ",")
	}
	return nil
}

// ResultsPerPage is the tenant's configured page size.
func (t *Tenant) ResultsPerPage() int {
	if t.Search.PerPage > 0 {
		return t.Search.PerPage
	}
	return t.ConfigInt("results_per_page", 24)
}

// CacheTTLOverrides extracts the cache_ttl_<operation> overrides from the
// provider config map, values in seconds.
func (t *Tenant) CacheTTLOverrides() map[string]time.Duration {
	if t == nil || t.ExternalFeedConfig == nil {
		return nil
	}
	overrides := make(map[string]time.Duration)
	for key := range t.ExternalFeedConfig {
		op, ok := strings.CutPrefix(key, "cache_ttl_")
		if !ok {
			continue
		}
		if secs := t.ConfigInt(key, 0); secs > 0 {
			overrides[op] = time.Duration(secs) * time.Second
		}
	}
	if len(overrides) == 0 {
		return nil
	}
	return overrides
}

// KeyMappings builds the internal key to external code table from the
// managed option lists.
func (t *Tenant) KeyMappings() map[string]string {
	mappings := make(map[string]string)
	for _, opt := range t.ManagedPropertyTypes {
		if opt.ExternalCode != "" {
			mappings[opt.Key] = opt.ExternalCode
		}
	}
	for _, opt := range t.ManagedFeatures {
		if opt.ExternalCode != "" {
			mappings[opt.Key] = opt.ExternalCode
		}
	}
	return mappings
}
