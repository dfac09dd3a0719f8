// Package manager is the single entry point callers use to reach
// external feed providers. It normalizes request parameters, resolves the
// tenant's configured provider, wraps every call through the cache store,
// and converts provider failures into degraded-but-valid results. A
// runtime provider error never propagates past this package.
package manager

import (
	"context"
	"encoding/json"
	"time"

	"inmofeed/internal/feederrors"
	"inmofeed/internal/models"
	"inmofeed/internal/providers"
	"inmofeed/internal/tenant"
	"inmofeed/pkg/cache"
	"inmofeed/pkg/logger"
	"inmofeed/pkg/metrics"
)

// DefaultCacheScope prefixes every cache key when no scope is configured.
const DefaultCacheScope = "inmofeed"

// Config wires a Manager. Registry defaults to the process-wide one.
type Config struct {
	Tenant     *tenant.Tenant
	Backend    cache.Backend
	Registry   *providers.Registry
	CacheScope string
}

// Manager serves feed operations for one tenant.
type Manager struct {
	tenant       *tenant.Tenant
	provider     providers.Provider
	providerName string
	store        *cache.Store
	enabled      bool
}

// New builds a Manager for the tenant. Configuration problems (unknown
// provider name, missing required provider config) are returned as
// ConfigurationErrors: those are bugs to surface, not conditions to
// degrade. A tenant with the feed disabled gets a Manager that answers
// every operation with an empty value and performs no I/O.
func New(cfg Config) (*Manager, error) {
	if cfg.Tenant == nil {
		return nil, feederrors.NewConfigurationError("", "tenant is required", nil)
	}

	m := &Manager{tenant: cfg.Tenant}
	if !cfg.Tenant.FeedConfigured() {
		return m, nil
	}

	registry := cfg.Registry
	if registry == nil {
		registry = providers.Default()
	}

	def, ok := registry.Find(cfg.Tenant.ExternalFeedProvider)
	if !ok {
		return nil, feederrors.NewConfigurationError(cfg.Tenant.ExternalFeedProvider,
			"provider is not registered", nil)
	}

	provider, err := def.New(cfg.Tenant, cfg.Tenant.ExternalFeedConfig)
	if err != nil {
		return nil, err
	}

	scope := cfg.CacheScope
	if scope == "" {
		scope = DefaultCacheScope
	}

	m.provider = provider
	m.providerName = def.Name
	m.store = cache.NewStore(cfg.Backend, scope, cfg.Tenant.ID, def.Name, cfg.Tenant.CacheTTLOverrides())
	m.enabled = true
	return m, nil
}

// Enabled reports whether the tenant has a working provider behind this
// manager.
func (m *Manager) Enabled() bool {
	return m.enabled
}

// ProviderName returns the resolved provider name, "" when disabled.
func (m *Manager) ProviderName() string {
	return m.providerName
}

// Search runs a listing search. The returned result is always well
// formed; when the provider fails it carries no listings and an Error
// string the caller can inspect.
func (m *Manager) Search(ctx context.Context, params map[string]interface{}) *models.NormalizedSearchResult {
	if !m.enabled {
		return models.EmptySearchResult(1, m.tenant.ResultsPerPage())
	}

	normalized := NormalizeSearchParams(m.tenant, params)
	start := time.Now()

	data, err := m.store.FetchData(ctx, providers.OpSearch, normalized, func(ctx context.Context) (interface{}, error) {
		return m.provider.Search(ctx, normalized)
	})
	metrics.FeedRequestDuration.WithLabelValues(m.providerName, providers.OpSearch).Observe(time.Since(start).Seconds())
	if err != nil {
		message := m.degrade(providers.OpSearch, err)
		result := models.EmptySearchResult(intValue(normalized["page"], 1), intValue(normalized["per_page"], m.tenant.ResultsPerPage()))
		result.Provider = m.providerName
		result.QueryParams = normalized
		result.Error = message
		return result
	}

	var result models.NormalizedSearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		message := m.degrade(providers.OpSearch, feederrors.NewInvalidResponseError(m.providerName, "cached search payload is corrupt", err))
		degraded := models.EmptySearchResult(intValue(normalized["page"], 1), intValue(normalized["per_page"], m.tenant.ResultsPerPage()))
		degraded.Provider = m.providerName
		degraded.QueryParams = normalized
		degraded.Error = message
		return degraded
	}

	result.QueryParams = normalized
	metrics.FeedRequestsTotal.WithLabelValues(m.providerName, providers.OpSearch, "ok").Inc()
	return &result
}

// Find fetches one listing by reference. Returns nil when the listing
// does not exist or the provider failed.
func (m *Manager) Find(ctx context.Context, reference string, params map[string]interface{}) *models.NormalizedProperty {
	if !m.enabled || reference == "" {
		return nil
	}

	normalized := NormalizeDetailParams(m.tenant, params)
	cacheParams := withReference(normalized, reference)
	start := time.Now()

	data, err := m.store.FetchData(ctx, providers.OpProperty, cacheParams, func(ctx context.Context) (interface{}, error) {
		return m.provider.Find(ctx, reference, normalized)
	})
	metrics.FeedRequestDuration.WithLabelValues(m.providerName, providers.OpProperty).Observe(time.Since(start).Seconds())
	if err != nil {
		if feederrors.IsNotFound(err) {
			metrics.FeedRequestsTotal.WithLabelValues(m.providerName, providers.OpProperty, "not_found").Inc()
			return nil
		}
		m.degrade(providers.OpProperty, err)
		return nil
	}

	var property models.NormalizedProperty
	if err := json.Unmarshal(data, &property); err != nil {
		m.degrade(providers.OpProperty, feederrors.NewInvalidResponseError(m.providerName, "cached property payload is corrupt", err))
		return nil
	}
	metrics.FeedRequestsTotal.WithLabelValues(m.providerName, providers.OpProperty, "ok").Inc()
	return &property
}

// Similar returns listings comparable to the given property, empty on
// any failure, including providers that do not support the operation.
func (m *Manager) Similar(ctx context.Context, property *models.NormalizedProperty, params map[string]interface{}) []models.NormalizedProperty {
	if !m.enabled || property == nil {
		return []models.NormalizedProperty{}
	}

	normalized := NormalizeDetailParams(m.tenant, params)
	cacheParams := withReference(normalized, property.Reference)
	start := time.Now()

	data, err := m.store.FetchData(ctx, providers.OpSimilar, cacheParams, func(ctx context.Context) (interface{}, error) {
		return m.provider.Similar(ctx, property, normalized)
	})
	metrics.FeedRequestDuration.WithLabelValues(m.providerName, providers.OpSimilar).Observe(time.Since(start).Seconds())
	if err != nil {
		m.degrade(providers.OpSimilar, err)
		return []models.NormalizedProperty{}
	}

	var listings []models.NormalizedProperty
	if err := json.Unmarshal(data, &listings); err != nil {
		m.degrade(providers.OpSimilar, feederrors.NewInvalidResponseError(m.providerName, "cached similar payload is corrupt", err))
		return []models.NormalizedProperty{}
	}
	if listings == nil {
		listings = []models.NormalizedProperty{}
	}
	metrics.FeedRequestsTotal.WithLabelValues(m.providerName, providers.OpSimilar, "ok").Inc()
	return listings
}

// Locations lists searchable locations, empty on failure.
func (m *Manager) Locations(ctx context.Context, params map[string]interface{}) []models.Option {
	return m.options(ctx, providers.OpLocations, params, m.providerLocations)
}

// PropertyTypes lists property type choices, empty on failure.
func (m *Manager) PropertyTypes(ctx context.Context, params map[string]interface{}) []models.Option {
	return m.options(ctx, providers.OpPropertyTypes, params, m.providerPropertyTypes)
}

func (m *Manager) providerLocations(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	return m.provider.Locations(ctx, params)
}

func (m *Manager) providerPropertyTypes(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	return m.provider.PropertyTypes(ctx, params)
}

func (m *Manager) options(ctx context.Context, operation string, params map[string]interface{}, fetch func(context.Context, map[string]interface{}) (interface{}, error)) []models.Option {
	if !m.enabled {
		return []models.Option{}
	}

	normalized := NormalizeDetailParams(m.tenant, params)
	start := time.Now()

	data, err := m.store.FetchData(ctx, operation, normalized, func(ctx context.Context) (interface{}, error) {
		return fetch(ctx, normalized)
	})
	metrics.FeedRequestDuration.WithLabelValues(m.providerName, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		m.degrade(operation, err)
		return []models.Option{}
	}

	var options []models.Option
	if err := json.Unmarshal(data, &options); err != nil {
		m.degrade(operation, feederrors.NewInvalidResponseError(m.providerName, "cached options payload is corrupt", err))
		return []models.Option{}
	}
	if options == nil {
		options = []models.Option{}
	}
	metrics.FeedRequestsTotal.WithLabelValues(m.providerName, operation, "ok").Inc()
	return options
}

// Available reports whether the provider answers health probes.
func (m *Manager) Available(ctx context.Context) bool {
	return m.enabled && m.provider.Available(ctx)
}

// InvalidateAll flushes every cached entry for this tenant/provider pair.
func (m *Manager) InvalidateAll(ctx context.Context) error {
	if !m.enabled {
		return nil
	}
	return m.store.InvalidateAll(ctx)
}

// InvalidateOperation flushes one operation's cached entries.
func (m *Manager) InvalidateOperation(ctx context.Context, operation string) error {
	if !m.enabled {
		return nil
	}
	return m.store.InvalidateOperation(ctx, operation)
}

// degrade classifies a runtime provider error, logs it, counts it, and
// returns the message callers may surface. Unclassified errors log at
// error severity since they indicate a gap in the taxonomy.
func (m *Manager) degrade(operation string, err error) string {
	fe, classified := feederrors.Classify(m.providerName, err)
	if classified {
		logger.GlobalLogger.Warnf("feed %s degraded: %v", operation, fe)
	} else {
		logger.GlobalLogger.Errorf("unclassified feed error in %s: %v", operation, err)
	}
	metrics.FeedRequestsTotal.WithLabelValues(m.providerName, operation, "degraded").Inc()
	return fe.Message
}

func withReference(params map[string]interface{}, reference string) map[string]interface{} {
	out := make(map[string]interface{}, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	out["reference"] = reference
	return out
}

func intValue(v interface{}, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return def
}
