// Package providers defines the contract every upstream listing source
// integration implements, plus the process-wide registry they are looked
// up from. Each integration owns its private wire protocol; callers only
// ever see normalized shapes.
package providers

import (
	"context"

	"inmofeed/internal/models"
	"inmofeed/internal/tenant"
)

// Operation names, the unit of cache-key and TTL scoping.
const (
	OpSearch        = "search"
	OpProperty      = "property"
	OpSimilar       = "similar"
	OpLocations     = "locations"
	OpPropertyTypes = "property_types"
)

// Provider is the capability set every upstream integration exposes.
// Implementations translate between normalized parameters and their
// upstream's own request/response formats, and raise feederrors values
// for anything that goes wrong.
type Provider interface {
	// Search runs a listing search with already-normalized parameters.
	Search(ctx context.Context, params map[string]interface{}) (*models.NormalizedSearchResult, error)

	// Find fetches a single listing by provider reference. A missing
	// listing is a PropertyNotFoundError, not a nil result.
	Find(ctx context.Context, reference string, params map[string]interface{}) (*models.NormalizedProperty, error)

	// Similar returns listings comparable to the given property.
	Similar(ctx context.Context, property *models.NormalizedProperty, params map[string]interface{}) ([]models.NormalizedProperty, error)

	// Locations lists the searchable locations for this account.
	Locations(ctx context.Context, params map[string]interface{}) ([]models.Option, error)

	// PropertyTypes lists the property type choices for this account.
	PropertyTypes(ctx context.Context, params map[string]interface{}) ([]models.Option, error)

	// Available reports whether the upstream is currently reachable.
	Available(ctx context.Context) bool

	// Name returns the registry name of this provider.
	Name() string
}

// Factory constructs a provider for one tenant. Required-config
// validation happens here, not at first use; a missing key is a
// ConfigurationError.
type Factory func(t *tenant.Tenant, config map[string]interface{}) (Provider, error)

// Definition is what an integration registers: its stable name, the
// human-facing display name, and the constructor.
type Definition struct {
	Name        string
	DisplayName string
	New         Factory
}
