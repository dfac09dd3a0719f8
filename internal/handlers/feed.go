// Package handlers exposes the feed operations over HTTP. Handlers only
// translate between the HTTP surface and the manager; all provider and
// cache behavior lives below.
package handlers

import (
	"net/http"
	"sync"

	"inmofeed/internal/feederrors"
	"inmofeed/internal/manager"
	"inmofeed/internal/tenant"
	"inmofeed/pkg/cache"

	"github.com/gin-gonic/gin"
)

// FeedHandler serves the per-tenant feed endpoints. Managers are built
// lazily per tenant and reused; they hold no per-request state.
type FeedHandler struct {
	tenants    tenant.Store
	backend    cache.Backend
	cacheScope string

	mu       sync.Mutex
	managers map[string]*manager.Manager
}

func NewFeedHandler(tenants tenant.Store, backend cache.Backend, cacheScope string) *FeedHandler {
	return &FeedHandler{
		tenants:    tenants,
		backend:    backend,
		cacheScope: cacheScope,
		managers:   make(map[string]*manager.Manager),
	}
}

// managerFor resolves the tenant and its manager. Tenant lookup failures
// and provider construction errors surface as HTTP errors here; runtime
// provider failures never do.
func (h *FeedHandler) managerFor(c *gin.Context) (*manager.Manager, bool) {
	tenantID := c.Param("tenant")

	h.mu.Lock()
	m, ok := h.managers[tenantID]
	h.mu.Unlock()
	if ok {
		return m, true
	}

	t, err := h.tenants.Get(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown tenant"})
		return nil, false
	}

	m, err = manager.New(manager.Config{
		Tenant:     t,
		Backend:    h.backend,
		CacheScope: h.cacheScope,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if feederrors.IsConfiguration(err) {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return nil, false
	}

	h.mu.Lock()
	h.managers[tenantID] = m
	h.mu.Unlock()
	return m, true
}

// Search handles GET /api/feed/:tenant/search.
func (h *FeedHandler) Search(c *gin.Context) {
	m, ok := h.managerFor(c)
	if !ok {
		return
	}
	result := m.Search(c.Request.Context(), queryParams(c))
	c.JSON(http.StatusOK, result)
}

// Property handles GET /api/feed/:tenant/properties/:reference.
func (h *FeedHandler) Property(c *gin.Context) {
	m, ok := h.managerFor(c)
	if !ok {
		return
	}
	property := m.Find(c.Request.Context(), c.Param("reference"), queryParams(c))
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	c.JSON(http.StatusOK, property)
}

// Similar handles GET /api/feed/:tenant/properties/:reference/similar.
// The reference property is resolved first; similar listings are then
// keyed off it.
func (h *FeedHandler) Similar(c *gin.Context) {
	m, ok := h.managerFor(c)
	if !ok {
		return
	}
	params := queryParams(c)
	property := m.Find(c.Request.Context(), c.Param("reference"), params)
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
		return
	}
	listings := m.Similar(c.Request.Context(), property, params)
	c.JSON(http.StatusOK, gin.H{"properties": listings})
}

// Locations handles GET /api/feed/:tenant/locations.
func (h *FeedHandler) Locations(c *gin.Context) {
	m, ok := h.managerFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": m.Locations(c.Request.Context(), queryParams(c))})
}

// PropertyTypes handles GET /api/feed/:tenant/property-types.
func (h *FeedHandler) PropertyTypes(c *gin.Context) {
	m, ok := h.managerFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"property_types": m.PropertyTypes(c.Request.Context(), queryParams(c))})
}

// FilterOptions handles GET /api/feed/:tenant/filter-options.
func (h *FeedHandler) FilterOptions(c *gin.Context) {
	m, ok := h.managerFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, m.FilterOptions(c.Request.Context(), queryParams(c)))
}

// InvalidateCache handles DELETE /api/feed/:tenant/cache.
func (h *FeedHandler) InvalidateCache(c *gin.Context) {
	m, ok := h.managerFor(c)
	if !ok {
		return
	}
	if err := m.InvalidateAll(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cache invalidation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Status handles GET /api/feed/:tenant/status.
func (h *FeedHandler) Status(c *gin.Context) {
	m, ok := h.managerFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"enabled":   m.Enabled(),
		"provider":  m.ProviderName(),
		"available": m.Available(c.Request.Context()),
	})
}

// queryParams flattens the query string into the loosely typed parameter
// map the manager normalizes. Repeated keys become slices.
func queryParams(c *gin.Context) map[string]interface{} {
	params := make(map[string]interface{})
	for key, values := range c.Request.URL.Query() {
		if len(values) == 1 {
			params[key] = values[0]
		} else if len(values) > 1 {
			params[key] = values
		}
	}
	return params
}
