package providers

import (
	"sort"
	"sync"

	"inmofeed/pkg/logger"
)

// Registry maps provider names to their definitions. Registration happens
// at startup while lookups run on every request, so the map is guarded by
// a RWMutex rather than relying on registration-before-serving ordering.
type Registry struct {
	definitions map[string]Definition
	mu          sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		definitions: make(map[string]Definition),
	}
}

// Register adds a definition under its name. Re-registering a name
// overwrites the previous entry; the overwrite is logged so a misloaded
// plugin set is visible in startup output.
func (r *Registry) Register(def Definition) {
	if def.Name == "" || def.New == nil {
		logger.GlobalLogger.Errorf("ignoring provider registration without name or factory")
		return
	}
	r.mu.Lock()
	if _, exists := r.definitions[def.Name]; exists {
		logger.GlobalLogger.Warnf("provider %q registered twice, last registration wins", def.Name)
	}
	r.definitions[def.Name] = def
	r.mu.Unlock()
}

// Find returns the definition registered under name.
func (r *Registry) Find(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[name]
	return def, ok
}

// List returns the registered provider names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used when no explicit one is
// injected.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a definition to the default registry.
func Register(def Definition) {
	defaultRegistry.Register(def)
}
