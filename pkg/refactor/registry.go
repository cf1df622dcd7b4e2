package refactor

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Factory builds a configured refactoring from parameters.
type Factory func(p Params) (Refactoring, error)

// Kind describes a registered refactoring.
type Kind struct {
	// ID is the kebab-case identifier used on the command line.
	ID string
	// Name is the type name, e.g. "RenameVariable".
	Name        string
	Description string
	// Params names the parameters the refactoring reads, for help output.
	Params []string
	New    Factory
}

// Registry holds the available refactorings.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]Kind
	byName map[string]Kind
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]Kind),
		byName: make(map[string]Kind),
	}
}

// Register adds a refactoring kind, replacing any with the same ID.
func (r *Registry) Register(k Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[k.ID] = k
	r.byName[strings.ToLower(k.Name)] = k
}

// Get looks a kind up by ID, then by case-insensitive name.
func (r *Registry) Get(key string) (Kind, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if k, ok := r.byID[key]; ok {
		return k, true
	}
	k, ok := r.byName[strings.ToLower(key)]
	return k, ok
}

// Build constructs the refactoring registered under key.
func (r *Registry) Build(key string, p Params) (Refactoring, error) {
	k, ok := r.Get(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRefactoring, key)
	}
	return k.New(p)
}

// Kinds returns all registered kinds sorted by ID.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Kind, 0, len(r.byID))
	for _, k := range r.byID {
		out = append(out, k)
	}
	slices.SortFunc(out, func(a, b Kind) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// IDs returns all registered IDs in sorted order.
func (r *Registry) IDs() []string {
	kinds := r.Kinds()
	ids := make([]string, len(kinds))
	for i, k := range kinds {
		ids[i] = k.ID
	}
	return ids
}

// DefaultRegistry holds the built-in refactorings, registered during init.
//
//nolint:gochecknoglobals // Global registry is intentional for registration
var DefaultRegistry = NewRegistry()
