package schema

import (
	"fmt"
	"sync"

	"golang.org/x/exp/slog"
)

// Resolver flattens a credential type's extends chain into a single ordered
// property list. Results are memoized by type name; the registry is immutable
// so entries never invalidate.
type Resolver struct {
	registry Registry
	log      *slog.Logger

	mu   sync.Mutex
	memo map[string][]Property
}

func NewResolver(registry Registry, log *slog.Logger) *Resolver {
	return &Resolver{
		registry: registry,
		log:      log.With("component", "schema_resolver"),
		memo:     make(map[string][]Property),
	}
}

// Resolve returns the flattened properties of the named type. Parent
// properties come first, ordered by point of first appearance; a property
// re-declared at a more specific level replaces the inherited descriptor in
// place. Unknown types fail with ErrTypeNotFound, cyclic extends chains with
// ErrCyclicExtends.
func (r *Resolver) Resolve(name string) ([]Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.resolve(name, map[string]bool{})
}

// resolve holds r.mu. The visiting set tracks the active recursion path for
// cycle detection; memoized entries short-circuit before any registry access.
func (r *Resolver) resolve(name string, visiting map[string]bool) ([]Property, error) {
	if props, ok := r.memo[name]; ok {
		return props, nil
	}
	if visiting[name] {
		return nil, fmt.Errorf("%w: %s", ErrCyclicExtends, name)
	}
	visiting[name] = true
	defer delete(visiting, name)

	typ, err := r.registry.Get(name)
	if err != nil {
		return nil, err
	}

	var merged []Property
	index := make(map[string]int)

	merge := func(props []Property) {
		for _, p := range props {
			if at, ok := index[p.Name]; ok {
				merged[at] = p
				continue
			}
			index[p.Name] = len(merged)
			merged = append(merged, p)
		}
	}

	for _, parent := range typ.Extends {
		parentProps, err := r.resolve(parent, visiting)
		if err != nil {
			return nil, fmt.Errorf("resolve parent of %s: %w", name, err)
		}
		merge(parentProps)
	}
	merge(typ.Properties)

	r.memo[name] = merged
	r.log.Debug("resolved credential type schema", "type", name, "properties", len(merged))

	return merged, nil
}
