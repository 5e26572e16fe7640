package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Registry resolves a credential type name to its raw description.
type Registry interface {
	Get(name string) (*Type, error)
}

// MemRegistry is an in-memory Registry, used at startup after loading type
// definitions and directly in tests.
type MemRegistry struct {
	types map[string]*Type
}

func NewMemRegistry(types ...*Type) *MemRegistry {
	reg := &MemRegistry{types: make(map[string]*Type, len(types))}
	for _, t := range types {
		reg.types[t.Name] = t
	}
	return reg
}

func (r *MemRegistry) Get(name string) (*Type, error) {
	t, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, name)
	}
	return t, nil
}

// Names returns the registered type names, sorted.
func (r *MemRegistry) Names() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadDir reads every *.json type definition under dir into a MemRegistry.
// The registry is read-only after this point.
func LoadDir(dir string) (*MemRegistry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read type directory: %w", err)
	}

	reg := NewMemRegistry()
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read type file %s: %w", entry.Name(), err)
		}

		var t Type
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTypeDef, entry.Name(), err)
		}
		if t.Name == "" {
			return nil, fmt.Errorf("%w: %s: missing name", ErrInvalidTypeDef, entry.Name())
		}

		reg.types[t.Name] = &t
	}

	return reg, nil
}
