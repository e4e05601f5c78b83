package operations

import (
	"strings"

	"go-decimal-calculator/internal/calcerr"
)

// Factory produces a fresh Operation instance.
type Factory func() Operation

// Registry maps command names to operation factories. Names are
// case-insensitive. Registration order is preserved for listing;
// re-registering an existing name overwrites the binding but keeps its
// original position.
type Registry struct {
	factories map[string]Factory
	names     []string
}

// NewRegistry returns a registry with the ten built-in operations
// registered in their canonical order.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}

	builtins := []struct {
		name    string
		factory Factory
	}{
		{"add", func() Operation { return Addition{} }},
		{"subtract", func() Operation { return Subtraction{} }},
		{"multiply", func() Operation { return Multiplication{} }},
		{"divide", func() Operation { return Division{} }},
		{"power", func() Operation { return Power{} }},
		{"root", func() Operation { return Root{} }},
		{"modulus", func() Operation { return Modulus{} }},
		{"int_divide", func() Operation { return IntDivide{} }},
		{"percent", func() Operation { return Percent{} }},
		{"abs_diff", func() Operation { return AbsoluteDifference{} }},
	}
	for _, b := range builtins {
		// Built-in factories are known good; Register cannot fail here.
		_ = r.Register(b.name, b.factory)
	}
	return r
}

// Register binds name to factory, overwriting any existing binding for the
// same (case-insensitive) name. The factory must be non-nil and must
// produce a non-nil Operation.
func (r *Registry) Register(name string, factory Factory) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return calcerr.NewValidation("operation name must not be empty")
	}
	if factory == nil {
		return calcerr.NewValidation("operation factory must not be nil")
	}
	if factory() == nil {
		return calcerr.NewValidation("operation factory for %q produced no operation", key)
	}

	if _, exists := r.factories[key]; !exists {
		r.names = append(r.names, key)
	}
	r.factories[key] = factory
	return nil
}

// Create returns a fresh instance of the named operation.
func (r *Registry) Create(name string) (Operation, error) {
	factory, ok := r.factories[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, calcerr.NewOperation("unknown operation: %s", name)
	}
	return factory(), nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Names returns all registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
