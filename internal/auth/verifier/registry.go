package verifier

import "fmt"

// Registry holds all configured verifiers and allows lookup by name.
// It performs no auth logic itself.
type Registry struct {
	verifiers map[string]Verifier
}

// NewRegistry registers the given verifiers by name. Names must be unique.
func NewRegistry(list ...Verifier) *Registry {
	m := make(map[string]Verifier)
	for _, v := range list {
		m[v.Name()] = v
	}
	return &Registry{verifiers: m}
}

// Get returns the verifier by name or an error if not registered.
func (r *Registry) Get(name string) (Verifier, error) {
	v, ok := r.verifiers[name]
	if !ok {
		return nil, fmt.Errorf("unknown token verifier: %s", name)
	}
	return v, nil
}
