package publish

import (
	"fmt"

	"syndicator/internal/ports"
)

// Registry keeps a mapping from target names to configured publishers.
// A known platform that is absent here counts as a guaranteed failure
// for documents requesting it, not as a skip.
type Registry struct {
	publishers map[string]ports.Publisher
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{publishers: map[string]ports.Publisher{}}
}

// Register adds or replaces a publisher implementation.
func (r *Registry) Register(pub ports.Publisher) {
	if r.publishers == nil {
		r.publishers = map[string]ports.Publisher{}
	}
	r.publishers[pub.Name()] = pub
}

// Resolve returns a publisher by target name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.Publisher, error) {
	if pub, ok := r.publishers[name]; ok {
		return pub, nil
	}
	return nil, fmt.Errorf("no %s client configured", name)
}

// Len reports how many publishers are configured.
func (r *Registry) Len() int {
	return len(r.publishers)
}
