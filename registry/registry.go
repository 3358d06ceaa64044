// Package registry holds the algorithm strategy registry. A Registry maps
// algorithm identifiers to transform strategies (ciphers, KEMs, signers)
// and, separately, to key generation strategies. Registries are populated
// once from bundles and are immutable afterwards, so lookups need no
// locking.
package registry

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"

	"github.com/qu4nt/entlib-go/algid"
	"github.com/qu4nt/entlib-go/strategy"
)

var logger = xlog.NewPackageLogger("github.com/qu4nt/entlib-go", "registry")

var (
	// ErrUnsupportedAlgorithm means no strategy is registered for the
	// requested identifier.
	ErrUnsupportedAlgorithm = errors.New("registry: unsupported algorithm")

	// ErrCapabilityMismatch means a strategy is registered but does not
	// provide the requested capability.
	ErrCapabilityMismatch = errors.New("registry: strategy does not provide requested capability")
)

// Registry maps algorithm identifiers to strategies. The transform and
// key generation planes are independent: an identifier may appear in
// either, or in both.
type Registry struct {
	algs map[algid.ID]strategy.Strategy
	keys map[algid.ID]strategy.Strategy
}

// New builds a registry by running each bundle in order. Registration is
// the only mutation path; once New returns, the registry is read-only.
func New(bundles ...strategy.Bundle) (*Registry, error) {
	r := &Registry{
		algs: make(map[algid.ID]strategy.Strategy),
		keys: make(map[algid.ID]strategy.Strategy),
	}
	for _, b := range bundles {
		if err := b.Register(r); err != nil {
			return nil, errors.WithMessagef(err, "bundle %q", b.Name())
		}
		logger.Tracef("bundle=%s, algorithms=%d, keys=%d", b.Name(), len(r.algs), len(r.keys))
	}
	return r, nil
}

// RegisterStrategy adds a transform strategy for id. Registering the same
// identifier twice is a configuration error.
func (r *Registry) RegisterStrategy(id algid.ID, s strategy.Strategy) error {
	if _, ok := r.algs[id]; ok {
		return errors.Errorf("registry: duplicate strategy: %s", id)
	}
	r.algs[id] = s
	return nil
}

// RegisterKeyStrategy adds a key generation strategy for id.
func (r *Registry) RegisterKeyStrategy(id algid.ID, s strategy.Strategy) error {
	if _, ok := r.keys[id]; ok {
		return errors.Errorf("registry: duplicate key strategy: %s", id)
	}
	r.keys[id] = s
	return nil
}

// LookupStrategy returns the transform strategy for id.
func (r *Registry) LookupStrategy(id algid.ID) (strategy.Strategy, bool) {
	s, ok := r.algs[id]
	return s, ok
}

// LookupKeyStrategy returns the key generation strategy for id.
func (r *Registry) LookupKeyStrategy(id algid.ID) (strategy.Strategy, bool) {
	s, ok := r.keys[id]
	return s, ok
}

// IsRegistered reports whether id has a transform strategy.
func (r *Registry) IsRegistered(id algid.ID) bool {
	_, ok := r.algs[id]
	return ok
}

// IsKeyRegistered reports whether id has a key generation strategy.
func (r *Registry) IsKeyRegistered(id algid.ID) bool {
	_, ok := r.keys[id]
	return ok
}

// RegisteredCount returns the number of registered transform strategies.
func (r *Registry) RegisteredCount() int {
	return len(r.algs)
}

// Algorithms returns the registered transform identifiers in the
// canonical declaration order.
func (r *Registry) Algorithms() []algid.ID {
	var out []algid.ID
	for _, id := range algid.All() {
		if _, ok := r.algs[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// GetStrategy returns the transform strategy for id narrowed to the
// capability T. A missing identifier yields ErrUnsupportedAlgorithm; a
// registered strategy of the wrong shape yields ErrCapabilityMismatch.
func GetStrategy[T strategy.Strategy](r *Registry, id algid.ID) (T, error) {
	return narrow[T](r.algs, id)
}

// GetKeyStrategy returns the key generation strategy for id narrowed to
// the capability T.
func GetKeyStrategy[T strategy.Strategy](r *Registry, id algid.ID) (T, error) {
	return narrow[T](r.keys, id)
}

func narrow[T strategy.Strategy](m map[algid.ID]strategy.Strategy, id algid.ID) (T, error) {
	var zero T
	s, ok := m[id]
	if !ok {
		return zero, errors.WithDetailf(ErrUnsupportedAlgorithm, "algorithm: %s", id)
	}
	t, ok := s.(T)
	if !ok {
		return zero, errors.WithDetailf(ErrCapabilityMismatch, "algorithm: %s", id)
	}
	return t, nil
}
