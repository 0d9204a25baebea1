package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSelection is returned for a selection that names no known
// mode or algorithm.
var ErrInvalidSelection = errors.New("invalid algorithm selection")

// Selection chooses which registered algorithms a session benchmarks.
type Selection string

const (
	// SelectAll runs every registered algorithm, fast hash last.
	SelectAll Selection = "all"
	// SelectFastHash runs only the fast non-cryptographic hash.
	SelectFastHash Selection = "sea"
	// SelectSHA1 runs only SHA1.
	SelectSHA1 Selection = "sha1"
)

// Registry is an ordered set of named engine factories plus one designated
// fast non-cryptographic hash that always sorts last.
type Registry struct {
	descriptors []Descriptor
	index       map[string]int
	fast        *Descriptor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register appends a named factory. Names must be unique, including
// against the fast hash.
func (r *Registry) Register(name string, f Factory) error {
	if err := r.checkName(name, f); err != nil {
		return err
	}

	r.index[normalize(name)] = len(r.descriptors)
	r.descriptors = append(r.descriptors, Descriptor{Name: name, New: f})

	return nil
}

// SetFastHash designates the fast non-cryptographic baseline.
func (r *Registry) SetFastHash(name string, f Factory) error {
	if r.fast != nil {
		return fmt.Errorf("fast hash already set to %q", r.fast.Name)
	}

	if err := r.checkName(name, f); err != nil {
		return err
	}

	r.fast = &Descriptor{Name: name, New: f}

	return nil
}

func (r *Registry) checkName(name string, f Factory) error {
	if name == "" {
		return errors.New("algorithm name must not be empty")
	}
	if f == nil {
		return fmt.Errorf("algorithm %q: nil factory", name)
	}

	key := normalize(name)
	if _, ok := r.index[key]; ok {
		return fmt.Errorf("algorithm %q already registered", name)
	}
	if r.fast != nil && normalize(r.fast.Name) == key {
		return fmt.Errorf("algorithm %q already registered as fast hash", name)
	}

	return nil
}

// Lookup finds an algorithm by name. Matching ignores case and the
// separators '-' and '_', so "sha-256" finds "SHA256".
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	key := normalize(name)

	if r.fast != nil && normalize(r.fast.Name) == key {
		return *r.fast, true
	}

	i, ok := r.index[key]
	if !ok {
		return Descriptor{}, false
	}

	return r.descriptors[i], true
}

// Names returns every algorithm name in the order SelectAll yields them.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.descriptors)+1)
	for _, d := range r.descriptors {
		names = append(names, d.Name)
	}

	if r.fast != nil {
		names = append(names, r.fast.Name)
	}

	return names
}

// FastHash returns the designated fast hash, if any.
func (r *Registry) FastHash() (Descriptor, bool) {
	if r.fast == nil {
		return Descriptor{}, false
	}

	return *r.fast, true
}

// Algorithms resolves a selection to the descriptors to benchmark, in
// registry order. No engine is constructed here.
func (r *Registry) Algorithms(sel Selection) ([]Descriptor, error) {
	switch sel {
	case SelectAll:
		out := make([]Descriptor, 0, len(r.descriptors)+1)
		out = append(out, r.descriptors...)
		if r.fast != nil {
			out = append(out, *r.fast)
		}

		return out, nil

	case SelectFastHash:
		if r.fast == nil {
			return nil, fmt.Errorf("%w: no fast hash registered", ErrInvalidSelection)
		}

		return []Descriptor{*r.fast}, nil

	default:
		d, ok := r.Lookup(string(sel))
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSelection, sel)
		}

		return []Descriptor{d}, nil
	}
}

func normalize(name string) string {
	return strings.Map(func(c rune) rune {
		if c == '-' || c == '_' {
			return -1
		}

		return c
	}, strings.ToLower(name))
}
