// Package engine describes the digest engines that hashbench measures and
// keeps the ordered registry of named engine factories.
package engine

import "hash"

// Engine consumes bytes incrementally and produces a digest.
type Engine interface {
	Update(p []byte)
	Finalize() []byte
}

// Factory returns a fresh Engine with its own state on every call.
type Factory func() Engine

// Descriptor pairs an algorithm name with the factory that builds it.
// Name is unique within a Registry and is the key of every recorded row.
type Descriptor struct {
	Name string
	New  Factory
}

type hashEngine struct {
	h hash.Hash
}

func (e *hashEngine) Update(p []byte) { _, _ = e.h.Write(p) }

func (e *hashEngine) Finalize() []byte { return e.h.Sum(nil) }

// FromHash adapts a hash.Hash constructor into a Factory. The constructor
// is not called until the factory is.
func FromHash[H hash.Hash](newHash func() H) Factory {
	return func() Engine {
		return &hashEngine{h: newHash()}
	}
}
