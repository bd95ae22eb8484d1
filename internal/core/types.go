package core

import (
	"context"
	"sort"
)

// Size describes the dimensions of a generated grid.
type Size struct {
	W int
	H int
}

// Generator defines the contract the viewers and servers drive. Generate is
// called explicitly by the host whenever it decides parameters changed; Size
// and Cells describe the last successful generation.
type Generator interface {
	Name() string
	Size() Size
	Seed() uint32
	SetSeed(seed uint32)
	SetRandomSeed()
	Generate(ctx context.Context) error
	Cells() []uint8
}

// Factory constructs a Generator using an optional configuration map.
type Factory func(cfg map[string]string) Generator

var generators = map[string]Factory{}

// Register adds a generator factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	generators[name] = f
}

// Generators exposes the registry of available generator factories.
func Generators() map[string]Factory {
	return generators
}

// Names lists registered generators in sorted order.
func Names() []string {
	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
