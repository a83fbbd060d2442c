package experiment

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
)

var ErrUnknownGenerator = errors.New("experiment: unknown generator")

// Generator fills an array of n values drawn from [lo, hi].
type Generator interface {
	Generate(rng *rand.Rand, n, lo, hi int) []int
}

type GeneratorFunc func(rng *rand.Rand, n, lo, hi int) []int

func (f GeneratorFunc) Generate(rng *rand.Rand, n, lo, hi int) []int { return f(rng, n, lo, hi) }

type Registry struct {
	generators map[string]Generator
	info       map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		generators: make(map[string]Generator),
		info:       make(map[string]string),
	}

	r.Register("random", "uniform values, duplicates allowed", GeneratorFunc(uniform))
	r.Register("sorted", "ascending, no swaps needed", GeneratorFunc(func(rng *rand.Rand, n, lo, hi int) []int {
		v := uniform(rng, n, lo, hi)
		sort.Ints(v)
		return v
	}))
	r.Register("reversed", "descending", GeneratorFunc(func(rng *rand.Rand, n, lo, hi int) []int {
		v := uniform(rng, n, lo, hi)
		sort.Sort(sort.Reverse(sort.IntSlice(v)))
		return v
	}))
	r.Register("nearly-sorted", "ascending with a few swapped pairs", GeneratorFunc(nearlySorted))
	r.Register("few-unique", "values from a pool of three", GeneratorFunc(fewUnique))

	return r
}

func (r *Registry) Register(name, desc string, g Generator) {
	r.generators[name] = g
	r.info[name] = desc
}

func (r *Registry) Get(name string) (Generator, error) {
	g, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownGenerator, name, r.List())
	}
	return g, nil
}

func (r *Registry) Describe(name string) string {
	return r.info[name]
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func uniform(rng *rand.Rand, n, lo, hi int) []int {
	v := make([]int, n)
	for i := range v {
		v[i] = lo + rng.Intn(hi-lo+1)
	}
	return v
}

func nearlySorted(rng *rand.Rand, n, lo, hi int) []int {
	v := uniform(rng, n, lo, hi)
	sort.Ints(v)
	for k := 0; k < n/5+1 && n > 1; k++ {
		i := rng.Intn(n - 1)
		v[i], v[i+1] = v[i+1], v[i]
	}
	return v
}

func fewUnique(rng *rand.Rand, n, lo, hi int) []int {
	pool := uniform(rng, 3, lo, hi)
	v := make([]int, n)
	for i := range v {
		v[i] = pool[rng.Intn(len(pool))]
	}
	return v
}
