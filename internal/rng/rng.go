// Package rng wraps a seeded math/rand/v2 generator with the draw shapes
// the thread simulation relies on.
package rng

import (
	"encoding/binary"
	"math/rand/v2"
)

type Rand struct {
	*rand.Rand
	src *rand.ChaCha8
}

// New returns a deterministic generator for seed.
func New(seed uint64) *Rand {
	var key [32]byte
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(key[i*8:], seed+uint64(i)*0x9e3779b97f4a7c15)
	}
	src := rand.NewChaCha8(key)
	return &Rand{Rand: rand.New(src), src: src}
}

// Read fills p from the underlying stream so the generator can seed uuids.
func (r *Rand) Read(p []byte) (int, error) {
	return r.src.Read(p)
}

// Between draws uniformly from [lo, hi].
func (r *Rand) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// MinOf returns the smallest of n uniform draws from [lo, hi], skewing toward lo.
func (r *Rand) MinOf(n, lo, hi int) int {
	m := r.Between(lo, hi)
	for i := 1; i < n; i++ {
		m = min(m, r.Between(lo, hi))
	}
	return m
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.Float64() < p
}

// Choice picks a uniform element of items. items must not be empty.
func Choice[T any](r *Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// Weighted picks items[i] with probability weights[i]/sum(weights).
// Non-positive weights are never picked; if none is positive the first item is returned.
func Weighted[T any](r *Rand, items []T, weights []float64) T {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return items[0]
	}
	x := r.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if x < w {
			return items[i]
		}
		x -= w
	}
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return items[i]
		}
	}
	return items[0]
}
