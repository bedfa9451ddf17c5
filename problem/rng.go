// Package problem - RNG utilities for the assembler.
//
// Goals:
//   - Determinism: same seed ⇒ identical instance on every platform and for
//     every worker count.
//   - Encapsulation: a single RNG factory; no time-based sources anywhere.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Each worker derives its own
//     streams; streams are never shared.
package problem

import "math/rand"

// defaultSeed is used when callers pass seed == 0.
const defaultSeed int64 = 1

// Stream identifiers, one per drawn vector. They are part of the
// reproducibility contract: changing them changes every generated instance.
const (
	streamXGen uint64 = iota + 1
	streamCost
	streamX0
	streamY0
	streamZ0
)

// deriveSeed mixes a parent seed and a stream identifier (SplitMix64
// finalizer) so that the per-vector streams are decorrelated.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// streamRNG returns the deterministic generator of one vector.
// Policy: seed == 0 ⇒ defaultSeed.
func streamRNG(seed int64, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(deriveSeed(seed, stream)))
}
