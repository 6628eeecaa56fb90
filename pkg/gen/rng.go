package gen

import (
	"hash/fnv"
	"math/rand"
)

// Splitmix64 constants. Adjacent indices must land far apart in seed space or
// neighbouring workflows come out looking like siblings.
const (
	seedGamma = 0x9E3779B97F4A7C15
	seedMixA  = 0xBF58476D1CE4E5B9
	seedMixB  = 0x94D049BB133111EB
)

func mix64(z uint64) uint64 {
	z ^= z >> 30
	z *= seedMixA
	z ^= z >> 27
	z *= seedMixB
	z ^= z >> 31
	return z
}

// rngFor returns the RNG stream for one top-level generate call. Every call
// reseeds from scratch so no two calls ever observe each other's draws; the
// stream is private to the call and must not be shared across goroutines.
func rngFor(base int64, index int) *rand.Rand {
	z := mix64(uint64(base) + uint64(index+1)*seedGamma)
	return rand.New(rand.NewSource(int64(z)))
}

// hashName maps an arbitrary string to a stable 64-bit value (FNV-1a).
func hashName(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}

// rngForName is rngFor keyed on a name instead of an index. Used by the log
// and event generators, which are addressed by workflow name.
func rngForName(base int64, name string) *rand.Rand {
	z := mix64(uint64(base) ^ hashName(name))
	return rand.New(rand.NewSource(int64(z)))
}

// RNGForName exposes rngForName to the sibling log/event generator packages.
func RNGForName(base int64, name string) *rand.Rand {
	return rngForName(base, name)
}
