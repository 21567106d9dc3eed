package probetable

import (
	"math/bits"

	"github.com/cespare/xxhash/v2"
)

// HashFunc maps a key to a home slot in [0, capacity)
type HashFunc func(key string, base, capacity int) int

// Polynomial is the default rolling hash. Every rune updates the running
// value as v = (v*base + rune) mod capacity, starting from zero.
func Polynomial(key string, base, capacity int) int {
	c := uint64(capacity)
	b := uint64(reduce(base, capacity))
	var v uint64
	for _, r := range key {
		hi, lo := bits.Mul64(v, b)
		lo, carry := bits.Add64(lo, uint64(r), 0)
		v = bits.Rem64(hi+carry, lo, c)
	}
	return int(v)
}

// XXHash ignores the base and spreads keys with xxhash64. It exists to
// compare probe statistics against a hash with good avalanche behaviour.
func XXHash(key string, _ int, capacity int) int {
	return int(xxhash.Sum64String(key) % uint64(capacity))
}

// reduce maps n into [0, m) the way a floored modulo does
func reduce(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}
