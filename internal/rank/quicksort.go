// Package rank sorts slices with a randomized-pivot quicksort.
package rank

import "golang.org/x/exp/rand"

// Quicksort sorts items in place so that less(items[i], items[j]) never
// holds for i > j. Pivots are drawn from rng, or from the global source
// when rng is nil. When less is a strict total order the result does not
// depend on the pivots drawn.
//
// The sort is not stable.
func Quicksort[T any](items []T, less func(a, b T) bool, rng *rand.Rand) {
	intn := rand.Intn
	if rng != nil {
		intn = rng.Intn
	}

	lo, hi := 0, len(items)-1
	for lo < hi {
		p := partition(items, lo, hi, less, intn)
		// Recurse into the smaller side, loop on the larger.
		if p-lo < hi-p {
			Quicksort(items[lo:p], less, rng)
			lo = p + 1
		} else {
			Quicksort(items[p+1:hi+1], less, rng)
			hi = p - 1
		}
	}
}

// partition moves a random pivot into its final position within
// items[lo..hi] and returns that position. Everything before it sorts
// strictly before the pivot.
func partition[T any](items []T, lo, hi int, less func(a, b T) bool, intn func(int) int) int {
	pick := lo + intn(hi-lo+1)
	items[lo], items[pick] = items[pick], items[lo]

	boundary := lo
	for k := lo + 1; k <= hi; k++ {
		if less(items[k], items[lo]) {
			boundary++
			items[boundary], items[k] = items[k], items[boundary]
		}
	}
	items[lo], items[boundary] = items[boundary], items[lo]
	return boundary
}
