/*
Package probetable provides a string-keyed hash table using linear probing,
instrumented with collision and probe-length statistics.

Table is designed for studying how hash base and capacity choices affect
clustering. Every insertion records how many occupied slots it had to step
over, and the table keeps running totals that can be read at any time.

Basic usage:

	import "github.com/theflywheel/probetable"

	// A table of counts with hash base 31 and 17 initial slots
	t := probetable.New[int](31, 17)

	// Insert data
	if err := t.Set("aardvark", 1); err != nil {
		log.Fatal(err)
	}

	// Retrieve data
	n, err := t.Get("aardvark")
	if errors.Is(err, probetable.ErrKeyNotFound) {
		fmt.Println("not found")
	}

	// Inspect the counters
	fmt.Println(t.Statistics())

Features:

  - Generic values, string keys
  - Polynomial rolling hash with a configurable base, or xxhash64
  - Automatic growth through a fixed sequence of prime capacities whenever
    an insertion would push the load factor above 0.5
  - Deletion without tombstones: the rest of the primary cluster is
    reinserted so that every probe path stays intact
  - Collision count, total and maximum probe length, rehash count

Implementation Details:

The hash of a key is computed rune by rune as v = (v*base + rune) mod capacity.
Lookups start at that slot and walk forward until they find the key or an
empty slot. Insertions do the same, and each insertion that steps over at
least one occupied slot counts as one collision.

Growth builds a new backing array at the next prime capacity and reinserts
every entry. The counters describe the work done on behalf of callers: they
survive growth, and the reinsertions performed while migrating are not
counted.

A Table is owned by a single goroutine. Callers sharing one across
goroutines must serialize access themselves.
*/
package probetable
