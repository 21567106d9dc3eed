package probetable

import "github.com/cockroachdb/errors"

var (
	// ErrKeyNotFound is reported by lookups and deletions of absent keys
	ErrKeyNotFound = errors.New("key not found")

	// ErrTableFull is reported when an insertion probe visits every slot
	// without finding the key or an empty slot
	ErrTableFull = errors.New("hash table full")
)

func keyNotFoundError(key string) error {
	return errors.Mark(errors.Newf("key %q not found", key), ErrKeyNotFound)
}

func tableFullError(key string, capacity int) error {
	err := errors.Newf("no free slot for key %q (capacity=%d)", key, capacity)
	return errors.WithHint(errors.Mark(err, ErrTableFull),
		"the prime capacity sequence is exhausted; start from a larger capacity")
}
