package probetable

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
)

const (
	// MinCapacity is the smallest backing array a table allocates
	MinCapacity = 1
	// DefaultCapacity and DefaultHashBase are used by NewDefault
	DefaultCapacity = 17
	DefaultHashBase = 31
)

type slot[V any] struct {
	key   string
	value V
	used  bool
}

// Table is a hash table keyed by strings using linear probing. Deletions
// rehash the rest of the primary cluster instead of leaving tombstones, so
// the load factor is simply Len()/Capacity().
//
// A Table is not safe for concurrent use.
type Table[V any] struct {
	slots     []slot[V]
	count     int
	hashBase  int
	hashFunc  HashFunc
	primes    []int
	nextPrime int
	stats     Stats
}

// Option configures a Table
type Option func(*options)

type options struct {
	hashFunc HashFunc
	primes   []int
}

// WithHashFunc replaces the polynomial hash
func WithHashFunc(fn HashFunc) Option {
	return func(o *options) {
		if fn != nil {
			o.hashFunc = fn
		}
	}
}

// WithCapacitySequence replaces Primes as the list of capacities the table
// grows through. The list must be ascending; an empty list disables growth.
func WithCapacitySequence(seq []int) Option {
	return func(o *options) {
		o.primes = seq
	}
}

// New creates an empty table with max(1, capacity) slots
func New[V any](hashBase, capacity int, opts ...Option) *Table[V] {
	o := options{hashFunc: Polynomial, primes: Primes}
	for _, opt := range opts {
		opt(&o)
	}
	return newTable[V](hashBase, capacity, o)
}

// NewDefault creates a table with DefaultHashBase and DefaultCapacity
func NewDefault[V any]() *Table[V] {
	return New[V](DefaultHashBase, DefaultCapacity)
}

func newTable[V any](hashBase, capacity int, o options) *Table[V] {
	return &Table[V]{
		slots:     make([]slot[V], max(MinCapacity, capacity)),
		hashBase:  hashBase,
		hashFunc:  o.hashFunc,
		primes:    o.primes,
		nextPrime: indexAfter(o.primes, capacity),
	}
}

// Len returns the number of keys in the table
func (t *Table[V]) Len() int {
	return t.count
}

// Capacity returns the length of the backing array
func (t *Table[V]) Capacity() int {
	return len(t.slots)
}

// HashBase returns the multiplier used by the hash function
func (t *Table[V]) HashBase() int {
	return t.hashBase
}

// IsEmpty reports whether the table holds no keys
func (t *Table[V]) IsEmpty() bool {
	return t.count == 0
}

// IsFull reports whether every slot is occupied
func (t *Table[V]) IsFull() bool {
	return t.count == len(t.slots)
}

// Statistics returns a snapshot of the table's counters
func (t *Table[V]) Statistics() Stats {
	return t.stats
}

// Hash returns the home slot of key for the current capacity
func (t *Table[V]) Hash(key string) int {
	return t.hashFunc(key, t.hashBase, len(t.slots))
}

// probe walks the cluster starting at the home slot of key. In insertion
// mode it returns the slot holding key or the first empty slot, charging
// every stepped-over slot to the probe counters; otherwise it returns the
// slot holding key.
func (t *Table[V]) probe(key string, forInsert bool) (int, error) {
	pos := t.Hash(key)
	dist := 0
	for i := 0; i < len(t.slots); i++ {
		s := &t.slots[pos]
		if !s.used {
			if !forInsert {
				return 0, keyNotFoundError(key)
			}
			t.stats.recordInsertProbe(dist)
			return pos, nil
		}
		if s.key == key {
			return pos, nil
		}
		pos = (pos + 1) % len(t.slots)
		dist++
		if forInsert {
			t.stats.ProbeTotal++
		}
	}
	if forInsert {
		return 0, tableFullError(key, len(t.slots))
	}
	return 0, keyNotFoundError(key)
}

// Get returns the value stored under key
func (t *Table[V]) Get(key string) (V, error) {
	pos, err := t.probe(key, false)
	if err != nil {
		var zero V
		return zero, err
	}
	return t.slots[pos].value, nil
}

// Contains reports whether key is in the table
func (t *Table[V]) Contains(key string) bool {
	_, err := t.Get(key)
	return err == nil
}

// Set adds or updates a key-value pair. When placing a new key would push
// the load factor above one half, the table grows first, through as many
// capacities as it takes. Updating a key that is already present never
// grows the table.
func (t *Table[V]) Set(key string, value V) error {
	if _, err := t.probe(key, false); err != nil {
		for 2*(t.count+1) > len(t.slots) && t.grow() {
		}
	}
	pos, err := t.probe(key, true)
	if err != nil {
		return err
	}
	s := &t.slots[pos]
	if !s.used {
		t.count++
	}
	*s = slot[V]{key: key, value: value, used: true}
	return nil
}

// Insert is Set
func (t *Table[V]) Insert(key string, value V) error {
	return t.Set(key, value)
}

// Delete removes key and reinserts the remainder of its cluster so that no
// probe path is left broken
func (t *Table[V]) Delete(key string) error {
	pos, err := t.probe(key, false)
	if err != nil {
		return err
	}
	t.slots[pos] = slot[V]{}
	t.count--

	capacity := len(t.slots)
	pos = (pos + 1) % capacity
	for i := 0; i < capacity && t.slots[pos].used; i++ {
		item := t.slots[pos]
		t.slots[pos] = slot[V]{}
		t.count--
		if err := t.Set(item.key, item.value); err != nil {
			return err
		}
		if len(t.slots) != capacity {
			// Set grew the table, which rebuilt every cluster.
			return nil
		}
		pos = (pos + 1) % capacity
	}
	return nil
}

// grow migrates every entry into a table sized by the next prime. Probes
// made while migrating are charged to the throwaway table, not to t.
func (t *Table[V]) grow() bool {
	if t.nextPrime >= len(t.primes) {
		glog.V(1).Infof("probetable: capacity sequence exhausted at %d slots", len(t.slots))
		return false
	}
	capacity := t.primes[t.nextPrime]
	t.nextPrime++
	t.stats.Rehashes++

	fresh := newTable[V](t.hashBase, capacity, options{hashFunc: t.hashFunc, primes: t.primes})
	for _, s := range t.slots {
		if s.used {
			// fresh is at most half full, so this cannot fail.
			_ = fresh.Set(s.key, s.value)
		}
	}
	glog.V(2).Infof("probetable: grew %d -> %d slots (%d keys)", len(t.slots), capacity, fresh.count)
	t.slots = fresh.slots
	t.count = fresh.count
	return true
}

// Range calls fn for every entry in slot order until fn returns false
func (t *Table[V]) Range(fn func(key string, value V) bool) {
	for _, s := range t.slots {
		if s.used && !fn(s.key, s.value) {
			return
		}
	}
}

// String lists every entry as "(key,value)" on its own line in slot order
func (t *Table[V]) String() string {
	var b strings.Builder
	t.Range(func(key string, value V) bool {
		fmt.Fprintf(&b, "(%s,%v)\n", key, value)
		return true
	})
	return b.String()
}
