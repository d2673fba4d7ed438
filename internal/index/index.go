// Package index implements an inverted index: a map from a key to an
// ordered list of referencing values, used by the coordinator to narrow the
// set of candidate patterns on each message arrival.
package index

// Index is a map from a key to an ordered list of values referencing it.
// The zero value is not usable; construct one with New.
type Index[K comparable, V any] struct {
	lookup map[K][]V
}

// New returns an empty Index.
func New[K comparable, V any]() *Index[K, V] {
	return &Index[K, V]{lookup: make(map[K][]V)}
}

// InsertSingle appends value to the list referencing key.
func (x *Index[K, V]) InsertSingle(key K, value V) {
	x.lookup[key] = append(x.lookup[key], value)
}

// InsertMultiple appends value to the list referencing every key in keys,
// deduplicating repeated keys so a value referencing the same key twice
// (e.g. a pattern listing one channel with multiplicity) is indexed once.
func (x *Index[K, V]) InsertMultiple(keys []K, value V) {
	seen := make(map[K]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		x.InsertSingle(key, value)
	}
}

// PeekAll returns the ordered list of values referencing key, and whether
// any exist.
func (x *Index[K, V]) PeekAll(key K) ([]V, bool) {
	values, ok := x.lookup[key]
	return values, ok
}
