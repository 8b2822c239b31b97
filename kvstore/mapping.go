package kvstore

import "sort"

// Mapping is the in-memory key-value mapping reconstructed from the
// database file for the duration of a single operation. Values are opaque
// byte sequences; the store imposes no type distinction on them.
//
// A Mapping is never shared between operations - every operation loads a
// fresh one and discards it when the cycle completes, so each invocation
// observes the latest committed state.
type Mapping map[string][]byte

// Get returns the value stored under key and whether the key is present.
func (m Mapping) Get(key string) ([]byte, bool) {
	value, ok := m[key]
	return value, ok
}

// Put inserts the value under key, overwriting any existing value.
func (m Mapping) Put(key string, value []byte) {
	m[key] = value
}

// Delete removes key from the mapping. It returns false if the key was
// absent; deleting a missing key is a no-op, not a failure.
func (m Mapping) Delete(key string) bool {
	if _, ok := m[key]; !ok {
		return false
	}
	delete(m, key)
	return true
}

// Keys returns all keys in the mapping, sorted lexicographically so that
// enumeration order is stable.
func (m Mapping) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys in the mapping.
func (m Mapping) Len() int {
	return len(m)
}
