// Package indexmap translates character indices between plain text and
// text that still contains invisible formatting markers.
package indexmap

import (
	"fmt"
	"sort"
)

// ForwardMap is an ordered list of (key, value) pairs with non-decreasing
// keys, queried with non-decreasing keys.
//
// Inf keeps a cursor into the list so a full forward sweep costs O(n) in
// total. Callers that cannot guarantee increasing queries use Floor.
type ForwardMap struct {
	keys   []int
	values []int

	cursor  int
	lastKey int
	queried bool
}

// Put appends a pair. A key equal to the last key overwrites its value;
// a smaller key panics.
func (m *ForwardMap) Put(key, value int) {
	if n := len(m.keys); n > 0 {
		last := m.keys[n-1]
		if key < last {
			panic(fmt.Sprintf("indexmap: Put key %d after %d", key, last))
		}
		if key == last {
			m.values[n-1] = value
			return
		}
	}
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
}

// Len returns the number of pairs.
func (m *ForwardMap) Len() int {
	return len(m.keys)
}

// At returns the i-th pair.
func (m *ForwardMap) At(i int) (key, value int) {
	return m.keys[i], m.values[i]
}

// Inf returns the index and value of the greatest stored key strictly
// less than key, or (-1, 0) when there is none.
//
// Successive calls must use non-decreasing keys; a smaller key panics.
func (m *ForwardMap) Inf(key int) (int, int) {
	if m.queried && key < m.lastKey {
		panic(fmt.Sprintf("indexmap: Inf key %d after %d", key, m.lastKey))
	}
	m.queried = true
	m.lastKey = key
	for m.cursor < len(m.keys) && m.keys[m.cursor] < key {
		m.cursor++
	}
	i := m.cursor - 1
	if i < 0 {
		return -1, 0
	}
	return i, m.values[i]
}

// Floor is the stateless form of Inf. It does not move the cursor.
func (m *ForwardMap) Floor(key int) (int, int) {
	i := sort.SearchInts(m.keys, key) - 1
	if i < 0 {
		return -1, 0
	}
	return i, m.values[i]
}

// Reset rewinds the query cursor.
func (m *ForwardMap) Reset() {
	m.cursor = 0
	m.lastKey = 0
	m.queried = false
}
