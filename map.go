// Copyright (c) 2026 The cobt Authors
// SPDX-License-Identifier: MIT

package cobt

import (
	"cmp"
	"iter"
	"math/bits"

	"github.com/gaissmai/cobt/internal/pma"
	"github.com/gaissmai/cobt/internal/veb"
)

// Entry is one key/value pair, as returned by the container's bulk
// read operations.
type Entry[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

// Map is a single-threaded, ordered key/value container keyed by any
// totally ordered type.
type Map[K cmp.Ordered, V any] struct {
	pma  *pma.PMA[K, V]
	tree *veb.Tree[K]
	size int
}

// New returns an empty Map.
func New[K cmp.Ordered, V any]() *Map[K, V] {
	p := pma.New[K, V]()
	return &Map[K, V]{pma: p, tree: veb.New[K](treeHeight(p.Capacity()))}
}

// treeHeight returns the index tree height needed to give every slot
// of a capacity-sized packed memory array its own leaf. capacity is
// always a power of two, so this is exactly log2(capacity)+1.
func treeHeight(capacity int) int {
	return bits.Len(uint(capacity))
}

// Len reports the number of entries currently stored.
func (m *Map[K, V]) Len() int { return m.size }

// IsEmpty reports whether the map holds no entries.
func (m *Map[K, V]) IsEmpty() bool { return m.size == 0 }

// Clear removes every entry and releases the underlying storage.
func (m *Map[K, V]) Clear() {
	m.pma = pma.New[K, V]()
	m.tree = veb.New[K](treeHeight(m.pma.Capacity()))
	m.size = 0
}

// Get returns the value stored for key, if any.
func (m *Map[K, V]) Get(key K) (V, bool) {
	index := m.tree.FindIndex(key)
	if index >= m.pma.Capacity() {
		var zero V
		return zero, false
	}
	k, v, ok := m.pma.Slot(index)
	if !ok || k != key {
		var zero V
		return zero, false
	}
	return v, true
}

// Insert stores value under key. If key was already present, its
// value is overwritten in place and the previous value is returned
// with hadOld set; no structural rebalance happens in that case.
func (m *Map[K, V]) Insert(key K, value V) (old V, hadOld bool) {
	index := m.tree.FindIndex(key)

	if index < m.pma.Capacity() {
		if k, ok := m.pma.KeyAt(index); ok && k == key {
			slots := m.pma.Slots()
			old = slots[index].Value
			slots[index].Value = value
			return old, true
		}
	}

	resized, from, to := m.pma.Insert(index, key, value)
	m.size++
	m.refreshAfter(resized, from, to)

	var zero V
	return zero, false
}

// Remove deletes key, returning the removed value and true if it was
// present.
func (m *Map[K, V]) Remove(key K) (old V, removed bool) {
	index := m.tree.FindIndex(key)
	if index >= m.pma.Capacity() {
		var zero V
		return zero, false
	}
	if k, ok := m.pma.KeyAt(index); !ok || k != key {
		var zero V
		return zero, false
	}

	_, old, _ = m.pma.Slot(index)
	resized, from, to := m.pma.Remove(index)
	m.size--
	m.refreshAfter(resized, from, to)
	return old, true
}

func (m *Map[K, V]) refreshAfter(resized bool, from, to int) {
	if resized {
		m.tree = veb.New[K](treeHeight(m.pma.Capacity()))
		m.tree.Refresh(0, m.pma.Capacity(), m.pma.KeyAt)
		return
	}
	m.tree.Refresh(from, to, m.pma.KeyAt)
}

// FirstKey returns the smallest key stored, if any.
func (m *Map[K, V]) FirstKey() (K, bool) {
	for _, s := range m.pma.Slots() {
		if s.Full {
			return s.Key, true
		}
	}
	var zero K
	return zero, false
}

// Keys returns every stored key in ascending order.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, 0, m.size)
	for _, s := range m.pma.Slots() {
		if s.Full {
			out = append(out, s.Key)
		}
	}
	return out
}

// Values returns every stored value, ordered by ascending key.
func (m *Map[K, V]) Values() []V {
	out := make([]V, 0, m.size)
	for _, s := range m.pma.Slots() {
		if s.Full {
			out = append(out, s.Value)
		}
	}
	return out
}

// Entries returns every stored key/value pair, ordered by ascending
// key.
func (m *Map[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], 0, m.size)
	for _, s := range m.pma.Slots() {
		if s.Full {
			out = append(out, Entry[K, V]{Key: s.Key, Value: s.Value})
		}
	}
	return out
}

// TopK returns the k entries with the smallest keys, or every entry
// if the map holds fewer than k.
func (m *Map[K, V]) TopK(k int) []Entry[K, V] {
	if k <= 0 {
		return nil
	}
	out := make([]Entry[K, V], 0, min(k, m.size))
	for _, s := range m.pma.Slots() {
		if len(out) >= k {
			break
		}
		if s.Full {
			out = append(out, Entry[K, V]{Key: s.Key, Value: s.Value})
		}
	}
	return out
}

// All returns an iterator over every stored key/value pair in
// ascending key order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, s := range m.pma.Slots() {
			if s.Full {
				if !yield(s.Key, s.Value) {
					return
				}
			}
		}
	}
}
