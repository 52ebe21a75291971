// Copyright (c) 2026 The cobt Authors
// SPDX-License-Identifier: MIT

// Package pma implements the packed memory array: a single flat slice
// of optional key/value slots kept sparse enough, via a density
// invariant checked at every level of an implicit complete binary
// tree over the array, that a single insert or remove only ever
// touches a window proportional to the local imbalance.
package pma

import "github.com/gaissmai/cobt/internal/segment"

// PMA is a packed memory array over slots of type (K, V).
type PMA[K any, V any] struct {
	data    []segment.Slot[K, V]
	height  int
	segLog2 int
	segSize int
}

// New returns an empty PMA of capacity 1.
func New[K any, V any]() *PMA[K, V] {
	return &PMA[K, V]{
		data:    make([]segment.Slot[K, V], 1),
		height:  1,
		segLog2: 0,
		segSize: 1,
	}
}

// Height reports the current implicit tree height.
func (p *PMA[K, V]) Height() int { return p.height }

// Capacity reports the current backing array length.
func (p *PMA[K, V]) Capacity() int { return len(p.data) }

// KeyAt reports the key stored at absolute position i, if any.
func (p *PMA[K, V]) KeyAt(i int) (K, bool) {
	s := p.data[i]
	return s.Key, s.Full
}

// Slot reports the key, value and occupancy at absolute position i.
func (p *PMA[K, V]) Slot(i int) (K, V, bool) {
	s := p.data[i]
	return s.Key, s.Value, s.Full
}

// Slots exposes the live backing slice, not a copy. Callers may
// iterate it or overwrite an occupied slot's Value in place, but must
// not change which slots are occupied or their keys, and must not
// retain it across a call to Insert or Remove: either may reallocate
// the backing array wholesale.
func (p *PMA[K, V]) Slots() []segment.Slot[K, V] {
	return p.data
}

// Insert places (key, value) at absolute position index, 0 <= index
// <= Capacity(). It walks outward from the containing segment toward
// the root, absorbing the sibling window at each level, until it finds
// a window satisfying the insert-time density ceiling; if the root
// itself fails the ceiling, the backing array is replaced by one of
// twice the capacity.
//
// Insert reports whether a full resize happened. When it did not,
// [from, to) bounds the window that was locally rebalanced and whose
// index keys the caller must refresh; when it did, the caller must
// refresh the whole array.
func (p *PMA[K, V]) Insert(index int, key K, value V) (resized bool, from, to int) {
	segSize := p.segSize

	var segID, segPos int
	if index == len(p.data) {
		segID = (index >> p.segLog2) - 1
		segPos = segSize
	} else {
		segID = index >> p.segLog2
		segPos = index & (segSize - 1)
	}

	from = segID << p.segLog2
	to = from + segSize
	size := segSize
	count := segment.Window[K, V](p.data[from:to]).Count()

	foundSegment := false
	densityOK := false
	if count < size {
		foundSegment = true
		count++
		densityOK = insertUpperOK(p.height, p.height-1, count, size)
	}

	if !foundSegment || !densityOK {
		for depth := p.height - 2; depth >= 0; depth-- {
			if (from/size)&1 > 0 {
				count += segment.Window[K, V](p.data[from-size : from]).Count()
				segPos += size
				from -= size
			} else {
				count += segment.Window[K, V](p.data[to : to+size]).Count()
				to += size
			}
			size <<= 1
			if !foundSegment && count < size {
				count++
				foundSegment = true
			}
			if foundSegment && insertUpperOK(p.height, depth, count, size) {
				densityOK = true
				break
			}
		}
	}

	if !foundSegment {
		panic("pma: insert found no window within the density ceiling")
	}

	if densityOK {
		win := segment.Window[K, V](p.data[from:to])
		win.InsertAt(segPos, key, value)
		win.Redistribute()
		return false, from, to
	}

	p.grow(size)

	win := segment.Window[K, V](p.data)
	win.InsertAt(segPos, key, value)
	win.Redistribute()
	return true, 0, len(p.data)
}

// Remove clears the slot at absolute position index, 0 <= index <
// Capacity(), and rebalances the surrounding window, walking outward
// the same way Insert does until the remove-time density floor is
// satisfied; if the whole array falls below it, the array is halved
// (or, if now empty, reset to capacity 1).
//
// Remove reports whether a full resize happened, with the same
// [from, to) convention as Insert.
func (p *PMA[K, V]) Remove(index int) (resized bool, from, to int) {
	segSize := p.segSize
	segID := index >> p.segLog2
	segPos := index & (segSize - 1)

	from = segID << p.segLog2
	to = from + segSize
	win := segment.Window[K, V](p.data[from:to])
	win.RemoveAt(segPos)
	count := win.Count()
	size := segSize

	if removeLowerOK(p.height, p.height-1, count, size) {
		win.Redistribute()
		return false, from, to
	}

	for depth := p.height - 2; depth >= 0; depth-- {
		if (from/size)&1 > 0 {
			count += segment.Window[K, V](p.data[from-size : from]).Count()
			from -= size
		} else {
			count += segment.Window[K, V](p.data[to : to+size]).Count()
			to += size
		}
		size <<= 1
		if removeLowerOK(p.height, depth, count, size) {
			segment.Window[K, V](p.data[from:to]).Redistribute()
			return false, from, to
		}
	}

	if len(p.data) != size {
		panic("pma: remove climbed past the root without reaching full capacity")
	}

	if count == 0 {
		*p = *New[K, V]()
		return true, 0, len(p.data)
	}

	segment.Window[K, V](p.data).CompactToFront()

	newCap := size >> 1
	newData := make([]segment.Slot[K, V], newCap)
	copy(newData, p.data[:newCap])
	p.data = newData
	segment.Window[K, V](p.data).Redistribute()

	if p.height-1 == p.segLog2 {
		p.segLog2--
		p.segSize >>= 1
	} else {
		p.height--
	}
	return true, 0, len(p.data)
}

func (p *PMA[K, V]) grow(size int) {
	newData := make([]segment.Slot[K, V], size<<1)
	copy(newData, p.data)
	p.data = newData
	if p.height-1 == p.segLog2 {
		p.height++
	} else {
		p.segLog2++
		p.segSize <<= 1
	}
}
