// Copyright (c) 2026 The cobt Authors
// SPDX-License-Identifier: MIT

// Package veb computes the van Emde Boas array layout for a complete
// binary tree: given a node's breadth-first id (root = 1, children of
// n are 2n and 2n+1) and the tree's height, Position returns the
// node's offset in an array laid out so that any subtree occupies a
// contiguous range — the layout a cache-oblivious B-tree index needs
// to keep traversal cost independent of cache line size.
package veb

import "math/bits"

// ceilPow2 returns the smallest power of two >= x, for x >= 1.
func ceilPow2(x int) int {
	if x <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(x-1))
}

// Position returns the zero-based array offset of breadth-first id n
// (1 <= n < 1<<h) within a complete binary tree of height h laid out
// in recursive van Emde Boas order: split the tree into a top half of
// height h1 and 2^h1 bottom subtrees of height h2 each, place the top
// half first, then each bottom subtree contiguously in breadth-first
// order of its root.
func Position(n, h int) int {
	if h < 3 {
		return n - 1
	}
	d := bits.Len(uint(n))
	return positionAt(n, d, h) - 1
}

// positionAt returns the 1-based position of id n, whose breadth-first
// depth below the tree root rooted at this call is d (1-based: the
// root of the current call has d == bits.Len of its own relabeled id),
// within a subtree of height h.
func positionAt(n, d, h int) int {
	if h < 3 {
		return n
	}
	h2 := ceilPow2((h + 1) >> 1)
	h1 := h - h2

	if d <= h1 {
		return positionAt(n, d, h1)
	}

	d2 := d - h1
	d1 := d2 - 1
	bottomIdx := (n >> d1) - (1 << h1)
	relabeled := (1 << d1) | (n & ((1 << d1) - 1))

	return (1<<h1 - 1) + (1<<h2-1)*bottomIdx + positionAt(relabeled, d2, h2)
}
