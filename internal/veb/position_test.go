// Copyright (c) 2026 The cobt Authors
// SPDX-License-Identifier: MIT

package veb

import "testing"

// positionsByDepth groups breadth-first ids 1..(1<<h)-1 by their
// 0-based depth (bits.Len(id)-1) and returns, for each depth in order,
// the list of Position(id, h) values in id order.
func positionsByDepth(h int) [][]int {
	out := make([][]int, h)
	for n := 1; n < 1<<h; n++ {
		depth := 0
		for m := n; m > 1; m >>= 1 {
			depth++
		}
		out[depth] = append(out[depth], Position(n, h))
	}
	return out
}

// TestPositionHeight5 reproduces the exact layer-by-layer array
// positions from the original implementation's height-5 worked
// example (the textbook van Emde Boas tree diagram).
func TestPositionHeight5(t *testing.T) {
	want := [][]int{
		{0},
		{1, 16},
		{2, 3, 17, 18},
		{4, 7, 10, 13, 19, 22, 25, 28},
		{5, 6, 8, 9, 11, 12, 14, 15, 20, 21, 23, 24, 26, 27, 29, 30},
	}
	got := positionsByDepth(5)
	for d := range want {
		if !equalInts(got[d], want[d]) {
			t.Fatalf("depth %d: got %v want %v", d, got[d], want[d])
		}
	}
}

// TestPositionHeight4 reproduces the height-4 worked example.
func TestPositionHeight4(t *testing.T) {
	want := [][]int{
		{0},
		{1, 2},
		{3, 6, 9, 12},
		{4, 5, 7, 8, 10, 11, 13, 14},
	}
	got := positionsByDepth(4)
	for d := range want {
		if !equalInts(got[d], want[d]) {
			t.Fatalf("depth %d: got %v want %v", d, got[d], want[d])
		}
	}
}

// TestPositionIsAPermutation checks that Position maps ids 1..(1<<h)-1
// bijectively onto offsets 0..(1<<h)-2, for a handful of heights,
// since every downstream consumer relies on it being a valid array
// layout rather than merely depth-correct.
func TestPositionIsAPermutation(t *testing.T) {
	for _, h := range []int{1, 2, 3, 4, 5, 6, 7, 8} {
		n := (1 << h) - 1
		seen := make([]bool, n)
		for id := 1; id <= n; id++ {
			pos := Position(id, h)
			if pos < 0 || pos >= n {
				t.Fatalf("height %d: id %d out of range position %d", h, id, pos)
			}
			if seen[pos] {
				t.Fatalf("height %d: position %d assigned twice", h, pos)
			}
			seen[pos] = true
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
