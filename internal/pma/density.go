// Copyright (c) 2026 The cobt Authors
// SPDX-License-Identifier: MIT

package pma

// insertUpperOK reports whether count occupants in a window of size at
// tree depth depth (root = depth 0) are at or below the insert-time
// density ceiling (3H+depth)/(4H), where H is the tree height. The
// comparison is done with integer cross-multiplication so no rational
// or floating-point type is needed.
func insertUpperOK(height, depth, count, size int) bool {
	return count*(height<<2) <= size*(height*3+depth)
}

// removeLowerOK reports whether count occupants in a window of size at
// tree depth depth are at or above the remove-time density floor
// (2H-depth)/(4H).
func removeLowerOK(height, depth, count, size int) bool {
	return count*(height<<2) >= size*((height<<1)-depth)
}
