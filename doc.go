// Copyright (c) 2026 The cobt Authors
// SPDX-License-Identifier: MIT

// Package cobt implements an ordered map backed by a packed memory
// array and indexed through a van Emde Boas-laid-out tree, after the
// cache-oblivious B-tree construction of Bender, Demaine and
// Farach-Colton. Lookups, insertions and removals touch a number of
// cache lines that does not depend on any particular machine's cache
// line size or cache hierarchy depth.
//
// The container is not safe for concurrent use; callers that share a
// Map across goroutines must serialize access themselves.
package cobt
