// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package setutil provides the generic set types the lattice and interning
// packages build on (Set, MaySet, Optional), plus a few general map/slice
// helpers: merging two map-represented sets with a caller-supplied join for
// colliding keys (Merge, Union), slice queries (Exists, Contains), and
// sorted key listing (SortedKeys).
package setutil

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Merge merges b into a in place: if a key is in b but not a, a gets b's value;
// if a key is in both, a's value becomes both(a[key], b[key]).
//
// @mutates a
func Merge[T comparable, S any](a map[T]S, b map[T]S, both func(x, y S) S) {
	for k, vb := range b {
		if va, ok := a[k]; ok {
			a[k] = both(va, vb)
		} else {
			a[k] = vb
		}
	}
}

// Union returns the union of the map-represented sets a and b, mutating a.
//
// @mutates a
func Union[T comparable](a, b map[T]bool) map[T]bool {
	Merge(a, b, func(x, y bool) bool { return x || y })
	return a
}

// Exists returns true if some x in a satisfies f.
func Exists[T any](a []T, f func(T) bool) bool {
	for _, x := range a {
		if f(x) {
			return true
		}
	}
	return false
}

// Contains returns true if x is present in a.
func Contains[T comparable](a []T, x T) bool {
	return Exists(a, func(y T) bool { return x == y })
}

// SortedKeys returns the keys of a map-represented set whose value is true, in
// ascending order, so that a listing built from it does not depend on Go map
// iteration order.
func SortedKeys[T constraints.Ordered](set map[T]bool) []T {
	var keys []T
	for k, present := range set {
		if present {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
