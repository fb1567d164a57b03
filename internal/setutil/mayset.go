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

package setutil

// MaySet is the may/always feature-set combinator: a pair (May, Always)
// with Always ⊆ May. Join unions May and intersects Always. It is a value
// type; every operation returns a new MaySet.
type MaySet[T comparable] struct {
	May    Set[T]
	Always Set[T]
}

// Add performs a plain add: x joins May only.
func (m MaySet[T]) Add(x T) MaySet[T] {
	return MaySet[T]{May: m.May.With(x), Always: m.Always}
}

// AddAlways adds x to both May and Always.
func (m MaySet[T]) AddAlways(x T) MaySet[T] {
	return MaySet[T]{May: m.May.With(x), Always: m.Always.With(x)}
}

// Join combines two MaySets: May = May₁∪May₂, Always = Always₁∩Always₂.
// A bottom operand (neither May nor Always has anything in it) is treated
// as identity rather than intersected in, so x ⊔ ⊥ = x.
func (m MaySet[T]) Join(other MaySet[T]) MaySet[T] {
	if m.IsBottom() {
		return other
	}
	if other.IsBottom() {
		return m
	}
	return MaySet[T]{
		May:    m.May.Union(other.May),
		Always: m.Always.Intersect(other.Always),
	}
}

// IsBottom reports whether both May and Always are empty.
func (m MaySet[T]) IsBottom() bool {
	return m.May.IsEmpty() && m.Always.IsEmpty()
}

// Leq reports whether m is less than or equal to other in the may/always
// lattice: every element other requires as Always is also required by m's
// Always, and every element m allows in May is allowed by other's May. A
// bottom m is Leq every MaySet, matching Join's treatment of bottom as
// identity.
func (m MaySet[T]) Leq(other MaySet[T]) bool {
	if m.IsBottom() {
		return true
	}
	return m.May.IsSubsetOf(other.May) && other.Always.IsSubsetOf(m.Always)
}

// Equal reports whether m and other have identical May and Always sets.
func (m MaySet[T]) Equal(other MaySet[T]) bool {
	return m.May.Equal(other.May) && m.Always.Equal(other.Always)
}
