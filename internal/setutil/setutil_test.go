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

import (
	"reflect"
	"testing"
)

func TestMerge(t *testing.T) {
	a := map[string]int{"x": 1, "y": 2}
	b := map[string]int{"y": 10, "z": 3}
	Merge(a, b, func(x, y int) int { return x + y })
	want := map[string]int{"x": 1, "y": 12, "z": 3}
	if !reflect.DeepEqual(a, want) {
		t.Errorf("Merge() = %v, want %v", a, want)
	}
}

func TestUnion(t *testing.T) {
	a := map[int]bool{1: true}
	b := map[int]bool{2: true, 3: true}
	got := Union(a, b)
	want := map[int]bool{1: true, 2: true, 3: true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Union() = %v, want %v", got, want)
	}
}

func TestExistsContains(t *testing.T) {
	a := []int{1, 2, 3}
	if !Exists(a, func(x int) bool { return x == 2 }) {
		t.Error("Exists() = false, want true")
	}
	if Exists(a, func(x int) bool { return x == 9 }) {
		t.Error("Exists() = true, want false")
	}
	if !Contains(a, 3) {
		t.Error("Contains(3) = false, want true")
	}
	if Contains(a, 9) {
		t.Error("Contains(9) = true, want false")
	}
}

func TestSortedKeys(t *testing.T) {
	set := map[string]bool{"c": true, "a": true, "b": false}
	got := SortedKeys(set)
	want := []string{"a", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedKeys() = %v, want %v", got, want)
	}
}

func TestOptional(t *testing.T) {
	some := Some(42)
	if !some.IsSome() || some.Value() != 42 || some.ValueOr(0) != 42 {
		t.Errorf("Some(42) behaved unexpectedly: %+v", some)
	}
	none := None[int]()
	if none.IsSome() || none.ValueOr(7) != 7 {
		t.Errorf("None[int]() behaved unexpectedly: %+v", none)
	}
}

func TestSetOperations(t *testing.T) {
	a := NewSet(1, 2, 3)
	b := NewSet(2, 3, 4)

	if !a.Union(b).Equal(NewSet(1, 2, 3, 4)) {
		t.Errorf("Union() = %v", a.Union(b))
	}
	if !a.Intersect(b).Equal(NewSet(2, 3)) {
		t.Errorf("Intersect() = %v", a.Intersect(b))
	}
	if !a.Subtract(b).Equal(NewSet(1)) {
		t.Errorf("Subtract() = %v", a.Subtract(b))
	}
	if !NewSet(1, 2).IsSubsetOf(a) {
		t.Error("IsSubsetOf() = false, want true")
	}
	if a.IsSubsetOf(NewSet(1, 2)) {
		t.Error("IsSubsetOf() = true, want false")
	}
	if a.With(4).Len() != 4 || a.Len() != 3 {
		t.Error("With() must not mutate the receiver")
	}
	empty := NewSet[int]()
	if !empty.IsEmpty() {
		t.Error("IsEmpty() = false for an empty set")
	}
}

func TestMaySetJoinAndLeq(t *testing.T) {
	x := MaySet[string]{May: NewSet("f1"), Always: NewSet("f1")}
	y := MaySet[string]{May: NewSet("f2"), Always: NewSet("f2")}
	joined := x.Join(y)
	if !joined.May.Equal(NewSet("f1", "f2")) {
		t.Errorf("Join().May = %v", joined.May)
	}
	if !joined.Always.IsEmpty() {
		t.Errorf("Join().Always = %v, want empty (disjoint always sets intersect to empty)", joined.Always)
	}

	if !x.Leq(joined) {
		t.Error("x should be <= its join with y")
	}
	if (MaySet[string]{}).Leq(x) == false {
		t.Error("bottom should be <= x")
	}

	added := MaySet[string]{}.Add("f1")
	if !added.May.Contains("f1") || added.Always.Contains("f1") {
		t.Errorf("Add() should only touch May, got %+v", added)
	}
	idempotent := added.Add("f1")
	if !idempotent.Equal(added) {
		t.Error("Add() should be idempotent")
	}

	alwaysAdded := MaySet[string]{}.AddAlways("f1")
	if !alwaysAdded.May.Contains("f1") || !alwaysAdded.Always.Contains("f1") {
		t.Errorf("AddAlways() should touch both May and Always, got %+v", alwaysAdded)
	}
}
