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

package graphutil_test

import (
	"testing"

	"github.com/quietflow/taint/internal/graphutil"
)

// TestFindAllElementaryCyclesAcyclic models a small propagation trace: three
// methods, each calling the next, matching the spec's invariant that the
// frame graph a fixpoint walk induces is a tree (no cycles).
func TestFindAllElementaryCyclesAcyclic(t *testing.T) {
	g := graphutil.NewGraph(map[int64][]int64{
		1: {2},
		2: {3},
		3: {},
	})
	cycles := graphutil.FindAllElementaryCycles(g)
	if len(cycles) != 0 {
		t.Fatalf("FindAllElementaryCycles() = %v, want none", cycles)
	}
}

func TestFindAllElementaryCyclesDetectsCycle(t *testing.T) {
	g := graphutil.NewGraph(map[int64][]int64{
		1: {2},
		2: {3},
		3: {1},
	})
	cycles := graphutil.FindAllElementaryCycles(g)
	if len(cycles) == 0 {
		t.Fatal("FindAllElementaryCycles() found no cycle in a 3-cycle graph")
	}
}

func TestStronglyConnectedComponents(t *testing.T) {
	successors := map[string][]string{
		"a": {"b"},
		"b": {"a", "c"},
		"c": {},
	}
	sccs := graphutil.StronglyConnectedComponents([]string{"a", "b", "c"},
		func(n string) []string { return successors[n] })
	if len(sccs) != 2 {
		t.Fatalf("StronglyConnectedComponents() returned %d groups, want 2", len(sccs))
	}
	// "c" should appear in its own singleton group before {a, b} since
	// successors are visited leaves-first (spec-adjacent: bottom-up scheduling).
	if len(sccs[0]) != 1 || sccs[0][0] != "c" {
		t.Fatalf("first SCC = %v, want [c]", sccs[0])
	}
}
