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

package render_test

import (
	"strings"
	"testing"

	"github.com/quietflow/taint/analysis/ids"
	"github.com/quietflow/taint/analysis/render"
	"github.com/quietflow/taint/analysis/taint"
)

func newTestContext() *ids.Context {
	return ids.NewContext()
}

func TestWriteDOTContainsKindClusterAndEdge(t *testing.T) {
	ctx := newTestContext()
	k := ctx.Kinds.Intern("Source")
	m1 := ctx.Methods.Intern("M1")
	m2 := ctx.Methods.Intern("M2")
	declPort := ctx.AccessPaths.Intern(ids.Return, nil)
	argPort := ctx.AccessPaths.Intern(ids.Argument(0), nil)
	posL := ctx.Positions.Intern(10, 0, 0)

	var input taint.Taint
	input = input.Add(taint.NewLeafFrame(k, declPort, m1))

	tt := input.Propagate(m2, argPort, posL, 25, taint.FeatureSet{}, ctx, nil, nil, taint.DiscardReporter())

	var b strings.Builder
	if err := render.WriteDOT(tt, &b); err != nil {
		t.Fatalf("WriteDOT() error = %v", err)
	}
	out := b.String()
	if !strings.HasPrefix(out, "digraph taint {") {
		t.Errorf("output does not start with digraph header: %q", out)
	}
	if !strings.Contains(out, "Source") {
		t.Errorf("output does not mention kind name: %q", out)
	}
	if !strings.Contains(out, m2.String()) {
		t.Errorf("output does not mention callee: %q", out)
	}
}

func TestDistanceStatsByKind(t *testing.T) {
	ctx := newTestContext()
	k := ctx.Kinds.Intern("Source")
	m1 := ctx.Methods.Intern("M1")
	port := ctx.AccessPaths.Intern(ids.Return, nil)

	var tt taint.Taint
	tt = tt.Add(taint.NewLeafFrame(k, port, m1))
	tt = tt.Add(taint.NewLeafFrame(k, ctx.AccessPaths.Append(port, "y"), m1))

	stats := render.DistanceStatsByKind(tt)
	if len(stats) != 1 {
		t.Fatalf("len(stats) = %d, want 1", len(stats))
	}
	if stats[0].Kind != "Source" {
		t.Errorf("Kind = %s, want Source", stats[0].Kind)
	}
	if stats[0].Count != 2 {
		t.Errorf("Count = %d, want 2", stats[0].Count)
	}
}

func TestCallGraphCheckAcyclicDetectsCycle(t *testing.T) {
	ctx := newTestContext()
	m1 := ctx.Methods.Intern("M1")
	m2 := ctx.Methods.Intern("M2")
	m3 := ctx.Methods.Intern("M3")

	g := render.NewCallGraph()
	g.AddEdge(m1, m2)
	g.AddEdge(m2, m3)
	if cycles := g.CheckAcyclic(); len(cycles) != 0 {
		t.Fatalf("CheckAcyclic() = %v, want none for a tree", cycles)
	}

	g.AddEdge(m3, m1)
	cycles := g.CheckAcyclic()
	if len(cycles) == 0 {
		t.Fatal("CheckAcyclic() found no cycle after closing one")
	}
}

func TestCallGraphRecursiveClusters(t *testing.T) {
	ctx := newTestContext()
	m1 := ctx.Methods.Intern("M1")
	m2 := ctx.Methods.Intern("M2")
	m3 := ctx.Methods.Intern("M3")

	g := render.NewCallGraph()
	g.AddEdge(m1, m2)
	if clusters := g.RecursiveClusters(); len(clusters) != 0 {
		t.Fatalf("RecursiveClusters() = %v, want none for a tree", clusters)
	}

	g.AddEdge(m2, m3)
	g.AddEdge(m3, m2)
	clusters := g.RecursiveClusters()
	if len(clusters) != 1 || len(clusters[0]) != 2 {
		t.Fatalf("RecursiveClusters() = %v, want one 2-method cluster", clusters)
	}
}
