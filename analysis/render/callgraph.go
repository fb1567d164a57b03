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

package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/quietflow/taint/analysis/ids"
	"github.com/quietflow/taint/internal/graphutil"
)

// CallGraph accumulates the (caller, callee) edges a session of
// Taint.Propagate calls has exercised, so that cmd/explore can assert the
// debug invariant from spec.md §9: "Cyclic graphs: none ... the frame graph
// is a tree". A single Taint value has no caller identity of its own (it is
// always relative to one analyzed method), so the graph is built up by the
// harness one propagate call at a time, not recovered from a Taint in
// isolation.
type CallGraph struct {
	nextID int64
	ids    map[*ids.Method]int64
	labels map[int64]*ids.Method
	edges  map[int64][]int64
}

// NewCallGraph returns an empty CallGraph.
func NewCallGraph() *CallGraph {
	return &CallGraph{
		ids:    map[*ids.Method]int64{},
		labels: map[int64]*ids.Method{},
		edges:  map[int64][]int64{},
	}
}

func (g *CallGraph) idFor(m *ids.Method) int64 {
	if id, ok := g.ids[m]; ok {
		return id
	}
	id := g.nextID
	g.nextID++
	g.ids[m] = id
	g.labels[id] = m
	return id
}

// AddEdge records that caller's analysis propagated a frame into callee.
func (g *CallGraph) AddEdge(caller, callee *ids.Method) {
	cid := g.idFor(caller)
	kid := g.idFor(callee)
	g.edges[cid] = append(g.edges[cid], kid)
}

// RecursiveClusters returns every strongly connected component among the
// recorded edges that contains a cycle: every SCC of size >= 2, plus any
// single method with an edge to itself. Each is rendered as a method list
// (arbitrary order within a cluster, toposorted cluster-to-cluster per
// graphutil.StronglyConnectedComponents). A single-node SCC without a
// self-loop is acyclic, so those are skipped.
func (g *CallGraph) RecursiveClusters() [][]*ids.Method {
	nodes := make([]int64, 0, len(g.labels))
	for id := range g.labels {
		nodes = append(nodes, id)
	}
	sccs := graphutil.StronglyConnectedComponents(nodes, func(v int64) []int64 { return g.edges[v] })

	var out [][]*ids.Method
	for _, scc := range sccs {
		if len(scc) < 2 {
			selfLoop := false
			for _, w := range g.edges[scc[0]] {
				selfLoop = selfLoop || w == scc[0]
			}
			if !selfLoop {
				continue
			}
		}
		cluster := make([]*ids.Method, 0, len(scc))
		for _, id := range scc {
			cluster = append(cluster, g.labels[id])
		}
		out = append(out, cluster)
	}
	return out
}

// CheckAcyclic reports every elementary cycle found among the recorded
// edges, each rendered as a chain of method signatures. A nil/empty result
// means the recorded call graph is acyclic. RecursiveClusters is consulted
// first: Johnson's algorithm (FindAllElementaryCycles) only runs over the
// recursive clusters it finds, instead of the whole graph, since any region
// outside a recursive cluster cannot contain a cycle.
func (g *CallGraph) CheckAcyclic() [][]*ids.Method {
	clusters := g.RecursiveClusters()
	if len(clusters) == 0 {
		return nil
	}

	keep := map[int64]bool{}
	for _, cluster := range clusters {
		for _, m := range cluster {
			keep[g.ids[m]] = true
		}
	}
	pruned := make(map[int64][]int64, len(keep))
	for v := range keep {
		for _, w := range g.edges[v] {
			if keep[w] {
				pruned[v] = append(pruned[v], w)
			}
		}
	}

	graph := graphutil.NewGraph(pruned)
	cycles := graphutil.FindAllElementaryCycles(graph)
	out := make([][]*ids.Method, 0, len(cycles))
	for _, cycle := range cycles {
		chain := make([]*ids.Method, 0, len(cycle))
		for _, id := range cycle {
			chain = append(chain, g.labels[id])
		}
		out = append(out, chain)
	}
	return out
}

// FormatCycle renders a cycle chain as "A -> B -> C -> A".
func FormatCycle(chain []*ids.Method) string {
	names := make([]string, 0, len(chain))
	for _, m := range chain {
		names = append(names, m.Signature())
	}
	return strings.Join(names, " -> ")
}

// String renders the recorded edges sorted by caller signature, for
// debugging.
func (g *CallGraph) String() string {
	var callers []*ids.Method
	for m := range g.ids {
		callers = append(callers, m)
	}
	sort.Slice(callers, func(i, j int) bool { return callers[i].Signature() < callers[j].Signature() })

	var b strings.Builder
	for _, caller := range callers {
		id := g.ids[caller]
		for _, kid := range g.edges[id] {
			fmt.Fprintf(&b, "%s -> %s\n", caller.Signature(), g.labels[kid].Signature())
		}
	}
	return b.String()
}
