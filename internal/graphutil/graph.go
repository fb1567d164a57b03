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

// Package graphutil holds small generic directed-graph algorithms used to
// sanity-check that a recorded trace of propagate calls never closes a cycle
// (spec.md §9, "Cyclic graphs: none. ... the frame graph is a tree").
package graphutil

import "sort"

// CGraph is a directed graph over int64 node ids, built to satisfy
// github.com/yourbasic/graph's Iterator interface so it can be handed to
// graph.StrongComponents and to FindAllElementaryCycles below.
type CGraph struct {
	order int

	// Keys are all the node ids in the graph.
	Keys []int64

	// Edges is an adjacency set: Edges[x][y] means there is a directed edge
	// from x to y.
	Edges map[int64]map[int64]bool
}

// NewGraph builds a CGraph from an adjacency list.
func NewGraph(adjacency map[int64][]int64) CGraph {
	edges := make(map[int64]map[int64]bool, len(adjacency))
	keys := make([]int64, 0, len(adjacency))
	for from, tos := range adjacency {
		keys = append(keys, from)
		m := make(map[int64]bool, len(tos))
		for _, to := range tos {
			m[to] = true
		}
		edges[from] = m
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return CGraph{order: len(keys), Keys: keys, Edges: edges}
}

// Subgraph returns the graph restricted to the nodes in include; only edges
// with both endpoints in include are kept.
func Subgraph(original CGraph, include []int64) CGraph {
	present := make(map[int64]bool, len(include))
	for _, k := range include {
		present[k] = true
	}
	edges := make(map[int64]map[int64]bool, len(include))
	for _, k := range include {
		m := make(map[int64]bool)
		for to := range original.Edges[k] {
			if present[to] {
				m[to] = true
			}
		}
		edges[k] = m
	}
	keys := make([]int64, len(include))
	copy(keys, include)
	return CGraph{order: original.order, Keys: keys, Edges: edges}
}

// Order implements graph.Iterator.
func (c CGraph) Order() int { return c.order }

// Visit implements graph.Iterator.
func (c CGraph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	for w := range c.Edges[int64(v)] {
		if do(int(w), 1) {
			return true
		}
	}
	return false
}
