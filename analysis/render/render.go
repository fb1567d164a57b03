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
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/quietflow/taint/analysis/taint"
)

// WriteDOT writes t as a Graphviz digraph to w: one cluster per kind, one
// node per frame in that cluster, and an edge from a frame to its callee's
// node (labelled by the callee port) when the frame is not a leaf.
//
// This mirrors the shape of the teacher's callgraph renderer (one edge per
// call site, nodes keyed by a stable string) applied to frames instead of
// ssa functions.
func WriteDOT(t taint.Taint, w io.Writer) error {
	if _, err := io.WriteString(w, "digraph taint {\n"); err != nil {
		return fmt.Errorf("render: write header: %w", err)
	}

	byKind := map[string][]taint.Frame{}
	var kinds []string
	t.ForEachFrame(func(f taint.Frame) {
		k := f.Kind().Name()
		if _, ok := byKind[k]; !ok {
			kinds = append(kinds, k)
		}
		byKind[k] = append(byKind[k], f)
	})
	sort.Strings(kinds)

	for ci, k := range kinds {
		frames := byKind[k]
		sort.Slice(frames, func(i, j int) bool {
			return frames[i].String() < frames[j].String()
		})
		fmt.Fprintf(w, "  subgraph cluster_%d {\n    label=%q;\n", ci, k)
		for fi, f := range frames {
			node := frameNodeID(k, fi)
			fmt.Fprintf(w, "    %q [label=%q];\n", node, frameLabel(f))
			if f.Callee() != nil {
				fmt.Fprintf(w, "    %q -> %q [label=%q];\n", node, f.Callee().String(), f.CalleePort().String())
			}
		}
		if _, err := io.WriteString(w, "  }\n"); err != nil {
			return fmt.Errorf("render: write cluster: %w", err)
		}
	}

	_, err := io.WriteString(w, "}\n")
	if err != nil {
		return fmt.Errorf("render: write footer: %w", err)
	}
	return nil
}

// WriteDOTToFile is the file-backed convenience wrapper around WriteDOT,
// grounded on the teacher's GraphvizToFile.
func WriteDOTToFile(t taint.Taint, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("render: could not create file: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()
	return WriteDOT(t, w)
}

func frameNodeID(kind string, index int) string {
	return fmt.Sprintf("%s#%d", kind, index)
}

func frameLabel(f taint.Frame) string {
	return fmt.Sprintf("dist=%d port=%s", f.Distance(), f.CalleePort().String())
}
