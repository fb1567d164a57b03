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
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/quietflow/taint/analysis/taint"
)

// DistanceStats is a descriptive summary of the propagation distance of
// every frame of one kind contained in a Taint value.
type DistanceStats struct {
	Kind   string
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// DistanceStatsByKind computes DistanceStats for every kind present in t,
// sorted by kind name. It is the render-package analogue of the teacher's
// cmd/statistics, applied to propagation distance instead of SSA block
// counts.
func DistanceStatsByKind(t taint.Taint) []DistanceStats {
	byKind := map[string][]float64{}
	var kinds []string
	t.ForEachFrame(func(f taint.Frame) {
		k := f.Kind().Name()
		if _, ok := byKind[k]; !ok {
			kinds = append(kinds, k)
		}
		byKind[k] = append(byKind[k], float64(f.Distance()))
	})
	sort.Strings(kinds)

	out := make([]DistanceStats, 0, len(kinds))
	for _, k := range kinds {
		distances := byKind[k]
		sort.Float64s(distances)
		mean, stddev := stat.MeanStdDev(distances, nil)
		out = append(out, DistanceStats{
			Kind:   k,
			Count:  len(distances),
			Min:    distances[0],
			Max:    distances[len(distances)-1],
			Mean:   mean,
			StdDev: stddev,
		})
	}
	return out
}
