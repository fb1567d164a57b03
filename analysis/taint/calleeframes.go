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

package taint

import (
	"fmt"

	"github.com/quietflow/taint/analysis/ids"
)

// CalleeFrames maps call_position -> CallPositionFrames, all sharing one
// callee (§4.5).
type CalleeFrames struct {
	callee     *ids.Method // nil iff bottom
	byPosition map[*ids.Position]CallPositionFrames
}

func NewCalleeFrames(frames ...Frame) CalleeFrames {
	var out CalleeFrames
	for _, f := range frames {
		out = out.Add(f)
	}
	return out
}

func (cf CalleeFrames) IsBottom() bool { return cf.byPosition == nil }

// Callee returns the shared callee, or nil if bottom.
func (cf CalleeFrames) Callee() *ids.Method { return cf.callee }

// Add inserts f, adopting f.callee as the shared callee on first insertion
// and asserting equality thereafter.
func (cf CalleeFrames) Add(f Frame) CalleeFrames {
	if cf.IsBottom() {
		cf = CalleeFrames{callee: f.callee, byPosition: map[*ids.Position]CallPositionFrames{}}
	} else if cf.callee != f.callee {
		panic(fmt.Sprintf("taint: CalleeFrames.Add callee mismatch: %v != %v", cf.callee, f.callee))
	}
	out := cf.clone()
	out.byPosition[f.callPosition] = out.byPosition[f.callPosition].Add(f)
	return out
}

func (cf CalleeFrames) clone() CalleeFrames {
	out := CalleeFrames{callee: cf.callee, byPosition: make(map[*ids.Position]CallPositionFrames, len(cf.byPosition)+1)}
	for k, v := range cf.byPosition {
		out.byPosition[k] = v
	}
	return out
}

// ForEachPosition calls visit once per (call_position, CallPositionFrames).
func (cf CalleeFrames) ForEachPosition(visit func(*ids.Position, CallPositionFrames)) {
	for p, cp := range cf.byPosition {
		visit(p, cp)
	}
}

// ForEachFrame calls visit once per contained frame, across all positions
// and kinds.
func (cf CalleeFrames) ForEachFrame(visit func(Frame)) {
	for _, cp := range cf.byPosition {
		cp.ForEachFrame(visit)
	}
}

// ContainsKind reports whether any frame of kind k is present at any
// position.
func (cf CalleeFrames) ContainsKind(k *ids.Kind) bool {
	for _, cp := range cf.byPosition {
		if cp.ContainsKind(k) {
			return true
		}
	}
	return false
}

func (cf CalleeFrames) Leq(other CalleeFrames) bool {
	if cf.IsBottom() {
		return true
	}
	if other.IsBottom() {
		return false
	}
	for p, cp := range cf.byPosition {
		if !cp.Leq(other.byPosition[p]) {
			return false
		}
	}
	return true
}

func (cf CalleeFrames) Equal(other CalleeFrames) bool {
	return cf.Leq(other) && other.Leq(cf)
}

func (cf CalleeFrames) JoinWith(other CalleeFrames) CalleeFrames {
	if cf.IsBottom() {
		return other
	}
	if other.IsBottom() {
		return cf
	}
	out := cf.clone()
	for p, ocp := range other.byPosition {
		out.byPosition[p] = out.byPosition[p].JoinWith(ocp)
	}
	return out
}

func (cf CalleeFrames) WidenWith(other CalleeFrames) CalleeFrames {
	return cf.JoinWith(other)
}

func (cf CalleeFrames) MeetWith(other CalleeFrames) CalleeFrames {
	if cf.IsBottom() || other.IsBottom() {
		return CalleeFrames{}
	}
	out := CalleeFrames{callee: cf.callee, byPosition: map[*ids.Position]CallPositionFrames{}}
	for p, cp := range cf.byPosition {
		if ocp, ok := other.byPosition[p]; ok {
			m := cp.MeetWith(ocp)
			if !m.IsBottom() {
				out.byPosition[p] = m
			}
		}
	}
	return out
}

func (cf CalleeFrames) NarrowWith(other CalleeFrames) CalleeFrames {
	return cf.MeetWith(other)
}

func (cf CalleeFrames) DifferenceWith(other CalleeFrames) CalleeFrames {
	if cf.IsBottom() || other.IsBottom() {
		return cf
	}
	out := CalleeFrames{callee: cf.callee, byPosition: map[*ids.Position]CallPositionFrames{}}
	for p, cp := range cf.byPosition {
		d := cp.DifferenceWith(other.byPosition[p])
		if !d.IsBottom() {
			out.byPosition[p] = d
		}
	}
	if len(out.byPosition) == 0 {
		return CalleeFrames{}
	}
	return out
}

// Map applies f to every contained frame and rebuilds structure.
func (cf CalleeFrames) Map(f func(Frame) Frame) CalleeFrames {
	if cf.IsBottom() {
		return cf
	}
	var out CalleeFrames
	cf.ForEachFrame(func(frame Frame) { out = out.Add(f(frame)) })
	return out
}

// AppendCalleePort delegates to every contained CallPositionFrames.
func (cf CalleeFrames) AppendCalleePort(ctx *ids.Context, e string, filter func(*ids.Kind) bool) CalleeFrames {
	if cf.IsBottom() {
		return cf
	}
	var out CalleeFrames
	for _, cp := range cf.byPosition {
		cp = cp.AppendCalleePort(ctx, e, filter)
		cp.ForEachFrame(func(f Frame) { out = out.Add(f) })
	}
	return out
}

// FilterInvalidFrames delegates to every contained CallPositionFrames.
func (cf CalleeFrames) FilterInvalidFrames(isValid func(callee *ids.Method, calleePort *ids.AccessPath, kind *ids.Kind) bool) CalleeFrames {
	if cf.IsBottom() {
		return cf
	}
	var out CalleeFrames
	for _, cp := range cf.byPosition {
		cp = cp.FilterInvalidFrames(isValid)
		cp.ForEachFrame(func(f Frame) { out = out.Add(f) })
	}
	return out
}

// TransformKindWithFeatures delegates pointwise to every contained
// CallPositionFrames.
func (cf CalleeFrames) TransformKindWithFeatures(mapKind func(*ids.Kind) []*ids.Kind, addFeatures func(*ids.Kind) FeatureSet) CalleeFrames {
	if cf.IsBottom() {
		return cf
	}
	var out CalleeFrames
	for _, cp := range cf.byPosition {
		cp = cp.TransformKindWithFeatures(mapKind, addFeatures)
		cp.ForEachFrame(func(f Frame) { out = out.Add(f) })
	}
	return out
}

// PartitionByKind iterates contained frames and returns a mapping from each
// T produced by mapKind to a Taint rebuilt from scratch out of the frames
// that mapped there (§4.5).
func PartitionByKind[T comparable](cf CalleeFrames, mapKind func(*ids.Kind) T) map[T]Taint {
	out := map[T]Taint{}
	cf.ForEachFrame(func(f Frame) {
		key := mapKind(f.kind)
		out[key] = out[key].Add(f)
	})
	return out
}

// Propagate folds Propagate over every contained CallPositionFrames (each
// at its own original call position) into one CallPositionFrames at the new
// call site, joining the results (§4.6: "folds each CalleeFrames.propagate
// result").
func (cf CalleeFrames) Propagate(
	callee *ids.Method,
	calleePort *ids.AccessPath,
	callPosition *ids.Position,
	maxDist int,
	ctx *ids.Context,
	srcRegisterTypes RegisterTypeVector,
	srcConstants ConstantArgumentVector,
	reporter Reporter,
) CallPositionFrames {
	if cf.IsBottom() {
		return CallPositionFrames{}
	}
	var out CallPositionFrames
	for _, cp := range cf.byPosition {
		out = out.JoinWith(cp.Propagate(callee, calleePort, callPosition, maxDist, ctx, srcRegisterTypes, srcConstants, reporter))
	}
	return out
}
