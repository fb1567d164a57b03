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
	"github.com/quietflow/taint/internal/setutil"
)

// CallPositionFrames indexes Frames by kind, all sharing one call position
// (§4.3). Invariant A: every contained frame's call_position equals the
// cached one, or the container is bottom.
type CallPositionFrames struct {
	callPosition *ids.Position // nil iff bottom
	byKind       map[*ids.Kind]Frames
}

// NewCallPositionFrames builds a CallPositionFrames from zero or more
// frames, which must all share a call position.
func NewCallPositionFrames(frames ...Frame) CallPositionFrames {
	var out CallPositionFrames
	for _, f := range frames {
		out = out.Add(f)
	}
	return out
}

func (cp CallPositionFrames) IsBottom() bool {
	return cp.byKind == nil
}

// CallPosition returns the shared call position, or nil if bottom.
func (cp CallPositionFrames) CallPosition() *ids.Position { return cp.callPosition }

// Add inserts f. The first insertion adopts f's call position; subsequent
// ones assert equality (§4.3, "insertion of the first frame adopts its
// call_position; subsequent adds assert equality").
func (cp CallPositionFrames) Add(f Frame) CallPositionFrames {
	if cp.IsBottom() {
		cp = CallPositionFrames{callPosition: f.callPosition, byKind: map[*ids.Kind]Frames{}}
	} else if cp.callPosition != f.callPosition {
		panic(fmt.Sprintf("taint: CallPositionFrames.Add call_position mismatch: %v != %v", cp.callPosition, f.callPosition))
	}
	out := cp.clone()
	out.byKind[f.kind] = out.byKind[f.kind].Add(f)
	return out
}

func (cp CallPositionFrames) clone() CallPositionFrames {
	out := CallPositionFrames{callPosition: cp.callPosition, byKind: make(map[*ids.Kind]Frames, len(cp.byKind)+1)}
	for k, v := range cp.byKind {
		out.byKind[k] = v
	}
	return out
}

// ContainsKind reports whether any frame of kind k is present.
func (cp CallPositionFrames) ContainsKind(k *ids.Kind) bool {
	fr, ok := cp.byKind[k]
	return ok && !fr.IsBottom()
}

// ForEachKind calls visit once per (kind, Frames) bucket.
func (cp CallPositionFrames) ForEachKind(visit func(*ids.Kind, Frames)) {
	for k, fr := range cp.byKind {
		visit(k, fr)
	}
}

// ForEachFrame calls visit once per contained frame, across all kinds.
func (cp CallPositionFrames) ForEachFrame(visit func(Frame)) {
	for _, fr := range cp.byKind {
		fr.ForEach(visit)
	}
}

// LocalPositions returns the join of every contained frame's local position
// set.
func (cp CallPositionFrames) LocalPositions() setutil.Set[*ids.Position] {
	var acc setutil.Set[*ids.Position]
	cp.ForEachFrame(func(f Frame) {
		acc = acc.Union(f.localPositions)
	})
	return acc
}

// Map applies f to every contained frame and rebuilds the kind-indexed map
// (a transform could in principle change a frame's kind; §4.3 notes this
// usage never does).
func (cp CallPositionFrames) Map(f func(Frame) Frame) CallPositionFrames {
	if cp.IsBottom() {
		return cp
	}
	var out CallPositionFrames
	cp.ForEachFrame(func(frame Frame) {
		out = out.Add(f(frame))
	})
	return out
}

// AddInferredFeatures adds fs to every contained frame.
func (cp CallPositionFrames) AddInferredFeatures(fs FeatureSet) CallPositionFrames {
	return cp.Map(func(f Frame) Frame { return f.AddInferredFeatures(fs) })
}

// AddLocalPosition adds p to every contained frame.
func (cp CallPositionFrames) AddLocalPosition(p *ids.Position) CallPositionFrames {
	return cp.Map(func(f Frame) Frame { return f.AddLocalPosition(p) })
}

// SetLocalPositions replaces the local position set of every contained
// frame.
func (cp CallPositionFrames) SetLocalPositions(s setutil.Set[*ids.Position]) CallPositionFrames {
	return cp.Map(func(f Frame) Frame { return f.SetLocalPositions(s) })
}

// AddInferredFeaturesAndLocalPosition applies both mutators uniformly.
func (cp CallPositionFrames) AddInferredFeaturesAndLocalPosition(fs FeatureSet, p *ids.Position) CallPositionFrames {
	return cp.Map(func(f Frame) Frame { return f.AddInferredFeatures(fs).AddLocalPosition(p) })
}

// AppendCalleePort appends e to the callee port of every frame whose kind
// satisfies filter (§4.3: "rebuild the map; for each kind where filter(kind)
// ... append the path element to every frame's callee port").
func (cp CallPositionFrames) AppendCalleePort(ctx *ids.Context, e string, filter func(*ids.Kind) bool) CallPositionFrames {
	if cp.IsBottom() {
		return cp
	}
	var out CallPositionFrames
	for k, fr := range cp.byKind {
		if filter(k) {
			fr = fr.AppendCalleePort(ctx, e)
		}
		fr.ForEach(func(f Frame) { out = out.Add(f) })
	}
	return out
}

// FilterInvalidFrames drops every frame for which isValid returns false,
// and drops the bucket for any kind left empty.
func (cp CallPositionFrames) FilterInvalidFrames(isValid func(callee *ids.Method, calleePort *ids.AccessPath, kind *ids.Kind) bool) CallPositionFrames {
	if cp.IsBottom() {
		return cp
	}
	var out CallPositionFrames
	for _, fr := range cp.byKind {
		fr = fr.FilterInvalidFrames(isValid)
		fr.ForEach(func(f Frame) { out = out.Add(f) })
	}
	return out
}

// TransformKindWithFeatures implements §4.4: for each (old_kind, frames), the
// new kinds mapKind produces each get a fresh bucket built from every input
// frame re-kinded and tagged with addFeatures(new_kind), joined into the
// output.
func (cp CallPositionFrames) TransformKindWithFeatures(mapKind func(*ids.Kind) []*ids.Kind, addFeatures func(*ids.Kind) FeatureSet) CallPositionFrames {
	if cp.IsBottom() {
		return cp
	}
	var out CallPositionFrames
	for oldKind, fr := range cp.byKind {
		newKinds := mapKind(oldKind)
		if len(newKinds) == 0 {
			continue
		}
		if len(newKinds) == 1 && newKinds[0] == oldKind {
			fr.ForEach(func(f Frame) { out = out.Add(f) })
			continue
		}
		for _, nk := range newKinds {
			feats := addFeatures(nk)
			fr.ForEach(func(f Frame) {
				rekinded := f.WithKind(nk).AddLocallyInferredFeatures(feats)
				out = out.Add(rekinded)
			})
		}
	}
	return out
}

// Leq, Equal, JoinWith, WidenWith, MeetWith, NarrowWith and DifferenceWith
// all delegate pointwise by kind (§4.3).

func (cp CallPositionFrames) Leq(other CallPositionFrames) bool {
	if cp.IsBottom() {
		return true
	}
	if other.IsBottom() {
		return false
	}
	for k, fr := range cp.byKind {
		if !fr.Leq(other.byKind[k]) {
			return false
		}
	}
	return true
}

func (cp CallPositionFrames) Equal(other CallPositionFrames) bool {
	return cp.Leq(other) && other.Leq(cp)
}

func (cp CallPositionFrames) JoinWith(other CallPositionFrames) CallPositionFrames {
	if cp.IsBottom() {
		return other
	}
	if other.IsBottom() {
		return cp
	}
	out := cp.clone()
	for k, ofr := range other.byKind {
		out.byKind[k] = out.byKind[k].JoinWith(ofr)
	}
	return out
}

func (cp CallPositionFrames) WidenWith(other CallPositionFrames) CallPositionFrames {
	return cp.JoinWith(other)
}

func (cp CallPositionFrames) MeetWith(other CallPositionFrames) CallPositionFrames {
	if cp.IsBottom() || other.IsBottom() {
		return CallPositionFrames{}
	}
	out := CallPositionFrames{callPosition: cp.callPosition, byKind: map[*ids.Kind]Frames{}}
	for k, fr := range cp.byKind {
		if ofr, ok := other.byKind[k]; ok {
			m := fr.MeetWith(ofr)
			if !m.IsBottom() {
				out.byKind[k] = m
			}
		}
	}
	return out
}

func (cp CallPositionFrames) NarrowWith(other CallPositionFrames) CallPositionFrames {
	return cp.MeetWith(other)
}

func (cp CallPositionFrames) DifferenceWith(other CallPositionFrames) CallPositionFrames {
	if cp.IsBottom() || other.IsBottom() {
		return cp
	}
	out := CallPositionFrames{callPosition: cp.callPosition, byKind: map[*ids.Kind]Frames{}}
	for k, fr := range cp.byKind {
		d := fr.DifferenceWith(other.byKind[k])
		if !d.IsBottom() {
			out.byKind[k] = d
		}
	}
	if len(out.byKind) == 0 {
		return CallPositionFrames{}
	}
	return out
}

// Propagate implements §4.3's "Propagation from this level": it partitions
// contained frames by kind, collapses each kind's non-CRTEX frames into one
// successor via propagateFrames, propagates each CRTEX frame independently
// via propagateCrtexFrame, and joins the CRTEX and non-CRTEX successors per
// kind into a new CallPositionFrames.
func (cp CallPositionFrames) Propagate(
	callee *ids.Method,
	calleePort *ids.AccessPath,
	callPosition *ids.Position,
	maxDist int,
	ctx *ids.Context,
	srcRegisterTypes RegisterTypeVector,
	srcConstants ConstantArgumentVector,
	reporter Reporter,
) CallPositionFrames {
	if cp.IsBottom() {
		return CallPositionFrames{}
	}
	var out CallPositionFrames
	for _, fr := range cp.byKind {
		var nonCrtex, crtex []Frame
		fr.ForEach(func(f Frame) {
			if f.IsCrtexProducerDeclaration() {
				crtex = append(crtex, f)
			} else {
				nonCrtex = append(nonCrtex, f)
			}
		})

		if len(nonCrtex) > 0 {
			successor, _, ok := propagateFrames(nonCrtex, calleePort, callee, callPosition, maxDist, ctx, srcRegisterTypes, srcConstants, reporter)
			if ok {
				out = out.Add(successor)
			}
		}

		for _, f := range crtex {
			if successor, ok := propagateCrtexFrame(f, callee, callPosition, maxDist, ctx, srcRegisterTypes, reporter); ok {
				out = out.Add(successor)
			}
		}
	}
	return out
}

func (cp CallPositionFrames) String() string {
	s := ""
	for k, fr := range cp.byKind {
		if s != "" {
			s += ", "
		}
		s += fmt.Sprintf("FrameByKind(kind=%v, frames=%v)", k, fr)
	}
	return "[" + s + "]"
}
