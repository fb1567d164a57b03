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
	"sort"
	"strings"

	"github.com/quietflow/taint/analysis/ids"
)

// Frames is a group-hashed set of frames sharing a single kind (§4.2). The
// grouping key is (callee, callee_port, call_position, distance,
// field_callee); two frames inserted with the same key are merged by
// joining their remaining fields. The zero Frames is bottom.
type Frames struct {
	kind   *ids.Kind // unset (nil) iff bottom
	byKey  map[frameGroupKey]Frame
}

// NewFrames builds a Frames from zero or more frames, which must all share
// a kind.
func NewFrames(frames ...Frame) Frames {
	var out Frames
	for _, f := range frames {
		out = out.Add(f)
	}
	return out
}

// IsBottom reports whether the set has no frames.
func (fr Frames) IsBottom() bool {
	return fr.kind == nil
}

// Kind returns the shared kind, or nil if bottom.
func (fr Frames) Kind() *ids.Kind { return fr.kind }

// Len returns the number of distinct frames.
func (fr Frames) Len() int { return len(fr.byKey) }

// Add inserts f, merging with an existing frame of the same grouping key if
// present. It panics if fr is already populated with a different kind than
// f.kind: that is an internal invariant violation (§4 failure semantics),
// never reachable from well-formed callers since a Frames is built up one
// kind at a time.
func (fr Frames) Add(f Frame) Frames {
	if fr.IsBottom() {
		fr = Frames{kind: f.kind, byKey: map[frameGroupKey]Frame{}}
	} else if fr.kind != f.kind {
		panic(fmt.Sprintf("taint: Frames.Add kind mismatch: %v != %v", fr.kind, f.kind))
	}
	out := fr.clone()
	key := f.groupKey()
	if existing, ok := out.byKey[key]; ok {
		out.byKey[key] = joinSameGroup(existing, f)
	} else {
		out.byKey[key] = f
	}
	return out
}

// ForEach calls visit once per contained frame, in unspecified order.
func (fr Frames) ForEach(visit func(Frame)) {
	for _, f := range fr.byKey {
		visit(f)
	}
}

// Frames returns the contained frames as a slice, in unspecified order.
func (fr Frames) Frames() []Frame {
	out := make([]Frame, 0, len(fr.byKey))
	for _, f := range fr.byKey {
		out = append(out, f)
	}
	return out
}

func (fr Frames) clone() Frames {
	out := Frames{kind: fr.kind, byKey: make(map[frameGroupKey]Frame, len(fr.byKey)+1)}
	for k, v := range fr.byKey {
		out.byKey[k] = v
	}
	return out
}

// Leq reports whether fr is less than or equal to other: every frame in fr
// has a matching-key frame in other that covers it.
func (fr Frames) Leq(other Frames) bool {
	if fr.IsBottom() {
		return true
	}
	if other.IsBottom() {
		return false
	}
	for key, f := range fr.byKey {
		of, ok := other.byKey[key]
		if !ok || !leqSameGroup(f, of) {
			return false
		}
	}
	return true
}

// Equal reports mutual Leq.
func (fr Frames) Equal(other Frames) bool {
	return fr.Leq(other) && other.Leq(fr)
}

// JoinWith returns the pointwise join of fr and other.
func (fr Frames) JoinWith(other Frames) Frames {
	if fr.IsBottom() {
		return other
	}
	if other.IsBottom() {
		return fr
	}
	out := fr.clone()
	for key, of := range other.byKey {
		if f, ok := out.byKey[key]; ok {
			out.byKey[key] = joinSameGroup(f, of)
		} else {
			out.byKey[key] = of
		}
	}
	return out
}

// WidenWith is join: this domain has no unstable ascending chains beyond
// what max_dist already bounds, so widen coincides with join (the same
// simplification the teacher's own abstract domains make when no extra
// widening threshold is needed).
func (fr Frames) WidenWith(other Frames) Frames {
	return fr.JoinWith(other)
}

// MeetWith returns the pointwise meet: only grouping keys present in both
// operands survive, merged field-by-field with the same join rule used on
// insertion (meet of this domain approximates from below by intersecting
// structure, not by computing a true glb of each feature set; this mirrors
// the teacher's and the pack's treatment of meet as a best-effort
// lower-bound operation on grouped domains, not an exact infimum).
func (fr Frames) MeetWith(other Frames) Frames {
	if fr.IsBottom() || other.IsBottom() {
		return Frames{}
	}
	out := Frames{kind: fr.kind, byKey: map[frameGroupKey]Frame{}}
	for key, f := range fr.byKey {
		if of, ok := other.byKey[key]; ok {
			out.byKey[key] = joinSameGroup(f, of)
		}
	}
	return out
}

// NarrowWith is meet, for the same reason WidenWith is join.
func (fr Frames) NarrowWith(other Frames) Frames {
	return fr.MeetWith(other)
}

// DifferenceWith removes a frame only if other's matching frame covers it
// in every field; otherwise the frame is kept unchanged (§4.2).
func (fr Frames) DifferenceWith(other Frames) Frames {
	if fr.IsBottom() || other.IsBottom() {
		return fr
	}
	out := Frames{kind: fr.kind, byKey: map[frameGroupKey]Frame{}}
	for key, f := range fr.byKey {
		if of, ok := other.byKey[key]; ok && leqSameGroup(f, of) {
			continue
		}
		out.byKey[key] = f
	}
	if len(out.byKey) == 0 {
		return Frames{}
	}
	return out
}

// Map applies f to every contained frame and rebuilds the group-hashed set,
// since the transform may change any field of the grouping key. Per §4.3,
// this usage never changes a frame's kind; Map panics if the mapped frames
// do not all share one kind, since a Frames instance can only ever hold
// frames of a single kind.
func (fr Frames) Map(f func(Frame) Frame) Frames {
	if fr.IsBottom() {
		return fr
	}
	var out Frames
	for _, frame := range fr.byKey {
		out = out.Add(f(frame))
	}
	return out
}

// FilterInvalidFrames drops every frame for which isValid returns false.
// isValid receives (callee, callee_port, kind). Returns bottom if every
// frame is dropped.
func (fr Frames) FilterInvalidFrames(isValid func(callee *ids.Method, calleePort *ids.AccessPath, kind *ids.Kind) bool) Frames {
	if fr.IsBottom() {
		return fr
	}
	out := Frames{kind: fr.kind, byKey: map[frameGroupKey]Frame{}}
	for key, f := range fr.byKey {
		if isValid(f.callee, f.calleePort, f.kind) {
			out.byKey[key] = f
		}
	}
	if len(out.byKey) == 0 {
		return Frames{}
	}
	return out
}

// AppendCalleePort appends e to every frame's callee port.
func (fr Frames) AppendCalleePort(ctx *ids.Context, e string) Frames {
	return fr.Map(func(f Frame) Frame { return f.CalleePortAppend(ctx, e) })
}

// AddInferredFeatures adds fs to every contained frame's inferred features.
func (fr Frames) AddInferredFeatures(fs FeatureSet) Frames {
	return fr.Map(func(f Frame) Frame { return f.AddInferredFeatures(fs) })
}

// AddLocalPosition adds p to every contained frame.
func (fr Frames) AddLocalPosition(p *ids.Position) Frames {
	return fr.Map(func(f Frame) Frame { return f.AddLocalPosition(p) })
}

// String renders the shape "Frame(kind=..., callee_port=..., origins={...})"
// for every contained frame, sorted for determinism (§6).
func (fr Frames) String() string {
	frames := fr.Frames()
	texts := make([]string, 0, len(frames))
	for _, f := range frames {
		texts = append(texts, f.String())
	}
	sort.Strings(texts)
	return "{" + strings.Join(texts, ", ") + "}"
}
