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
	"github.com/quietflow/taint/analysis/ids"
	"github.com/quietflow/taint/internal/setutil"
)

// Taint is the top-level domain: a hashed group of CalleeFrames keyed by
// callee (§4.6). The zero Taint is bottom. Leaf frames (callee == nil) are
// grouped under the nil key, same as any other callee.
//
// Top is not representable except as a printing sentinel (§3): every
// operation on a top Taint panics.
type Taint struct {
	byCallee map[*ids.Method]CalleeFrames
	isTop    bool
}

// Top returns the distinguished top element. It exists only so the domain
// has something to print for it; every other operation on it panics.
func Top() Taint { return Taint{isTop: true} }

// IsBottom reports whether the domain holds no frames.
func (t Taint) IsBottom() bool { return !t.isTop && len(t.byCallee) == 0 }

// IsTop reports whether this is the top sentinel.
func (t Taint) IsTop() bool { return t.isTop }

func (t Taint) assertNotTop(op string) {
	if t.isTop {
		panic("taint: " + op + " called on Taint::top()")
	}
}

// Add routes f into the correct callee/position/kind bucket, creating
// buckets on demand.
func (t Taint) Add(f Frame) Taint {
	t.assertNotTop("Add")
	out := t.clone()
	out.byCallee[f.callee] = out.byCallee[f.callee].Add(f)
	return out
}

func (t Taint) clone() Taint {
	out := Taint{byCallee: make(map[*ids.Method]CalleeFrames, len(t.byCallee)+1)}
	for k, v := range t.byCallee {
		out.byCallee[k] = v
	}
	return out
}

// ForEachFrame calls visit once per contained frame, in unspecified order.
func (t Taint) ForEachFrame(visit func(Frame)) {
	t.assertNotTop("ForEachFrame")
	for _, cf := range t.byCallee {
		cf.ForEachFrame(visit)
	}
}

// ContainsKind reports whether any frame of kind k is present.
func (t Taint) ContainsKind(k *ids.Kind) bool {
	t.assertNotTop("ContainsKind")
	for _, cf := range t.byCallee {
		if cf.ContainsKind(k) {
			return true
		}
	}
	return false
}

// FeaturesJoined returns the join of every contained frame's Features().
func (t Taint) FeaturesJoined() FeatureSet {
	t.assertNotTop("FeaturesJoined")
	var out FeatureSet
	t.ForEachFrame(func(f Frame) { out = out.Join(f.Features()) })
	return out
}

func (t Taint) Leq(other Taint) bool {
	t.assertNotTop("Leq")
	other.assertNotTop("Leq")
	if t.IsBottom() {
		return true
	}
	for k, cf := range t.byCallee {
		if !cf.Leq(other.byCallee[k]) {
			return false
		}
	}
	return true
}

func (t Taint) Equal(other Taint) bool {
	return t.Leq(other) && other.Leq(t)
}

func (t Taint) JoinWith(other Taint) Taint {
	t.assertNotTop("JoinWith")
	other.assertNotTop("JoinWith")
	if t.IsBottom() {
		return other
	}
	if other.IsBottom() {
		return t
	}
	out := t.clone()
	for k, ocf := range other.byCallee {
		out.byCallee[k] = out.byCallee[k].JoinWith(ocf)
	}
	return out
}

func (t Taint) WidenWith(other Taint) Taint {
	return t.JoinWith(other)
}

func (t Taint) MeetWith(other Taint) Taint {
	t.assertNotTop("MeetWith")
	other.assertNotTop("MeetWith")
	if t.IsBottom() || other.IsBottom() {
		return Taint{}
	}
	out := Taint{byCallee: map[*ids.Method]CalleeFrames{}}
	for k, cf := range t.byCallee {
		if ocf, ok := other.byCallee[k]; ok {
			m := cf.MeetWith(ocf)
			if !m.IsBottom() {
				out.byCallee[k] = m
			}
		}
	}
	return out
}

func (t Taint) NarrowWith(other Taint) Taint {
	return t.MeetWith(other)
}

func (t Taint) DifferenceWith(other Taint) Taint {
	t.assertNotTop("DifferenceWith")
	other.assertNotTop("DifferenceWith")
	if t.IsBottom() || other.IsBottom() {
		return t
	}
	out := Taint{byCallee: map[*ids.Method]CalleeFrames{}}
	for k, cf := range t.byCallee {
		d := cf.DifferenceWith(other.byCallee[k])
		if !d.IsBottom() {
			out.byCallee[k] = d
		}
	}
	if len(out.byCallee) == 0 {
		return Taint{}
	}
	return out
}

// TransformKindWithFeatures delegates pointwise to every contained
// CalleeFrames (§4.4, §4.6).
func (t Taint) TransformKindWithFeatures(mapKind func(*ids.Kind) []*ids.Kind, addFeatures func(*ids.Kind) FeatureSet) Taint {
	t.assertNotTop("TransformKindWithFeatures")
	if t.IsBottom() {
		return t
	}
	out := Taint{byCallee: map[*ids.Method]CalleeFrames{}}
	for _, cf := range t.byCallee {
		cf = cf.TransformKindWithFeatures(mapKind, addFeatures)
		cf.ForEachFrame(func(f Frame) { out = out.Add(f) })
	}
	return out
}

// AppendCalleePort delegates pointwise.
func (t Taint) AppendCalleePort(ctx *ids.Context, e string, filter func(*ids.Kind) bool) Taint {
	t.assertNotTop("AppendCalleePort")
	if t.IsBottom() {
		return t
	}
	out := Taint{byCallee: map[*ids.Method]CalleeFrames{}}
	for _, cf := range t.byCallee {
		cf = cf.AppendCalleePort(ctx, e, filter)
		cf.ForEachFrame(func(f Frame) { out = out.Add(f) })
	}
	return out
}

// FilterInvalidFrames delegates pointwise.
func (t Taint) FilterInvalidFrames(isValid func(callee *ids.Method, calleePort *ids.AccessPath, kind *ids.Kind) bool) Taint {
	t.assertNotTop("FilterInvalidFrames")
	if t.IsBottom() {
		return t
	}
	out := Taint{byCallee: map[*ids.Method]CalleeFrames{}}
	for _, cf := range t.byCallee {
		cf = cf.FilterInvalidFrames(isValid)
		cf.ForEachFrame(func(f Frame) { out = out.Add(f) })
	}
	return out
}

// UpdateNonLeafPositions rewrites call_position and local_positions of
// every non-leaf frame (callee != nil), using the two caller-supplied
// callbacks (§4.6).
func (t Taint) UpdateNonLeafPositions(
	newCallPosition func(Frame) *ids.Position,
	newLocalPositions func(Frame) setutil.Set[*ids.Position],
) Taint {
	t.assertNotTop("UpdateNonLeafPositions")
	if t.IsBottom() {
		return t
	}
	out := Taint{byCallee: map[*ids.Method]CalleeFrames{}}
	t.ForEachFrame(func(f Frame) {
		if f.callee != nil {
			f.callPosition = newCallPosition(f)
			f.localPositions = newLocalPositions(f)
		}
		out = out.Add(f)
	})
	return out
}

// PartitionTaintByKind iterates every frame in t and returns a mapping from
// each T produced by mapKind to a Taint rebuilt from the frames that mapped
// there (§4.6).
func PartitionTaintByKind[T comparable](t Taint, mapKind func(*ids.Kind) T) map[T]Taint {
	t.assertNotTop("PartitionByKind")
	out := map[T]Taint{}
	t.ForEachFrame(func(f Frame) {
		key := mapKind(f.kind)
		out[key] = out[key].Add(f)
	})
	return out
}

// Propagate folds Propagate over every contained CalleeFrames (one per
// original callee in this Taint) into frames at the new (callee,
// callee_port, call_position), then adds extraFeatures as inferred to every
// surviving frame (§4.6).
func (t Taint) Propagate(
	callee *ids.Method,
	calleePort *ids.AccessPath,
	callPosition *ids.Position,
	maxDist int,
	extraFeatures FeatureSet,
	ctx *ids.Context,
	srcRegisterTypes RegisterTypeVector,
	srcConstants ConstantArgumentVector,
	reporter Reporter,
) Taint {
	t.assertNotTop("Propagate")
	if t.IsBottom() {
		return Taint{}
	}
	var merged CallPositionFrames
	for _, cf := range t.byCallee {
		merged = merged.JoinWith(cf.Propagate(callee, calleePort, callPosition, maxDist, ctx, srcRegisterTypes, srcConstants, reporter))
	}
	if merged.IsBottom() {
		return Taint{}
	}
	out := Taint{byCallee: map[*ids.Method]CalleeFrames{}}
	merged.ForEachFrame(func(f Frame) {
		out = out.Add(f.AddInferredFeatures(extraFeatures))
	})
	return out
}

// AttachPosition implements §4.8: produces a Taint suitable for use as a
// synthetic leaf at the given position. Only leaf frames are considered;
// each becomes a new leaf frame at distance 0, with user_features promoted
// into locally_inferred_features as always features and then cleared.
func (t Taint) AttachPosition(position *ids.Position) Taint {
	t.assertNotTop("AttachPosition")
	var out Taint
	t.ForEachFrame(func(f Frame) {
		if !f.IsLeaf() {
			return
		}
		next := f
		next.callee = nil
		next.fieldCallee = nil
		next.callPosition = position
		next.distance = 0
		if !f.userFeatures.IsEmpty() {
			next.locallyInferredFeatures = f.locallyInferredFeatures
			f.userFeatures.ForEach(func(uf *ids.Feature) {
				next.locallyInferredFeatures = next.locallyInferredFeatures.AddAlways(uf)
			})
		}
		next.userFeatures = nil
		out = out.Add(next)
	})
	return out
}
