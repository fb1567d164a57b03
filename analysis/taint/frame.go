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
	"github.com/quietflow/taint/internal/setutil"
)

// FeatureSet is the may/always feature set attached to a frame.
type FeatureSet = setutil.MaySet[*ids.Feature]

// Frame is one atomic taint fact: "taint of kind K reaches callee C at port
// P at call position L, having travelled distance hops from its origin
// methods/fields, carrying features and local positions." It is an
// immutable value; every mutating-looking method returns a new Frame.
//
// Leaf frames have Callee == nil and FieldCallee == nil.
type Frame struct {
	kind        *ids.Kind
	calleePort  *ids.AccessPath
	callee      *ids.Method // nil for a leaf frame
	fieldCallee *ids.Field  // nil unless this is a field callee
	callPosition *ids.Position // nil if not yet attached to a call site
	distance    int

	origins      setutil.Set[*ids.Method]
	fieldOrigins setutil.Set[*ids.Field]

	inferredFeatures        FeatureSet
	locallyInferredFeatures FeatureSet
	userFeatures            setutil.Set[*ids.Feature]

	viaTypeOfPorts  setutil.Set[ids.Root]
	viaValueOfPorts setutil.Set[ids.Root]

	localPositions setutil.Set[*ids.Position]
	canonicalNames setutil.Set[*ids.CanonicalName]
}

// NewLeafFrame builds a leaf frame (Callee == nil, distance == 0) for the
// given kind, port and single origin method. It is the usual starting point
// for a source or sink declaration before any propagation has occurred.
func NewLeafFrame(kind *ids.Kind, port *ids.AccessPath, origin *ids.Method) Frame {
	f := Frame{kind: kind, calleePort: port, distance: 0}
	if origin != nil {
		f.origins = setutil.NewSet(origin)
	}
	return f
}

// Kind returns the frame's taint label.
func (f Frame) Kind() *ids.Kind { return f.kind }

// CalleePort returns the access path at which taint enters or leaves the
// callee.
func (f Frame) CalleePort() *ids.AccessPath { return f.calleePort }

// Callee returns the propagated-to method, or nil for a leaf frame.
func (f Frame) Callee() *ids.Method { return f.callee }

// FieldCallee returns the propagated-to field, or nil.
func (f Frame) FieldCallee() *ids.Field { return f.fieldCallee }

// CallPosition returns the call site this frame is attached to, or nil.
func (f Frame) CallPosition() *ids.Position { return f.callPosition }

// Distance returns the hop count from the nearest origin.
func (f Frame) Distance() int { return f.distance }

// Origins returns the set of origin methods.
func (f Frame) Origins() setutil.Set[*ids.Method] { return f.origins }

// FieldOrigins returns the set of origin fields.
func (f Frame) FieldOrigins() setutil.Set[*ids.Field] { return f.fieldOrigins }

// InferredFeatures returns the features inferred over the whole propagation
// path so far.
func (f Frame) InferredFeatures() FeatureSet { return f.inferredFeatures }

// LocallyInferredFeatures returns the features inferred at just this hop.
// Per §4.1 it is deliberately not required to be <= InferredFeatures: the
// two are kept distinct so propagation can attribute features to the
// current hop.
func (f Frame) LocallyInferredFeatures() FeatureSet { return f.locallyInferredFeatures }

// UserFeatures returns the plain (non may/always) user-declared feature
// set.
func (f Frame) UserFeatures() setutil.Set[*ids.Feature] { return f.userFeatures }

// ViaTypeOfPorts returns the roots awaiting via-type-of materialization.
func (f Frame) ViaTypeOfPorts() setutil.Set[ids.Root] { return f.viaTypeOfPorts }

// ViaValueOfPorts returns the roots awaiting via-value-of materialization.
func (f Frame) ViaValueOfPorts() setutil.Set[ids.Root] { return f.viaValueOfPorts }

// LocalPositions returns the intra-procedural trace markers accumulated so
// far.
func (f Frame) LocalPositions() setutil.Set[*ids.Position] { return f.localPositions }

// CanonicalNames returns the CRTEX canonical names (templates or already
// instantiated) attached to this frame.
func (f Frame) CanonicalNames() setutil.Set[*ids.CanonicalName] { return f.canonicalNames }

// Features returns inferred_features ⊔ user_features in may/always form,
// with user features added as always (§4.3 "new inferred_features = join of
// each input's features()").
func (f Frame) Features() FeatureSet {
	out := f.inferredFeatures
	f.userFeatures.ForEach(func(uf *ids.Feature) {
		out = out.AddAlways(uf)
	})
	return out
}

// IsLeaf reports whether callee == nil and field_callee == nil.
func (f Frame) IsLeaf() bool {
	return f.callee == nil && f.fieldCallee == nil
}

// IsCrtexProducerDeclaration reports whether the callee port's root is
// Anchor or Producer: such frames are CRTEX inputs and must go through
// propagateCrtexFrame rather than the ordinary non-CRTEX collapse.
func (f Frame) IsCrtexProducerDeclaration() bool {
	return f.calleePort != nil && f.calleePort.Root().IsAnchorOrProducer()
}

// AddInferredFeatures merges fs into inferred_features using may/always add
// semantics (a no-op if fs is bottom, §8 boundary behaviors).
func (f Frame) AddInferredFeatures(fs FeatureSet) Frame {
	if fs.IsBottom() {
		return f
	}
	out := f
	out.inferredFeatures = f.inferredFeatures.Join(fs)
	return out
}

// AddLocallyInferredFeatures merges fs into locally_inferred_features.
func (f Frame) AddLocallyInferredFeatures(fs FeatureSet) Frame {
	if fs.IsBottom() {
		return f
	}
	out := f
	out.locallyInferredFeatures = f.locallyInferredFeatures.Join(fs)
	return out
}

// AddLocalPosition inserts p, or is a no-op if p is nil (§8 boundary
// behaviors: "add_local_position(null) are no-ops").
func (f Frame) AddLocalPosition(p *ids.Position) Frame {
	if p == nil {
		return f
	}
	out := f
	out.localPositions = f.localPositions.With(p)
	return out
}

// SetLocalPositions replaces the local position set outright.
func (f Frame) SetLocalPositions(s setutil.Set[*ids.Position]) Frame {
	out := f
	out.localPositions = s
	return out
}

// CalleePortAppend appends path element e to the callee port.
func (f Frame) CalleePortAppend(ctx *ids.Context, e string) Frame {
	out := f
	out.calleePort = ctx.AccessPaths.Append(f.calleePort, e)
	return out
}

// WithKind returns a copy with kind replaced.
func (f Frame) WithKind(k *ids.Kind) Frame {
	out := f
	out.kind = k
	return out
}

// groupKey returns the frame's lattice grouping key: (callee, callee_port,
// call_position, distance, field_callee). Two frames with the same kind and
// the same grouping key are merged on insertion into a Frames (§4.2).
func (f Frame) groupKey() frameGroupKey {
	return frameGroupKey{
		callee:       f.callee,
		calleePort:   f.calleePort,
		callPosition: f.callPosition,
		distance:     f.distance,
		fieldCallee:  f.fieldCallee,
	}
}

type frameGroupKey struct {
	callee       *ids.Method
	calleePort   *ids.AccessPath
	callPosition *ids.Position
	distance     int
	fieldCallee  *ids.Field
}

// joinSameGroup merges two frames known to share a kind and a grouping key:
// their origins, field_origins, feature sets, via-ports, local_positions and
// canonical_names are unioned (§4.2).
func joinSameGroup(a, b Frame) Frame {
	out := a
	out.origins = a.origins.Union(b.origins)
	out.fieldOrigins = a.fieldOrigins.Union(b.fieldOrigins)
	out.inferredFeatures = a.inferredFeatures.Join(b.inferredFeatures)
	out.locallyInferredFeatures = a.locallyInferredFeatures.Join(b.locallyInferredFeatures)
	out.userFeatures = a.userFeatures.Union(b.userFeatures)
	out.viaTypeOfPorts = a.viaTypeOfPorts.Union(b.viaTypeOfPorts)
	out.viaValueOfPorts = a.viaValueOfPorts.Union(b.viaValueOfPorts)
	out.localPositions = a.localPositions.Union(b.localPositions)
	out.canonicalNames = a.canonicalNames.Union(b.canonicalNames)
	return out
}

// leqSameGroup reports whether a is covered by b, given a and b already
// share a kind and grouping key: every set-valued field of a must be a
// subset of the matching field of b.
func leqSameGroup(a, b Frame) bool {
	return a.origins.IsSubsetOf(b.origins) &&
		a.fieldOrigins.IsSubsetOf(b.fieldOrigins) &&
		a.inferredFeatures.Leq(b.inferredFeatures) &&
		a.locallyInferredFeatures.Leq(b.locallyInferredFeatures) &&
		a.userFeatures.IsSubsetOf(b.userFeatures) &&
		a.viaTypeOfPorts.IsSubsetOf(b.viaTypeOfPorts) &&
		a.viaValueOfPorts.IsSubsetOf(b.viaValueOfPorts) &&
		a.localPositions.IsSubsetOf(b.localPositions) &&
		a.canonicalNames.IsSubsetOf(b.canonicalNames)
}

func (f Frame) String() string {
	origins := make([]string, 0, f.origins.Len())
	f.origins.ForEach(func(m *ids.Method) { origins = append(origins, m.String()) })
	sort.Strings(origins)
	return fmt.Sprintf("Frame(kind=%v, callee_port=%v, origins={%s})", f.kind, f.calleePort, strings.Join(origins, ", "))
}
