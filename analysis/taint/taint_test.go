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
	"testing"

	"github.com/quietflow/taint/analysis/ids"
	"github.com/quietflow/taint/internal/setutil"
)

func newTestContext() *ids.Context {
	return ids.NewContext()
}

func TestBasicAddMerge(t *testing.T) {
	ctx := newTestContext()
	k1 := ctx.Kinds.Intern("K1")
	m1 := ctx.Methods.Intern("M1")
	m2 := ctx.Methods.Intern("M2")
	f1 := ctx.Features.Intern("f1")
	f2 := ctx.Features.Intern("f2")
	uf1 := ctx.Features.Intern("uf1")
	returnPort := ctx.AccessPaths.Intern(ids.Return, nil)

	frame1 := NewLeafFrame(k1, returnPort, m1)
	frame1.inferredFeatures = setutil.MaySet[*ids.Feature]{May: setutil.NewSet(f1)}

	frame2 := NewLeafFrame(k1, returnPort, m2)
	frame2.inferredFeatures = setutil.MaySet[*ids.Feature]{May: setutil.NewSet(f2)}
	frame2.userFeatures = setutil.NewSet(uf1)

	frames := NewFrames(frame1, frame2)
	if frames.Len() != 1 {
		t.Fatalf("expected one merged frame, got %d", frames.Len())
	}
	merged := frames.Frames()[0]
	if !merged.origins.Equal(setutil.NewSet(m1, m2)) {
		t.Errorf("origins = %v, want {M1, M2}", merged.origins.Elements())
	}
	if !merged.inferredFeatures.May.Equal(setutil.NewSet(f1, f2)) {
		t.Errorf("inferred may = %v, want {f1, f2}", merged.inferredFeatures.May.Elements())
	}
	if !merged.inferredFeatures.Always.IsEmpty() {
		t.Errorf("inferred always = %v, want empty", merged.inferredFeatures.Always.Elements())
	}
	if !merged.userFeatures.Equal(setutil.NewSet(uf1)) {
		t.Errorf("user features = %v, want {uf1}", merged.userFeatures.Elements())
	}
}

func TestPropagateDistanceDrop(t *testing.T) {
	ctx := newTestContext()
	k1 := ctx.Kinds.Intern("K1")
	m1 := ctx.Methods.Intern("M1")
	port := ctx.AccessPaths.Intern(ids.Argument(0), nil)

	frame := Frame{kind: k1, calleePort: port, callee: m1, distance: 2}
	_, _, ok := propagateFrames([]Frame{frame}, port, m1, nil, 1, ctx, nil, nil, DiscardReporter())
	if ok {
		t.Fatal("expected propagateFrames to report no successor when every input exceeds max_dist")
	}
}

func TestNonCrtexPropagation(t *testing.T) {
	ctx := newTestContext()
	k1 := ctx.Kinds.Intern("K1")
	k2 := ctx.Kinds.Intern("K2")
	m1 := ctx.Methods.Intern("M1")
	m2 := ctx.Methods.Intern("M2")
	declPort := ctx.AccessPaths.Intern(ids.Return, nil)
	posL := ctx.Positions.Intern(10, 0, 0)
	argPort := ctx.AccessPaths.Intern(ids.Argument(0), nil)

	f1 := Frame{kind: k1, calleePort: declPort, callee: m1, distance: 1, origins: setutil.NewSet(m1)}
	f2 := Frame{kind: k2, calleePort: declPort, callee: m1, distance: 0, origins: setutil.NewSet(m1)}

	var input Taint
	input = input.Add(f1)
	input = input.Add(f2)

	out := input.Propagate(m2, argPort, posL, 25, FeatureSet{}, ctx, nil, nil, DiscardReporter())

	var gotK1, gotK2 *Frame
	out.ForEachFrame(func(f Frame) {
		switch f.kind {
		case k1:
			cp := f
			gotK1 = &cp
		case k2:
			cp := f
			gotK2 = &cp
		}
	})
	if gotK1 == nil || gotK1.distance != 2 {
		t.Fatalf("K1 successor = %+v, want distance 2", gotK1)
	}
	if gotK2 == nil || gotK2.distance != 1 {
		t.Fatalf("K2 successor = %+v, want distance 1", gotK2)
	}
	if gotK1.callee != m2 || gotK1.calleePort != argPort || gotK1.callPosition != posL {
		t.Errorf("K1 successor callee/port/position not rewritten: %+v", gotK1)
	}
	if !gotK1.locallyInferredFeatures.IsBottom() || !gotK2.locallyInferredFeatures.IsBottom() {
		t.Error("successors should have empty locally-inferred features")
	}
}

func TestCrtexPropagation(t *testing.T) {
	ctx := newTestContext()
	k1 := ctx.Kinds.Intern("K1")
	m1 := ctx.Methods.Intern("M1")
	m2 := ctx.Methods.Intern("M2")
	anchorPort := ctx.AccessPaths.Intern(ids.Anchor, nil)
	tmpl := ctx.CanonicalNames.Template("%programmatic_leaf_name%")

	frame := Frame{
		kind:           k1,
		calleePort:     anchorPort,
		callee:         m1,
		distance:       0,
		canonicalNames: setutil.NewSet(tmpl),
	}

	var input Taint
	input = input.Add(frame)

	out := input.Propagate(m2, anchorPort, nil, 25, FeatureSet{}, ctx, nil, nil, DiscardReporter())

	var got *Frame
	out.ForEachFrame(func(f Frame) {
		cp := f
		got = &cp
	})
	if got == nil {
		t.Fatal("expected one CRTEX successor frame")
	}
	if got.distance != 0 {
		t.Errorf("distance = %d, want 0", got.distance)
	}
	if got.calleePort.Root().Kind != ids.RootArgument || got.calleePort.Root().ArgumentIndex() != -1 {
		t.Errorf("callee port = %v, want Argument(-1)", got.calleePort.Root())
	}
	wantName := m2.Signature()
	found := false
	got.canonicalNames.ForEach(func(n *ids.CanonicalName) {
		if n.Text() == wantName && n.IsInstantiated() {
			found = true
		}
	})
	if !found {
		t.Errorf("canonical names = %v, want instantiation against %q", got.canonicalNames.Elements(), wantName)
	}
}

func TestTransformKindWithFeatures(t *testing.T) {
	ctx := newTestContext()
	k1 := ctx.Kinds.Intern("K1")
	t1 := ctx.Kinds.Intern("T1")
	t2 := ctx.Kinds.Intern("T2")
	m1 := ctx.Methods.Intern("M1")
	port := ctx.AccessPaths.Intern(ids.Return, nil)
	uf1 := ctx.Features.Intern("uf1")
	f1 := ctx.Features.Intern("f1")

	frame := Frame{kind: k1, calleePort: port, callee: m1, userFeatures: setutil.NewSet(uf1)}
	var input Taint
	input = input.Add(frame)

	out := input.TransformKindWithFeatures(
		func(k *ids.Kind) []*ids.Kind { return []*ids.Kind{k1, t1, t2} },
		func(*ids.Kind) FeatureSet { return FeatureSet{May: setutil.NewSet(f1), Always: setutil.NewSet(f1)} },
	)

	seenKinds := setutil.NewSet[*ids.Kind]()
	out.ForEachFrame(func(f Frame) {
		seenKinds = seenKinds.With(f.kind)
		if !f.locallyInferredFeatures.Always.Contains(f1) {
			t.Errorf("frame at kind %v missing locally-inferred always f1", f.kind)
		}
		if !f.userFeatures.Equal(setutil.NewSet(uf1)) {
			t.Errorf("frame at kind %v lost user features: %v", f.kind, f.userFeatures.Elements())
		}
	})
	if !seenKinds.Equal(setutil.NewSet(k1, t1, t2)) {
		t.Errorf("resulting kinds = %v, want {K1, T1, T2}", seenKinds.Elements())
	}
}

func TestTransformKindWithFeaturesEmptyDropsFrames(t *testing.T) {
	ctx := newTestContext()
	k1 := ctx.Kinds.Intern("K1")
	m1 := ctx.Methods.Intern("M1")
	port := ctx.AccessPaths.Intern(ids.Return, nil)

	var input Taint
	input = input.Add(Frame{kind: k1, calleePort: port, callee: m1})

	out := input.TransformKindWithFeatures(
		func(*ids.Kind) []*ids.Kind { return nil },
		func(*ids.Kind) FeatureSet { return FeatureSet{} },
	)
	if !out.IsBottom() {
		t.Error("mapping every kind to nothing should yield bottom")
	}
}

func TestDifferenceWithSuperset(t *testing.T) {
	ctx := newTestContext()
	k1 := ctx.Kinds.Intern("K1")
	m1 := ctx.Methods.Intern("M1")
	m2 := ctx.Methods.Intern("M2")
	port := ctx.AccessPaths.Intern(ids.Return, nil)

	x := Frame{kind: k1, calleePort: port, callee: m1, origins: setutil.NewSet(m1)}
	y := Frame{kind: k1, calleePort: port, callee: m1, origins: setutil.NewSet(m1, m2)}

	var xt, yt Taint
	xt = xt.Add(x)
	yt = yt.Add(y)

	diff := xt.DifferenceWith(yt)
	if !diff.IsBottom() {
		t.Errorf("expected bottom, got %v", diff)
	}
}

func TestAlgebraicLaws(t *testing.T) {
	ctx := newTestContext()
	k1 := ctx.Kinds.Intern("K1")
	k2 := ctx.Kinds.Intern("K2")
	m1 := ctx.Methods.Intern("M1")
	port := ctx.AccessPaths.Intern(ids.Return, nil)

	var x, y, z Taint
	x = x.Add(Frame{kind: k1, calleePort: port, callee: m1, origins: setutil.NewSet(m1)})
	y = y.Add(Frame{kind: k2, calleePort: port, callee: m1, origins: setutil.NewSet(m1)})
	z = z.Add(Frame{kind: k1, calleePort: port, callee: m1, distance: 1, origins: setutil.NewSet(m1)})

	var bottom Taint

	if !x.Leq(x) {
		t.Error("x <= x failed")
	}
	if !bottom.Leq(x) {
		t.Error("bottom <= x failed")
	}
	if !x.Leq(x.JoinWith(y)) {
		t.Error("x <= x join y failed")
	}
	if !x.JoinWith(y).Equal(y.JoinWith(x)) {
		t.Error("join not commutative")
	}
	if !x.JoinWith(y).JoinWith(z).Equal(x.JoinWith(y.JoinWith(z))) {
		t.Error("join not associative")
	}
	if !x.JoinWith(bottom).Equal(x) {
		t.Error("x join bottom != x")
	}
	if !x.MeetWith(bottom).IsBottom() {
		t.Error("x meet bottom != bottom")
	}
	if !x.DifferenceWith(x).IsBottom() {
		t.Error("x difference x != bottom")
	}
	if !x.DifferenceWith(bottom).Equal(x) {
		t.Error("x difference bottom != x")
	}
}

func TestAddInferredFeaturesIdempotent(t *testing.T) {
	ctx := newTestContext()
	k1 := ctx.Kinds.Intern("K1")
	m1 := ctx.Methods.Intern("M1")
	port := ctx.AccessPaths.Intern(ids.Return, nil)
	f1 := ctx.Features.Intern("f1")
	fs := FeatureSet{May: setutil.NewSet(f1), Always: setutil.NewSet(f1)}

	frame := Frame{kind: k1, calleePort: port, callee: m1}
	once := frame.AddInferredFeatures(fs)
	twice := once.AddInferredFeatures(fs)
	if !once.inferredFeatures.Equal(twice.inferredFeatures) {
		t.Errorf("AddInferredFeatures not idempotent: %v vs %v", once.inferredFeatures, twice.inferredFeatures)
	}

	noop := frame.AddInferredFeatures(FeatureSet{})
	if !noop.inferredFeatures.IsBottom() {
		t.Error("AddInferredFeatures({}) should be a no-op")
	}

	noopPos := frame.AddLocalPosition(nil)
	if !noopPos.localPositions.IsEmpty() {
		t.Error("AddLocalPosition(nil) should be a no-op")
	}
}

func TestAttachPositionPreservesOriginsResetsDistance(t *testing.T) {
	ctx := newTestContext()
	k1 := ctx.Kinds.Intern("K1")
	m1 := ctx.Methods.Intern("M1")
	fOrigin := ctx.Fields.Intern("Lcom/example/Foo;", "secret")
	port := ctx.AccessPaths.Intern(ids.Return, nil)
	uf1 := ctx.Features.Intern("uf1")
	posL := ctx.Positions.Intern(5, 0, 0)

	leaf := Frame{
		kind:         k1,
		calleePort:   port,
		distance:     0,
		origins:      setutil.NewSet(m1),
		fieldOrigins: setutil.NewSet(fOrigin),
		userFeatures: setutil.NewSet(uf1),
	}

	var t0 Taint
	t0 = t0.Add(leaf)

	out := t0.AttachPosition(posL)
	var got *Frame
	out.ForEachFrame(func(f Frame) {
		cp := f
		got = &cp
	})
	if got == nil {
		t.Fatal("expected one attached leaf frame")
	}
	if !got.origins.Equal(setutil.NewSet(m1)) {
		t.Errorf("origins not preserved: %v", got.origins.Elements())
	}
	if !got.fieldOrigins.Equal(setutil.NewSet(fOrigin)) {
		t.Errorf("field origins not preserved: %v", got.fieldOrigins.Elements())
	}
	if got.distance != 0 || got.callee != nil {
		t.Errorf("expected distance 0 and callee nil, got distance=%d callee=%v", got.distance, got.callee)
	}
	if got.callPosition != posL {
		t.Errorf("call position = %v, want %v", got.callPosition, posL)
	}
	if !got.locallyInferredFeatures.Always.Contains(uf1) {
		t.Error("user feature should be promoted to locally-inferred always")
	}
	if !got.userFeatures.IsEmpty() {
		t.Error("user features should be cleared after attach_position")
	}
}

func TestAppendCalleePortFilter(t *testing.T) {
	ctx := newTestContext()
	k1 := ctx.Kinds.Intern("K1")
	k2 := ctx.Kinds.Intern("K2")
	m1 := ctx.Methods.Intern("M1")
	port := ctx.AccessPaths.Intern(ids.Argument(0), nil)

	var in Taint
	in = in.Add(Frame{kind: k1, calleePort: port, callee: m1})
	in = in.Add(Frame{kind: k2, calleePort: port, callee: m1})

	out := in.AppendCalleePort(ctx, "field", func(k *ids.Kind) bool { return k == k1 })

	out.ForEachFrame(func(f Frame) {
		if f.kind == k1 && f.calleePort.String() != "Argument(0).field" {
			t.Errorf("K1 frame callee port = %v, want appended", f.calleePort)
		}
		if f.kind == k2 && f.calleePort != port {
			t.Errorf("K2 frame callee port should be unchanged, got %v", f.calleePort)
		}
	})
}

func TestFilterInvalidFrames(t *testing.T) {
	ctx := newTestContext()
	k1 := ctx.Kinds.Intern("K1")
	m1 := ctx.Methods.Intern("M1")
	port := ctx.AccessPaths.Intern(ids.Return, nil)

	var in Taint
	in = in.Add(Frame{kind: k1, calleePort: port, callee: m1, distance: 0})
	in = in.Add(Frame{kind: k1, calleePort: port, callee: m1, distance: 1})

	out := in.FilterInvalidFrames(func(callee *ids.Method, _ *ids.AccessPath, _ *ids.Kind) bool {
		return callee == m1
	})
	if out.IsBottom() {
		t.Fatal("expected frames to survive a permissive validity check")
	}

	dropped := in.FilterInvalidFrames(func(*ids.Method, *ids.AccessPath, *ids.Kind) bool { return false })
	if !dropped.IsBottom() {
		t.Error("expected every frame to be dropped")
	}
}

func TestTopPanicsOnOperations(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic operating on Taint::top()")
		}
	}()
	Top().Add(Frame{})
}

func TestPrintShape(t *testing.T) {
	var bottom Taint
	if bottom.String() != "[]" {
		t.Errorf("bottom prints as %q, want []", bottom.String())
	}
	if Top().String() != "T" {
		t.Errorf("top prints as %q, want T", Top().String())
	}
}
