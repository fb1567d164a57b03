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

// RegisterTypeVector is the per-call-site register-type vector: an optional
// runtime type name per argument index. An index missing from the map is
// out of range; an index present but holding None means the argument's
// runtime type could not be resolved (§6).
type RegisterTypeVector map[int]setutil.Optional[string]

// ConstantArgumentVector is the per-call-site constant-argument vector: an
// optional constant literal per argument index, with the same presence
// convention as RegisterTypeVector.
type ConstantArgumentVector map[int]setutil.Optional[string]

// propagateFrames collapses a non-empty slice of same-kind frames into one
// successor frame (§4.3 step 3). It drops any input whose distance is
// already >= maxDist; if every input is dropped the second return value is
// false and the Frame is the zero value (bottom for that kind group, §8
// "returns bottom if all inputs are dropped").
func propagateFrames(
	inputs []Frame,
	calleePort *ids.AccessPath,
	callee *ids.Method,
	callPosition *ids.Position,
	maxDist int,
	ctx *ids.Context,
	srcRegisterTypes RegisterTypeVector,
	srcConstants ConstantArgumentVector,
	reporter Reporter,
) (Frame, setutil.Set[*ids.Feature], bool) {
	minDist := -1
	var origins setutil.Set[*ids.Method]
	var fieldOrigins setutil.Set[*ids.Field]
	var features FeatureSet
	var viaTypeOfFeaturesAdded setutil.Set[*ids.Feature]

	var kind *ids.Kind
	for _, f := range inputs {
		if f.distance >= maxDist {
			continue
		}
		kind = f.kind
		if d := f.distance + 1; minDist == -1 || d < minDist {
			minDist = d
		}
		origins = origins.Union(f.origins)
		fieldOrigins = fieldOrigins.Union(f.fieldOrigins)
		features = features.Join(f.Features())

		f.viaTypeOfPorts.ForEach(func(root ids.Root) {
			value, ok := resolveViaPort(root, srcRegisterTypes, reporter, "via-type-of")
			if !ok || !value.IsSome() {
				return
			}
			feat := ctx.Features.ViaTypeOfFeature(value.Value())
			features = features.AddAlways(feat)
			viaTypeOfFeaturesAdded = viaTypeOfFeaturesAdded.With(feat)
		})
		f.viaValueOfPorts.ForEach(func(root ids.Root) {
			value, ok := resolveViaPort(root, srcConstants, reporter, "via-value-of")
			if !ok {
				return
			}
			feat := ctx.Features.ViaValueOfFeature(value)
			features = features.AddAlways(feat)
		})
	}

	if minDist == -1 {
		return Frame{}, nil, false
	}

	successor := Frame{
		kind:             kind,
		calleePort:       calleePort,
		callee:           callee,
		fieldCallee:      nil,
		callPosition:     callPosition,
		distance:         minDist,
		origins:          origins,
		fieldOrigins:     fieldOrigins,
		inferredFeatures: features,
	}
	return successor, viaTypeOfFeaturesAdded, true
}

// resolveViaPort looks up a single via-port's source value: the root must
// be an Argument whose index is a key in the vector, otherwise it is an
// invalid port (§4 failure semantics: "log error, skip the port,
// continue"). The caller decides what an absent (None) resolved value
// means: via-value-of forwards it to the feature factory as-is, via-type-of
// treats it as nothing to materialize.
func resolveViaPort(
	root ids.Root,
	vector map[int]setutil.Optional[string],
	reporter Reporter,
	portKind string,
) (setutil.Optional[string], bool) {
	if root.Kind != ids.RootArgument {
		reporter.Errorf("invalid %s port %v: root is not an argument", portKind, root)
		return setutil.None[string](), false
	}
	value, inRange := vector[root.ArgumentIndex()]
	if !inRange {
		reporter.Errorf("invalid %s port %v: argument index out of range", portKind, root)
		return setutil.None[string](), false
	}
	return value, true
}
