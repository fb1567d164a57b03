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
	"encoding/json"
	"fmt"
)

// frameJSON is the wire shape of one Frame. Pointer handles are rendered as
// their String() form; the shape is not spec-constrained (§6) beyond being
// stable across calls for the same Taint value.
type frameJSON struct {
	Kind                    string   `json:"kind"`
	CalleePort              string   `json:"callee_port"`
	Callee                  string   `json:"callee,omitempty"`
	FieldCallee             string   `json:"field_callee,omitempty"`
	CallPosition            string   `json:"call_position,omitempty"`
	Distance                int      `json:"distance"`
	Origins                 []string `json:"origins,omitempty"`
	FieldOrigins            []string `json:"field_origins,omitempty"`
	InferredFeaturesMay     []string `json:"inferred_features_may,omitempty"`
	InferredFeaturesAlways  []string `json:"inferred_features_always,omitempty"`
	LocallyInferredMay      []string `json:"locally_inferred_features_may,omitempty"`
	LocallyInferredAlways   []string `json:"locally_inferred_features_always,omitempty"`
	UserFeatures            []string `json:"user_features,omitempty"`
	LocalPositions          []string `json:"local_positions,omitempty"`
	CanonicalNames          []string `json:"canonical_names,omitempty"`
}

func stringsOf[T fmt.Stringer](elems []T) []string {
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		out = append(out, e.String())
	}
	return out
}

func (f Frame) toJSON() frameJSON {
	out := frameJSON{
		Kind:       f.kind.String(),
		CalleePort: f.calleePort.String(),
		Distance:   f.distance,
	}
	if f.callee != nil {
		out.Callee = f.callee.String()
	}
	if f.fieldCallee != nil {
		out.FieldCallee = f.fieldCallee.String()
	}
	if f.callPosition != nil {
		out.CallPosition = f.callPosition.String()
	}
	out.Origins = stringsOf(f.origins.Elements())
	out.FieldOrigins = stringsOf(f.fieldOrigins.Elements())
	out.InferredFeaturesMay = stringsOf(f.inferredFeatures.May.Elements())
	out.InferredFeaturesAlways = stringsOf(f.inferredFeatures.Always.Elements())
	out.LocallyInferredMay = stringsOf(f.locallyInferredFeatures.May.Elements())
	out.LocallyInferredAlways = stringsOf(f.locallyInferredFeatures.Always.Elements())
	out.UserFeatures = stringsOf(f.userFeatures.Elements())
	out.LocalPositions = stringsOf(f.localPositions.Elements())
	out.CanonicalNames = stringsOf(f.canonicalNames.Elements())
	return out
}

// MarshalJSON renders t as a flat list of frames (§6: "JSON rendering of
// Taint"). Top marshals as the JSON string "T"; bottom as an empty array.
func (t Taint) MarshalJSON() ([]byte, error) {
	if t.isTop {
		return json.Marshal("T")
	}
	frames := make([]frameJSON, 0)
	t.ForEachFrame(func(f Frame) {
		frames = append(frames, f.toJSON())
	})
	return json.Marshal(frames)
}
