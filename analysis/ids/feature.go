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

package ids

import "github.com/quietflow/taint/internal/setutil"

// Feature is an interned boolean tag attachable to frames.
type Feature struct {
	name string
}

func (f *Feature) Name() string   { return f.name }
func (f *Feature) String() string { return f.name }

// FeatureTable interns Features by name, and is the Context's feature
// factory: it materializes via-type-of and via-value-of features, per
// spec.md §6 ("must expose via_type_of_feature(type) and
// via_value_of_feature(optional<string>)").
type FeatureTable struct {
	pool *pool[string, Feature]
}

func newFeatureTable() *FeatureTable {
	return &FeatureTable{pool: newPool[string, Feature]()}
}

// Intern returns the canonical *Feature for name.
func (t *FeatureTable) Intern(name string) *Feature {
	return t.pool.intern(name, func() *Feature { return &Feature{name: name} })
}

// ViaTypeOfFeature materializes the feature attached to frames whose
// via_type_of_ports resolved against a caller register of the given runtime
// type.
func (t *FeatureTable) ViaTypeOfFeature(registerType string) *Feature {
	return t.Intern("via-type:" + registerType)
}

// ViaValueOfFeature materializes the feature attached to frames whose
// via_value_of_ports resolved against a caller constant argument. A missing
// constant (value.IsSome() == false) still yields a feature, matching the
// fact that the port was present and considered, just unresolved to a value.
func (t *FeatureTable) ViaValueOfFeature(value setutil.Optional[string]) *Feature {
	if value.IsSome() {
		return t.Intern("via-value:" + value.Value())
	}
	return t.Intern("via-value:<none>")
}
