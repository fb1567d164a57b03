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

// Field is an interned handle for a field of a compiled Java class. It plays
// the same role for field_callee / field_origins that Method plays for
// callee / origins.
type Field struct {
	declaringClass string
	name           string
}

func (f *Field) DeclaringClass() string { return f.declaringClass }
func (f *Field) Name() string           { return f.name }

func (f *Field) String() string {
	return f.declaringClass + "." + f.name
}

type fieldKey struct {
	declaringClass string
	name           string
}

// FieldTable interns Fields by (declaring class, name).
type FieldTable struct {
	pool *pool[fieldKey, Field]
}

func newFieldTable() *FieldTable {
	return &FieldTable{pool: newPool[fieldKey, Field]()}
}

// Intern returns the canonical *Field for (declaringClass, name).
func (t *FieldTable) Intern(declaringClass, name string) *Field {
	key := fieldKey{declaringClass, name}
	return t.pool.intern(key, func() *Field {
		return &Field{declaringClass: declaringClass, name: name}
	})
}
