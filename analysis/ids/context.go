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

// Context bundles every interning table the taint core needs: the method,
// field, kind, feature, position, canonical-name and access-path tables
// (spec.md §6, "Access to Context handles"). A single Context is shared,
// read-mostly, across the whole parallel worklist fixpoint; every table it
// holds is safe for concurrent interning.
type Context struct {
	Methods        *MethodTable
	Fields         *FieldTable
	Kinds          *KindTable
	Features       *FeatureTable
	Positions      *PositionTable
	CanonicalNames *CanonicalNameTable
	AccessPaths    *AccessPathTable
}

// NewContext builds an empty Context with all tables freshly initialized.
func NewContext() *Context {
	return &Context{
		Methods:        newMethodTable(),
		Fields:         newFieldTable(),
		Kinds:          newKindTable(),
		Features:       newFeatureTable(),
		Positions:      newPositionTable(),
		CanonicalNames: newCanonicalNameTable(),
		AccessPaths:    newAccessPathTable(),
	}
}
