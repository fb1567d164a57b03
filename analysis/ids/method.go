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

// Method is an interned handle for a compiled Java method signature. Two
// Methods are the same method iff they are the same pointer.
type Method struct {
	signature string
}

// Signature returns the method's compiled signature, e.g.
// "Lcom/example/Foo;.bar:(I)V".
func (m *Method) Signature() string {
	return m.signature
}

func (m *Method) String() string {
	return m.signature
}

// MethodTable interns Methods by signature.
type MethodTable struct {
	pool *pool[string, Method]
}

func newMethodTable() *MethodTable {
	return &MethodTable{pool: newPool[string, Method]()}
}

// Intern returns the canonical *Method for signature.
func (t *MethodTable) Intern(signature string) *Method {
	return t.pool.intern(signature, func() *Method {
		return &Method{signature: signature}
	})
}

// Len returns the number of distinct methods interned so far.
func (t *MethodTable) Len() int {
	return t.pool.len()
}
