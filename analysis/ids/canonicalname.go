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

import "strings"

// programmaticLeafNameToken is the one CRTEX template placeholder whose
// substitution rule is pinned down here: it is replaced by the signature of
// the callee the template is instantiated against. Every other placeholder
// is passed through unchanged, matching the literal templates the original
// analyzer leaves untouched when it cannot enumerate their tokens.
const programmaticLeafNameToken = "%programmatic_leaf_name%"

// CanonicalName is an interned CRTEX leaf identity. It is either a template
// (spec.md §3: "a string with substitution placeholders such as
// %programmatic_leaf_name%") or an instantiated literal produced by
// Instantiate against a concrete callee.
type CanonicalName struct {
	text          string
	isInstantiated bool
}

func (c *CanonicalName) Text() string          { return c.text }
func (c *CanonicalName) IsTemplate() bool       { return !c.isInstantiated }
func (c *CanonicalName) IsInstantiated() bool   { return c.isInstantiated }
func (c *CanonicalName) String() string         { return c.text }

type canonicalNameKey struct {
	text          string
	isInstantiated bool
}

// CanonicalNameTable interns CanonicalNames, both templates and the literals
// produced by instantiating them.
type CanonicalNameTable struct {
	pool *pool[canonicalNameKey, CanonicalName]
}

func newCanonicalNameTable() *CanonicalNameTable {
	return &CanonicalNameTable{pool: newPool[canonicalNameKey, CanonicalName]()}
}

// Template interns a CanonicalName as a template, the form read off a rule
// file before any propagation has resolved it against a callee.
func (t *CanonicalNameTable) Template(text string) *CanonicalName {
	return t.intern(text, false)
}

// Instantiate resolves a template canonical name against a propagated
// callee. %programmatic_leaf_name% is replaced by the callee's signature;
// every other token in the template is left as-is (spec.md design notes,
// "pass literal templates through unchanged"). It panics if tmpl is not a
// template, since only templates are ever instantiated.
func (t *CanonicalNameTable) Instantiate(tmpl *CanonicalName, callee *Method) *CanonicalName {
	if tmpl.isInstantiated {
		panic("ids: Instantiate called on an already-instantiated canonical name")
	}
	resolved := strings.ReplaceAll(tmpl.text, programmaticLeafNameToken, callee.Signature())
	return t.intern(resolved, true)
}

func (t *CanonicalNameTable) intern(text string, instantiated bool) *CanonicalName {
	key := canonicalNameKey{text, instantiated}
	return t.pool.intern(key, func() *CanonicalName {
		return &CanonicalName{text: text, isInstantiated: instantiated}
	})
}
