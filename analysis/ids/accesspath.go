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

import (
	"fmt"
	"strings"
)

// RootKind distinguishes the five access path roots (spec.md §3).
type RootKind int

const (
	RootReturn RootKind = iota
	RootLeaf
	RootAnchor
	RootProducer
	RootArgument
)

func (k RootKind) String() string {
	switch k {
	case RootReturn:
		return "Return"
	case RootLeaf:
		return "Leaf"
	case RootAnchor:
		return "Anchor"
	case RootProducer:
		return "Producer"
	case RootArgument:
		return "Argument"
	default:
		return "Unknown"
	}
}

// Root is an access path's root: one of the parameterless kinds, or
// Argument(i) for an integer parameter index. i is only meaningful when
// Kind == RootArgument.
type Root struct {
	Kind RootKind
	i    int
}

// Argument builds the Argument(i) root. Negative indices are used by the
// CRTEX canonicalization convention (spec.md §7): Anchor canonicalizes to
// Argument(-1), Producer to Argument(-2).
func Argument(i int) Root { return Root{Kind: RootArgument, i: i} }

func (r Root) ArgumentIndex() int { return r.i }

func (r Root) IsAnchorOrProducer() bool {
	return r.Kind == RootAnchor || r.Kind == RootProducer
}

func (r Root) String() string {
	if r.Kind == RootArgument {
		return fmt.Sprintf("Argument(%d)", r.i)
	}
	return r.Kind.String()
}

var (
	Return   = Root{Kind: RootReturn}
	Leaf     = Root{Kind: RootLeaf}
	Anchor   = Root{Kind: RootAnchor}
	Producer = Root{Kind: RootProducer}
)

// AccessPath is an interned (Root, Path) pair: the root plus an ordered
// sequence of field-name path elements (spec.md §3).
type AccessPath struct {
	root Root
	path []string
}

func (a *AccessPath) Root() Root      { return a.root }
func (a *AccessPath) Path() []string  { return a.path }

func (a *AccessPath) String() string {
	if len(a.path) == 0 {
		return a.root.String()
	}
	return a.root.String() + "." + strings.Join(a.path, ".")
}

type accessPathKey struct {
	root Root
	path string
}

// AccessPathTable interns AccessPaths.
type AccessPathTable struct {
	pool *pool[accessPathKey, AccessPath]
}

func newAccessPathTable() *AccessPathTable {
	return &AccessPathTable{pool: newPool[accessPathKey, AccessPath]()}
}

// Intern returns the canonical *AccessPath for (root, path).
func (t *AccessPathTable) Intern(root Root, path []string) *AccessPath {
	key := accessPathKey{root: root, path: strings.Join(path, "\x00")}
	return t.pool.intern(key, func() *AccessPath {
		cp := make([]string, len(path))
		copy(cp, path)
		return &AccessPath{root: root, path: cp}
	})
}

// Append returns the AccessPath formed by appending e to a's path
// (callee_port_append, spec.md §4).
func (t *AccessPathTable) Append(a *AccessPath, e string) *AccessPath {
	return t.Intern(a.root, append(append([]string{}, a.path...), e))
}

// CanonicalizeForCrtex rewrites an Anchor or Producer root into its
// conventional argument path for CRTEX propagation (spec.md §7, step 4):
// Anchor -> Argument(-1), Producer -> Argument(-2). Any other root is
// returned unchanged.
func (t *AccessPathTable) CanonicalizeForCrtex(a *AccessPath) *AccessPath {
	switch a.root.Kind {
	case RootAnchor:
		return t.Intern(Argument(-1), a.path)
	case RootProducer:
		return t.Intern(Argument(-2), a.path)
	default:
		return a
	}
}
