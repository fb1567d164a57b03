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

// Kind is an interned taint label: a named source/sink family, or the
// distinguished artificial source kind (spec.md §3).
type Kind struct {
	name       string
	artificial bool
}

func (k *Kind) Name() string { return k.name }

// IsArtificialSource reports whether this is the distinguished artificial
// source kind injected by the fixpoint driver at entrypoints that have no
// concrete declared source.
func (k *Kind) IsArtificialSource() bool { return k.artificial }

func (k *Kind) String() string { return k.name }

type kindKey struct {
	name       string
	artificial bool
}

// KindTable interns Kinds by (name, artificial).
type KindTable struct {
	pool *pool[kindKey, Kind]
}

func newKindTable() *KindTable {
	return &KindTable{pool: newPool[kindKey, Kind]()}
}

// Intern returns the canonical *Kind for name.
func (t *KindTable) Intern(name string) *Kind {
	return t.intern(name, false)
}

// ArtificialSource returns the canonical artificial-source *Kind for name.
func (t *KindTable) ArtificialSource(name string) *Kind {
	return t.intern(name, true)
}

func (t *KindTable) intern(name string, artificial bool) *Kind {
	key := kindKey{name, artificial}
	return t.pool.intern(key, func() *Kind {
		return &Kind{name: name, artificial: artificial}
	})
}
