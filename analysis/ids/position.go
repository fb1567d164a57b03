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

import "fmt"

// Position is an interned source position within a compiled method: a line
// number and, when available, a start/end column pair within that line. The
// zero-valued Position (all fields zero) is the unknown position, used when
// a frame was not attached to any call instruction (spec.md §6,
// attach_position is a partial operation).
type Position struct {
	line  int
	start int
	end   int
}

func (p *Position) Line() int  { return p.line }
func (p *Position) Start() int { return p.start }
func (p *Position) End() int   { return p.end }

// IsUnknown reports whether this is the distinguished unknown position.
func (p *Position) IsUnknown() bool {
	return p.line == 0 && p.start == 0 && p.end == 0
}

func (p *Position) String() string {
	if p.IsUnknown() {
		return "?"
	}
	if p.start == 0 && p.end == 0 {
		return fmt.Sprintf("%d", p.line)
	}
	return fmt.Sprintf("%d:%d-%d", p.line, p.start, p.end)
}

type positionKey struct {
	line  int
	start int
	end   int
}

// PositionTable interns Positions by (line, start, end).
type PositionTable struct {
	pool    *pool[positionKey, Position]
	unknown *Position
}

func newPositionTable() *PositionTable {
	t := &PositionTable{pool: newPool[positionKey, Position]()}
	t.unknown = t.Intern(0, 0, 0)
	return t
}

// Intern returns the canonical *Position for (line, start, end).
func (t *PositionTable) Intern(line, start, end int) *Position {
	key := positionKey{line, start, end}
	return t.pool.intern(key, func() *Position {
		return &Position{line: line, start: start, end: end}
	})
}

// Unknown returns the distinguished unknown position.
func (t *PositionTable) Unknown() *Position {
	return t.unknown
}
