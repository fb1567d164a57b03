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
	"fmt"
	"sort"
	"strings"

	"github.com/quietflow/taint/analysis/ids"
)

// String renders t with the shape "[FrameByKind(kind=…,
// frames={Frame(kind=…, callee_port=…, origins={…})}), …]", bottom as "[]",
// top as "T" (§6). Every contained frame, regardless of which callee or
// call position it lives under, is pooled by kind for display.
func (t Taint) String() string {
	if t.isTop {
		return "T"
	}
	if t.IsBottom() {
		return "[]"
	}

	byKind := map[*ids.Kind]Frames{}
	var kinds []*ids.Kind
	t.ForEachFrame(func(f Frame) {
		if _, ok := byKind[f.kind]; !ok {
			kinds = append(kinds, f.kind)
		}
		byKind[f.kind] = byKind[f.kind].Add(f)
	})
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].Name() < kinds[j].Name() })

	groups := make([]string, 0, len(kinds))
	for _, k := range kinds {
		groups = append(groups, fmt.Sprintf("FrameByKind(kind=%v, frames=%v)", k, byKind[k]))
	}
	return "[" + strings.Join(groups, ", ") + "]"
}
