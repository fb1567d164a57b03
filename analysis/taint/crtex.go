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
	"github.com/quietflow/taint/analysis/ids"
	"github.com/quietflow/taint/internal/setutil"
)

// propagateCrtexFrame implements §4.7: it propagates one CRTEX input frame
// (a frame whose callee port root is Anchor or Producer) through canonical
// name instantiation. Per the original analyzer's own behavior, via-value-of
// is never materialized for CRTEX frames: the ordinary propagation step
// below always runs with an empty constant-argument vector, regardless of
// what the caller's propagation pass was given.
//
// Unlike a non-CRTEX frame, a CRTEX frame's callee port is not rebound to
// the call site's target argument: it keeps its own Anchor/Producer
// identity, which is then canonicalized against the propagated callee
// (§4.7 step 4; the original frame's port, not the call's target port, is
// what gets canonicalized).
func propagateCrtexFrame(
	f Frame,
	callee *ids.Method,
	callPosition *ids.Position,
	maxDist int,
	ctx *ids.Context,
	srcRegisterTypes RegisterTypeVector,
	reporter Reporter,
) (Frame, bool) {
	successor, _, ok := propagateFrames([]Frame{f}, f.calleePort, callee, callPosition, maxDist, ctx, srcRegisterTypes, ConstantArgumentVector{}, reporter)
	if !ok {
		return Frame{}, false
	}

	if f.canonicalNames.IsEmpty() {
		reporter.Warnf("CRTEX frame %v has no canonical names, skipping", f)
		return Frame{}, false
	}

	var instantiated setutil.Set[*ids.CanonicalName]
	f.canonicalNames.ForEach(func(name *ids.CanonicalName) {
		if name.IsTemplate() {
			instantiated = instantiated.With(ctx.CanonicalNames.Instantiate(name, callee))
		} else {
			instantiated = instantiated.With(name)
		}
	})
	if instantiated.IsEmpty() {
		return Frame{}, false
	}

	successor.calleePort = ctx.AccessPaths.CanonicalizeForCrtex(f.calleePort)
	successor.canonicalNames = instantiated
	successor.distance = 0
	return successor, true
}
