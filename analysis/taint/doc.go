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

// Package taint implements the abstract-taint domain: a four-level lattice
// of frames (Taint -> CalleeFrames -> CallPositionFrames -> Frames -> Frame)
// used by an interprocedural data-flow fixpoint to represent sources, sinks
// and propagations at a program point.
//
// The package is thread-compatible but not internally synchronized: a Taint
// value is a plain owned aggregate built from immutable Frames, safe to
// clone cheaply and share structurally, but a single value must not be
// mutated concurrently from more than one goroutine. The fixpoint driver
// that calls this package is expected to give each worker goroutine its own
// Taint values, sharing only the read-mostly ids.Context tables.
//
// Every container type here (Frames, CallPositionFrames, CalleeFrames,
// Taint) provides the same small lattice capability set: Leq, Equal,
// JoinWith, WidenWith, MeetWith, NarrowWith, DifferenceWith. Frame is the
// only leaf value; every container above it recurses pointwise into its
// children.
package taint
