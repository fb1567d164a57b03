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

/*
Package render is a harness-side companion to package taint: it renders a
Taint value as a Graphviz digraph, computes descriptive statistics over its
propagation distances, and tracks the propagate calls a session has made so
that the invariant from spec.md §9 ("Cyclic graphs: none ... the frame graph
is a tree") can be checked at debug time.

None of this is consulted by package taint itself; it exists for cmd/explore
and cmd/render, the demo harnesses built around the core domain.
*/
package render
