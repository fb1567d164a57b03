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
Package demo loads the small YAML fixtures named by Config.ContextFixtures
(leaf source/sink declarations) and turns them into an initial Taint value
for cmd/explore and cmd/render to start from. It exists only because the
core domain never indexes bytecode on its own (spec.md §1, Non-goals) and the
harnesses around it need something to propagate without a real indexer.
*/
package demo
