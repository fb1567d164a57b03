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

// Reporter is the injected error-reporting trait that keeps the core pure
// (design notes §9: "model as an injected reporter trait/interface"). User
// input errors discovered during propagation (invalid via-ports, missing
// canonical names) are reported through it rather than returned as errors,
// so propagate can keep its "best-effort result, never aborts" contract.
//
// *config.LogGroup satisfies this interface structurally: it already
// exposes Warnf and Errorf with this exact signature.
type Reporter interface {
	Warnf(format string, v ...any)
	Errorf(format string, v ...any)
}

// discardReporter silently drops every report. Used where a caller has not
// wired a real Reporter, e.g. in tests of the pure lattice operations that
// never reach a user-input error path.
type discardReporter struct{}

func (discardReporter) Warnf(string, ...any)  {}
func (discardReporter) Errorf(string, ...any) {}

// DiscardReporter returns a Reporter that ignores every message.
func DiscardReporter() Reporter { return discardReporter{} }
