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
Package config manages the configuration of the harness that sits around the
taint abstract domain. It is never consulted by the domain itself: package
taint takes its distance budget and Context explicitly as arguments (see
Taint.Propagate), never from ambient state. Config only feeds the demo driver
in cmd/explore and cmd/render.

Use [Load] to read a YAML configuration file, or [NewDefault] for sane
defaults. A [LogGroup] built with [NewLogGroup] is the concrete Reporter
implementation the rest of the repo logs through.
*/
package config
