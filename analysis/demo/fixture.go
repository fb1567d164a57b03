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

package demo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quietflow/taint/analysis/ids"
	"github.com/quietflow/taint/analysis/taint"
)

// Declaration is one leaf frame to seed a demo Taint with: a kind attached
// to an origin method at some access path root.
type Declaration struct {
	Kind     string `yaml:"kind"`
	Origin   string `yaml:"origin"`
	Root     string `yaml:"root"`
	ArgIndex int    `yaml:"arg-index,omitempty"`
}

// Fixture is the top-level shape of a YAML file named by
// Config.ContextFixtures.
type Fixture struct {
	Declarations []Declaration `yaml:"declarations"`
}

// Load reads and parses a fixture file.
func Load(filename string) (Fixture, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return Fixture{}, fmt.Errorf("demo: could not read fixture %s: %w", filename, err)
	}
	var f Fixture
	if err := yaml.Unmarshal(b, &f); err != nil {
		return Fixture{}, fmt.Errorf("demo: could not unmarshal fixture %s: %w", filename, err)
	}
	return f, nil
}

// Default is the fixture cmd/explore and cmd/render fall back to when no
// Config.ContextFixtures entry is given: one declared source and one
// declared sink, loosely modeled on a typical Android taint setup.
func Default() Fixture {
	return Fixture{
		Declarations: []Declaration{
			{
				Kind:   "UserInput",
				Origin: "Lcom/example/MainActivity;.onCreate:(Landroid/os/Bundle;)V",
				Root:   "Return",
			},
			{
				Kind:   "Credential",
				Origin: "Lcom/example/AuthManager;.getToken:()Ljava/lang/String;",
				Root:   "Return",
			},
		},
	}
}

// Build interns every declaration's kind/method/port in ctx and returns the
// Taint made of their leaf frames joined together.
func (f Fixture) Build(ctx *ids.Context) taint.Taint {
	var out taint.Taint
	for _, d := range f.Declarations {
		kind := ctx.Kinds.Intern(d.Kind)
		origin := ctx.Methods.Intern(d.Origin)
		port := ctx.AccessPaths.Intern(rootFromString(d.Root, d.ArgIndex), nil)
		out = out.Add(taint.NewLeafFrame(kind, port, origin))
	}
	return out
}

func rootFromString(s string, argIndex int) ids.Root {
	switch s {
	case "Leaf":
		return ids.Leaf
	case "Anchor":
		return ids.Anchor
	case "Producer":
		return ids.Producer
	case "Argument":
		return ids.Argument(argIndex)
	default:
		return ids.Return
	}
}
