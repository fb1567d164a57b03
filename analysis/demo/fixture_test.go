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
	"os"
	"path/filepath"
	"testing"

	"github.com/quietflow/taint/analysis/ids"
	"github.com/quietflow/taint/analysis/taint"
)

func TestDefaultFixtureBuildsTwoLeaves(t *testing.T) {
	ctx := ids.NewContext()
	got := Default().Build(ctx)

	count := 0
	got.ForEachFrame(func(_ taint.Frame) { count++ })
	if count != 2 {
		t.Fatalf("frame count = %d, want 2", count)
	}
}

func TestLoadParsesDeclarations(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "fixture.yaml")
	contents := "declarations:\n  - kind: K1\n    origin: M1\n    root: Argument\n    arg-index: 1\n"
	if err := os.WriteFile(p, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(p)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(f.Declarations) != 1 {
		t.Fatalf("len(Declarations) = %d, want 1", len(f.Declarations))
	}
	d := f.Declarations[0]
	if d.Kind != "K1" || d.Origin != "M1" || d.Root != "Argument" || d.ArgIndex != 1 {
		t.Errorf("Declaration = %+v, want {K1 M1 Argument 1}", d)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}
