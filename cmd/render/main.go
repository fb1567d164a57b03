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

// render: renders a demo Taint value (spec.md §6) as a Graphviz digraph, or
// prints its distance statistics.
//
// Usage:
//
//	render [-config path.yaml] [-dotout file.dot] [-stats]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quietflow/taint/analysis/config"
	"github.com/quietflow/taint/analysis/demo"
	"github.com/quietflow/taint/analysis/ids"
	"github.com/quietflow/taint/analysis/render"
	"github.com/quietflow/taint/internal/formatutil"
)

var (
	configPath = flag.String("config", "", "config file")
	dotOut     = flag.String("dotout", "", "output file for the Graphviz rendering (no output if not specified)")
	statsFlag  = flag.Bool("stats", false, "print distance statistics to stdout")
)

const usage = `Render a demo Taint value.
Usage:
  render [-config path.yaml] [-dotout file.dot] [-stats]
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg := config.NewDefault()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not load config %s: %v\n", *configPath, err)
			os.Exit(1)
		}
		cfg = loaded
	}
	logger := config.NewLogGroup(cfg)

	ctx := ids.NewContext()
	fixture := demo.Default()
	if len(cfg.ContextFixtures) > 0 {
		loaded, err := demo.Load(cfg.ContextFixtures[0])
		if err != nil {
			logger.Warnf("could not load context fixture %s: %v", cfg.ContextFixtures[0], err)
		} else {
			fixture = loaded
		}
	}
	t := fixture.Build(ctx)

	if *dotOut != "" {
		fmt.Fprintln(os.Stderr, formatutil.Faint("writing "+*dotOut))
		if err := render.WriteDOTToFile(t, *dotOut); err != nil {
			fmt.Fprintf(os.Stderr, "could not write dot file: %v\n", err)
			os.Exit(1)
		}
	}

	if *statsFlag {
		for _, st := range render.DistanceStatsByKind(t) {
			fmt.Printf("%-16s count=%-4d min=%-4.1f max=%-4.1f mean=%-6.2f stddev=%.2f\n",
				st.Kind, st.Count, st.Min, st.Max, st.Mean, st.StdDev)
		}
	}

	if *dotOut == "" && !*statsFlag {
		fmt.Println(t.String())
	}
}
