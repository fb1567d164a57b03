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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/quietflow/taint/analysis/ids"
	"github.com/quietflow/taint/analysis/render"
	"github.com/quietflow/taint/analysis/taint"
	"github.com/quietflow/taint/internal/formatutil"
)

func rootFromArg(s string, argIndex int) ids.Root {
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

// command implements one REPL verb. args excludes the command name itself.
// It returns true if the REPL should stop.
type command func(s *session, args []string, out io.Writer) bool

var commands = map[string]command{
	"help":      cmdHelp,
	"print":     cmdPrint,
	"json":      cmdJSON,
	"stats":     cmdStats,
	"dot":       cmdDot,
	"propagate": cmdPropagate,
	"check":     cmdCheck,
	"exit":      cmdExit,
	"quit":      cmdExit,
}

func cmdHelp(_ *session, _ []string, out io.Writer) bool {
	fmt.Fprint(out, `Commands:
  help                                       show this message
  print                                      print the current Taint
  json                                       print the current Taint as JSON
  stats                                      print distance statistics per kind
  dot <file>                                 write a Graphviz rendering of the current Taint
  propagate <callee> <root> [arg] <line>     propagate the current Taint to <callee> at <root> (arg index if root=Argument) and call position <line>
  check                                      check the recorded call graph for cycles
  exit | quit                                leave the REPL
`)
	return false
}

func cmdPrint(s *session, _ []string, out io.Writer) bool {
	fmt.Fprintln(out, s.current.String())
	return false
}

func cmdJSON(s *session, _ []string, out io.Writer) bool {
	b, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		fmt.Fprintln(out, formatutil.Red("error:", err))
		return false
	}
	fmt.Fprintln(out, string(b))
	return false
}

func cmdStats(s *session, _ []string, out io.Writer) bool {
	stats := render.DistanceStatsByKind(s.current)
	if len(stats) == 0 {
		fmt.Fprintln(out, "no frames")
		return false
	}
	for _, st := range stats {
		fmt.Fprintf(out, "%-16s count=%-4d min=%-4.1f max=%-4.1f mean=%-6.2f stddev=%.2f\n",
			st.Kind, st.Count, st.Min, st.Max, st.Mean, st.StdDev)
	}
	return false
}

func cmdDot(s *session, args []string, out io.Writer) bool {
	if len(args) != 1 {
		fmt.Fprintln(out, formatutil.Red("usage: dot <file>"))
		return false
	}
	if err := render.WriteDOTToFile(s.current, args[0]); err != nil {
		fmt.Fprintln(out, formatutil.Red("error:", err))
		return false
	}
	fmt.Fprintln(out, formatutil.Green("wrote", args[0]))
	return false
}

func cmdPropagate(s *session, args []string, out io.Writer) bool {
	if len(args) < 3 {
		fmt.Fprintln(out, formatutil.Red("usage: propagate <callee> <root> [arg-index] <line>"))
		return false
	}

	calleeSig, rootStr := args[0], args[1]
	rest := args[2:]

	argIndex := 0
	if rootStr == "Argument" {
		if len(rest) < 2 {
			fmt.Fprintln(out, formatutil.Red("usage: propagate <callee> Argument <arg-index> <line>"))
			return false
		}
		i, err := strconv.Atoi(rest[0])
		if err != nil {
			fmt.Fprintln(out, formatutil.Red("invalid arg-index:", err))
			return false
		}
		argIndex = i
		rest = rest[1:]
	}
	if len(rest) != 1 {
		fmt.Fprintln(out, formatutil.Red("usage: propagate <callee> <root> [arg-index] <line>"))
		return false
	}
	line, err := strconv.Atoi(rest[0])
	if err != nil {
		fmt.Fprintln(out, formatutil.Red("invalid line:", err))
		return false
	}

	callee := s.ctx.Methods.Intern(calleeSig)
	root := rootFromArg(rootStr, argIndex)
	calleePort := s.ctx.AccessPaths.Intern(root, nil)
	callPosition := s.ctx.Positions.Intern(line, 0, 0)

	s.recordCallEdges(callee)
	s.current = s.current.Propagate(callee, calleePort, callPosition, s.cfg.MaxSourceSinkDistance,
		taint.FeatureSet{}, s.ctx, nil, nil, s.logger)

	fmt.Fprintln(out, s.current.String())
	return false
}

func cmdCheck(s *session, _ []string, out io.Writer) bool {
	clusters := s.graph.RecursiveClusters()
	if len(clusters) == 0 {
		fmt.Fprintln(out, formatutil.Green("acyclic"))
		return false
	}
	fmt.Fprintln(out, formatutil.Red("recursive clusters found:"))
	for _, cluster := range clusters {
		fmt.Fprintln(out, "  "+render.FormatCycle(cluster))
	}
	cycles := s.graph.CheckAcyclic()
	for _, cycle := range cycles {
		fmt.Fprintln(out, "  cycle: "+render.FormatCycle(cycle))
	}
	return false
}

func cmdExit(_ *session, _ []string, out io.Writer) bool {
	fmt.Fprintln(out, "bye")
	return true
}
