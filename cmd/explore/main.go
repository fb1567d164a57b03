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

// explore is an interactive REPL over the taint abstract domain: it loads a
// demo Context and seed Taint (spec.md §1, §6) and lets a user step
// propagate/print/render commands against them, without needing a real
// bytecode indexer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quietflow/taint/analysis/config"
	"github.com/quietflow/taint/internal/formatutil"
)

var configPath = flag.String("config", "", "path to a YAML config file")

const usage = `explore: an interactive REPL over the taint abstract domain.
Usage:
  explore [-config path.yaml]
Type "help" at the prompt for a list of commands.
`

func main() {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg := config.NewDefault()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	logger := config.NewLogGroup(cfg)

	sess := newSession(cfg, logger)
	fmt.Println(formatutil.Faint("taint explorer ready: " + sess.current.String()))
	fmt.Println(formatutil.Faint(`type "help" for commands`))
	runREPL(sess, os.Stdin, os.Stdout)
}
