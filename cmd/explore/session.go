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
	"github.com/quietflow/taint/analysis/config"
	"github.com/quietflow/taint/analysis/demo"
	"github.com/quietflow/taint/analysis/ids"
	"github.com/quietflow/taint/analysis/render"
	"github.com/quietflow/taint/analysis/taint"
)

// session is the REPL's mutable state: not used to store information about
// an analyzed program (there is none, per spec.md §1 Non-goals), only about
// the in-memory Context and the Taint value built up by commands so far.
type session struct {
	cfg    *config.Config
	logger *config.LogGroup
	ctx    *ids.Context

	current taint.Taint
	graph   *render.CallGraph
}

func newSession(cfg *config.Config, logger *config.LogGroup) *session {
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
	return &session{
		cfg:     cfg,
		logger:  logger,
		ctx:     ctx,
		current: fixture.Build(ctx),
		graph:   render.NewCallGraph(),
	}
}

// recordCallEdges adds one CallGraph edge per frame currently in s.current
// that is about to be propagated into callee: the edge's source is the
// frame's own callee if it already has one (continuing a chain), or else
// each of its origin methods (starting a new chain from a leaf).
func (s *session) recordCallEdges(callee *ids.Method) {
	s.current.ForEachFrame(func(f taint.Frame) {
		if f.Callee() != nil {
			s.graph.AddEdge(f.Callee(), callee)
			return
		}
		f.Origins().ForEach(func(origin *ids.Method) {
			s.graph.AddEdge(origin, callee)
		})
	})
}
