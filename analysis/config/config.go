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

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultMaxSourceSinkDistance is the distance budget used when a Config does not
// override it. It has no bearing on the core domain's own correctness: the core
// always takes the budget as an explicit argument to Propagate.
const DefaultMaxSourceSinkDistance = 25

var (
	// configFile is the global config file set through SetGlobalConfig.
	configFile string
)

// SetGlobalConfig sets the global config filename.
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file set by SetGlobalConfig.
func LoadGlobal() (*Config, error) {
	return Load(configFile)
}

// Config configures the demo harness (cmd/explore, cmd/render) around the taint
// abstract domain. Nothing in package taint reads from a Config: the core takes
// its inputs (Context, distance budget, register types, constant arguments)
// explicitly from its caller, per the external-interfaces contract.
type Config struct {
	sourceFile string

	// LogLevel controls the verbosity of the demo harness.
	LogLevel int `yaml:"log-level"`

	// MaxSourceSinkDistance is the default distance budget handed to
	// Taint.Propagate by the demo harness.
	MaxSourceSinkDistance int `yaml:"max-source-sink-distance"`

	// ContextFixtures lists paths to small YAML fixtures of leaf source/sink
	// declarations (kind, origin method, access-path root; see
	// demo.Declaration) that cmd/explore and cmd/render load to populate an
	// in-memory ids.Context without needing a real bytecode indexer (which is
	// out of scope for the core, per spec.md §1). Only the first entry is
	// read.
	ContextFixtures []string `yaml:"context-fixtures"`
}

// NewDefault returns a Config with sane defaults.
func NewDefault() *Config {
	return &Config{
		LogLevel:              int(InfoLevel),
		MaxSourceSinkDistance: DefaultMaxSourceSinkDistance,
		ContextFixtures:       nil,
	}
}

// Load reads a YAML configuration from filename.
func Load(filename string) (*Config, error) {
	cfg := NewDefault()
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file %s: %w", filename, err)
	}
	cfg.sourceFile = filename

	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}
	if cfg.MaxSourceSinkDistance <= 0 {
		cfg.MaxSourceSinkDistance = DefaultMaxSourceSinkDistance
	}
	return cfg, nil
}

// SourceFile returns the filename this config was loaded from, or "" if it was
// constructed with NewDefault.
func (c *Config) SourceFile() string {
	return c.sourceFile
}
