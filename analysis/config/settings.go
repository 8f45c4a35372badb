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
	"path"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings are the options that are read from the yaml file given with -config rather than from the command line.
// If some field is not defined in the file, it keeps its default value.
type Settings struct {
	sourceFile string

	// LogLevel controls the verbosity of the tool (1: errors only ... 5: trace)
	LogLevel int `yaml:"log-level"`

	// TaintAnalysisTimeoutSeconds is the timeout of the taint analysis stage. If <= 0, TaintAnalysisTimeout is
	// used.
	TaintAnalysisTimeoutSeconds int `yaml:"taint-analysis-timeout"`

	// Engine lists the command run for each stage of the analysis
	Engine EngineCommands `yaml:"engine"`
}

// EngineCommands are the commands implementing the external stages. Each command is a program followed by its
// arguments. An empty command means the stage is skipped.
type EngineCommands struct {
	BuildBridge    []string `yaml:"build-bridge"`
	TaintAnalysis  []string `yaml:"taint-analysis"`
	MergeTaintFlow []string `yaml:"merge-taint-flow"`
}

// NewDefaultSettings returns the settings used when no settings file is provided.
func NewDefaultSettings() *Settings {
	return &Settings{
		LogLevel:                    int(InfoLevel),
		TaintAnalysisTimeoutSeconds: int(TaintAnalysisTimeout.Seconds()),
	}
}

// LoadSettings reads the settings from the yaml file filename
func LoadSettings(filename string) (*Settings, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read settings file: %w", err)
	}
	return ParseSettings(filename, b)
}

// ParseSettings parses the content b of the settings file filename
func ParseSettings(filename string, b []byte) (*Settings, error) {
	s := NewDefaultSettings()
	if err := yaml.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("could not unmarshal settings file %s: %w", filename, err)
	}
	s.sourceFile = filename

	if s.LogLevel == 0 {
		s.LogLevel = int(InfoLevel)
	}
	if s.LogLevel < int(ErrLevel) || s.LogLevel > int(TraceLevel) {
		return nil, fmt.Errorf("invalid log-level %d in %s: should be between %d and %d",
			s.LogLevel, filename, ErrLevel, TraceLevel)
	}
	if s.TaintAnalysisTimeoutSeconds <= 0 {
		s.TaintAnalysisTimeoutSeconds = int(TaintAnalysisTimeout.Seconds())
	}
	return s, nil
}

// RelPath returns filename path relative to the settings source file
func (s Settings) RelPath(filename string) string {
	if path.IsAbs(filename) || s.sourceFile == "" {
		return filename
	}
	return path.Join(path.Dir(s.sourceFile), filename)
}

// Timeout returns the timeout of the taint analysis stage
func (s Settings) Timeout() time.Duration {
	if s.TaintAnalysisTimeoutSeconds <= 0 {
		return TaintAnalysisTimeout
	}
	return time.Duration(s.TaintAnalysisTimeoutSeconds) * time.Second
}

// Command returns the engine command of stage
func (s Settings) Command(stage Stage) []string {
	switch stage {
	case StageBuildBridge:
		return s.Engine.BuildBridge
	case StageTaintAnalysis:
		return s.Engine.TaintAnalysis
	case StageMergeTaintFlow:
		return s.Engine.MergeTaintFlow
	default:
		return nil
	}
}
