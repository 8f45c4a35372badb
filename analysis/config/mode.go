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
	"strings"
)

// Mode selects which stages of the analysis a run executes. It is chosen once, when the arguments are parsed.
type Mode int

const (
	// ModeAll runs the three stages at once. This is the default.
	ModeAll Mode = iota
	// ModeBuildBridge extracts the hybrid bridges of the app and creates the workspace
	ModeBuildBridge
	// ModeRunTaintAnalysis runs the taint analysis of the java and HTML sides in an existing workspace
	ModeRunTaintAnalysis
	// ModeMergeTaintFlow merges the taint flows of both sides into hybrid taint flows
	ModeMergeTaintFlow
)

// Modes lists every mode in the order of the usage summary
var Modes = []Mode{ModeBuildBridge, ModeRunTaintAnalysis, ModeMergeTaintFlow, ModeAll}

func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "All"
	case ModeBuildBridge:
		return "BuildBridge"
	case ModeRunTaintAnalysis:
		return "RunTaintAnalysis"
	case ModeMergeTaintFlow:
		return "MergeTaintFlow"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Description returns the one-line description of the mode printed in the usage summary
func (m Mode) Description() string {
	switch m {
	case ModeAll:
		return "Run step 1-3 at once. (default)"
	case ModeBuildBridge:
		return "Step1: extract hybrid bridges of app and generate a HybridFlow directory"
	case ModeRunTaintAnalysis:
		return "Step2: run taint analysis of java and HTML respectively"
	case ModeMergeTaintFlow:
		return "Step3: merge the respective taint flows to hybrid taint flows"
	default:
		return ""
	}
}

// ParseMode returns the mode whose name is s. Names are case-sensitive.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if m.String() == s {
			return m, nil
		}
	}
	return ModeAll, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// RequiredOptions returns the names of the options that must be provided in mode m
func (m Mode) RequiredOptions() []string {
	switch m {
	case ModeAll, ModeBuildBridge:
		return []string{OptWorkingDir, OptApp, OptSDK, OptSourceSink}
	case ModeRunTaintAnalysis:
		return []string{OptWorkingDir, OptSDK}
	case ModeMergeTaintFlow:
		return []string{OptWorkingDir}
	default:
		return nil
	}
}

// NeedsBootstrap returns true if the mode creates a fresh workspace before running its stages
func (m Mode) NeedsBootstrap() bool {
	switch m {
	case ModeAll, ModeBuildBridge:
		return true
	case ModeRunTaintAnalysis, ModeMergeTaintFlow:
		return false
	default:
		return false
	}
}

// Stage is an external analysis stage
type Stage int

const (
	// StageBuildBridge extracts the bridges between the native and web code
	StageBuildBridge Stage = iota
	// StageTaintAnalysis runs the taint analysis on each side
	StageTaintAnalysis
	// StageMergeTaintFlow merges the taint flows of both sides
	StageMergeTaintFlow
)

func (s Stage) String() string {
	switch s {
	case StageBuildBridge:
		return "build-bridge"
	case StageTaintAnalysis:
		return "taint-analysis"
	case StageMergeTaintFlow:
		return "merge-taint-flow"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Description returns what the stage does
func (s Stage) Description() string {
	switch s {
	case StageBuildBridge:
		return "extract the bridges between the native and the web code of the app"
	case StageTaintAnalysis:
		return "run the taint analysis of the java and the HTML code"
	case StageMergeTaintFlow:
		return "merge the taint flows of both sides into hybrid taint flows"
	default:
		return ""
	}
}

// Stages returns the stages to run in mode m, in order
func (m Mode) Stages() []Stage {
	switch m {
	case ModeAll:
		return []Stage{StageBuildBridge, StageTaintAnalysis, StageMergeTaintFlow}
	case ModeBuildBridge:
		return []Stage{StageBuildBridge}
	case ModeRunTaintAnalysis:
		return []Stage{StageTaintAnalysis}
	case ModeMergeTaintFlow:
		return []Stage{StageMergeTaintFlow}
	default:
		return nil
	}
}

func modeDescription() string {
	var b strings.Builder
	b.WriteString("available modes:\n")
	for _, m := range Modes {
		fmt.Fprintf(&b, "[%s] %s\n", m, m.Description())
	}
	return b.String()
}
