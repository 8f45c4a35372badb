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

// Package pipeline runs the stages of the hybrid taint analysis selected by the mode of a run.
//
// The stages themselves are implemented by an external analysis engine, which is reached through the [Engine]
// interface. [CommandEngine] implements the engine by running the commands listed in the settings file.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hybridflow/hybridflow/analysis/config"
	"github.com/hybridflow/hybridflow/analysis/taxonomy"
	"github.com/hybridflow/hybridflow/analysis/workspace"
	"github.com/hybridflow/hybridflow/internal/formatutil"
)

// ErrStageFailed is wrapped by the error returned by Run when a stage fails
var ErrStageFailed = errors.New("stage failed")

// Request is what the engine receives for every stage: the configuration of the run, the sources and sinks, and
// the workspace where the results are written.
type Request struct {
	// RunID identifies the run in the logs, the report and the environment of the engine commands. Run sets a new
	// random identifier when it is empty.
	RunID string

	Config    *config.Config
	Taxonomy  *taxonomy.Taxonomy
	Workspace *workspace.Workspace
}

// Engine implements the stages of the analysis
type Engine interface {
	// BuildBridge extracts the bridges between the native and the web code of the application
	BuildBridge(ctx context.Context, req Request) error

	// RunTaintAnalysis runs the taint analysis of the native and the web code
	RunTaintAnalysis(ctx context.Context, req Request) error

	// MergeTaintFlow merges the taint flows of both sides into hybrid taint flows
	MergeTaintFlow(ctx context.Context, req Request) error
}

// Run runs the stages of the mode of req.Config in order, and stops at the first stage that fails. The error of a
// failed stage is also written to the exception log of the workspace. When req has a workspace, the outcome of the
// stages is written to its SARIF report file.
func Run(ctx context.Context, logger *config.LogGroup, req Request, engine Engine) error {
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}
	stages := req.Config.Mode.Stages()
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.String()
	}
	logger.Infof("run %s, mode %s: running %s\n", req.RunID, req.Config.Mode, strings.Join(names, ", "))

	report, err := NewReport(req.RunID)
	if err != nil {
		return err
	}
	defer writeReport(logger, req.Workspace, report)

	for _, stage := range stages {
		logger.Infof("%s\n", formatutil.Faint("Starting stage "+stage.String()))
		start := time.Now()
		err := runStage(ctx, stage, req, engine)
		duration := time.Since(start)
		report.Record(stage, duration, err)
		if err != nil {
			fmt.Fprintf(req.Workspace.ExceptionLog(), "[%s] %v\n", stage, err)
			logger.Errorf("%s %s: %v\n", formatutil.Red("Stage failed:"), stage, err)
			return fmt.Errorf("%w: %s: %v", ErrStageFailed, stage, err)
		}
		logger.Infof("Stage %s took %3.4f s\n", stage, duration.Seconds())
	}
	logger.Infof("%s\n", formatutil.Green("All stages completed"))
	return nil
}

func writeReport(logger *config.LogGroup, w *workspace.Workspace, report *Report) {
	if w == nil {
		return
	}
	if err := report.WriteFile(w.ReportFile); err != nil {
		logger.Errorf("%v\n", err)
		return
	}
	logger.Debugf("stage report written to %s\n", w.ReportFile)
}

func runStage(ctx context.Context, stage config.Stage, req Request, engine Engine) error {
	switch stage {
	case config.StageBuildBridge:
		return engine.BuildBridge(ctx, req)
	case config.StageTaintAnalysis:
		return engine.RunTaintAnalysis(ctx, req)
	case config.StageMergeTaintFlow:
		return engine.MergeTaintFlow(ctx, req)
	default:
		return fmt.Errorf("unknown stage %s", stage)
	}
}
