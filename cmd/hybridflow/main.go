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

// Command hybridflow prepares and drives the taint analysis of a hybrid android application, whose code is split
// between native (java) code and web content shown in WebViews.
//
// Usage:
//
//	hybridflow -d <dir> -i <apk> -sdk <platforms> -source_sink <file> [-m mode] [-jsa true/false] [-pta true/false]
//
// The run is split in three steps, selected with -m: BuildBridge creates the working directory and extracts the
// bridges between the native and web code, RunTaintAnalysis analyzes both sides, and MergeTaintFlow merges their
// taint flows. The default mode All runs the three steps at once.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/hybridflow/hybridflow/analysis"
	"github.com/hybridflow/hybridflow/analysis/config"
	"github.com/hybridflow/hybridflow/analysis/pipeline"
	"github.com/hybridflow/hybridflow/analysis/taxonomy"
	"github.com/hybridflow/hybridflow/analysis/workspace"
	"github.com/hybridflow/hybridflow/internal/formatutil"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run runs the tool with the command line arguments args and returns the exit status of the process.
// Validation errors exit with 2, failures of the run with 1.
func run(args []string, stdout io.Writer, stderr io.Writer) int {
	// hardcode version flag
	for _, arg := range args {
		if arg == "-"+config.OptVersion || arg == "--"+config.OptVersion {
			fmt.Fprintln(stdout, analysis.Version)
			return 0
		}
	}

	cfg, err := config.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			config.PrintUsage(stdout)
			return 0
		}
		printError(stderr, err)
		config.PrintUsage(stderr)
		return 2
	}

	settings := config.NewDefaultSettings()
	if cfg.SettingsPath != "" {
		settings, err = config.LoadSettings(cfg.SettingsPath)
		if err != nil {
			printError(stderr, err)
			return 2
		}
	}

	logger := config.NewLogGroupFromConfig(cfg, settings)
	logger.SetAllOutput(stdout)
	logger.Infof("%s\n", formatutil.Bold(config.ProjectName+" "+analysis.Version))

	var ws *workspace.Workspace
	if cfg.Mode.NeedsBootstrap() {
		ws, err = workspace.Bootstrap(logger, cfg)
	} else {
		ws, err = workspace.Open(logger, cfg)
	}
	if err != nil {
		logger.Errorf("could not prepare working directory: %v\n", err)
		printError(stderr, err)
		return 1
	}
	defer func() {
		if err := ws.Close(); err != nil {
			printError(stderr, err)
		}
	}()
	logger.Infof("working directory: %s\n", cfg.WorkingDir)

	tax, err := taxonomy.LoadFile(cfg.SourceSinkPath)
	if err != nil {
		fmt.Fprintf(ws.ExceptionLog(), "%v\n", err)
		printError(stderr, err)
		return 1
	}
	logger.Infof("loaded %s\n", tax)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	req := pipeline.Request{Config: cfg, Taxonomy: tax, Workspace: ws}
	if err := pipeline.Run(ctx, logger, req, pipeline.NewCommandEngine(logger, settings)); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", formatutil.Red("error:"), err)
	if hint := HintForErrorMessage(err.Error()); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}
