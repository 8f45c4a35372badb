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

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hybridflow/hybridflow/analysis/config"
)

// EnvPrefix is the prefix of the environment variables set for the engine commands
const EnvPrefix = "HYBRIDFLOW_"

// CommandEngine is an Engine running one external command per stage. The commands run in the working directory, with
// the configuration of the run in environment variables (see Environ). The standard output of the build-bridge
// command is written to the bridge stream of the workspace, the standard output of the other commands to the log,
// and the standard error of every command to the exception log.
type CommandEngine struct {
	settings *config.Settings
	logger   *config.LogGroup
}

// NewCommandEngine returns an engine running the commands of settings
func NewCommandEngine(logger *config.LogGroup, settings *config.Settings) *CommandEngine {
	if settings == nil {
		settings = config.NewDefaultSettings()
	}
	return &CommandEngine{settings: settings, logger: logger}
}

// BuildBridge runs the build-bridge command
func (e *CommandEngine) BuildBridge(ctx context.Context, req Request) error {
	return e.run(ctx, config.StageBuildBridge, req, req.Workspace.BridgeOutput())
}

// RunTaintAnalysis runs the taint-analysis command, which is killed if it does not complete before the timeout of
// the settings.
func (e *CommandEngine) RunTaintAnalysis(ctx context.Context, req Request) error {
	ctx, cancel := context.WithTimeout(ctx, e.settings.Timeout())
	defer cancel()
	err := e.run(ctx, config.StageTaintAnalysis, req, e.logger.Output())
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("taint analysis timed out after %s: %w", e.settings.Timeout(), err)
	}
	return err
}

// MergeTaintFlow runs the merge-taint-flow command
func (e *CommandEngine) MergeTaintFlow(ctx context.Context, req Request) error {
	return e.run(ctx, config.StageMergeTaintFlow, req, e.logger.Output())
}

func (e *CommandEngine) run(ctx context.Context, stage config.Stage, req Request, stdout io.Writer) error {
	argv := e.settings.Command(stage)
	if len(argv) == 0 {
		e.logger.Warnf("no engine command set for stage %s in the settings, skipping\n", stage)
		return nil
	}
	prog, err := e.program(argv[0])
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, prog, argv[1:]...)
	cmd.Dir = req.Config.WorkingDir
	cmd.Env = append(os.Environ(), Environ(stage, req)...)
	cmd.Stdout = stdout
	cmd.Stderr = req.Workspace.ExceptionLog()
	e.logger.Debugf("running %s in %s\n", strings.Join(argv, " "), cmd.Dir)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command %q failed: %w", argv[0], err)
	}
	return nil
}

// program returns the path of the program name. Relative paths are relative to the settings file; other names are
// looked up in the PATH.
func (e *CommandEngine) program(name string) (string, error) {
	if !strings.ContainsRune(name, filepath.Separator) {
		return name, nil
	}
	p, err := filepath.Abs(e.settings.RelPath(name))
	if err != nil {
		return "", fmt.Errorf("could not resolve %s: %w", name, err)
	}
	return p, nil
}

// Environ returns the environment variables describing the run to the engine command of stage
func Environ(stage config.Stage, req Request) []string {
	c := req.Config
	vars := map[string]string{
		"RUN_ID":             req.RunID,
		"STAGE":              stage.String(),
		"MODE":               c.Mode.String(),
		"WORKDIR":            c.WorkingDir,
		"APP":                c.AppPath,
		"ANDROID_PLATFORMS":  c.AndroidPlatformDir,
		"SOURCE_SINK":        c.SourceSinkPath,
		"JAVA_DIR":           c.JavaDir,
		"HTML_DIR":           c.HTMLDir,
		"BRIDGE_DIR":         c.BridgeDir,
		"OUTPUT_FORMAT":      c.OutputFormat,
		"JSA":                strconv.FormatBool(c.RunJSA),
		"PTA":                strconv.FormatBool(c.RunPTA),
		"WEBVIEW_METHODS":    strings.Join(config.WebViewMethods, ","),
		"ENTRY_POINTS":       strings.Join(config.PossibleEntries, ","),
		"TAINT_TIMEOUT_SECS": strconv.Itoa(int(config.TaintAnalysisTimeout.Seconds())),
	}
	if w := req.Workspace; w != nil {
		vars["SOURCE_SINK"] = w.SourceSinkCopy
		vars["BRIDGE_FILE"] = w.BridgeFile
		vars["HYBRID"] = strconv.FormatBool(w.IsHybridApp)
	}
	env := make([]string, 0, len(vars))
	for k, v := range vars {
		env = append(env, EnvPrefix+k+"="+v)
	}
	return env
}
