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

// Package workspace creates the directory tree in which the stages of a run write their results.
//
// A workspace rooted at dir has the following layout:
//
//	dir/java/                 transformed application code
//	dir/html/                 web assets extracted from the application package
//	dir/bridge/bridge.txt     bridges found between the native and web code
//	dir/exception.log         errors reported by the stages
//	dir/analysis.log          copy of the log of the run
//	dir/SourcesAndSinks.txt   copy of the sources and sinks taxonomy
//	dir/report.sarif          outcome of the stages of the last run
package workspace

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hybridflow/hybridflow/analysis/apk"
	"github.com/hybridflow/hybridflow/analysis/config"
	"github.com/hybridflow/hybridflow/internal/funcutil"
)

// Names of the files of the workspace
const (
	BridgeFileName     = "bridge.txt"
	ExceptionLogName   = "exception.log"
	AnalysisLogName    = "analysis.log"
	SourceSinkCopyName = "SourcesAndSinks.txt"
	ReportName         = "report.sarif"
)

var (
	// ErrWorkspaceIO is wrapped by the errors returned when a directory or a file of the workspace cannot be created
	ErrWorkspaceIO = errors.New("workspace i/o failure")

	// ErrWorkspaceNotEmpty is returned when the working directory has content that does not come from a previous run
	ErrWorkspaceNotEmpty = errors.New("working directory is not empty")

	// ErrInputInWorkspace is returned when an input of the run is stored in the working directory, which is wiped
	ErrInputInWorkspace = errors.New("input is inside the working directory")
)

var layoutDirs = []string{config.JavaSubdir, config.HTMLSubdir, config.BridgeSubdir}

// Layout contains the paths of the workspace rooted at Root
type Layout struct {
	Root             string
	JavaDir          string
	HTMLDir          string
	BridgeDir        string
	BridgeFile       string
	ExceptionLogFile string
	AnalysisLog      string
	SourceSinkCopy   string
	ReportFile       string
}

// NewLayout returns the layout of the workspace rooted at root
func NewLayout(root string) Layout {
	bridgeDir := filepath.Join(root, config.BridgeSubdir)
	return Layout{
		Root:             root,
		JavaDir:          filepath.Join(root, config.JavaSubdir),
		HTMLDir:          filepath.Join(root, config.HTMLSubdir),
		BridgeDir:        bridgeDir,
		BridgeFile:       filepath.Join(bridgeDir, BridgeFileName),
		ExceptionLogFile: filepath.Join(root, ExceptionLogName),
		AnalysisLog:      filepath.Join(root, AnalysisLogName),
		SourceSinkCopy:   filepath.Join(root, SourceSinkCopyName),
		ReportFile:       filepath.Join(root, ReportName),
	}
}

// Workspace is the workspace of a run, with its three output streams open.
type Workspace struct {
	Layout

	// AssetCount is the number of web assets extracted from the application package
	AssetCount int

	// IsHybridApp is false when the application package has no web asset
	IsHybridApp bool

	logger     *config.LogGroup
	bridge     *os.File
	exceptions *os.File
	analysis   *os.File
	restoreLog func()
}

// Bootstrap creates a fresh workspace in the working directory of cfg.
//
// The working directory is resolved to its canonical path, and cfg is updated with that path. The previous content
// of the directory is deleted; if the directory is not empty and does not hold the layout of a previous workspace,
// Bootstrap refuses to delete it unless cfg.Force is set. An input of cfg stored in the working directory is an
// ErrInputInWorkspace error, raised before anything is deleted. Bootstrap then creates the layout, copies the taxonomy
// file, opens the output streams, tees the log of logger into the analysis log, and extracts the web assets of the
// application package into the html directory.
//
// Bootstrap stops at the first failure and does not remove what it has already created. The streams opened before
// the failure are closed.
func Bootstrap(logger *config.LogGroup, cfg *config.Config) (*Workspace, error) {
	root, err := filepath.Abs(cfg.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("%w: could not resolve %s: %v", ErrWorkspaceIO, cfg.WorkingDir, err)
	}
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("%w: could not create %s: %v", ErrWorkspaceIO, root, err)
	}
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("%w: could not resolve %s: %v", ErrWorkspaceIO, cfg.WorkingDir, err)
	}
	cfg.SetWorkingDir(root)

	if err := checkInputsOutside(root, cfg); err != nil {
		return nil, err
	}
	if err := clean(logger, root, cfg.Force); err != nil {
		return nil, err
	}

	w := &Workspace{Layout: NewLayout(root), logger: logger}
	for _, dir := range []string{w.JavaDir, w.HTMLDir, w.BridgeDir} {
		if err := os.Mkdir(dir, 0750); err != nil {
			return nil, fmt.Errorf("%w: could not create %s: %v", ErrWorkspaceIO, dir, err)
		}
	}

	if err := copyFile(cfg.SourceSinkPath, w.SourceSinkCopy); err != nil {
		return nil, err
	}

	if err := w.openStreams(os.O_TRUNC); err != nil {
		w.Close()
		return nil, err
	}

	n, err := apk.ExtractAssets(logger, cfg.AppPath, w.HTMLDir)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("could not extract web assets: %w", err)
	}
	w.AssetCount = n
	w.IsHybridApp = n > 0
	if !w.IsHybridApp {
		logger.Warnf("no web asset found in %s, the app may not be a hybrid app\n", cfg.AppPath)
	} else {
		logger.Infof("extracted %d web assets to %s\n", n, w.HTMLDir)
	}
	return w, nil
}

// Open opens the workspace created by a previous run in the working directory of cfg. The output streams are opened
// for appending. cfg is updated with the canonical path of the working directory, and its taxonomy path is set to the
// copy stored in the workspace when it is empty.
func Open(logger *config.LogGroup, cfg *config.Config) (*Workspace, error) {
	root, err := filepath.Abs(cfg.WorkingDir)
	if err == nil {
		root, err = filepath.EvalSymlinks(root)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not resolve %s: %v", ErrWorkspaceIO, cfg.WorkingDir, err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read %s: %v", ErrWorkspaceIO, root, err)
	}
	if !isPreviousWorkspace(entries) {
		return nil, fmt.Errorf("%w: %s is not a workspace, run the %s mode first",
			ErrWorkspaceIO, root, config.ModeBuildBridge)
	}
	cfg.SetWorkingDir(root)

	w := &Workspace{Layout: NewLayout(root), logger: logger}
	if cfg.SourceSinkPath == "" {
		cfg.SourceSinkPath = w.SourceSinkCopy
	}
	if err := w.openStreams(os.O_APPEND); err != nil {
		w.Close()
		return nil, err
	}
	w.AssetCount = countFiles(w.HTMLDir)
	w.IsHybridApp = w.AssetCount > 0
	return w, nil
}

// checkInputsOutside returns an error if the application package, the platforms directory or the taxonomy file of
// cfg is root or is stored under root.
func checkInputsOutside(root string, cfg *config.Config) error {
	inputs := []struct{ option, path string }{
		{config.OptApp, cfg.AppPath},
		{config.OptSDK, cfg.AndroidPlatformDir},
		{config.OptSourceSink, cfg.SourceSinkPath},
	}
	for _, in := range inputs {
		if in.path == "" {
			continue
		}
		p, err := filepath.Abs(in.path)
		if err == nil {
			if resolved, err := filepath.EvalSymlinks(p); err == nil {
				p = resolved
			}
		}
		rel, err := filepath.Rel(root, p)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		return fmt.Errorf("%w: -%s %s would be deleted with the content of %s", ErrInputInWorkspace,
			in.option, in.path, root)
	}
	return nil
}

// clean deletes the content of root.
func clean(logger *config.LogGroup, root string, force bool) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("%w: could not read %s: %v", ErrWorkspaceIO, root, err)
	}
	if len(entries) == 0 {
		return nil
	}
	if !force && !isPreviousWorkspace(entries) {
		return fmt.Errorf("%w: %s has %d entries and is not a previous workspace, use -%s to delete them",
			ErrWorkspaceNotEmpty, root, len(entries), config.OptForce)
	}
	logger.Warnf("deleting the content of %s (%d entries)\n", root, len(entries))
	for _, entry := range entries {
		p := filepath.Join(root, entry.Name())
		logger.Debugf("deleting %s\n", p)
		if err := os.RemoveAll(p); err != nil {
			return fmt.Errorf("%w: could not delete %s: %v", ErrWorkspaceIO, p, err)
		}
	}
	return nil
}

// isPreviousWorkspace returns true if the entries of a directory contain the directories of a workspace layout
func isPreviousWorkspace(entries []os.DirEntry) bool {
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	return !funcutil.Exists(layoutDirs, func(d string) bool { return !funcutil.Contains(dirs, d) })
}

func countFiles(dir string) int {
	n := 0
	filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return nil
	})
	return n
}

func (w *Workspace) openStreams(mode int) error {
	var err error
	flags := os.O_CREATE | os.O_WRONLY | mode
	if w.bridge, err = os.OpenFile(w.BridgeFile, flags, 0640); err != nil {
		return fmt.Errorf("%w: could not open %s: %v", ErrWorkspaceIO, w.BridgeFile, err)
	}
	if w.exceptions, err = os.OpenFile(w.ExceptionLogFile, flags, 0640); err != nil {
		return fmt.Errorf("%w: could not open %s: %v", ErrWorkspaceIO, w.ExceptionLogFile, err)
	}
	if w.analysis, err = os.OpenFile(w.AnalysisLog, flags, 0640); err != nil {
		return fmt.Errorf("%w: could not open %s: %v", ErrWorkspaceIO, w.AnalysisLog, err)
	}
	w.restoreLog = w.logger.Tee(w.analysis)
	return nil
}

// BridgeOutput returns the stream of the bridges found in the application. If the workspace has not been created,
// the bridges are printed on standard output.
func (w *Workspace) BridgeOutput() io.Writer {
	if w == nil || w.bridge == nil {
		warnFallback(w, "bridge printer is nil, use stdout instead")
		return os.Stdout
	}
	return w.bridge
}

// ExceptionLog returns the stream of the errors reported by the stages. If the workspace has not been created, the
// errors are printed on standard output.
func (w *Workspace) ExceptionLog() io.Writer {
	if w == nil || w.exceptions == nil {
		warnFallback(w, "log printer is nil, use stdout instead")
		return os.Stdout
	}
	return w.exceptions
}

func warnFallback(w *Workspace, msg string) {
	if w != nil && w.logger != nil {
		w.logger.Warnf("%s\n", msg)
		return
	}
	log.Printf("[WARN] %s\n", msg)
}

// Close closes the output streams and stops copying the log into the analysis log. It returns the first error
// encountered.
func (w *Workspace) Close() error {
	if w == nil {
		return nil
	}
	if w.restoreLog != nil {
		w.restoreLog()
		w.restoreLog = nil
	}
	var errs []error
	for _, f := range []**os.File{&w.bridge, &w.exceptions, &w.analysis} {
		if *f == nil {
			continue
		}
		if err := (*f).Close(); err != nil {
			errs = append(errs, err)
		}
		*f = nil
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %v", ErrWorkspaceIO, errs[0])
	}
	return nil
}

// copyFile copies the file src to dst
func copyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("%w: could not open %s: %v", ErrWorkspaceIO, src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%w: could not create %s: %v", ErrWorkspaceIO, dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("%w: could not copy %s to %s: %v", ErrWorkspaceIO, src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: could not copy %s to %s: %v", ErrWorkspaceIO, src, dst, err)
	}
	return nil
}
