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
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// Names of the subdirectories of the working directory
const (
	JavaSubdir   = "java"
	HTMLSubdir   = "html"
	BridgeSubdir = "bridge"
)

// Config is the configuration of one run, built by Parse from the command line.
// Once returned by Parse, every option required by Mode is non-empty, and in the modes that build a workspace, the
// application, platforms and taxonomy paths exist.
type Config struct {
	// Mode is the mode selected with -m
	Mode Mode

	// AppPath is the path of the application package (apk) to analyze
	AppPath string

	// SourceSinkPath is the path of the sources and sinks taxonomy file
	SourceSinkPath string

	// AndroidPlatformDir is the directory holding the android platform jars. In RunTaintAnalysis mode, this is the
	// platforms subdirectory of the -sdk value.
	AndroidPlatformDir string

	// WorkingDir is the output directory of the run. Workspace bootstrap replaces it with its canonical path.
	WorkingDir string

	// JavaDir, HTMLDir and BridgeDir are derived from WorkingDir
	JavaDir   string
	HTMLDir   string
	BridgeDir string

	// RunJSA enables the string analysis when building bridges
	RunJSA bool

	// RunPTA enables the points-to analysis when building bridges
	RunPTA bool

	// OutputFormat is the format of the transformed application code written in JavaDir
	OutputFormat string

	// SettingsPath is the path of the optional yaml settings file
	SettingsPath string

	// Verbose raises the log level to debug
	Verbose bool

	// Force allows wiping a non-empty working directory that does not hold a previous workspace
	Force bool
}

// NewDefault returns a configuration with the default values of every option.
func NewDefault() *Config {
	return &Config{
		Mode:         ModeAll,
		RunJSA:       true,
		RunPTA:       true,
		OutputFormat: DefaultOutputFormat,
	}
}

// SetWorkingDir sets the working directory of c and the directories derived from it.
func (c *Config) SetWorkingDir(dir string) {
	c.WorkingDir = dir
	c.JavaDir = filepath.Join(dir, JavaSubdir)
	c.HTMLDir = filepath.Join(dir, HTMLSubdir)
	c.BridgeDir = filepath.Join(dir, BridgeSubdir)
}

// Parse validates the command line arguments args against the options and the selected mode. It returns a nil
// configuration and an error wrapping one of ErrMissingOption, ErrInvalidPath, ErrInvalidBoolFlag, ErrInvalidMode or
// ErrUnknownOption when the arguments are not valid. Errors wrapping flag.ErrHelp are returned when -h or -help
// is present.
//
// Parse does not modify the file system.
//
//gocyclo:ignore
func Parse(args []string) (*Config, error) {
	fs, cl := newFlagSet()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnknownOption, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments %v", ErrUnknownOption, fs.Args())
	}

	c := NewDefault()

	if m, ok := cl.values[OptMode]; ok {
		mode, err := ParseMode(m)
		if err != nil {
			return nil, err
		}
		c.Mode = mode
	}

	for _, name := range c.Mode.RequiredOptions() {
		if !cl.has(name) {
			return nil, fmt.Errorf("%w: option -%s is required in [%s] mode", ErrMissingOption, name, c.Mode)
		}
	}

	c.SetWorkingDir(cl.values[OptWorkingDir])

	switch c.Mode {
	case ModeAll, ModeBuildBridge:
		c.AppPath = cl.values[OptApp]
		c.AndroidPlatformDir = cl.values[OptSDK]
		c.SourceSinkPath = cl.values[OptSourceSink]
		if err := checkExists(c.AppPath, "app file"); err != nil {
			return nil, err
		}
		if err := checkExists(c.AndroidPlatformDir, "android platforms"); err != nil {
			return nil, err
		}
		if err := checkExists(c.SourceSinkPath, "SourcesAndSinks file"); err != nil {
			return nil, err
		}
	case ModeRunTaintAnalysis:
		c.AndroidPlatformDir = filepath.Join(cl.values[OptSDK], PlatformsSubdir)
	case ModeMergeTaintFlow:
		// only the working directory is needed
	}

	if v, ok := cl.values[OptJSA]; ok {
		b, err := parseStrictBool(OptJSA, v)
		if err != nil {
			return nil, err
		}
		c.RunJSA = b
	}
	if v, ok := cl.values[OptPTA]; ok {
		b, err := parseStrictBool(OptPTA, v)
		if err != nil {
			return nil, err
		}
		c.RunPTA = b
	}

	c.SettingsPath = cl.values[OptSettings]
	c.Verbose = cl.isSet(OptVerbose)
	c.Force = cl.isSet(OptForce)
	return c, nil
}

// parseStrictBool accepts exactly "true" or "false" as the value of the option name.
func parseStrictBool(name string, value string) (bool, error) {
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %s option should be true or false, got %q", ErrInvalidBoolFlag, name, value)
	}
}

func checkExists(path string, what string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: invalid %s path: %s", ErrInvalidPath, what, path)
	}
	return nil
}
