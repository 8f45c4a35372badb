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
	"flag"
	"fmt"
	"io"
)

// Names of the command line options
const (
	OptWorkingDir = "d"
	OptApp        = "i"
	OptSDK        = "sdk"
	OptSourceSink = "source_sink"
	OptJSA        = "jsa"
	OptPTA        = "pta"
	OptMode       = "m"
	OptSettings   = "config"
	OptVerbose    = "verbose"
	OptForce      = "force"
	OptVersion    = "version"
)

// Option describes a command line option. Every option takes a string value.
type Option struct {
	Name    string
	ArgName string
	Usage   string
	Default string
}

// Options is the set of options recognized by Parse, in the order of the usage summary
var Options = []Option{
	{Name: OptWorkingDir, ArgName: "dir", Usage: "path to output/working dir"},
	{Name: OptApp, ArgName: "apk", Usage: "path to input target apk file"},
	{Name: OptSDK, ArgName: "sdk platforms", Usage: "path to android sdk platforms home"},
	{Name: OptSourceSink, ArgName: "text file", Usage: "path to sources and sinks file"},
	{Name: OptJSA, ArgName: "true/false",
		Usage: "enable string analysis during building bridges (default is true)", Default: "true"},
	{Name: OptPTA, ArgName: "true/false",
		Usage: "enable points-to analysis during building bridges (default is true)", Default: "true"},
	{Name: OptMode, ArgName: "mode string", Usage: modeDescription(), Default: ModeAll.String()},
	{Name: OptSettings, ArgName: "yaml file", Usage: "path to the settings file (log level, engine commands)"},
}

// Switches are the options that take no value
var Switches = []Option{
	{Name: OptVerbose, Usage: "verbose printing on standard output"},
	{Name: OptForce, Usage: "wipe the working dir even if it does not hold a previous workspace"},
	{Name: OptVersion, Usage: "print the version and exit"},
}

// commandLine holds the raw values of the options set on the command line
type commandLine struct {
	values   map[string]string
	switches map[string]*bool
}

// has returns true if the option was given a non-empty value
func (c commandLine) has(name string) bool {
	return c.values[name] != ""
}

func (c commandLine) isSet(name string) bool {
	b, ok := c.switches[name]
	return ok && *b
}

// newFlagSet returns a flag set declaring every option in Options and Switches. The values set on the command line
// are stored in the returned commandLine once the flag set has parsed the arguments.
func newFlagSet() (*flag.FlagSet, commandLine) {
	fs := flag.NewFlagSet(ProjectName, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cl := commandLine{values: map[string]string{}, switches: map[string]*bool{}}
	for _, opt := range Options {
		name := opt.Name
		fs.Func(name, opt.Usage, func(s string) error {
			cl.values[name] = s
			return nil
		})
	}
	for _, sw := range Switches {
		cl.switches[sw.Name] = fs.Bool(sw.Name, false, sw.Usage)
	}
	return fs, cl
}

// PrintUsage writes the usage summary of the options to w
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s [options]\n", ProjectName)
	fmt.Fprintf(w, "Options:\n")
	for _, opt := range Options {
		fmt.Fprintf(w, "  -%s <%s>: %s", opt.Name, opt.ArgName, opt.Usage)
		if opt.Default != "" {
			fmt.Fprintf(w, " (default: %q)", opt.Default)
		}
		fmt.Fprintln(w)
	}
	for _, sw := range Switches {
		fmt.Fprintf(w, "  -%s: %s\n", sw.Name, sw.Usage)
	}
}
