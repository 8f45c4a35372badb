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
	"io"
	"log"
	"os"
)

type LogLevel int

const (
	// ErrLevel=1 - the minimum level of logging.
	ErrLevel LogLevel = iota + 1

	// WarnLevel=2 - the level for logging warnings, and errors
	WarnLevel

	// InfoLevel=3 - the level for logging high-level information, results
	InfoLevel

	// DebugLevel=4 - the level for debugging information, e.g. every file extracted from the application package
	DebugLevel

	// TraceLevel=5 - the level for tracing, e.g. every taxonomy line read
	TraceLevel
)

// LogGroup is a set of loggers, one per level, that share a single output.
type LogGroup struct {
	level LogLevel
	out   io.Writer
	trace *log.Logger
	debug *log.Logger
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
}

// NewLogGroup returns a log group printing messages up to level to w. If w is nil, the group prints to standard
// output.
func NewLogGroup(level LogLevel, w io.Writer) *LogGroup {
	if w == nil {
		w = os.Stdout
	}
	if level <= 0 {
		level = InfoLevel
	}
	return &LogGroup{
		level: level,
		out:   w,
		trace: log.New(w, "[TRACE] ", log.LstdFlags),
		debug: log.New(w, "[DEBUG] ", log.LstdFlags),
		info:  log.New(w, "[INFO] ", log.LstdFlags),
		warn:  log.New(w, "[WARN] ", log.LstdFlags),
		err:   log.New(w, "[ERROR] ", log.LstdFlags),
	}
}

// NewLogGroupFromConfig returns a log group for the run configuration: Debug level when the configuration is
// verbose, the settings' level otherwise.
func NewLogGroupFromConfig(c *Config, s *Settings) *LogGroup {
	level := InfoLevel
	if s != nil && s.LogLevel > 0 {
		level = LogLevel(s.LogLevel)
	}
	if c != nil && c.Verbose && level < DebugLevel {
		level = DebugLevel
	}
	return NewLogGroup(level, os.Stdout)
}

// Level returns the maximum level printed by the log group
func (l *LogGroup) Level() LogLevel {
	return l.level
}

// SetLevel sets the maximum level printed by the log group
func (l *LogGroup) SetLevel(level LogLevel) {
	l.level = level
}

// Output returns the writer currently shared by all the loggers of the group
func (l *LogGroup) Output() io.Writer {
	return l.out
}

// SetAllOutput sets all the output writers to the writer provided
func (l *LogGroup) SetAllOutput(w io.Writer) {
	l.out = w
	l.trace.SetOutput(w)
	l.debug.SetOutput(w)
	l.info.SetOutput(w)
	l.warn.SetOutput(w)
	l.err.SetOutput(w)
}

// SetAllFlags sets the flag of all loggers in the log group to the argument provided
func (l *LogGroup) SetAllFlags(x int) {
	l.trace.SetFlags(x)
	l.debug.SetFlags(x)
	l.info.SetFlags(x)
	l.warn.SetFlags(x)
	l.err.SetFlags(x)
}

// Tee duplicates every message of the group into w, in addition to the current output. The returned function
// restores the output the group had before the call.
func (l *LogGroup) Tee(w io.Writer) (restore func()) {
	prev := l.out
	l.SetAllOutput(io.MultiWriter(prev, w))
	return func() { l.SetAllOutput(prev) }
}

// Tracef calls Trace.Printf to print to the trace logger. Arguments are handled in the manner of Printf
func (l *LogGroup) Tracef(format string, v ...any) {
	if l.level >= TraceLevel {
		l.trace.Printf(format, v...)
	}
}

// Debugf calls Debug.Printf to print to the debug logger. Arguments are handled in the manner of Printf
func (l *LogGroup) Debugf(format string, v ...any) {
	if l.level >= DebugLevel {
		l.debug.Printf(format, v...)
	}
}

// Infof calls Info.Printf to print to the info logger. Arguments are handled in the manner of Printf
func (l *LogGroup) Infof(format string, v ...any) {
	if l.level >= InfoLevel {
		l.info.Printf(format, v...)
	}
}

// Warnf calls Warn.Printf to print to the warning logger. Arguments are handled in the manner of Printf
func (l *LogGroup) Warnf(format string, v ...any) {
	if l.level >= WarnLevel {
		l.warn.Printf(format, v...)
	}
}

// Errorf calls Error.Printf to print to the error logger. Arguments are handled in the manner of Printf
func (l *LogGroup) Errorf(format string, v ...any) {
	if l.level >= ErrLevel {
		l.err.Printf(format, v...)
	}
}
