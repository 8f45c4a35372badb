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

// Package formatutil manipulates string colors and other formatting operations.
package formatutil

import (
	"fmt"
	"os"
	"sync/atomic"

	"golang.org/x/term"
)

var (
	Bold   = Color("\033[1m%s\033[0m")
	Faint  = Color("\033[2m%s\033[0m")
	Red    = Color("\033[1;31m%s\033[0m")
	Green  = Color("\033[1;32m%s\033[0m")
	Yellow = Color("\033[1;33m%s\033[0m")
)

// colorMode is 0 when colors follow the terminal, 1 when forced on, 2 when forced off
var colorMode atomic.Int32

// SetColors forces colors on or off, regardless of standard output being a terminal
func SetColors(on bool) {
	if on {
		colorMode.Store(1)
	} else {
		colorMode.Store(2)
	}
}

// ResetColors restores the default: colors are used when standard output is a terminal and NO_COLOR is not set
func ResetColors() {
	colorMode.Store(0)
}

func colorsEnabled() bool {
	switch colorMode.Load() {
	case 1:
		return true
	case 2:
		return false
	}
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Color returns a function formatting its arguments with colorString when colors are enabled
func Color(colorString string) func(...interface{}) string {
	result := func(args ...interface{}) string {
		if colorsEnabled() {
			return fmt.Sprintf(colorString, fmt.Sprint(args...))
		}
		return fmt.Sprint(args...)
	}
	return result
}

// Sanitize is a simple sanitizer that removes all escape sequences
func Sanitize(s string) string {
	r := fmt.Sprintf("%q", s)
	if len(r) >= 2 {
		return r[1 : len(r)-1]
	}
	return r
}
