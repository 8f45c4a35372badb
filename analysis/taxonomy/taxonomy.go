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

// Package taxonomy reads the sources and sinks definitions consumed by the taint analysis.
//
// A taxonomy file has one definition per line. Empty lines and lines starting with # or % are comments. Definitions
// starting with HTML belong to the web side of the application; the others belong to the native (java) side.
package taxonomy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hybridflow/hybridflow/internal/funcutil"
)

// HTMLPrefix marks the definitions of the web side
const HTMLPrefix = "HTML"

// ErrTaxonomyIO is wrapped by every error returned when the taxonomy file cannot be read
var ErrTaxonomyIO = errors.New("taxonomy i/o failure")

// maxLineSize bounds the length of a definition; signatures are much shorter than this
const maxLineSize = 1024 * 1024

// Taxonomy holds the sources and sinks definitions of both sides of a hybrid application.
// The two sets are disjoint, and a definition appears at most once in a set.
type Taxonomy struct {
	// HTML is the set of definitions of the web side
	HTML map[string]bool

	// Native is the set of definitions of the native side
	Native map[string]bool
}

// New returns an empty taxonomy
func New() *Taxonomy {
	return &Taxonomy{
		HTML:   map[string]bool{},
		Native: map[string]bool{},
	}
}

// LoadFile returns the taxonomy read from filename
func LoadFile(filename string) (*Taxonomy, error) {
	t := New()
	if err := t.Load(filename); err != nil {
		return nil, err
	}
	return t, nil
}

// Load adds the definitions of the file filename to t.
// If reading fails, the definitions read before the failure stay in t.
func (t *Taxonomy) Load(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTaxonomyIO, err)
	}
	defer f.Close()
	if err := t.LoadReader(f); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

// LoadReader adds the definitions read from r to t.
func (t *Taxonomy) LoadReader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		t.Add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrTaxonomyIO, err)
	}
	return nil
}

// Add classifies one line of a taxonomy file. Returns false if the line is a comment or is empty.
func (t *Taxonomy) Add(line string) bool {
	line = strings.TrimSpace(line)
	if IsComment(line) {
		return false
	}
	if strings.HasPrefix(line, HTMLPrefix) {
		t.HTML[line] = true
	} else {
		t.Native[line] = true
	}
	return true
}

// IsComment returns true if the trimmed line is empty or starts with a comment marker
func IsComment(line string) bool {
	return line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "%")
}

// IsHTML returns true if def is a definition of the web side
func (t *Taxonomy) IsHTML(def string) bool {
	return t.HTML[def]
}

// IsNative returns true if def is a definition of the native side
func (t *Taxonomy) IsNative(def string) bool {
	return t.Native[def]
}

// HTMLEntries returns the definitions of the web side in lexicographic order
func (t *Taxonomy) HTMLEntries() []string {
	return funcutil.SetToOrderedSlice(t.HTML)
}

// NativeEntries returns the definitions of the native side in lexicographic order
func (t *Taxonomy) NativeEntries() []string {
	return funcutil.SetToOrderedSlice(t.Native)
}

// Len returns the total number of definitions
func (t *Taxonomy) Len() int {
	return len(t.HTML) + len(t.Native)
}

func (t *Taxonomy) String() string {
	return fmt.Sprintf("%d html and %d native sources and sinks", len(t.HTML), len(t.Native))
}
