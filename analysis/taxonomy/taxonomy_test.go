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

package taxonomy

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type failingReader struct {
	data string
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errors.New("disk failure")
	}
	r.done = true
	return copy(p, r.data), nil
}

func TestClassifyAndDeduplicate(t *testing.T) {
	tax := New()
	input := strings.Join([]string{
		"# comment",
		"",
		"HTML:document.write",
		"HTML:document.write",
		"java.lang.Runtime.exec",
	}, "\n")
	if err := tax.LoadReader(strings.NewReader(input)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(tax.HTMLEntries(), []string{"HTML:document.write"}) {
		t.Errorf("unexpected html set %v", tax.HTMLEntries())
	}
	if !reflect.DeepEqual(tax.NativeEntries(), []string{"java.lang.Runtime.exec"}) {
		t.Errorf("unexpected native set %v", tax.NativeEntries())
	}
	if tax.Len() != 2 {
		t.Errorf("expected 2 definitions, got %d", tax.Len())
	}
}

func TestLoadFile(t *testing.T) {
	tax, err := LoadFile(filepath.Join("testdata", "SourcesAndSinks.txt"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tax.HTML) != 2 {
		t.Errorf("expected 2 html definitions, got %v", tax.HTMLEntries())
	}
	if len(tax.Native) != 3 {
		t.Errorf("expected 3 native definitions, got %v", tax.NativeEntries())
	}
	if !tax.IsHTML("HTML:document.write") || tax.IsNative("HTML:document.write") {
		t.Errorf("trimmed definitions should be classified once, on the web side")
	}
	if !tax.IsNative("java.lang.Runtime.exec") {
		t.Errorf("java.lang.Runtime.exec should be native")
	}
	for def := range tax.HTML {
		if tax.Native[def] {
			t.Errorf("%q is in both sets", def)
		}
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	tax := New()
	for _, line := range []string{"", "   ", "#HTML:x", "%java", "  # indented"} {
		if tax.Add(line) {
			t.Errorf("%q should be skipped", line)
		}
	}
	if tax.Len() != 0 {
		t.Errorf("no definition expected, got %s", tax)
	}
	if !tax.Add("HTMLElement.innerHTML") || !tax.IsHTML("HTMLElement.innerHTML") {
		t.Errorf("any definition starting with HTML is on the web side")
	}
}

func TestLoadAccumulates(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("HTML:a\nnative.a\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("HTML:b\nnative.a\n"), 0600); err != nil {
		t.Fatal(err)
	}
	tax := New()
	if err := tax.Load(a); err != nil {
		t.Fatal(err)
	}
	if err := tax.Load(b); err != nil {
		t.Fatal(err)
	}
	if len(tax.HTML) != 2 || len(tax.Native) != 1 {
		t.Errorf("unexpected sets after two loads: %s", tax)
	}
}

func TestLoadErrorsKeepPartialState(t *testing.T) {
	tax := New()
	err := tax.LoadReader(&failingReader{data: "HTML:first\njava.second\n"})
	if !errors.Is(err, ErrTaxonomyIO) {
		t.Fatalf("expected taxonomy error, got %v", err)
	}
	if !tax.IsHTML("HTML:first") || !tax.IsNative("java.second") {
		t.Errorf("definitions read before the failure should stay: %s", tax)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt")); !errors.Is(err, ErrTaxonomyIO) {
		t.Errorf("expected taxonomy error for a missing file, got %v", err)
	}
}
