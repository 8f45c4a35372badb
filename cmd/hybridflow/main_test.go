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

package main

import (
	"archive/zip"
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/hybridflow/hybridflow/analysis"
	"github.com/hybridflow/hybridflow/analysis/workspace"
	"github.com/hybridflow/hybridflow/internal/formatutil"
)

func runTool(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	formatutil.SetColors(false)
	defer formatutil.ResetColors()
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runTool("-m", "All", "-version")
	if code != 0 || strings.TrimSpace(stdout) != analysis.Version {
		t.Errorf("expected version %s and status 0, got %q and %d", analysis.Version, stdout, code)
	}
}

func TestHelp(t *testing.T) {
	code, stdout, _ := runTool("-help")
	if code != 0 {
		t.Errorf("expected status 0, got %d", code)
	}
	for _, opt := range []string{"-d", "-i", "-sdk", "-source_sink", "-jsa", "-pta", "-m"} {
		if !strings.Contains(stdout, opt+" ") {
			t.Errorf("usage should list %s, got %q", opt, stdout)
		}
	}
}

func TestValidationFailure(t *testing.T) {
	code, stdout, stderr := runTool("-m", "MergeTaintFlow")
	if code != 2 {
		t.Errorf("expected status 2, got %d", code)
	}
	if stdout != "" {
		t.Errorf("nothing should be printed on stdout, got %q", stdout)
	}
	for _, expected := range []string{"error: ", "option -d is required", "Hint: ", "usage: "} {
		if !strings.Contains(stderr, expected) {
			t.Errorf("stderr should contain %q, got %q", expected, stderr)
		}
	}
}

func TestMergeWithoutWorkspace(t *testing.T) {
	dir := t.TempDir()
	code, _, stderr := runTool("-m", "MergeTaintFlow", "-d", dir)
	if code != 1 {
		t.Errorf("expected status 1, got %d", code)
	}
	if !strings.Contains(stderr, "run the BuildBridge mode first") {
		t.Errorf("expected hint, got %q", stderr)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("the directory should not be modified, found %d entries", len(entries))
	}
}

func writeApk(t *testing.T, name string, files map[string]string) {
	t.Helper()
	f, err := os.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	for entry, content := range files {
		w, err := zw.Create(entry)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFullRun(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("engine commands are shell scripts")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	app := filepath.Join(dir, "app.apk")
	writeApk(t, app, map[string]string{
		"AndroidManifest.xml":   "<manifest/>",
		"classes.dex":           "dex",
		"assets/www/index.html": "<html><script src=\"app.js\"></script></html>",
		"assets/www/app.js":     "Android.send(document.cookie)",
		"assets/www/style.css":  "body {}",
	})
	sdk := filepath.Join(dir, "platforms")
	if err := os.Mkdir(sdk, 0750); err != nil {
		t.Fatal(err)
	}
	sourceSink := filepath.Join(dir, "SourcesAndSinks.txt")
	taxonomy := "% sources\nHTML<input: value> -> _SOURCE_\n<android.webkit.WebView: void loadUrl(java.lang.String)> -> _SINK_\n"
	if err := os.WriteFile(sourceSink, []byte(taxonomy), 0600); err != nil {
		t.Fatal(err)
	}
	settings := filepath.Join(dir, "settings.yaml")
	yaml := `engine:
  build-bridge: ["sh", "-c", "echo bridge for $HYBRIDFLOW_APP"]
  taint-analysis: ["sh", "-c", "echo $HYBRIDFLOW_STAGE >> stages.txt"]
  merge-taint-flow: ["sh", "-c", "echo $HYBRIDFLOW_STAGE >> stages.txt"]
`
	if err := os.WriteFile(settings, []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")

	code, stdout, stderr := runTool("-d", out, "-i", app, "-sdk", sdk, "-source_sink", sourceSink,
		"-config", settings)
	if code != 0 {
		t.Fatalf("expected status 0, got %d\nstdout: %s\nstderr: %s", code, stdout, stderr)
	}
	if !strings.Contains(stdout, "1 html and 1 native sources and sinks") {
		t.Errorf("taxonomy should be logged, got %q", stdout)
	}

	layout := workspace.NewLayout(out)
	bridge, err := os.ReadFile(layout.BridgeFile)
	if err != nil || string(bridge) != "bridge for "+app+"\n" {
		t.Errorf("unexpected bridge file %q (%v)", bridge, err)
	}
	for _, asset := range []string{"assets/www/index.html", "assets/www/app.js"} {
		if _, err := os.Stat(filepath.Join(layout.HTMLDir, filepath.FromSlash(asset))); err != nil {
			t.Errorf("asset %s should be extracted: %v", asset, err)
		}
	}
	if _, err := os.Stat(filepath.Join(layout.HTMLDir, "assets", "www", "style.css")); err == nil {
		t.Errorf("style.css should not be extracted")
	}

	if _, err := os.Stat(layout.ReportFile); err != nil {
		t.Errorf("the stage report should be written: %v", err)
	}

	// run the last step again on the existing workspace
	code, stdout, stderr = runTool("-m", "MergeTaintFlow", "-d", out, "-config", settings)
	if code != 0 {
		t.Fatalf("expected status 0, got %d\nstdout: %s\nstderr: %s", code, stdout, stderr)
	}
	stages, err := os.ReadFile(filepath.Join(out, "stages.txt"))
	if err != nil {
		t.Fatal(err)
	}
	expected := "taint-analysis\nmerge-taint-flow\nmerge-taint-flow\n"
	if string(stages) != expected {
		t.Errorf("expected stages %q, got %q", expected, stages)
	}
	log, err := os.ReadFile(layout.AnalysisLog)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Count(string(log), "Starting stage merge-taint-flow") != 2 {
		t.Errorf("the analysis log should be appended by the second run, got %q", log)
	}
}
