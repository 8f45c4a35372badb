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
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hybridflow/hybridflow/analysis/config"
	"github.com/owenrumney/go-sarif/v2/sarif"
)

func readReport(t *testing.T, filename string) sarif.Report {
	t.Helper()
	b, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("could not read report: %v", err)
	}
	var report sarif.Report
	if err := json.Unmarshal(b, &report); err != nil {
		t.Fatalf("could not parse report: %v", err)
	}
	return report
}

func TestReport(t *testing.T) {
	r, err := NewReport("run-1")
	if err != nil {
		t.Fatal(err)
	}
	r.Record(config.StageBuildBridge, time.Second, nil)
	r.Record(config.StageTaintAnalysis, 2*time.Second, errors.New("exit status 1"))
	filename := filepath.Join(t.TempDir(), "report.sarif")
	if err := r.WriteFile(filename); err != nil {
		t.Fatal(err)
	}

	report := readReport(t, filename)
	if len(report.Runs) != 1 {
		t.Fatalf("expected one run, got %d", len(report.Runs))
	}
	run := report.Runs[0]
	if run.Tool.Driver.Name != config.ProjectName {
		t.Errorf("expected tool %s, got %s", config.ProjectName, run.Tool.Driver.Name)
	}
	if len(run.Tool.Driver.Rules) != 2 || len(run.Results) != 2 {
		t.Fatalf("expected 2 rules and 2 results, got %d and %d", len(run.Tool.Driver.Rules), len(run.Results))
	}
	failed := run.Results[1]
	if *failed.RuleID != "taint-analysis" || *failed.Level != "error" {
		t.Errorf("expected failed taint-analysis result, got %s %s", *failed.RuleID, *failed.Level)
	}
	if !strings.Contains(*failed.Message.Text, "run-1") || !strings.Contains(*failed.Message.Text, "exit status 1") {
		t.Errorf("unexpected message %q", *failed.Message.Text)
	}
	if *run.Results[0].Level != "note" {
		t.Errorf("completed stage should be a note, got %s", *run.Results[0].Level)
	}
}

func TestRunWritesReport(t *testing.T) {
	r := newTestRun(t)
	req := r.request()
	req.RunID = "fixed-id"
	engine := &recordingEngine{failAt: config.StageMergeTaintFlow.String()}
	if err := Run(context.Background(), r.logger, req, engine); !errors.Is(err, ErrStageFailed) {
		t.Fatalf("expected ErrStageFailed, got %v", err)
	}
	report := readReport(t, r.ws.ReportFile)
	results := report.Runs[0].Results
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !strings.Contains(*results[0].Message.Text, "fixed-id") {
		t.Errorf("the report should name the run, got %q", *results[0].Message.Text)
	}
	if *results[2].Level != "error" {
		t.Errorf("expected failed merge, got %s", *results[2].Level)
	}
}
