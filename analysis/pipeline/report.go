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
	"fmt"
	"os"
	"time"

	"github.com/hybridflow/hybridflow/analysis"
	"github.com/hybridflow/hybridflow/analysis/config"
	"github.com/owenrumney/go-sarif/v2/sarif"
)

const informationURI = "https://github.com/hybridflow/hybridflow"

// Report records the outcome of every stage of a run in a SARIF log. Each stage is a rule, and each stage that ran
// has one result: a note when it completed, an error when it failed.
type Report struct {
	runID  string
	report *sarif.Report
	run    *sarif.Run
}

// NewReport returns an empty report for the run runID
func NewReport(runID string) (*Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}
	run := sarif.NewRunWithInformationURI(config.ProjectName, informationURI)
	version := analysis.Version
	run.Tool.Driver.SemanticVersion = &version
	report.AddRun(run)
	return &Report{runID: runID, report: report, run: run}, nil
}

// Record adds the outcome of stage to the report. A nil err means the stage completed.
func (r *Report) Record(stage config.Stage, duration time.Duration, err error) {
	rule := r.run.AddRule(stage.String()).WithDescription(stage.Description())
	level := "note"
	msg := fmt.Sprintf("run %s: stage %s completed in %3.4f s", r.runID, stage, duration.Seconds())
	if err != nil {
		level = "error"
		msg = fmt.Sprintf("run %s: stage %s failed after %3.4f s: %v", r.runID, stage, duration.Seconds(), err)
	}
	result := sarif.NewRuleResult(rule.ID).
		WithMessage(sarif.NewTextMessage(msg)).
		WithLevel(level)
	r.run.AddResult(result)
}

// WriteFile writes the report in the file filename, replacing its content
func (r *Report) WriteFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error writing SARIF report: %w", err)
	}
	if err := r.report.PrettyWrite(f); err != nil {
		f.Close()
		return fmt.Errorf("error writing SARIF report: %w", err)
	}
	return f.Close()
}
