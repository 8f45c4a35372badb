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
	"strings"
	"testing"
)

func validateHint(t *testing.T, errorMsg string, containedHint string) {
	hint := HintForErrorMessage(errorMsg)
	if !strings.Contains(hint, containedHint) {
		t.Fatalf("incorrect hint %q for %q; check and update error message if necessary", hint, errorMsg)
	}
}

func TestHintForMissingOption(t *testing.T) {
	errorMsg := "missing required option: option -source_sink is required in [All] mode"
	validateHint(t, errorMsg, "the -source_sink option must be set")
}

func TestHintForPlatforms(t *testing.T) {
	errorMsg := "invalid path: invalid android platforms path: /opt/sdk"
	validateHint(t, errorMsg, "platforms directory of the android sdk")
}

func TestHintForForeignDirectory(t *testing.T) {
	errorMsg := "working directory is not empty: /home/me has 3 entries and is not a previous workspace"
	validateHint(t, errorMsg, "-force")
}

func TestHintForMissingWorkspace(t *testing.T) {
	errorMsg := "workspace i/o failure: /tmp/out is not a workspace, run the BuildBridge mode first"
	validateHint(t, errorMsg, "run the BuildBridge mode first")
}

func TestHintForBadApk(t *testing.T) {
	errorMsg := "could not extract web assets: archive i/o failure: could not open app.apk: zip: not a valid zip file"
	validateHint(t, errorMsg, "apk file")
}

func TestHintForInputInWorkspace(t *testing.T) {
	errorMsg := "input is inside the working directory: -source_sink /tmp/out/SourcesAndSinks.txt would be deleted"
	validateHint(t, errorMsg, "outside of the -d directory")
}

func TestNoHint(t *testing.T) {
	if hint := HintForErrorMessage("stage failed: merge-taint-flow: exit status 3"); hint != "" {
		t.Errorf("expected no hint, got %q", hint)
	}
}
