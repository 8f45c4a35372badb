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

import "regexp"

// Captures a -sdk value that does not exist
var invalidPlatformsPath = regexp.MustCompile("invalid android platforms path")

// Captures a working directory that holds something other than a previous run
var workingDirNotEmpty = regexp.MustCompile("working directory is not empty")

// Captures an input stored in the working directory
var inputInWorkspace = regexp.MustCompile("input is inside the working directory")

// Captures the modes started on a directory where no workspace was created
var notAWorkspace = regexp.MustCompile("is not a workspace")

// Captures an application package that is not a zip archive
var notAnArchive = regexp.MustCompile("zip: not a valid zip file")

// Captures missing options
var missingOption = regexp.MustCompile("option -(\\w+) is required")

// HintForErrorMessage looks for specific error message and returns some other message that might help the user
// resolve the problem.
func HintForErrorMessage(errMsg string) string {
	switch {
	case invalidPlatformsPath.MatchString(errMsg):
		return "-sdk should be the platforms directory of the android sdk, e.g. $ANDROID_HOME/platforms"
	case workingDirNotEmpty.MatchString(errMsg):
		return "choose an empty directory with -d, or use -force to delete its content"
	case inputInWorkspace.MatchString(errMsg):
		return "keep the -i, -sdk and -source_sink inputs outside of the -d directory, which is deleted at every run"
	case notAWorkspace.MatchString(errMsg):
		return "run the BuildBridge mode first with the same -d directory"
	case notAnArchive.MatchString(errMsg):
		return "the -i option should be the path of an apk file"
	}
	if m := missingOption.FindStringSubmatch(errMsg); m != nil {
		return "the -" + m[1] + " option must be set to a non-empty value; " +
			"run with -help to see the options of every mode"
	}
	return ""
}
