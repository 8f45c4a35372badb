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

import "time"

const (
	// ProjectName is the name printed in the usage summary
	ProjectName = "HybridFlow"

	// DefaultOutputFormat is the format in which the engine writes the transformed application code
	DefaultOutputFormat = "dex"

	// PlatformsSubdir is appended to the -sdk value in RunTaintAnalysis mode
	PlatformsSubdir = "platforms"

	// TaintAnalysisTimeout bounds the taint analysis stage of the engine. The front end does not enforce it; the
	// command engine does.
	TaintAnalysisTimeout = 180 * time.Second
)

// WebViewMethods are the WebView methods through which native code and web content exchange calls
var WebViewMethods = []string{
	"addJavascriptInterface",
	"loadUrl",
	"evaluateJavascript",
	"loadData",
	"loadDataWithBaseURL",
}

// PossibleEntries are the callback names used to generate the application entry points
var PossibleEntries = []string{
	"onCreate",
	"onStart",
	"onCreateView",
	"onClick",
}
