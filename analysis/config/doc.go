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

/*
Package config builds the configuration of a run from the command line.

Use [Parse](args) to validate the arguments and obtain a [Config]. The options that must be present depend on the
[Mode] selected with -m:

	All, BuildBridge:   -d, -i, -sdk, -source_sink
	RunTaintAnalysis:   -d, -sdk
	MergeTaintFlow:     -d

The boolean options -jsa and -pta accept exactly "true" or "false".

Options that are not part of the command line are read from an optional yaml settings file with [LoadSettings].
For example, a valid settings file is as follows:

	log-level: 4
	taint-analysis-timeout: 300
	engine:
	  build-bridge: ["java", "-jar", "engine.jar", "bridge"]
	  taint-analysis: ["java", "-jar", "engine.jar", "taint"]

The package also provides the [LogGroup] used by every stage of the tool.
*/
package config
