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

import "errors"

// Errors returned by Parse. They are always wrapped with the name of the offending option or value; use errors.Is
// to test for them.
var (
	ErrMissingOption   = errors.New("missing required option")
	ErrInvalidPath     = errors.New("invalid path")
	ErrInvalidBoolFlag = errors.New("invalid boolean option")
	ErrInvalidMode     = errors.New("invalid mode")
	ErrUnknownOption   = errors.New("invalid command line")
)
