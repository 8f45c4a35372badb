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

package funcutil

import (
	"reflect"
	"testing"
)

func TestSetToOrderedSlice(t *testing.T) {
	set := map[string]bool{"b": true, "a": true, "c": false}
	got := SetToOrderedSlice(set)
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("expected [a b], got %v", got)
	}
	if len(SetToOrderedSlice(map[int]bool{})) != 0 {
		t.Errorf("empty set should give an empty slice")
	}
}

func TestContains(t *testing.T) {
	if !Contains([]string{"d", "sdk"}, "sdk") || Contains([]string{"d"}, "i") {
		t.Errorf("Contains is wrong")
	}
	if !Exists([]int{1, 2, 3}, func(x int) bool { return x > 2 }) {
		t.Errorf("Exists should find 3")
	}
}
