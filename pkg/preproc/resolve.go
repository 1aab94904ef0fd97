// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package preproc

// 🏷️ Op names a tag operation
type Op string

const (
	OpSelect  Op = "select"
	OpReplace Op = "replace"
	OpRemove  Op = "remove"
)

// 📋 Step holds the resolved arguments of one configured operation
type Step struct {
	Op          Op
	Tag         *string
	Replacement *string   // replace only
	Path        *string   // replace and remove, nil unless PathTest is set
	PathTest    *PathTest // replace and remove
	AllowErrors bool      // select only
}

// resolveTag picks the operation tag over the shared one. An empty tag is unset.
func resolveTag(op, shared *string) *string {
	if op != nil && *op != "" {
		return op
	}
	if shared != nil && *shared != "" {
		return shared
	}
	return nil
}

func resolvePathTest(op, shared *PathTest) *PathTest {
	if !op.IsEmpty() {
		return op
	}
	if !shared.IsEmpty() {
		return shared
	}
	return nil
}

// resolvePath forwards the file path only when a path test is in effect
func resolvePath(path string, pathTest *PathTest) *string {
	if pathTest == nil {
		return nil
	}
	return &path
}

func (o *Options) selectStep() Step {
	return Step{
		Op:          OpSelect,
		Tag:         resolveTag(o.Select.Tag, o.Tag),
		AllowErrors: o.Select.AllowErrors,
	}
}

func (o *Options) replaceStep(path string) Step {
	pathTest := resolvePathTest(o.Replace.PathTest, o.PathTest)
	return Step{
		Op:          OpReplace,
		Tag:         resolveTag(o.Replace.Tag, o.Tag),
		Replacement: o.Replace.Replacement,
		Path:        resolvePath(path, pathTest),
		PathTest:    pathTest,
	}
}

func (o *Options) removeStep(path string) Step {
	pathTest := resolvePathTest(o.Remove.PathTest, o.PathTest)
	return Step{
		Op:       OpRemove,
		Tag:      resolveTag(o.Remove.Tag, o.Tag),
		Path:     resolvePath(path, pathTest),
		PathTest: pathTest,
	}
}

// 🗺️ Plan returns the resolved arguments of every configured operation, in
// execution order, for a file at path. It does not account for select
// short-circuiting.
func (o *Options) Plan(path string) []Step {
	if o == nil {
		return nil
	}
	var steps []Step
	if o.Select != nil {
		steps = append(steps, o.selectStep())
	}
	if o.Replace != nil {
		steps = append(steps, o.replaceStep(path))
	}
	if o.Remove != nil {
		steps = append(steps, o.removeStep(path))
	}
	return steps
}

// TagString renders a resolved tag, empty when unset
func TagString(tag *string) string {
	if tag == nil {
		return ""
	}
	return *tag
}
