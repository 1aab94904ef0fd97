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

// 🔌 TagProcessor is the tag-processing collaborator. Implementations own the
// tag syntax; a nil tag, replacement, path or path test means "no value" and
// is theirs to interpret. All three methods must be pure.
type TagProcessor interface {
	// Select keeps only the region marked by tag, or returns Emptied when
	// no such region exists.
	Select(tag *string, content string) Content
	// Replace substitutes the regions marked by tag with replacement.
	Replace(tag, replacement *string, content string, path *string, pathTest *PathTest) string
	// Remove deletes the regions marked by tag.
	Remove(tag *string, content string, path *string, pathTest *PathTest) string
}

// Funcs adapts plain functions to a TagProcessor. A nil function leaves the
// content unchanged.
type Funcs struct {
	SelectFunc  func(tag *string, content string) Content
	ReplaceFunc func(tag, replacement *string, content string, path *string, pathTest *PathTest) string
	RemoveFunc  func(tag *string, content string, path *string, pathTest *PathTest) string
}

var _ TagProcessor = Funcs{}

func (f Funcs) Select(tag *string, content string) Content {
	if f.SelectFunc == nil {
		return Text(content)
	}
	return f.SelectFunc(tag, content)
}

func (f Funcs) Replace(tag, replacement *string, content string, path *string, pathTest *PathTest) string {
	if f.ReplaceFunc == nil {
		return content
	}
	return f.ReplaceFunc(tag, replacement, content, path, pathTest)
}

func (f Funcs) Remove(tag *string, content string, path *string, pathTest *PathTest) string {
	if f.RemoveFunc == nil {
		return content
	}
	return f.RemoveFunc(tag, content, path, pathTest)
}

// Identity is a TagProcessor that returns its input untouched
var Identity TagProcessor = Funcs{}
