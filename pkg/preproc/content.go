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

// 🔄 Content is the text flowing through the tag operations. It is either
// text or the emptied marker returned by a select that found no region.
type Content struct {
	text    string
	emptied bool
}

// Text wraps s as present content
func Text(s string) Content {
	return Content{text: s}
}

// Emptied returns the marker for "no matching region"
func Emptied() Content {
	return Content{emptied: true}
}

// IsEmptied reports whether c is the emptied marker
func (c Content) IsEmptied() bool { return c.emptied }

// String returns the text, or an empty string for the emptied marker
func (c Content) String() string { return c.text }
