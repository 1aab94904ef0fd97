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

// 🔧 SelectOptions configures the select (pick-by-tag) operation
type SelectOptions struct {
	Tag         *string // Overrides Options.Tag
	AllowErrors bool    // Turn a missing tag into a null file instead of an error
}

// 🔧 ReplaceOptions configures the replace-by-tag operation
type ReplaceOptions struct {
	Tag         *string   // Overrides Options.Tag
	Replacement *string   // Passed through as is, nil when unset
	PathTest    *PathTest // Overrides Options.PathTest
}

// 🔧 RemoveOptions configures the remove-by-tag operation
type RemoveOptions struct {
	Tag      *string   // Overrides Options.Tag
	PathTest *PathTest // Overrides Options.PathTest
}

// 📚 Options is the static configuration of the adapter. A nil operation
// block leaves that operation out; a non-nil empty block runs it with the
// shared defaults.
type Options struct {
	Tag      *string   // Shared default tag
	PathTest *PathTest // Shared default path test

	Select  *SelectOptions
	Replace *ReplaceOptions
	Remove  *RemoveOptions
}

// String returns a pointer to s, for filling optional fields
func String(s string) *string {
	return &s
}
