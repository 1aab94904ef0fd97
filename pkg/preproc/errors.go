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

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// PluginName identifies errors raised by the adapter
const PluginName = "preproc"

var (
	// ErrStreamingNotSupported is returned for files in stream mode
	ErrStreamingNotSupported = errors.Base("Streaming not supported")

	// ErrTagNotFound matches every *TagNotFoundError through errors.Is
	ErrTagNotFound = errors.Base("Not found tag")
)

// NoTag stands in for the tag name when no tag was resolved
const NoTag = "<none>"

// ❌ TagNotFoundError is returned when select finds no region and the select
// block does not allow errors
type TagNotFoundError struct {
	Tag *string // Resolved tag, nil when none was configured
}

func (e *TagNotFoundError) Error() string {
	tag := TagString(e.Tag)
	if tag == "" {
		tag = NoTag
	}
	return "Not found tag: " + tag
}

// Is makes errors.Is(err, ErrTagNotFound) hold
func (e *TagNotFoundError) Is(target error) bool {
	return target == ErrTagNotFound
}

// 🔌 PluginError tags an error with the plugin that raised it
type PluginError struct {
	Plugin string
	Err    error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("%s: %v", e.Plugin, e.Err)
}

func (e *PluginError) Unwrap() error {
	return e.Err
}

func newPluginError(err error) error {
	return &PluginError{Plugin: PluginName, Err: err}
}
