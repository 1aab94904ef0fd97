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

// Package preproc adapts a tag-processing library to a file pipeline.
//
// A [File] is in one of three content states. [Transform] passes null files
// through, rejects stream files, and for buffered files runs the configured
// operations of a [TagProcessor] in a fixed order:
//
//	select -> replace -> remove
//
// Each operation runs only when its block is set in [Options]. Tags and path
// tests come from the operation block first and the shared defaults second.
// The file path is handed to replace and remove only when a path test is in
// effect.
//
// If select finds no region, replace and remove are skipped. The call fails
// with a [*TagNotFoundError] unless the select block allows errors, in which
// case the returned file is null.
package preproc
