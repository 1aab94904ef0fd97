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
	"context"

	"gitlab.com/tozd/go/errors"
)

// 🔌 Plugin binds adapter options to a tag processor. It holds no mutable
// state and may be shared between goroutines.
type Plugin struct {
	opts Options
	proc TagProcessor
}

// 🏭 New creates a plugin. The options are copied.
func New(opts Options, proc TagProcessor) (*Plugin, error) {
	if proc == nil {
		return nil, errors.Errorf("tag processor is required")
	}
	return &Plugin{opts: opts, proc: proc}, nil
}

// Options returns a copy of the plugin options
func (p *Plugin) Options() Options {
	return p.opts
}

// Process transforms a single file
func (p *Plugin) Process(ctx context.Context, file *File) (*File, error) {
	opts := p.opts
	return Transform(ctx, file, &opts, p.proc)
}
