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
	"sync"

	"github.com/rs/zerolog"
)

// 📞 Call records one invocation of a tag processor
type Call struct {
	Op          Op
	Tag         *string
	Replacement *string
	Path        *string
	PathTest    *PathTest
	Input       string
	Output      Content
}

// 🔍 Tracer wraps a TagProcessor and records every call made through it
type Tracer struct {
	next   TagProcessor
	logger zerolog.Logger

	mu    sync.Mutex
	calls []Call
}

var _ TagProcessor = (*Tracer)(nil)

// NewTracer creates a tracer around next. Calls are logged at debug level.
func NewTracer(next TagProcessor, logger zerolog.Logger) *Tracer {
	return &Tracer{next: next, logger: logger}
}

func (t *Tracer) record(c Call) {
	t.mu.Lock()
	t.calls = append(t.calls, c)
	t.mu.Unlock()

	t.logger.Debug().
		Str("op", string(c.Op)).
		Str("tag", TagString(c.Tag)).
		Bool("has_path", c.Path != nil).
		Bool("emptied", c.Output.IsEmptied()).
		Msg("tag processor call")
}

func (t *Tracer) Select(tag *string, content string) Content {
	out := t.next.Select(tag, content)
	t.record(Call{Op: OpSelect, Tag: tag, Input: content, Output: out})
	return out
}

func (t *Tracer) Replace(tag, replacement *string, content string, path *string, pathTest *PathTest) string {
	out := t.next.Replace(tag, replacement, content, path, pathTest)
	t.record(Call{Op: OpReplace, Tag: tag, Replacement: replacement, Path: path, PathTest: pathTest, Input: content, Output: Text(out)})
	return out
}

func (t *Tracer) Remove(tag *string, content string, path *string, pathTest *PathTest) string {
	out := t.next.Remove(tag, content, path, pathTest)
	t.record(Call{Op: OpRemove, Tag: tag, Path: path, PathTest: pathTest, Input: content, Output: Text(out)})
	return out
}

// Calls returns the calls recorded so far
func (t *Tracer) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Call(nil), t.calls...)
}

// CallsFor returns the recorded calls of a single operation
func (t *Tracer) CallsFor(op Op) []Call {
	var out []Call
	for _, c := range t.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset drops the recorded calls
func (t *Tracer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = nil
}
