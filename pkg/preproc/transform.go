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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Transform runs the configured tag operations over a single file and
// returns the resulting file. The input file is never modified.
//
// Null files are returned as is. Stream files fail with
// ErrStreamingNotSupported. When select finds nothing, replace and remove are
// skipped and either a *TagNotFoundError is returned or, with AllowErrors, the
// returned file is null.
func Transform(ctx context.Context, file *File, opts *Options, proc TagProcessor) (*File, error) {
	if file == nil {
		return nil, errors.Errorf("file is required")
	}
	if proc == nil {
		return nil, errors.Errorf("tag processor is required")
	}
	if opts == nil {
		opts = &Options{}
	}

	logger := zerolog.Ctx(ctx).With().Str("path", file.Path).Logger()

	switch file.Mode() {
	case ContentNull:
		logger.Debug().Msg("null content, passing through")
		return file, nil
	case ContentStream:
		return nil, newPluginError(ErrStreamingNotSupported)
	}

	content := Text(string(file.Contents()))

	var selectTag *string
	if opts.Select != nil {
		step := opts.selectStep()
		selectTag = step.Tag
		content = proc.Select(step.Tag, content.String())
		logger.Debug().Str("op", string(OpSelect)).Str("tag", TagString(step.Tag)).Bool("emptied", content.IsEmptied()).Msg("applied tag operation")
	}

	out := file.Clone()

	if content.IsEmptied() {
		if !opts.Select.AllowErrors {
			return nil, newPluginError(&TagNotFoundError{Tag: selectTag})
		}
		logger.Debug().Msg("tag not found, emptying content")
		out.SetNull()
		return out, nil
	}

	if opts.Replace != nil {
		step := opts.replaceStep(file.Path)
		content = Text(proc.Replace(step.Tag, step.Replacement, content.String(), step.Path, step.PathTest))
		logger.Debug().Str("op", string(OpReplace)).Str("tag", TagString(step.Tag)).Msg("applied tag operation")
	}

	if opts.Remove != nil {
		step := opts.removeStep(file.Path)
		content = Text(proc.Remove(step.Tag, content.String(), step.Path, step.PathTest))
		logger.Debug().Str("op", string(OpRemove)).Str("tag", TagString(step.Tag)).Msg("applied tag operation")
	}

	out.SetContents([]byte(content.String()))
	return out, nil
}
