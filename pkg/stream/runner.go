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

package stream

import (
	"context"
	"iter"

	"github.com/rs/zerolog"
	"github.com/walteh/preproc/pkg/preproc"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔌 Processor transforms a single file. *preproc.Plugin implements it.
type Processor interface {
	Process(ctx context.Context, file *preproc.File) (*preproc.File, error)
}

// ProcessorFunc adapts a function to a Processor
type ProcessorFunc func(ctx context.Context, file *preproc.File) (*preproc.File, error)

func (f ProcessorFunc) Process(ctx context.Context, file *preproc.File) (*preproc.File, error) {
	return f(ctx, file)
}

// 📋 Result is the outcome for one input file
type Result struct {
	Input  *preproc.File
	Output *preproc.File // nil when Err is set
	Err    error
}

// 🏃 Runner drives files through a processor, one call per file
type Runner struct {
	processor   Processor
	async       bool
	concurrency int
}

// 🏗️ NewRunner creates a new runner. With async set, files are processed
// concurrently, at most concurrency at a time (0 means no limit).
func NewRunner(processor Processor, async bool, concurrency int) *Runner {
	return &Runner{
		processor:   processor,
		async:       async,
		concurrency: concurrency,
	}
}

// 🏃 Run processes every file and returns one result per file, in input
// order. A failing file does not stop the others. The returned error is set
// only when the input sequence itself fails or ctx is cancelled; the results
// gathered so far are returned with it.
func (r *Runner) Run(ctx context.Context, files iter.Seq2[*preproc.File, error]) ([]Result, error) {
	if r.async {
		return r.runAsync(ctx, files)
	}
	return r.runSync(ctx, files)
}

// 🔄 runSync runs files one after the other
func (r *Runner) runSync(ctx context.Context, files iter.Seq2[*preproc.File, error]) ([]Result, error) {
	var results []Result
	for file, err := range files {
		if file == nil {
			return results, sourceError(err)
		}
		if ctx.Err() != nil {
			return results, errors.Errorf("run cancelled: %w", ctx.Err())
		}
		results = append(results, r.process(ctx, file, err))
	}
	return results, nil
}

// ⚡ runAsync runs files concurrently
func (r *Runner) runAsync(ctx context.Context, files iter.Seq2[*preproc.File, error]) ([]Result, error) {
	var g errgroup.Group
	if r.concurrency > 0 {
		g.SetLimit(r.concurrency)
	}

	var (
		pending []*Result
		runErr  error
	)
	for file, err := range files {
		if file == nil {
			runErr = sourceError(err)
			break
		}
		if ctx.Err() != nil {
			runErr = errors.Errorf("run cancelled: %w", ctx.Err())
			break
		}
		slot := &Result{}
		pending = append(pending, slot)
		g.Go(func() error {
			*slot = r.process(ctx, file, err)
			return nil
		})
	}

	// Per-file errors live in the results
	_ = g.Wait()

	results := make([]Result, 0, len(pending))
	for _, res := range pending {
		results = append(results, *res)
	}
	return results, runErr
}

func (r *Runner) process(ctx context.Context, file *preproc.File, readErr error) Result {
	logger := zerolog.Ctx(ctx)

	if readErr != nil {
		logger.Debug().Str("path", file.Path).Err(readErr).Msg("file could not be read")
		return Result{Input: file, Err: readErr}
	}

	out, err := r.processor.Process(ctx, file)
	if err != nil {
		logger.Debug().Str("path", file.Path).Err(err).Msg("file failed")
		return Result{Input: file, Err: errors.Errorf("processing %s: %w", file.Path, err)}
	}
	return Result{Input: file, Output: out}
}

func sourceError(err error) error {
	if err == nil {
		err = errors.Errorf("nil file")
	}
	return errors.Errorf("reading files: %w", err)
}

// Failed returns the results that carry an error
func Failed(results []Result) []Result {
	var out []Result
	for _, res := range results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Files adapts a slice of files to the sequence Run expects
func Files(files ...*preproc.File) iter.Seq2[*preproc.File, error] {
	return func(yield func(*preproc.File, error) bool) {
		for _, f := range files {
			if !yield(f, nil) {
				return
			}
		}
	}
}
