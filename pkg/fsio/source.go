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

package fsio

import (
	"context"
	"io"
	"io/fs"
	"iter"
	"os"
	"slices"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/preproc/pkg/preproc"
	"gitlab.com/tozd/go/errors"
)

// 📂 Source reads files matching glob patterns below a base directory
type Source struct {
	Base     string   // Base directory, file paths are relative to it
	Patterns []string // doublestar patterns, "-" reads Stdin
	Stdin    io.Reader

	fsys fs.FS
}

// StdinPattern is the pattern that stands for standard input
const StdinPattern = "-"

// NewStdinFile wraps r as a stream unit; streams are rejected by the plugin
func NewStdinFile(path string, r io.Reader) *preproc.File {
	if path == "" {
		path = StdinPattern
	}
	return preproc.NewStreamFile(path, r)
}

// NewSource creates a source over the local file system
func NewSource(base string, patterns []string) *Source {
	if base == "" {
		base = "."
	}
	return &Source{Base: base, Patterns: patterns, fsys: os.DirFS(base)}
}

// NewSourceFS creates a source over an arbitrary file system
func NewSourceFS(fsys fs.FS, patterns []string) *Source {
	return &Source{Patterns: patterns, fsys: fsys}
}

// Match expands the patterns into a sorted, de-duplicated list of paths
func (s *Source) Match(ctx context.Context) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	seen := map[string]bool{}
	var paths []string
	for _, pattern := range s.Patterns {
		if pattern == StdinPattern {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.Glob(s.fsys, pattern)
		if err != nil {
			return nil, errors.Errorf("globbing %q: %w", pattern, err)
		}
		logger.Debug().Str("pattern", pattern).Int("matches", len(matches)).Msg("expanded pattern")
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// 📥 Files yields one unit per matched path: buffer files for regular files
// and null files for directories. Iteration stops at the first glob error or
// when ctx is done; a read error is yielded with its path and iteration goes on.
func (s *Source) Files(ctx context.Context) iter.Seq2[*preproc.File, error] {
	return func(yield func(*preproc.File, error) bool) {
		paths, err := s.Match(ctx)
		if err != nil {
			yield(nil, err)
			return
		}
		if s.Stdin != nil && slices.Contains(s.Patterns, StdinPattern) {
			if !yield(NewStdinFile(StdinPattern, s.Stdin), nil) {
				return
			}
		}
		for _, p := range paths {
			if ctx.Err() != nil {
				yield(nil, errors.Errorf("reading source: %w", ctx.Err()))
				return
			}
			file, err := s.read(p)
			if !yield(file, err) {
				return
			}
		}
	}
}

func (s *Source) read(path string) (*preproc.File, error) {
	info, err := fs.Stat(s.fsys, path)
	if err != nil {
		return preproc.NewNullFile(path), errors.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return preproc.NewNullFile(path), nil
	}
	content, err := fs.ReadFile(s.fsys, path)
	if err != nil {
		return preproc.NewNullFile(path), errors.Errorf("reading %s: %w", path, err)
	}
	return preproc.NewBufferFile(path, content), nil
}
