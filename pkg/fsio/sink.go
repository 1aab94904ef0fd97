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
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/preproc/pkg/preproc"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus is the outcome of writing a file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // File doesn't exist in destination
	StatusModified             // File exists but content differs
	StatusUnchanged            // File exists and content matches
	StatusSkipped              // File has no content to write
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// 💾 Sink writes buffer files below a destination directory
type Sink struct {
	Dest string
}

// NewSink creates a sink writing to dest
func NewSink(dest string) *Sink {
	return &Sink{Dest: filepath.Clean(dest)}
}

func (s *Sink) absPath(path string) string {
	return filepath.Join(s.Dest, filepath.FromSlash(path))
}

// Write stores the file content at its path below Dest. Null files are
// skipped, stream files are rejected.
func (s *Sink) Write(ctx context.Context, file *preproc.File) (FileStatus, error) {
	logger := zerolog.Ctx(ctx)

	switch {
	case file.IsNull():
		logger.Debug().Str("path", file.Path).Msg("skipping file without content")
		return StatusSkipped, nil
	case file.IsStream():
		return StatusUnknown, errors.Errorf("writing %s: %w", file.Path, preproc.ErrStreamingNotSupported)
	}

	absPath := s.absPath(file.Path)
	content := file.Contents()

	status := StatusNew
	if current, err := os.ReadFile(absPath); err == nil {
		if bytes.Equal(current, content) {
			return StatusUnchanged, nil
		}
		status = StatusModified
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return StatusUnknown, errors.Errorf("creating parent directories: %w", err)
	}

	if err := writeFileAtomic(absPath, content); err != nil {
		return StatusUnknown, errors.Errorf("writing %s: %w", file.Path, err)
	}

	logger.Debug().Str("path", file.Path).Str("status", status.String()).Int("size", len(content)).Msg("wrote file")
	return status, nil
}

// Remove deletes a previous output for path, used when a unit ends up without
// content. It reports whether a file was removed.
func (s *Sink) Remove(ctx context.Context, path string) (bool, error) {
	absPath := s.absPath(path)
	if err := os.Remove(absPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Errorf("removing %s: %w", path, err)
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Msg("removed stale output")
	return true, nil
}

func writeFileAtomic(absPath string, content []byte) error {
	tempPath := absPath + ".tmp"

	// Write to temp file
	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
