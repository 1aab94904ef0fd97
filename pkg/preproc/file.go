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
	"io"
)

// 📦 ContentMode describes how a file carries its content
type ContentMode int

const (
	ContentNull   ContentMode = iota // no content, passed through untouched
	ContentStream                    // content arrives through a reader
	ContentBuffer                    // content is fully in memory
)

// String returns a string representation of ContentMode
func (m ContentMode) String() string {
	switch m {
	case ContentNull:
		return "null"
	case ContentStream:
		return "stream"
	case ContentBuffer:
		return "buffer"
	default:
		return "unknown"
	}
}

// 📄 File is a single unit of work flowing through the pipeline
type File struct {
	Path string // Source path, only forwarded to path-conditioned operations

	mode     ContentMode
	contents []byte
	stream   io.Reader
}

// 🏭 NewNullFile creates a file without content
func NewNullFile(path string) *File {
	return &File{Path: path, mode: ContentNull}
}

// 🏭 NewBufferFile creates a file whose content is already in memory
func NewBufferFile(path string, contents []byte) *File {
	if contents == nil {
		contents = []byte{}
	}
	return &File{Path: path, mode: ContentBuffer, contents: contents}
}

// 🏭 NewStreamFile creates a file whose content arrives through r
func NewStreamFile(path string, r io.Reader) *File {
	return &File{Path: path, mode: ContentStream, stream: r}
}

// Mode reports the content state of the file
func (f *File) Mode() ContentMode { return f.mode }

func (f *File) IsNull() bool   { return f.mode == ContentNull }
func (f *File) IsStream() bool { return f.mode == ContentStream }
func (f *File) IsBuffer() bool { return f.mode == ContentBuffer }

// Contents returns the buffered content, or nil when the file is not in buffer mode
func (f *File) Contents() []byte {
	if f.mode != ContentBuffer {
		return nil
	}
	return f.contents
}

// Stream returns the content reader, or nil when the file is not in stream mode
func (f *File) Stream() io.Reader {
	if f.mode != ContentStream {
		return nil
	}
	return f.stream
}

// SetContents switches the file to buffer mode with the given content
func (f *File) SetContents(contents []byte) {
	if contents == nil {
		contents = []byte{}
	}
	f.mode = ContentBuffer
	f.contents = contents
	f.stream = nil
}

// SetNull drops the content of the file
func (f *File) SetNull() {
	f.mode = ContentNull
	f.contents = nil
	f.stream = nil
}

// Clone returns a shallow copy of the file. Buffered content is copied,
// a stream reader is shared.
func (f *File) Clone() *File {
	c := *f
	if f.contents != nil {
		c.contents = append([]byte(nil), f.contents...)
	}
	return &c
}
