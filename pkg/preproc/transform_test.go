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
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

const testContents = "content"

func newSpy(selectEmpties bool) *Tracer {
	return NewTracer(Funcs{
		SelectFunc: func(tag *string, content string) Content {
			if selectEmpties {
				return Emptied()
			}
			return Text(content + "<pickTag>")
		},
		ReplaceFunc: func(tag, replacement *string, content string, path *string, pathTest *PathTest) string {
			return content + "<replaceTag>"
		},
		RemoveFunc: func(tag *string, content string, path *string, pathTest *PathTest) string {
			return content + "<removeTag>"
		},
	}, zerolog.Nop())
}

func newBufferFile(path string) *File {
	return NewBufferFile(path, []byte(testContents))
}

func TestTransform_ContentModes(t *testing.T) {
	opts := &Options{Replace: &ReplaceOptions{Tag: String("TAG1")}}

	t.Run("buffer_is_processed", func(t *testing.T) {
		spy := newSpy(false)
		in := newBufferFile("")

		out, err := Transform(context.Background(), in, opts, spy)
		require.NoError(t, err)
		require.NotNil(t, out)

		assert.True(t, out.IsBuffer(), "output should stay in buffer mode")
		assert.Empty(t, spy.CallsFor(OpSelect), "select should not be called")
		assert.Empty(t, spy.CallsFor(OpRemove), "remove should not be called")

		calls := spy.CallsFor(OpReplace)
		require.Len(t, calls, 1)
		assert.Equal(t, "TAG1", TagString(calls[0].Tag))
		assert.Nil(t, calls[0].Replacement, "replacement should be unset")
		assert.Equal(t, testContents, calls[0].Input)
		assert.Nil(t, calls[0].Path, "path should not be forwarded without a path test")
		assert.Nil(t, calls[0].PathTest)

		assert.Equal(t, testContents+"<replaceTag>", string(out.Contents()))
		assert.Equal(t, testContents, string(in.Contents()), "input file should not be modified")
	})

	t.Run("stream_is_rejected", func(t *testing.T) {
		spy := newSpy(false)
		in := NewStreamFile("", strings.NewReader("stream with those contents"))

		out, err := Transform(context.Background(), in, opts, spy)
		require.Error(t, err)
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, ErrStreamingNotSupported))
		assert.Contains(t, err.Error(), "Streaming not supported")

		var pe *PluginError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, PluginName, pe.Plugin)
		assert.Empty(t, spy.Calls(), "no operation should run")
	})

	t.Run("null_passes_through", func(t *testing.T) {
		spy := newSpy(false)
		in := NewNullFile("")

		out, err := Transform(context.Background(), in, opts, spy)
		require.NoError(t, err)
		assert.Same(t, in, out)
		assert.True(t, out.IsNull())
		assert.Empty(t, spy.Calls(), "no operation should run")
	})
}

func TestTransform_OperationGating(t *testing.T) {
	tests := []struct {
		name        string
		opts        *Options
		wantOps     []Op
		wantContent string
	}{
		{
			name:        "select_only",
			opts:        &Options{Select: &SelectOptions{Tag: String("TAG1")}},
			wantOps:     []Op{OpSelect},
			wantContent: testContents + "<pickTag>",
		},
		{
			name: "select_and_replace",
			opts: &Options{
				Select:  &SelectOptions{Tag: String("TAG1")},
				Replace: &ReplaceOptions{Tag: String("TAG2")},
			},
			wantOps:     []Op{OpSelect, OpReplace},
			wantContent: testContents + "<pickTag><replaceTag>",
		},
		{
			name:        "remove_only",
			opts:        &Options{Remove: &RemoveOptions{}},
			wantOps:     []Op{OpRemove},
			wantContent: testContents + "<removeTag>",
		},
		{
			name: "all_operations",
			opts: &Options{
				Select:  &SelectOptions{},
				Replace: &ReplaceOptions{},
				Remove:  &RemoveOptions{},
			},
			wantOps:     []Op{OpSelect, OpReplace, OpRemove},
			wantContent: testContents + "<pickTag><replaceTag><removeTag>",
		},
		{
			name:        "no_operation",
			opts:        &Options{Tag: String("TAG1")},
			wantContent: testContents,
		},
		{
			name:        "nil_options",
			opts:        nil,
			wantContent: testContents,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spy := newSpy(false)
			out, err := Transform(context.Background(), newBufferFile(""), tt.opts, spy)
			require.NoError(t, err)

			var gotOps []Op
			for _, c := range spy.Calls() {
				gotOps = append(gotOps, c.Op)
			}
			assert.Equal(t, tt.wantOps, gotOps)
			assert.Equal(t, tt.wantContent, string(out.Contents()))
		})
	}
}

func TestTransform_Sequencing(t *testing.T) {
	spy := newSpy(false)
	opts := &Options{
		Select:  &SelectOptions{},
		Replace: &ReplaceOptions{},
		Remove:  &RemoveOptions{},
	}

	out, err := Transform(context.Background(), newBufferFile(""), opts, spy)
	require.NoError(t, err)

	calls := spy.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, testContents, calls[0].Input)
	assert.Equal(t, testContents+"<pickTag>", calls[1].Input, "replace should receive the select output")
	assert.Equal(t, testContents+"<pickTag><replaceTag>", calls[2].Input, "remove should receive the replace output")
	assert.Equal(t, testContents+"<pickTag><replaceTag><removeTag>", string(out.Contents()))
}

func TestTransform_EndToEnd(t *testing.T) {
	proc := Funcs{
		SelectFunc: func(tag *string, content string) Content { return Text(content + "<pick>") },
		ReplaceFunc: func(tag, replacement *string, content string, path *string, pathTest *PathTest) string {
			return content + "<repl>"
		},
		RemoveFunc: func(tag *string, content string, path *string, pathTest *PathTest) string {
			return content + "<rm>"
		},
	}
	tracer := NewTracer(proc, zerolog.Nop())
	opts := &Options{
		Tag:     String("TAG1"),
		Select:  &SelectOptions{},
		Replace: &ReplaceOptions{Replacement: String("R")},
		Remove:  &RemoveOptions{},
	}

	out, err := Transform(context.Background(), newBufferFile("/path/a.js"), opts, tracer)
	require.NoError(t, err)
	assert.Equal(t, "content<pick><repl><rm>", string(out.Contents()))

	for _, c := range tracer.Calls() {
		assert.Equal(t, "TAG1", TagString(c.Tag), "%s should use the shared tag", c.Op)
	}
	repl := tracer.CallsFor(OpReplace)
	require.Len(t, repl, 1)
	assert.Equal(t, "R", *repl[0].Replacement)
}

func TestTransform_SelectEmptied(t *testing.T) {
	t.Run("fails_without_allow_errors", func(t *testing.T) {
		tests := []struct {
			name    string
			opts    *Options
			wantMsg string
		}{
			{
				name:    "operation_tag",
				opts:    &Options{Select: &SelectOptions{Tag: String("TAG1")}},
				wantMsg: "Not found tag: TAG1",
			},
			{
				name:    "shared_tag",
				opts:    &Options{Tag: String("SHARE"), Select: &SelectOptions{}},
				wantMsg: "Not found tag: SHARE",
			},
			{
				name:    "explicit_false",
				opts:    &Options{Select: &SelectOptions{Tag: String("TAG1"), AllowErrors: false}},
				wantMsg: "Not found tag: TAG1",
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				spy := newSpy(true)
				out, err := Transform(context.Background(), newBufferFile(""), tt.opts, spy)
				require.Error(t, err)
				assert.Nil(t, out, "no file should be emitted")
				assert.Contains(t, err.Error(), tt.wantMsg)
				assert.True(t, errors.Is(err, ErrTagNotFound))

				var tnf *TagNotFoundError
				require.True(t, errors.As(err, &tnf))
				assert.Equal(t, strings.TrimPrefix(tt.wantMsg, "Not found tag: "), TagString(tnf.Tag))
			})
		}
	})

	t.Run("allow_errors_returns_null", func(t *testing.T) {
		spy := newSpy(true)
		in := newBufferFile("/path/a.js")
		opts := &Options{
			Select:  &SelectOptions{Tag: String("TAG1"), AllowErrors: true},
			Replace: &ReplaceOptions{},
			Remove:  &RemoveOptions{},
		}

		out, err := Transform(context.Background(), in, opts, spy)
		require.NoError(t, err)
		require.NotNil(t, out)
		assert.True(t, out.IsNull(), "output should have null content")
		assert.Nil(t, out.Contents())
		assert.Equal(t, "/path/a.js", out.Path)
		assert.True(t, in.IsBuffer(), "input file should not be modified")

		assert.Len(t, spy.CallsFor(OpSelect), 1)
		assert.Empty(t, spy.CallsFor(OpReplace), "replace should be skipped")
		assert.Empty(t, spy.CallsFor(OpRemove), "remove should be skipped")
	})

	t.Run("skips_others_even_on_error", func(t *testing.T) {
		spy := newSpy(true)
		opts := &Options{
			Select:  &SelectOptions{},
			Replace: &ReplaceOptions{},
			Remove:  &RemoveOptions{},
		}
		_, err := Transform(context.Background(), newBufferFile(""), opts, spy)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Not found tag: <none>")
		assert.Empty(t, spy.CallsFor(OpReplace))
		assert.Empty(t, spy.CallsFor(OpRemove))
	})
}

func TestTransform_RequiredArguments(t *testing.T) {
	_, err := Transform(context.Background(), nil, &Options{}, Identity)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file is required")

	_, err = Transform(context.Background(), newBufferFile(""), &Options{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tag processor is required")
}

func TestPlugin_Concurrent(t *testing.T) {
	spy := newSpy(false)
	plugin, err := New(Options{Tag: String("TAG1"), Replace: &ReplaceOptions{}}, spy)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 16)
	errs := make([]error, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := plugin.Process(context.Background(), newBufferFile(""))
			errs[i] = err
			if err == nil {
				results[i] = string(out.Contents())
			}
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, testContents+"<replaceTag>", results[i])
	}
	assert.Len(t, spy.CallsFor(OpReplace), 16)
}

func TestPlugin_OptionsAreCopied(t *testing.T) {
	opts := Options{Tag: String("TAG1")}
	plugin, err := New(opts, Identity)
	require.NoError(t, err)

	opts.Replace = &ReplaceOptions{}
	assert.Nil(t, plugin.Options().Replace, "later changes to the caller's options should not leak in")

	_, err = New(opts, nil)
	require.Error(t, err)
}
