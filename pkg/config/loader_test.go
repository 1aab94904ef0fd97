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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/preproc/pkg/preproc"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testContext() context.Context {
	logger := zerolog.Nop()
	return logger.WithContext(context.Background())
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "yaml_full",
			filename: "preproc.yaml",
			config: `
tag: SHARE
path_test: src/
select:
  tag: MAIN
  allow_errors: true
replace:
  replacement: "R"
  path_test:
    - "**/*.js"
    - "re:\\.ts$"
remove: {}
src: "**/*.js"
dest: out
async: true
concurrency: 4
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "SHARE", *cfg.Tag)
				assert.Equal(t, StringList{"src/"}, cfg.PathTest)
				require.NotNil(t, cfg.Select)
				assert.Equal(t, "MAIN", *cfg.Select.Tag)
				assert.True(t, cfg.Select.AllowErrors)
				require.NotNil(t, cfg.Replace)
				assert.Nil(t, cfg.Replace.Tag)
				assert.Equal(t, "R", *cfg.Replace.Replacement)
				assert.Equal(t, StringList{"**/*.js", "re:\\.ts$"}, cfg.Replace.PathTest)
				require.NotNil(t, cfg.Remove, "an empty block should still enable remove")
				assert.Equal(t, StringList{"**/*.js"}, cfg.Src)
				assert.Equal(t, filepath.Join(cfg.Base, "out"), cfg.Dest, "dest should be resolved against base")
				assert.True(t, cfg.Async)
				assert.Equal(t, 4, cfg.Concurrency)
				assert.Equal(t, preproc.IdentityName, cfg.Processor, "processor should default to identity")
			},
		},
		{
			name:     "yaml_minimal",
			filename: "preproc.yml",
			config:   "replace:\n  tag: TAG1\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Nil(t, cfg.Tag)
				assert.Nil(t, cfg.Select, "absent block should stay nil")
				assert.NotNil(t, cfg.Replace)
				assert.Nil(t, cfg.Remove)
			},
		},
		{
			name:     "json",
			filename: "preproc.json",
			config:   `{"tag": "TAG1", "select": {}, "replace": {"replacement": "R"}, "remove": {"path_test": ["lib/"]}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "TAG1", *cfg.Tag)
				assert.NotNil(t, cfg.Select)
				assert.Equal(t, "R", *cfg.Replace.Replacement)
				assert.Equal(t, StringList{"lib/"}, cfg.Remove.PathTest)
			},
		},
		{
			name:     "json_single_path_test",
			filename: "preproc.json",
			config:   `{"path_test": "src/", "remove": {"path_test": null}}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, StringList{"src/"}, cfg.PathTest)
				assert.Nil(t, cfg.Remove.PathTest)
			},
		},
		{
			name:     "hcl",
			filename: "preproc.hcl",
			config: `
tag = "SHARE"
path_test = ["src/"]

select {
  allow_errors = true
}

remove {
  tag       = "DEBUG"
  path_test = ["**/*.js"]
}

src  = ["**/*.js"]
dest = "out"
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "SHARE", *cfg.Tag)
				require.NotNil(t, cfg.Select)
				assert.Nil(t, cfg.Select.Tag)
				assert.True(t, cfg.Select.AllowErrors)
				assert.Nil(t, cfg.Replace)
				require.NotNil(t, cfg.Remove)
				assert.Equal(t, "DEBUG", *cfg.Remove.Tag)
				assert.Equal(t, StringList{"**/*.js"}, cfg.Remove.PathTest)
			},
		},
		{
			name:     "rc_as_yaml",
			filename: RCFile,
			config:   "tag: TAG1\nselect: {}\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "TAG1", *cfg.Tag)
				assert.NotNil(t, cfg.Select)
			},
		},
		{
			name:     "rc_as_hcl",
			filename: RCFile,
			config:   "tag = \"TAG1\"\nremove {}\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "TAG1", *cfg.Tag)
				assert.NotNil(t, cfg.Remove)
			},
		},
		{
			name:     "hcl_single_path_test",
			filename: "preproc.hcl",
			config:   "path_test = \"src/\"\nreplace {\n  path_test = \"lib/\"\n}\nremove {\n  path_test = []\n}\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, StringList{"src/"}, cfg.PathTest)
				require.NotNil(t, cfg.Replace)
				assert.Equal(t, StringList{"lib/"}, cfg.Replace.PathTest)
				require.NotNil(t, cfg.Remove)
				assert.Nil(t, cfg.Remove.PathTest)

				opts, err := cfg.Options()
				require.NoError(t, err)
				assert.True(t, opts.PathTest.Match("src/a.js"))
				assert.True(t, opts.Replace.PathTest.Match("lib/b.js"))
			},
		},
		{
			name:     "rc_hcl_single_path_test",
			filename: RCFile,
			config:   "path_test = \"re:^src/\"\nremove {}\n",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, StringList{"re:^src/"}, cfg.PathTest)
			},
		},
		{
			name:        "hcl_path_test_wrong_type",
			filename:    "preproc.hcl",
			config:      "path_test = { a = 1 }\n",
			wantErr:     true,
			errContains: "string or list of strings required",
		},
		{
			name:        "rc_reports_both_formats",
			filename:    RCFile,
			config:      "tag: [unclosed\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_yaml_field",
			filename:    "preproc.yaml",
			config:      "pickTag: {}\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			filename:    "preproc.json",
			config:      `{"pickTag": {}}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "bad_hcl",
			filename:    "preproc.hcl",
			config:      "select {",
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "unsupported_extension",
			filename:    "preproc.toml",
			config:      "",
			wantErr:     true,
			errContains: "unsupported file extension",
		},
		{
			name:        "bad_path_test",
			filename:    "preproc.yaml",
			config:      "remove:\n  path_test: \"re:(\"\n",
			wantErr:     true,
			errContains: "remove.path_test",
		},
		{
			name:        "unknown_processor",
			filename:    "preproc.yaml",
			config:      "processor: nope\n",
			wantErr:     true,
			errContains: `no tag processor registered as "nope"`,
		},
		{
			name:        "negative_concurrency",
			filename:    "preproc.yaml",
			config:      "concurrency: -1\n",
			wantErr:     true,
			errContains: "concurrency must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.filename, tt.config)

			cfg, err := LoadConfig(testContext(), path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, path, cfg.Location())
			assert.Equal(t, filepath.Dir(path), cfg.Base)
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_HCLEnvironment(t *testing.T) {
	t.Setenv("PREPROC_TEST_TAG", "FROM_ENV")
	path := writeConfig(t, "preproc.hcl", "tag = env.PREPROC_TEST_TAG\nreplace {}\n")

	cfg, err := LoadConfig(testContext(), path)
	require.NoError(t, err)
	assert.Equal(t, "FROM_ENV", *cfg.Tag)
}

func TestParse_RCFileKeepsBothErrors(t *testing.T) {
	_, err := Parse(RCFile, []byte("tag: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing YAML")
	assert.Contains(t, err.Error(), "parsing HCL")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(testContext(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}
