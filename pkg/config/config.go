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
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/preproc/pkg/preproc"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ SelectBlock configures the select operation
type SelectBlock struct {
	Tag         *string `json:"tag,omitempty" yaml:"tag,omitempty"`
	AllowErrors bool    `json:"allow_errors,omitempty" yaml:"allow_errors,omitempty"`
}

// 🔄 ReplaceBlock configures the replace operation
type ReplaceBlock struct {
	Tag         *string    `json:"tag,omitempty" yaml:"tag,omitempty"`
	Replacement *string    `json:"replacement,omitempty" yaml:"replacement,omitempty"`
	PathTest    StringList `json:"path_test,omitempty" yaml:"path_test,omitempty"`
}

// ✂️ RemoveBlock configures the remove operation
type RemoveBlock struct {
	Tag      *string    `json:"tag,omitempty" yaml:"tag,omitempty"`
	PathTest StringList `json:"path_test,omitempty" yaml:"path_test,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Tag      *string    `json:"tag,omitempty" yaml:"tag,omitempty"`
	PathTest StringList `json:"path_test,omitempty" yaml:"path_test,omitempty"`

	Select  *SelectBlock  `json:"select,omitempty" yaml:"select,omitempty"`
	Replace *ReplaceBlock `json:"replace,omitempty" yaml:"replace,omitempty"`
	Remove  *RemoveBlock  `json:"remove,omitempty" yaml:"remove,omitempty"`

	Processor   string     `json:"processor,omitempty" yaml:"processor,omitempty"`     // Registered tag processor name
	Src         StringList `json:"src,omitempty" yaml:"src,omitempty"`                 // Glob patterns, relative to Base
	Base        string     `json:"base,omitempty" yaml:"base,omitempty"`               // Defaults to the config file directory
	Dest        string     `json:"dest,omitempty" yaml:"dest,omitempty"`               // Output directory, relative to Base
	Async       bool       `json:"async,omitempty" yaml:"async,omitempty"`             // Process files concurrently
	Concurrency int        `json:"concurrency,omitempty" yaml:"concurrency,omitempty"` // Max files in flight when async, 0 means unbounded

	location string
}

// Location returns the path the config was loaded from
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks the configuration and fills in defaults
func Validate(ctx context.Context, cfg *Config) error {
	logger := zerolog.Ctx(ctx)

	if cfg.Concurrency < 0 {
		return errors.Errorf("concurrency must not be negative")
	}

	if cfg.Processor == "" {
		cfg.Processor = preproc.IdentityName
	}
	if _, err := preproc.Lookup(cfg.Processor); err != nil {
		return errors.Errorf("processor: %w", err)
	}

	if cfg.Base == "" && cfg.location != "" {
		cfg.Base = filepath.Dir(cfg.location)
	}
	if cfg.Base != "" {
		cfg.Base = filepath.Clean(cfg.Base)
	}
	if cfg.Dest != "" && !filepath.IsAbs(cfg.Dest) && cfg.Base != "" {
		cfg.Dest = filepath.Join(cfg.Base, cfg.Dest)
	}

	if _, err := cfg.Options(); err != nil {
		return err
	}

	logger.Debug().
		Str("processor", cfg.Processor).
		Str("base", cfg.Base).
		Str("dest", cfg.Dest).
		Bool("select", cfg.Select != nil).
		Bool("replace", cfg.Replace != nil).
		Bool("remove", cfg.Remove != nil).
		Msg("validated configuration")

	return nil
}

// RequirePipeline checks the fields needed to read and write files
func (cfg *Config) RequirePipeline() error {
	if len(cfg.Src) == 0 {
		return errors.Errorf("src is required")
	}
	if cfg.Dest == "" {
		return errors.Errorf("dest is required")
	}
	return nil
}

// 🎯 Options converts the configuration into adapter options. Blocks missing
// from the file stay nil.
func (cfg *Config) Options() (*preproc.Options, error) {
	shared, err := preproc.ParsePathTest(cfg.PathTest)
	if err != nil {
		return nil, errors.Errorf("path_test: %w", err)
	}

	opts := &preproc.Options{
		Tag:      cfg.Tag,
		PathTest: shared,
	}

	if cfg.Select != nil {
		opts.Select = &preproc.SelectOptions{
			Tag:         cfg.Select.Tag,
			AllowErrors: cfg.Select.AllowErrors,
		}
	}

	if cfg.Replace != nil {
		pt, err := preproc.ParsePathTest(cfg.Replace.PathTest)
		if err != nil {
			return nil, errors.Errorf("replace.path_test: %w", err)
		}
		opts.Replace = &preproc.ReplaceOptions{
			Tag:         cfg.Replace.Tag,
			Replacement: cfg.Replace.Replacement,
			PathTest:    pt,
		}
	}

	if cfg.Remove != nil {
		pt, err := preproc.ParsePathTest(cfg.Remove.PathTest)
		if err != nil {
			return nil, errors.Errorf("remove.path_test: %w", err)
		}
		opts.Remove = &preproc.RemoveOptions{
			Tag:      cfg.Remove.Tag,
			PathTest: pt,
		}
	}

	return opts, nil
}

// 🔌 Plugin builds the adapter plugin with the configured processor. Each
// wrap function decorates the processor, in order.
func (cfg *Config) Plugin(wrap ...func(preproc.TagProcessor) preproc.TagProcessor) (*preproc.Plugin, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	name := cfg.Processor
	if name == "" {
		name = preproc.IdentityName
	}
	proc, err := preproc.Lookup(name)
	if err != nil {
		return nil, errors.Errorf("processor: %w", err)
	}
	for _, w := range wrap {
		proc = w(proc)
	}
	return preproc.New(*opts, proc)
}
