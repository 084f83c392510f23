// Copyright 2026 cloudygreybeard
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

// Package config provides configuration loading and management.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cloudygreybeard/shelf/pkg/input"
	"github.com/cloudygreybeard/shelf/pkg/logger"
	"github.com/cloudygreybeard/shelf/pkg/output"
)

// Config represents the full configuration.
type Config struct {
	State    StateConfig    `yaml:"state"`
	Log      LogConfig      `yaml:"log"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Diff     DiffConfig     `yaml:"diff"`
}

// StateConfig locates the persisted document and the link-check cache.
type StateConfig struct {
	Path      string `yaml:"path"`
	CachePath string `yaml:"cache_path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level      string `yaml:"level"`
	Pretty     bool   `yaml:"pretty"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// PipelineConfig configures the processing pipeline.
type PipelineConfig struct {
	Filter FilterConfig `yaml:"filter"`
	Render RenderConfig `yaml:"render"`
}

// FilterConfig configures which parsed bookmarks are imported.
type FilterConfig struct {
	IncludeFolders     []string `yaml:"include_folders"`
	ExcludeFolders     []string `yaml:"exclude_folders"`
	ExcludeURLPatterns []string `yaml:"exclude_url_patterns"`

	// URL protocol filtering
	ExcludeProtocols []string `yaml:"exclude_protocols"` // Protocols to exclude (e.g., data, javascript)
	WarnProtocols    []string `yaml:"warn_protocols"`    // Protocols to warn about but include
	MaxURLLength     int      `yaml:"max_url_length"`    // Exclude URLs longer than this (0 = no limit)
	WarnURLLength    int      `yaml:"warn_url_length"`   // Warn on URLs longer than this (0 = no warning)
}

// RenderConfig configures rendering options.
type RenderConfig struct {
	IncludeMetadata bool   `yaml:"include_metadata"`
	IncludeDates    bool   `yaml:"include_dates"`
	IncludeTags     bool   `yaml:"include_tags"`
	IncludeStatus   bool   `yaml:"include_status"`
	SortAlpha       bool   `yaml:"sort_alpha"`
	Style           string `yaml:"style"`
}

// DiffConfig configures diff reports.
type DiffConfig struct {
	Limit int `yaml:"limit"` // Items listed per section of a text report
}

// Default returns a configuration with sensible defaults.
func Default() Config {
	return Config{
		State: StateConfig{
			Path:      DefaultStatePath(),
			CachePath: DefaultCachePath(),
		},
		Log: LogConfig{
			Level:      "info",
			Pretty:     true,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Pipeline: PipelineConfig{
			Filter: FilterConfig{
				WarnProtocols: []string{"file", "chrome", "about", "blob", "javascript", "data"},
				WarnURLLength: 2048,
			},
			Render: RenderConfig{
				IncludeMetadata: true,
				IncludeDates:    true,
				IncludeTags:     true,
			},
		},
		Diff: DiffConfig{
			Limit: 20,
		},
	}
}

// Load reads configuration from a file, merging with defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Dir returns the per-user shelf directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".shelf")
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultStatePath returns where the bookmark document lives by default.
func DefaultStatePath() string {
	return filepath.Join(Dir(), "bookmarks.json")
}

// DefaultCachePath returns where the link-check cache lives by default.
func DefaultCachePath() string {
	return filepath.Join(Dir(), ".cache", "bookmarks-cache.json")
}

// LocalPath returns a local config file path if it exists.
func LocalPath() string {
	paths := []string{
		"shelf.yaml",
		"shelf.yml",
		".shelf.yaml",
		".shelf.yml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// FilterOptions converts the filter section for input.Prune.
func (c *Config) FilterOptions() input.FilterOptions {
	f := c.Pipeline.Filter
	return input.FilterOptions{
		IncludeFolders:     f.IncludeFolders,
		ExcludeFolders:     f.ExcludeFolders,
		ExcludeURLPatterns: f.ExcludeURLPatterns,
		ExcludeProtocols:   f.ExcludeProtocols,
		WarnProtocols:      f.WarnProtocols,
		MaxURLLength:       f.MaxURLLength,
		WarnURLLength:      f.WarnURLLength,
	}
}

// RenderOptions converts the render section for output adapters.
func (c *Config) RenderOptions() output.RenderOptions {
	r := c.Pipeline.Render
	return output.RenderOptions{
		IncludeMetadata: r.IncludeMetadata,
		IncludeDates:    r.IncludeDates,
		IncludeTags:     r.IncludeTags,
		IncludeStatus:   r.IncludeStatus,
		SortAlpha:       r.SortAlpha,
		Style:           r.Style,
	}
}

// LoggerOptions converts the log section for logger.New.
func (c *Config) LoggerOptions() logger.Options {
	l := c.Log
	return logger.Options{
		Level:      l.Level,
		Pretty:     l.Pretty,
		File:       l.File,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
		Compress:   l.Compress,
	}
}
