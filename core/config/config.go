/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads tabula settings from a TOML file, TABULA_* environment
// variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Table  TableConfig  `mapstructure:"table"`
	Source SourceConfig `mapstructure:"source"`
	Log    LogConfig    `mapstructure:"log"`

	// Columns optionally selects, orders and relabels the source columns.
	Columns []ColumnConfig `mapstructure:"columns"`
}

// ServerConfig holds HTTP host settings.
type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	MaxSessions int    `mapstructure:"max_sessions"`
}

// TableConfig holds widget presentation settings.
type TableConfig struct {
	PageSize    int    `mapstructure:"page_size"`
	FilterScope string `mapstructure:"filter_scope"`
	RawCells    bool   `mapstructure:"raw_cells"`
}

// SourceConfig selects the data source the hosts present.
type SourceConfig struct {
	Type    string `mapstructure:"type"`
	Dataset string `mapstructure:"dataset"`
	Path    string `mapstructure:"path"`
	URL     string `mapstructure:"url"`
	Query   string `mapstructure:"query"`
}

// ColumnConfig annotates one source column. Unset flags keep the loader's
// choice.
type ColumnConfig struct {
	Key        string `mapstructure:"key"`
	Label      string `mapstructure:"label"`
	Sortable   *bool  `mapstructure:"sortable"`
	Searchable *bool  `mapstructure:"searchable"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"addr":         "server.addr",
	"max-sessions": "server.max_sessions",
	"page-size":    "table.page_size",
	"scope":        "table.filter_scope",
	"raw":          "table.raw_cells",
	"source":       "source.type",
	"dataset":      "source.dataset",
	"path":         "source.path",
	"url":          "source.url",
	"query":        "source.query",
	"log-level":    "log.level",
}

// Load reads configuration from file, env and flags. Env var overrides use
// prefix TABULA_. The file is cfgPath if set, else $TABULA_CONFIG, else
// ~/.config/tabula/config.toml when present. Flags that were set on the
// command line take precedence over everything else; flags may be nil.
func Load(cfgPath string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("server.addr", "127.0.0.1:8097")
	v.SetDefault("server.max_sessions", 1024)
	v.SetDefault("table.page_size", 10)
	v.SetDefault("table.filter_scope", "page")
	v.SetDefault("table.raw_cells", false)
	v.SetDefault("source.type", "demo")
	v.SetDefault("source.dataset", "countries")
	v.SetDefault("source.path", "")
	v.SetDefault("source.url", "https://restcountries.com/v2/all")
	v.SetDefault("source.query", "")
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	if cfgPath == "" {
		cfgPath = os.Getenv("TABULA_CONFIG")
	}
	explicit := cfgPath != ""
	if explicit {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "tabula"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TABULA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// A missing default file is fine, a broken or missing explicit one is not.
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks values that cannot be corrected silently.
func (c Config) Validate() error {
	if c.Server.MaxSessions < 1 {
		return fmt.Errorf("server.max_sessions must be positive, got %d", c.Server.MaxSessions)
	}
	if c.Table.PageSize < 0 {
		return fmt.Errorf("table.page_size must not be negative, got %d", c.Table.PageSize)
	}
	switch c.Table.FilterScope {
	case "page", "dataset":
	default:
		return fmt.Errorf("table.filter_scope must be page or dataset, got %q", c.Table.FilterScope)
	}
	switch c.Source.Type {
	case "demo", "csv", "countries", "sqlite":
	default:
		return fmt.Errorf("unknown source.type %q", c.Source.Type)
	}
	return nil
}

// SourceOptions converts the source section into a loader config map.
func (c Config) SourceOptions() map[string]string {
	s := c.Source
	switch s.Type {
	case "csv":
		return map[string]string{"file_path": s.Path}
	case "countries":
		return map[string]string{"url": s.URL}
	case "sqlite":
		return map[string]string{"path": s.Path, "query": s.Query}
	default:
		return map[string]string{"dataset": s.Dataset}
	}
}
