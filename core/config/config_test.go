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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TABULA_CONFIG", "")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	c, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8097", c.Server.Addr)
	assert.Equal(t, 1024, c.Server.MaxSessions)
	assert.Equal(t, 10, c.Table.PageSize)
	assert.Equal(t, "page", c.Table.FilterScope)
	assert.False(t, c.Table.RawCells)
	assert.Equal(t, "demo", c.Source.Type)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, map[string]string{"dataset": "countries"}, c.SourceOptions())
}

func TestLoadFileEnvAndFlags(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "tabula.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[table]
page_size = 5
filter_scope = "dataset"

[source]
type = "csv"
path = "countries.csv"

[[columns]]
key = "name"
label = "Name"

[[columns]]
key = "population"
searchable = false
`), 0o644))
	t.Setenv("TABULA_SERVER_ADDR", "0.0.0.0:9000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("page-size", 10, "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--log-level=debug"}))

	c, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, 5, c.Table.PageSize, "unset flag must not override the file")
	assert.Equal(t, "dataset", c.Table.FilterScope)
	assert.Equal(t, "0.0.0.0:9000", c.Server.Addr)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, map[string]string{"file_path": "countries.csv"}, c.SourceOptions())
	require.Len(t, c.Columns, 2)
	assert.Equal(t, "Name", c.Columns[0].Label)
	assert.Nil(t, c.Columns[0].Sortable)
	require.NotNil(t, c.Columns[1].Searchable)
	assert.False(t, *c.Columns[1].Searchable)

	require.NoError(t, flags.Parse([]string{"--page-size=3"}))
	c, err = Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Table.PageSize)
}

func TestLoadConfigFromEnvPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "tabula.toml")
	require.NoError(t, os.WriteFile(path, []byte("[source]\ntype = \"sqlite\"\npath = \"c.db\"\nquery = \"SELECT 1\"\n"), 0o644))
	t.Setenv("TABULA_CONFIG", path)

	c, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"path": "c.db", "query": "SELECT 1"}, c.SourceOptions())
}

func TestLoadErrors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	assert.Error(t, err, "explicit missing file")

	t.Setenv("TABULA_TABLE_FILTER_SCOPE", "everything")
	_, err = Load("", nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{
		Server: ServerConfig{MaxSessions: 1},
		Table:  TableConfig{PageSize: 10, FilterScope: "page"},
		Source: SourceConfig{Type: "demo"},
	}
	assert.NoError(t, base.Validate())

	bad := base
	bad.Table.PageSize = -1
	assert.Error(t, bad.Validate())

	bad = base
	bad.Server.MaxSessions = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.Source.Type = "postgres"
	assert.Error(t, bad.Validate())
}
