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

// Package datasources loads tabular records from files, databases and web
// APIs into DataTables that a table widget can present.
package datasources

import (
	"context"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/tables"
)

// Loader is the interface that all data source loaders must implement.
// Tabula provides built-in loaders for "csv", "countries" and "sqlite".
// Hosts can register additional loaders for other databases or APIs.
type Loader interface {
	// SourceType returns the type identifier used in config (e.g., "csv", "sqlite").
	SourceType() string

	// Load retrieves the records and returns them as a DataTable.
	Load(ctx context.Context, config map[string]string) (*tables.DataTable, error)
}

// DefaultColumns builds a column list for a loaded table in which every
// column is sortable and searchable and labeled by its name.
func DefaultColumns(table *tables.DataTable) []columns.Column {
	names := table.GetColumnNames()
	cols := make([]columns.Column, len(names))
	for i, name := range names {
		cols[i] = columns.Column{Key: name, Label: name, Sortable: true, Searchable: true}
	}
	return cols
}

// configBool reads a "true"/"false" config value, falling back to def.
func configBool(config map[string]string, key string, def bool) bool {
	switch config[key] {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}
