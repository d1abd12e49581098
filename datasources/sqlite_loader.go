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

package datasources

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/tables"
)

// SqliteLoader implements Loader for SQLite databases. Each result column
// of the query becomes a table column. Integer and real values become
// numbers, NULL stays absent, everything else is shown as text.
//
// Required config keys:
//   - path: Path to the database file
//   - query: SELECT statement producing the rows
type SqliteLoader struct{}

// NewSqliteLoader creates a new SQLite loader.
func NewSqliteLoader() *SqliteLoader {
	return &SqliteLoader{}
}

// SourceType returns "sqlite".
func (l *SqliteLoader) SourceType() string {
	return "sqlite"
}

// Load opens the database read-only, runs the query and returns its rows.
func (l *SqliteLoader) Load(ctx context.Context, config map[string]string) (*tables.DataTable, error) {
	path := config["path"]
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	query := config["query"]
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	rs, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to run query: %w", err)
	}
	defer rs.Close()

	columnNames, err := rs.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var rows []columns.Row
	raw := make([]any, len(columnNames))
	ptrs := make([]any, len(columnNames))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	for rs.Next() {
		if err := rs.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(columns.Row, len(columnNames))
		for i, name := range columnNames {
			if v, ok := sqlValue(raw[i]); ok {
				row[name] = v
			}
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return tables.NewDataTable(columnNames, rows), nil
}

func sqlValue(v any) (columns.Value, bool) {
	switch x := v.(type) {
	case nil:
		return columns.Value{}, false
	case int64:
		return columns.IntValue(x), true
	case float64:
		return columns.NumberValue(x), true
	case bool:
		if x {
			return columns.IntValue(1), true
		}
		return columns.IntValue(0), true
	case []byte:
		return columns.StringValue(string(x)), true
	case string:
		return columns.StringValue(x), true
	case time.Time:
		return columns.StringValue(x.Format(time.RFC3339)), true
	default:
		return columns.StringValue(fmt.Sprint(x)), true
	}
}
