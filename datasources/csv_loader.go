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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/tables"
)

// CsvLoader implements Loader for CSV files.
// Fields holding plain decimal numbers become numeric values unless
// numeric_columns restricts the conversion to the named columns. Empty
// fields are left absent.
//
// Required config keys:
//   - file_path: Path to the CSV file
//
// Optional config keys:
//   - has_header: "true" or "false" (default: "true")
//   - delimiter: Field delimiter (default: ",")
//   - numeric_columns: Comma-separated column names parsed as numbers
type CsvLoader struct{}

// NewCsvLoader creates a new CSV loader.
func NewCsvLoader() *CsvLoader {
	return &CsvLoader{}
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return "csv"
}

// Load reads a CSV file and returns a DataTable.
func (l *CsvLoader) Load(ctx context.Context, config map[string]string) (*tables.DataTable, error) {
	filePath := config["file_path"]
	if filePath == "" {
		return nil, fmt.Errorf("file_path is required")
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return l.LoadFromReader(ctx, file, config)
}

// LoadFromReader parses CSV data from r using the optional config keys.
func (l *CsvLoader) LoadFromReader(ctx context.Context, r io.Reader, config map[string]string) (*tables.DataTable, error) {
	hasHeader := configBool(config, "has_header", true)

	delimiter := ','
	if d := config["delimiter"]; d != "" {
		delimiter, _ = utf8.DecodeRuneInString(d)
	}

	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var columnNames []string
	dataStart := 0
	if hasHeader {
		columnNames = records[0]
		dataStart = 1
	} else {
		// Generate column names: col_0, col_1, etc.
		for i := range records[0] {
			columnNames = append(columnNames, fmt.Sprintf("col_%d", i))
		}
	}

	numeric := numericColumnSet(config["numeric_columns"])

	rows := make([]columns.Row, 0, len(records)-dataStart)
	for _, record := range records[dataStart:] {
		row := make(columns.Row, len(columnNames))
		for j, name := range columnNames {
			if j >= len(record) {
				// Short record: remaining fields stay absent.
				break
			}
			if record[j] == "" {
				continue
			}
			if numeric == nil || numeric[name] {
				row[name] = columns.ParseValue(record[j])
			} else {
				row[name] = columns.StringValue(record[j])
			}
		}
		rows = append(rows, row)
	}

	return tables.NewDataTable(columnNames, rows), nil
}

// numericColumnSet parses the numeric_columns option. A nil set means every
// column is eligible for numeric parsing.
func numericColumnSet(spec string) map[string]bool {
	if strings.TrimSpace(spec) == "" {
		return nil
	}
	set := make(map[string]bool)
	for _, name := range strings.Split(spec, ",") {
		if name = strings.TrimSpace(name); name != "" {
			set[name] = true
		}
	}
	return set
}
