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

// Package demo provides built-in sample datasets so the table widget can be
// tried without an external source.
package demo

import (
	"context"
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/tables"
	"github.com/google/tabula/datasources"
)

//go:embed data/countries.csv
var countriesCSV string

// CountryColumns returns the column list used for the countries dataset.
func CountryColumns() []columns.Column {
	return []columns.Column{
		{Key: "name", Label: "Name", Sortable: true, Searchable: true},
		{Key: "capital", Label: "Capital", Sortable: true},
		{Key: "region", Label: "Region", Sortable: true, Searchable: true},
		{Key: "population", Label: "Population", Sortable: true},
		{Key: "nativeName", Label: "Native Name"},
	}
}

// CreateCountriesTable parses the embedded countries CSV.
func CreateCountriesTable(ctx context.Context) (*tables.DataTable, error) {
	table, err := datasources.NewCsvLoader().LoadFromReader(ctx, strings.NewReader(countriesCSV),
		map[string]string{"numeric_columns": "population"})
	if err != nil {
		return nil, fmt.Errorf("failed to import countries CSV: %w", err)
	}
	return table, nil
}

// Loader implements datasources.Loader for the built-in datasets.
//
// Optional config keys:
//   - dataset: "countries" (default) or "transactions"
//   - rows: Row count for the transactions dataset (default: DefaultTransactions)
type Loader struct{}

// NewLoader creates a demo loader.
func NewLoader() *Loader {
	return &Loader{}
}

// SourceType returns "demo".
func (l *Loader) SourceType() string {
	return "demo"
}

// Load returns the requested built-in dataset.
func (l *Loader) Load(ctx context.Context, config map[string]string) (*tables.DataTable, error) {
	switch config["dataset"] {
	case "", "countries":
		return CreateCountriesTable(ctx)
	case "transactions":
		n := DefaultTransactions
		if s := config["rows"]; s != "" {
			parsed, err := strconv.Atoi(s)
			if err != nil || parsed < 0 {
				return nil, fmt.Errorf("invalid rows %q", s)
			}
			n = parsed
		}
		return CreateTransactionsTable(n), nil
	default:
		return nil, fmt.Errorf("unknown demo dataset %q", config["dataset"])
	}
}

// Columns returns the column list matching a dataset name.
func Columns(dataset string) []columns.Column {
	if dataset == "transactions" {
		return TransactionColumns()
	}
	return CountryColumns()
}
