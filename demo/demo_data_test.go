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

package demo

import (
	"context"
	"testing"

	"github.com/google/tabula/core/columns"
)

func TestCreateCountriesTable(t *testing.T) {
	table, err := CreateCountriesTable(context.Background())
	if err != nil {
		t.Fatalf("Failed to create countries table: %v", err)
	}
	if table.Length() != 32 {
		t.Errorf("Expected 32 countries, got %d", table.Length())
	}
	if err := columns.ValidateColumns(CountryColumns()); err != nil {
		t.Fatalf("Invalid country columns: %v", err)
	}
	for _, c := range CountryColumns() {
		found := false
		for _, name := range table.GetColumnNames() {
			if name == c.Key {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected column %q in table", c.Key)
		}
	}

	antarctica := table.Row(2)
	if antarctica.Get("name").String() != "Antarctica" {
		t.Fatalf("Expected Antarctica at row 2, got %q", antarctica.Get("name").String())
	}
	if !antarctica.Get("capital").IsAbsent() {
		t.Error("Expected Antarctica to have no capital")
	}
	if antarctica.Get("population").Kind() != columns.KindNumber {
		t.Errorf("Expected numeric population, got %s", antarctica.Get("population").Kind())
	}
}

func TestLoaderDatasets(t *testing.T) {
	l := NewLoader()
	ctx := context.Background()

	table, err := l.Load(ctx, map[string]string{"dataset": "transactions", "rows": "25"})
	if err != nil {
		t.Fatalf("Failed to load transactions: %v", err)
	}
	if table.Length() != 25 {
		t.Errorf("Expected 25 transactions, got %d", table.Length())
	}
	if got := table.Row(3).Get("status").String(); got != "processing" {
		t.Errorf("Expected status processing, got %q", got)
	}

	if _, err := l.Load(ctx, map[string]string{"dataset": "planets"}); err == nil {
		t.Error("Expected error for unknown dataset")
	}
	if _, err := l.Load(ctx, map[string]string{"dataset": "transactions", "rows": "-1"}); err == nil {
		t.Error("Expected error for negative rows")
	}
}

func TestColumnsByDataset(t *testing.T) {
	if cols := Columns("transactions"); cols[0].Key != "txn_id" {
		t.Errorf("Expected txn_id first, got %q", cols[0].Key)
	}
	if cols := Columns(""); cols[0].Key != "name" {
		t.Errorf("Expected name first, got %q", cols[0].Key)
	}
}
