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

package tables

import (
	"github.com/google/tabula/core/columns"
)

// DataTable holds the immutable source rows of a widget.
// Rows are addressed by their index in the original input order; every
// derived view works on index slices so the rows themselves never move.
type DataTable struct {
	columnNames []string
	rows        []columns.Row
}

// NewDataTable creates a DataTable from the given rows. The row slice is
// copied; columnNames records the schema order known to the producer and may
// be nil.
func NewDataTable(columnNames []string, rows []columns.Row) *DataTable {
	dt := &DataTable{
		columnNames: append([]string(nil), columnNames...),
		rows:        make([]columns.Row, len(rows)),
	}
	copy(dt.rows, rows)
	return dt
}

// Length returns the number of rows.
func (dt *DataTable) Length() int {
	return len(dt.rows)
}

// Row returns the row at index i.
func (dt *DataTable) Row(i uint32) columns.Row {
	return dt.rows[i]
}

// Rows returns a copy of the row slice in input order.
func (dt *DataTable) Rows() []columns.Row {
	out := make([]columns.Row, len(dt.rows))
	copy(out, dt.rows)
	return out
}

// GetColumnNames returns the schema column names in producer order.
func (dt *DataTable) GetColumnNames() []string {
	return append([]string(nil), dt.columnNames...)
}

// Indices returns the identity permutation [0, Length()).
func (dt *DataTable) Indices() []uint32 {
	indices := make([]uint32, len(dt.rows))
	for i := range indices {
		indices[i] = uint32(i)
	}
	return indices
}

// RowsAt resolves an index slice to rows.
func (dt *DataTable) RowsAt(indices []uint32) []columns.Row {
	out := make([]columns.Row, len(indices))
	for i, idx := range indices {
		out[i] = dt.rows[idx]
	}
	return out
}
