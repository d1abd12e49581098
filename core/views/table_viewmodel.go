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

package views

import (
	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/tables"
)

// Sort indicators shown next to sortable column labels.
const (
	SortIconAscending  = "↑"
	SortIconDescending = "↓"
	SortIconInactive   = "↕"
)

// CellPolicy decides how row values become markup.
type CellPolicy int

const (
	// EscapeCells HTML-escapes every value.
	EscapeCells CellPolicy = iota
	// RawCells interpolates values verbatim. A value containing markup is
	// injected into the page as-is; only use it for trusted rows.
	RawCells
)

// TableViewModel contains everything the renderer needs, formatted for
// template consumption. Building it is the only place view state is read.
type TableViewModel struct {
	Headers   []HeaderCell
	Filters   []FilterCell
	Rows      []DataRow
	Paginator *PaginatorViewModel // nil when pagination is disabled
}

// HeaderCell is one column header.
type HeaderCell struct {
	Key      string
	Label    string
	Sortable bool
	SortIcon string
}

// FilterCell is one cell of the filter row.
type FilterCell struct {
	Key         string
	Searchable  bool
	Placeholder string
	Value       string // the active query when this column is the filter target
}

// DataRow is one visible record.
type DataRow struct {
	Cells []safehtml.HTML
}

// PaginatorViewModel describes the page controls.
type PaginatorViewModel struct {
	Pages    []PageLink // the paginator window
	LastPage int        // 1-based number of the last page
}

// PageLink is one clickable page number.
type PageLink struct {
	Number  int // 1-based
	Current bool
}

// BuildViewModel reads the engine's state and visible rows into a view model.
func BuildViewModel(tv *tables.TableView, policy CellPolicy) TableViewModel {
	state := tv.State()
	cols := tv.Columns()

	vm := TableViewModel{
		Headers: make([]HeaderCell, len(cols)),
		Filters: make([]FilterCell, len(cols)),
	}

	for i, col := range cols {
		vm.Headers[i] = HeaderCell{
			Key:      col.Key,
			Label:    col.DisplayName(),
			Sortable: col.Sortable,
			SortIcon: sortIcon(col.Key, state.Sort),
		}

		filter := FilterCell{
			Key:         col.Key,
			Searchable:  col.Searchable,
			Placeholder: "Search by " + col.DisplayName(),
		}
		if col.Searchable && state.Filter.Key == col.Key {
			filter.Value = state.Filter.Query
		}
		vm.Filters[i] = filter
	}

	for _, row := range tv.VisibleRows() {
		dr := DataRow{Cells: make([]safehtml.HTML, len(cols))}
		for i, col := range cols {
			dr.Cells[i] = cellHTML(row.Get(col.Key), policy)
		}
		vm.Rows = append(vm.Rows, dr)
	}

	if state.Paginated() {
		vm.Paginator = buildPaginator(state, tv.PageCount())
	}
	return vm
}

func sortIcon(key string, s tables.SortState) string {
	if s.Key != key {
		return SortIconInactive
	}
	if s.Direction == tables.Descending {
		return SortIconDescending
	}
	return SortIconAscending
}

func cellHTML(v columns.Value, policy CellPolicy) safehtml.HTML {
	if policy == RawCells {
		return uncheckedconversions.HTMLFromStringKnownToSatisfyTypeContract(v.String())
	}
	return safehtml.HTMLEscaped(v.String())
}

func buildPaginator(state tables.ViewState, pageCount int) *PaginatorViewModel {
	p := &PaginatorViewModel{LastPage: max(pageCount, 1)}
	cur := state.PageIndex + 1
	for n := state.Window[0]; n <= state.Window[1]; n++ {
		p.Pages = append(p.Pages, PageLink{Number: n, Current: n == cur})
	}
	return p
}

// PageViewModel is a host document wrapping a widget's markup.
type PageViewModel struct {
	Title  string
	Markup safehtml.HTML
}
