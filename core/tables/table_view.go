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

// FilterScope selects which rows a filter narrows.
type FilterScope int

const (
	// FilterScopePage filters the rows of the current page only. Paging is
	// computed over the unfiltered sorted set, so the page count never
	// changes while a filter is active.
	FilterScopePage FilterScope = iota
	// FilterScopeDataset filters the whole sorted set before paging.
	FilterScopeDataset
)

// String returns "page" or "dataset".
func (s FilterScope) String() string {
	if s == FilterScopeDataset {
		return "dataset"
	}
	return "page"
}

// ParseFilterScope parses "page" or "dataset"; anything else is FilterScopePage.
func ParseFilterScope(s string) FilterScope {
	if s == "dataset" {
		return FilterScopeDataset
	}
	return FilterScopePage
}

// TableView is the view-state engine of a widget. It owns the ViewState over
// an immutable DataTable and the rows derived from it. Every mutation ends by
// re-deriving the visible rows, so the derived fields always agree with the
// state.
type TableView struct {
	baseTable *DataTable
	columns   []columns.Column
	scope     FilterScope
	state     ViewState

	sorted  []uint32   // full dataset in sort order
	pages   [][]uint32 // partition used for navigation
	visible []uint32   // rows handed to the renderer
}

// NewTableView creates the engine and performs the initial derivation.
func NewTableView(baseTable *DataTable, cols []columns.Column, pageSize int, scope FilterScope) *TableView {
	tv := &TableView{
		baseTable: baseTable,
		columns:   cols,
		scope:     scope,
		state:     NewViewState(pageSize),
	}
	tv.DeriveVisibleRows()
	return tv
}

// Columns returns the column descriptors in display order.
func (tv *TableView) Columns() []columns.Column {
	return tv.columns
}

// State returns a copy of the current view state.
func (tv *TableView) State() ViewState {
	return tv.state
}

// Scope returns the filter scope.
func (tv *TableView) Scope() FilterScope {
	return tv.scope
}

// PageCount returns the number of pages in the navigation partition. An
// unpaginated view has one page.
func (tv *TableView) PageCount() int {
	if !tv.state.Paginated() {
		return 1
	}
	return len(tv.pages)
}

// VisibleRows returns the rows to render, in display order.
func (tv *TableView) VisibleRows() []columns.Row {
	return tv.baseTable.RowsAt(tv.visible)
}

// SortedRows returns the whole dataset in the current sort order.
func (tv *TableView) SortedRows() []columns.Row {
	return tv.baseTable.RowsAt(tv.sorted)
}

// DeriveVisibleRows recomputes the derived rows from scratch: sort the full
// dataset, partition it into pages, select the current page and apply the
// filter in the configured scope. The page index is clamped to the new
// partition and the paginator window is recentered.
func (tv *TableView) DeriveVisibleRows() {
	s := &tv.state

	tv.sorted = tv.baseTable.Indices()
	if s.Sort.Key != "" {
		tv.sorted = tv.baseTable.SortIndices(tv.sorted, s.Sort.Key, s.Sort.Direction == Descending)
	}

	set := tv.sorted
	if tv.scope == FilterScopeDataset && s.Filter.Active() {
		set = tv.baseTable.FilterIndices(set, s.Filter.Key, s.Filter.Query)
	}

	tv.pages = Paginate(set, s.PageSize)
	s.PageIndex = clamp(s.PageIndex, 0, len(tv.pages)-1)

	var page []uint32
	if len(tv.pages) > 0 {
		page = tv.pages[s.PageIndex]
	}
	if tv.scope == FilterScopePage && s.Filter.Active() {
		page = tv.baseTable.FilterIndices(page, s.Filter.Key, s.Filter.Query)
	}
	tv.visible = page

	if s.Paginated() {
		s.recenter(max(len(tv.pages), 1))
	}
}

// GoToPage moves to page n (0-based), clamped into the valid range. On an
// unpaginated view it changes nothing.
func (tv *TableView) GoToPage(n int) {
	if tv.state.Paginated() {
		tv.state.PageIndex = clamp(n, 0, len(tv.pages)-1)
	}
	tv.DeriveVisibleRows()
}

// NextPage moves one page forward, saturating at the last page.
func (tv *TableView) NextPage() {
	tv.GoToPage(tv.state.PageIndex + 1)
}

// PrevPage moves one page back, saturating at the first page.
func (tv *TableView) PrevPage() {
	tv.GoToPage(tv.state.PageIndex - 1)
}

// SortBy makes key the sort column. Sorting by the current sort column flips
// the direction; a new column starts ascending. Keys that are not sortable
// columns are ignored and SortBy reports false.
func (tv *TableView) SortBy(key string) bool {
	col, ok := columns.Find(tv.columns, key)
	if !ok || !col.Sortable {
		return false
	}

	if tv.state.Sort.Key == key {
		tv.state.Sort.Direction = tv.state.Sort.Direction.Flip()
	} else {
		tv.state.Sort = SortState{Key: key, Direction: Ascending}
	}
	tv.DeriveVisibleRows()
	return true
}

// FilterBy sets the single active filter to a case-insensitive substring
// match of query on column key, replacing any filter on another column. An
// empty query clears the filter. Keys that are not searchable columns are
// ignored and FilterBy reports false.
func (tv *TableView) FilterBy(key, query string) bool {
	col, ok := columns.Find(tv.columns, key)
	if !ok || !col.Searchable {
		return false
	}

	if query == "" {
		tv.state.Filter = FilterState{}
	} else {
		tv.state.Filter = FilterState{Key: key, Query: query}
	}
	tv.DeriveVisibleRows()
	return true
}

func clamp(n, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
