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

// Package widget provides TableWidget, a sortable, searchable, paginated
// table that renders into a Mount and re-renders itself on every event.
//
// A widget is single-threaded: it never locks, and callers that share one
// between goroutines must serialize access.
package widget

import (
	"fmt"

	"github.com/google/safehtml"
	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/events"
	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/rendering"
	"github.com/google/tabula/core/tables"
	"github.com/google/tabula/core/views"
	"github.com/rs/zerolog"
)

// TableWidget owns the view state of one table and everything that reacts to
// it: the engine deriving visible rows, the renderer and the event router.
type TableWidget struct {
	mount     Mount
	tableView *tables.TableView
	renderer  *rendering.TableRenderer
	router    *events.Router
	policy    views.CellPolicy
	logger    zerolog.Logger
	markup    safehtml.HTML
}

// New validates its inputs, derives the first page and renders it into
// mount. It fails with an *InitializationError when there is nothing to
// display or nowhere to display it.
func New(cols []columns.Column, rows []columns.Row, mount Mount, opts ...Option) (*TableWidget, error) {
	o := options{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case len(cols) == 0:
		return nil, &InitializationError{Reason: "no columns"}
	case len(rows) == 0:
		return nil, &InitializationError{Reason: "no rows"}
	case mount == nil:
		return nil, &InitializationError{Reason: "no mount target"}
	case o.pageSize < 0:
		return nil, &InitializationError{Reason: fmt.Sprintf("page size %d is negative", o.pageSize)}
	}
	if err := columns.ValidateColumns(cols); err != nil {
		return nil, &InitializationError{Reason: err.Error()}
	}

	if o.renderer == nil {
		r, err := rendering.NewTableRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to create renderer: %w", err)
		}
		o.renderer = r
	}

	cols = append([]columns.Column(nil), cols...)
	dataTable := tables.NewDataTable(columns.Keys(cols), rows)

	w := &TableWidget{
		mount:     mount,
		tableView: tables.NewTableView(dataTable, cols, o.pageSize, o.scope),
		renderer:  o.renderer,
		policy:    o.policy,
		logger:    o.logger,
	}
	w.router = events.NewRouter(w.tableView, w.update)

	if err := w.update(); err != nil {
		return nil, err
	}
	return w, nil
}

// update renders the current state into the mount and re-binds the router
// to the new markup.
func (w *TableWidget) update() error {
	markup, err := w.renderer.Render(views.BuildViewModel(w.tableView, w.policy))
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	w.markup = markup
	w.mount.SetInnerHTML(markup)
	return w.router.Bind(markup)
}

// Dispatch routes a DOM event from the mounted markup. It reports whether
// the event reached a handler; handled events always end in a re-render.
func (w *TableWidget) Dispatch(ev events.Event) (bool, error) {
	handled, err := w.router.Dispatch(ev)
	w.logger.Debug().
		Str("type", ev.Type).
		Strs("classes", ev.Target.Classes).
		Bool("handled", handled).
		Err(err).
		Msg("dispatched event")
	return handled, err
}

// SortBy sorts by key as a click on its sort indicator would, then re-renders.
func (w *TableWidget) SortBy(key string) error {
	w.tableView.SortBy(key)
	return w.update()
}

// FilterBy filters column key by query, then re-renders.
func (w *TableWidget) FilterBy(key, query string) error {
	w.tableView.FilterBy(key, query)
	return w.update()
}

// GoToPage moves to page n (0-based, clamped), then re-renders.
func (w *TableWidget) GoToPage(n int) error {
	w.tableView.GoToPage(n)
	return w.update()
}

// NextPage moves one page forward, then re-renders.
func (w *TableWidget) NextPage() error {
	w.tableView.NextPage()
	return w.update()
}

// PrevPage moves one page back, then re-renders.
func (w *TableWidget) PrevPage() error {
	w.tableView.PrevPage()
	return w.update()
}

// Restore replays the state encoded in q through the regular operations, so
// an invalid key or page in q is ignored or clamped as any event would be.
func (w *TableWidget) Restore(q *query.Query) error {
	if q.Sort != "" {
		if w.tableView.SortBy(q.Sort) && q.Direction == tables.Descending {
			w.tableView.SortBy(q.Sort)
		}
	}
	if q.FilterColumn != "" {
		w.tableView.FilterBy(q.FilterColumn, q.FilterQuery)
	}
	if q.Page > 0 {
		w.tableView.GoToPage(q.Page - 1)
	}
	return w.update()
}

// Query returns the current state as a bookmarkable query rooted at path.
func (w *TableWidget) Query(path string) *query.Query {
	return query.FromState(path, w.tableView.State())
}

// State returns a copy of the view state.
func (w *TableWidget) State() tables.ViewState {
	return w.tableView.State()
}

// Columns returns the column descriptors in display order.
func (w *TableWidget) Columns() []columns.Column {
	return w.tableView.Columns()
}

// VisibleRows returns the rows of the current render.
func (w *TableWidget) VisibleRows() []columns.Row {
	return w.tableView.VisibleRows()
}

// PageCount returns the number of pages; 1 when unpaginated.
func (w *TableWidget) PageCount() int {
	return w.tableView.PageCount()
}

// Markup returns the markup of the current render.
func (w *TableWidget) Markup() safehtml.HTML {
	return w.markup
}

// ViewModel returns the view model of the current state, for hosts that
// draw the table themselves instead of displaying markup.
func (w *TableWidget) ViewModel() views.TableViewModel {
	return views.BuildViewModel(w.tableView, w.policy)
}
