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

package widget

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/events"
	"github.com/google/tabula/core/query"
	"github.com/google/tabula/core/tables"
)

func scenarioColumns() []columns.Column {
	return []columns.Column{
		{Key: "name", Label: "Name", Sortable: true, Searchable: true},
		{Key: "population", Label: "Population", Sortable: true},
	}
}

func scenarioRows() []columns.Row {
	return []columns.Row{
		{"name": columns.StringValue("Chad"), "population": columns.IntValue(100)},
		{"name": columns.StringValue("Benin"), "population": columns.IntValue(50)},
	}
}

func manyRows(n int) []columns.Row {
	rows := make([]columns.Row, n)
	for i := range rows {
		rows[i] = columns.Row{
			"name":       columns.StringValue(fmt.Sprintf("country %03d", i)),
			"population": columns.IntValue(int64(i * 10)),
		}
	}
	return rows
}

func visibleNames(w *TableWidget) []string {
	var out []string
	for _, r := range w.VisibleRows() {
		out = append(out, r.Get("name").String())
	}
	return out
}

func TestNewRejectsInvalidInput(t *testing.T) {
	mount := &BufferMount{}
	tests := []struct {
		name  string
		cols  []columns.Column
		rows  []columns.Row
		mount Mount
		opts  []Option
	}{
		{"no columns", nil, scenarioRows(), mount, nil},
		{"no rows", scenarioColumns(), nil, mount, nil},
		{"no mount", scenarioColumns(), scenarioRows(), nil, nil},
		{"duplicate keys", []columns.Column{{Key: "name"}, {Key: "name"}}, scenarioRows(), mount, nil},
		{"negative page size", scenarioColumns(), scenarioRows(), mount, []Option{WithPageSize(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New(tt.cols, tt.rows, tt.mount, tt.opts...)
			if w != nil {
				t.Error("Expected no widget")
			}
			if !errors.Is(err, ErrInitialization) {
				t.Fatalf("Expected ErrInitialization, got %v", err)
			}
			var initErr *InitializationError
			if !errors.As(err, &initErr) || initErr.Reason == "" {
				t.Errorf("Expected *InitializationError with a reason, got %v", err)
			}
		})
	}
	if mount.Renders() != 0 {
		t.Errorf("Expected failed construction not to render, got %d renders", mount.Renders())
	}
}

func TestNewRendersFirstPage(t *testing.T) {
	tests := []struct {
		rows, pageSize, want int
	}{
		{23, 10, 10},
		{4, 10, 4},
		{23, 0, 23},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("rows=%d,pageSize=%d", tt.rows, tt.pageSize), func(t *testing.T) {
			mount := &BufferMount{}
			w, err := New(scenarioColumns(), manyRows(tt.rows), mount, WithPageSize(tt.pageSize))
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if got := len(w.VisibleRows()); got != tt.want {
				t.Errorf("Expected %d rows, got %d", tt.want, got)
			}
			if mount.Renders() != 1 {
				t.Errorf("Expected 1 render, got %d", mount.Renders())
			}
			if got := strings.Count(mount.Markup().String(), "<tr>"); got != tt.want+2 {
				t.Errorf("Expected %d table rows in markup, got %d", tt.want+2, got)
			}
		})
	}
}

// TestScenarioThroughEvents drives the Chad/Benin scenario with DOM events.
func TestScenarioThroughEvents(t *testing.T) {
	mount := &BufferMount{}
	w, err := New(scenarioColumns(), scenarioRows(), mount, WithPageSize(1))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := visibleNames(w); len(got) != 1 || got[0] != "Chad" {
		t.Fatalf("Expected [Chad], got %v", got)
	}

	steps := []struct {
		ev   events.Event
		want string
	}{
		{events.Click(map[string]string{events.DataPageNo: "2"}, events.ClassPageNo), "Benin"},
		{events.Click(nil, events.ClassPreviousPage, events.ClassPageNav), "Chad"},
		{events.Click(map[string]string{events.DataColumn: "name"}, events.ClassSort), "Benin"},
		{events.Click(map[string]string{events.DataColumn: "name"}, events.ClassSort), "Chad"},
	}
	for i, step := range steps {
		handled, err := w.Dispatch(step.ev)
		if err != nil || !handled {
			t.Fatalf("Step %d: expected handled event, got handled=%v err=%v", i, handled, err)
		}
		if got := visibleNames(w); len(got) != 1 || got[0] != step.want {
			t.Errorf("Step %d: expected [%s], got %v", i, step.want, got)
		}
		if !strings.Contains(mount.Markup().String(), "<td>"+step.want+"</td>") {
			t.Errorf("Step %d: expected %s in mounted markup", i, step.want)
		}
	}
	if got := w.State().Sort.Direction; got != tables.Descending {
		t.Errorf("Expected desc after two sorts, got %s", got)
	}
	if mount.Renders() != 1+len(steps) {
		t.Errorf("Expected %d renders, got %d", 1+len(steps), mount.Renders())
	}
}

func TestFilterEventRoundTrip(t *testing.T) {
	mount := &BufferMount{}
	w, err := New(scenarioColumns(), manyRows(30), mount, WithPageSize(10))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	before := mount.Markup()

	if handled, err := w.Dispatch(events.EnterKey("name", "COUNTRY 00")); err != nil || !handled {
		t.Fatalf("Expected filter to be handled, got handled=%v err=%v", handled, err)
	}
	if got := len(w.VisibleRows()); got != 10 {
		t.Errorf("Expected page rows 000-009 to match, got %d", got)
	}
	if !strings.Contains(mount.Markup().String(), `value="COUNTRY 00"`) {
		t.Error("Expected filter input to keep the query")
	}

	if handled, _ := w.Dispatch(events.EnterKey("name", "")); !handled {
		t.Fatal("Expected clearing filter to be handled")
	}
	if mount.Markup() != before {
		t.Error("Expected clearing the filter to reproduce the unfiltered markup")
	}
}

func TestNonEnterKeyDoesNotRender(t *testing.T) {
	mount := &BufferMount{}
	w, err := New(scenarioColumns(), scenarioRows(), mount)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ev := events.EnterKey("name", "ch")
	ev.Key, ev.KeyCode = "h", 72
	if handled, _ := w.Dispatch(ev); handled {
		t.Error("Expected non-Enter key to be ignored")
	}
	if mount.Renders() != 1 {
		t.Errorf("Expected no re-render, got %d renders", mount.Renders())
	}
}

func TestPaginatorEventsUseCurrentMarkup(t *testing.T) {
	mount := &BufferMount{}
	w, err := New(scenarioColumns(), manyRows(120), mount, WithPageSize(10))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// page 9 is outside the initial window [1 6]
	if handled, _ := w.Dispatch(events.Click(map[string]string{events.DataPageNo: "9"}, events.ClassPageNo)); handled {
		t.Error("Expected click on a page number not in the markup to be dropped")
	}
	// the last-page shortcut is always rendered
	if handled, _ := w.Dispatch(events.Click(map[string]string{events.DataPageNo: "12"}, events.ClassPageNo)); !handled {
		t.Fatal("Expected last-page shortcut to be bound")
	}
	if got := w.State().PageIndex; got != 11 {
		t.Errorf("Expected page index 11, got %d", got)
	}

	w.Dispatch(events.Click(nil, events.ClassNextPage, events.ClassPageNav))
	if got := w.State().PageIndex; got != 11 {
		t.Errorf("Expected next at last page to stay at 11, got %d", got)
	}
}

func TestGoToPageUnpaginatedStillRenders(t *testing.T) {
	mount := &BufferMount{}
	w, err := New(scenarioColumns(), scenarioRows(), mount)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.GoToPage(3); err != nil {
		t.Fatalf("GoToPage failed: %v", err)
	}
	if mount.Renders() != 2 {
		t.Errorf("Expected a re-render, got %d renders", mount.Renders())
	}
	if strings.Contains(mount.Markup().String(), "paginator") {
		t.Error("Expected no paginator when unpaginated")
	}
}

func TestRawCellsOptOut(t *testing.T) {
	rows := []columns.Row{{"name": columns.StringValue("<em>Togo</em>"), "population": columns.IntValue(8)}}

	escaped := &BufferMount{}
	if _, err := New(scenarioColumns(), rows, escaped); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if strings.Contains(escaped.Markup().String(), "<em>") {
		t.Error("Expected values to be escaped by default")
	}

	raw := &BufferMount{}
	if _, err := New(scenarioColumns(), rows, raw, WithRawCells()); err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !strings.Contains(raw.Markup().String(), "<td><em>Togo</em></td>") {
		t.Error("Expected raw values with WithRawCells")
	}
}

func TestDatasetFilterScope(t *testing.T) {
	w, err := New(scenarioColumns(), manyRows(30), &BufferMount{}, WithPageSize(10), WithFilterScope(tables.FilterScopeDataset))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.FilterBy("name", "country 02"); err != nil {
		t.Fatalf("FilterBy failed: %v", err)
	}
	if got := len(w.VisibleRows()); got != 10 {
		t.Errorf("Expected rows 020-029 from another page, got %d", got)
	}
	if got := w.PageCount(); got != 1 {
		t.Errorf("Expected 1 page, got %d", got)
	}
}

func TestRestoreAndQuery(t *testing.T) {
	w, err := New(scenarioColumns(), manyRows(30), &BufferMount{}, WithPageSize(10))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	u, _ := url.Parse("/?page=2&sort=population&dir=desc&filter:name=1")
	if err := w.Restore(query.NewQuery(u)); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	s := w.State()
	if s.PageIndex != 1 || s.Sort.Key != "population" || s.Sort.Direction != tables.Descending {
		t.Errorf("Unexpected restored state %+v", s)
	}
	if s.Filter.Key != "name" || s.Filter.Query != "1" {
		t.Errorf("Unexpected restored filter %+v", s.Filter)
	}

	back := w.Query("/")
	if back.Page != 2 || back.Sort != "population" || back.FilterQuery != "1" {
		t.Errorf("Unexpected query %+v", *back)
	}
}
