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

package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/tables"
	"github.com/google/tabula/core/views"
)

func newTestView(pageSize int) *tables.TableView {
	cols := []columns.Column{
		{Key: "name", Label: "Name", Sortable: true, Searchable: true},
		{Key: "region", Label: "Region", Sortable: true, Searchable: true},
		{Key: "population", Label: "Population", Sortable: true},
		{Key: "nativeName", Label: "Native Name"},
	}
	rows := []columns.Row{
		{"name": columns.StringValue("Chad"), "region": columns.StringValue("Africa"), "population": columns.IntValue(100)},
		{"name": columns.StringValue("Benin"), "region": columns.StringValue("Africa"), "population": columns.IntValue(50)},
		{"name": columns.StringValue("<script>alert(1)</script>"), "region": columns.StringValue("Asia"), "population": columns.IntValue(7)},
	}
	return tables.NewTableView(tables.NewDataTable(nil, rows), cols, pageSize, tables.FilterScopePage)
}

func render(t *testing.T, vm views.TableViewModel) string {
	t.Helper()
	r, err := NewTableRenderer()
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}
	html, err := r.Render(vm)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return html.String()
}

func TestRenderStructure(t *testing.T) {
	html := render(t, views.BuildViewModel(newTestView(0), views.EscapeCells))

	if !strings.Contains(html, "<table>") || !strings.Contains(html, "</table>") {
		t.Error("Expected table tags")
	}
	if got := strings.Count(html, `class="sort"`); got != 3 {
		t.Errorf("Expected 3 sort indicators, got %d", got)
	}
	if got := strings.Count(html, `class="search"`); got != 2 {
		t.Errorf("Expected 2 search inputs, got %d", got)
	}
	if !strings.Contains(html, `placeholder="Search by Region"`) {
		t.Error("Expected placeholder for region")
	}
	if got := strings.Count(html, "<tr>"); got != 5 {
		t.Errorf("Expected 2 head rows and 3 body rows, got %d", got)
	}
	if strings.Contains(html, "paginator") {
		t.Error("Expected no paginator when unpaginated")
	}
	if strings.Index(html, `class="sort"`) > strings.Index(html, `class="search"`) {
		t.Error("Expected header row before filter row")
	}
}

func TestRenderEscapesCellsByDefault(t *testing.T) {
	html := render(t, views.BuildViewModel(newTestView(0), views.EscapeCells))
	if strings.Contains(html, "<script>alert(1)</script>") {
		t.Error("Expected cell markup to be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;alert(1)&lt;/script&gt;") {
		t.Error("Expected escaped cell text")
	}

	raw := render(t, views.BuildViewModel(newTestView(0), views.RawCells))
	if !strings.Contains(raw, "<td><script>alert(1)</script></td>") {
		t.Error("Expected raw cell markup with RawCells")
	}
}

func TestRenderSortIcons(t *testing.T) {
	tv := newTestView(0)
	tv.SortBy("population")
	html := render(t, views.BuildViewModel(tv, views.EscapeCells))
	if !strings.Contains(html, `data-col="population">`+views.SortIconAscending) {
		t.Errorf("Expected ascending icon on population:\n%s", html)
	}

	tv.SortBy("population")
	html = render(t, views.BuildViewModel(tv, views.EscapeCells))
	if !strings.Contains(html, `data-col="population">`+views.SortIconDescending) {
		t.Errorf("Expected descending icon on population:\n%s", html)
	}
	if !strings.Contains(html, `data-col="name">`+views.SortIconInactive) {
		t.Errorf("Expected inactive icon on name:\n%s", html)
	}
}

func TestRenderFilterValue(t *testing.T) {
	tv := newTestView(0)
	tv.FilterBy("region", "afr")
	html := render(t, views.BuildViewModel(tv, views.EscapeCells))
	if !strings.Contains(html, `data-col="region" placeholder="Search by Region" value="afr"`) {
		t.Errorf("Expected prefilled region filter:\n%s", html)
	}
	if !strings.Contains(html, `data-col="name" placeholder="Search by Name" value=""`) {
		t.Errorf("Expected empty name filter:\n%s", html)
	}
}

func TestRenderPaginator(t *testing.T) {
	tv := newTestView(1)
	tv.NextPage()
	html := render(t, views.BuildViewModel(tv, views.EscapeCells))

	for _, want := range []string{
		`class="previous-page page-nav"`,
		`class="next-page page-nav"`,
		`<span class="page-no" data-pageno="1">1</span>`,
		`<span class="page-no curr-page" data-pageno="2">2</span>`,
		`<span> . . . .</span><span class="page-no" data-pageno="3">3</span>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected %q in:\n%s", want, html)
		}
	}
	if got := strings.Count(html, "<tr>"); got != 3 {
		t.Errorf("Expected 2 head rows and 1 body row, got %d", got)
	}
}

func TestRenderPage(t *testing.T) {
	r, err := NewTableRenderer()
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}
	markup, err := r.Render(views.BuildViewModel(newTestView(2), views.EscapeCells))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	var buf bytes.Buffer
	if err := r.RenderPage(&buf, views.PageViewModel{Title: "Countries", Markup: markup}); err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}
	page := buf.String()
	if !strings.Contains(page, `<div id="container">`+markup.String()+`</div>`) {
		t.Error("Expected widget markup inside the container")
	}
	if !strings.Contains(page, "<title>Countries</title>") {
		t.Error("Expected title")
	}
}
