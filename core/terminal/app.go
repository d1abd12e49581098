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

// Package terminal hosts a table widget in a terminal with bubbletea. Keys
// are translated into the same events a browser would post, so the widget
// behaves identically in both hosts.
package terminal

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/events"
	"github.com/google/tabula/core/views"
	"github.com/google/tabula/core/widget"
)

type mode int

const (
	modeBrowse mode = iota
	modeSort
	modeFilter
	modeGoto
)

// App is the bubbletea model around one widget.
type App struct {
	title      string
	widget     *widget.TableWidget
	searchable []columns.Column
	mode       mode
	filterCol  int // index into searchable
	input      string
	status     string
}

// New creates the terminal model for w.
func New(title string, w *widget.TableWidget) *App {
	a := &App{title: title, widget: w}
	for _, c := range w.Columns() {
		if c.Searchable {
			a.searchable = append(a.searchable, c)
		}
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return nil
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	if m.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	switch a.mode {
	case modeSort:
		return a.handleSortKey(m)
	case modeFilter:
		return a.handleFilterKey(m)
	case modeGoto:
		return a.handleGotoKey(m)
	}

	a.status = ""
	switch m.String() {
	case "q":
		return a, tea.Quit
	case "left", "h":
		a.dispatch(events.Click(nil, events.ClassPreviousPage, events.ClassPageNav), "no pages")
	case "right", "l":
		a.dispatch(events.Click(nil, events.ClassNextPage, events.ClassPageNav), "no pages")
	case "s":
		a.mode = modeSort
	case "/":
		if len(a.searchable) == 0 {
			a.status = "no searchable columns"
			return a, nil
		}
		a.mode = modeFilter
		a.input = a.currentFilter()
	case "g":
		a.mode = modeGoto
		a.input = ""
	}
	return a, nil
}

// dispatch sends ev to the widget; miss is shown when nothing handled it.
func (a *App) dispatch(ev events.Event, miss string) {
	handled, err := a.widget.Dispatch(ev)
	switch {
	case err != nil:
		a.status = err.Error()
	case !handled:
		a.status = miss
	}
}

func (a *App) handleSortKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.mode = modeBrowse
	n, err := strconv.Atoi(m.String())
	cols := a.widget.Columns()
	if err != nil || n < 1 || n > len(cols) {
		a.status = fmt.Sprintf("sort: press a column number 1-%d", len(cols))
		return a, nil
	}
	col := cols[n-1]
	a.dispatch(events.Click(map[string]string{events.DataColumn: col.Key}, events.ClassSort),
		fmt.Sprintf("%s is not sortable", col.DisplayName()))
	return a, nil
}

func (a *App) handleFilterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.mode = modeBrowse
		a.input = ""
	case tea.KeyTab:
		a.filterCol = (a.filterCol + 1) % len(a.searchable)
		a.input = a.currentFilter()
	case tea.KeyEnter:
		a.mode = modeBrowse
		col := a.searchable[a.filterCol]
		a.dispatch(events.EnterKey(col.Key, a.input), fmt.Sprintf("%s is not searchable", col.DisplayName()))
		a.input = ""
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		a.input = dropLastRune(a.input)
	case tea.KeySpace:
		a.input += " "
	case tea.KeyRunes:
		a.input += string(m.Runes)
	}
	return a, nil
}

func (a *App) handleGotoKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.mode = modeBrowse
	case tea.KeyEnter:
		a.mode = modeBrowse
		n, err := strconv.Atoi(a.input)
		if err != nil {
			a.status = "goto: enter a page number"
			return a, nil
		}
		if err := a.widget.GoToPage(n - 1); err != nil {
			a.status = err.Error()
		}
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		a.input = dropLastRune(a.input)
	case tea.KeyRunes:
		for _, r := range m.Runes {
			if r >= '0' && r <= '9' {
				a.input += string(r)
			}
		}
	}
	return a, nil
}

// currentFilter returns the active query when it is on the selected column.
func (a *App) currentFilter() string {
	f := a.widget.State().Filter
	if f.Key == a.searchable[a.filterCol].Key {
		return f.Query
	}
	return ""
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

// styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	currentStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle    = lipgloss.NewStyle().Faint(true)
)

func (a *App) View() string {
	vm := a.widget.ViewModel()
	var b strings.Builder

	b.WriteString(titleStyle.Render(a.title))
	b.WriteString("\n")
	b.WriteString(renderTable(vm, a.widget.Columns(), a.widget.VisibleRows()))
	b.WriteString("\n")
	if vm.Paginator != nil {
		b.WriteString(renderPaginator(vm.Paginator))
		b.WriteString("\n")
	}
	if f := a.widget.State().Filter; f.Active() {
		fmt.Fprintf(&b, "filter: %s contains %q\n", f.Key, f.Query)
	}

	switch a.mode {
	case modeSort:
		b.WriteString("sort by column number: ")
	case modeFilter:
		col := a.searchable[a.filterCol]
		fmt.Fprintf(&b, "Search by %s: %s_  [tab] next column  [esc] cancel", col.DisplayName(), a.input)
	case modeGoto:
		fmt.Fprintf(&b, "go to page: %s_", a.input)
	default:
		b.WriteString(helpStyle.Render("[←/→] page  [s]+N sort  [/] search  [g] go to page  [q] quit"))
	}
	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(a.status)
	}
	return b.String()
}

// renderTable draws headers with their column number and sort icon. Cells
// come from the rows themselves since the terminal shows text, not markup.
func renderTable(vm views.TableViewModel, cols []columns.Column, rows []columns.Row) string {
	headers := make([]string, len(vm.Headers))
	for i, h := range vm.Headers {
		headers[i] = fmt.Sprintf("%d %s", i+1, h.Label)
		if h.Sortable {
			headers[i] += " " + h.SortIcon
		}
	}
	data := make([][]string, len(rows))
	for i, r := range rows {
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = r.Get(c.Key).String()
		}
		data[i] = cells
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(data...).
		String()
}

// renderPaginator mirrors the markup controls: the window, an ellipsis and
// the last page.
func renderPaginator(p *views.PaginatorViewModel) string {
	parts := []string{"‹"}
	for _, link := range p.Pages {
		label := strconv.Itoa(link.Number)
		if link.Current {
			label = currentStyle.Render(label)
		}
		parts = append(parts, label)
	}
	parts = append(parts, "…", strconv.Itoa(p.LastPage), "›")
	return strings.Join(parts, " ")
}

// Run starts the terminal program and blocks until the user quits.
func Run(title string, w *widget.TableWidget, opts ...tea.ProgramOption) error {
	if _, err := tea.NewProgram(New(title, w), opts...).Run(); err != nil {
		return fmt.Errorf("failed to run terminal ui: %w", err)
	}
	return nil
}
