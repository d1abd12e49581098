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

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// ParseDirection parses "asc" or "desc"; anything else is Ascending.
func ParseDirection(s string) Direction {
	if s == "desc" || s == "dsc" {
		return Descending
	}
	return Ascending
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	*d = ParseDirection(string(text))
	return nil
}

// SortState names the single active sort column. An empty Key means unsorted.
type SortState struct {
	Key       string    `json:"key,omitempty"`
	Direction Direction `json:"direction"`
}

// FilterState names the single active filter. An empty Key means unfiltered.
type FilterState struct {
	Key   string `json:"key,omitempty"`
	Query string `json:"query,omitempty"`
}

// Active reports whether the filter narrows anything.
func (f FilterState) Active() bool {
	return f.Key != "" && f.Query != ""
}

// ViewState is the mutable display state of a widget, distinct from its
// immutable source rows.
type ViewState struct {
	PageSize  int         `json:"pageSize"` // 0 disables pagination
	PageIndex int         `json:"pageIndex"`
	Sort      SortState   `json:"sort"`
	Filter    FilterState `json:"filter"`
	// Window is the inclusive 1-based range of page numbers offered by the
	// paginator.
	Window [2]int `json:"window"`
}

// NewViewState returns the construction defaults for pageSize.
func NewViewState(pageSize int) ViewState {
	return ViewState{
		PageSize: pageSize,
		Sort:     SortState{Direction: Ascending},
		Window:   [2]int{1, 5},
	}
}

// Paginated reports whether the state partitions rows into pages.
func (s ViewState) Paginated() bool {
	return s.PageSize > 0
}

// windowSpan is how many pages past the current one the paginator offers.
const windowSpan = 5

// recenter moves the window so it starts at the current page when the
// current page reaches either edge of it or the window overruns lastPage.
func (s *ViewState) recenter(lastPage int) {
	cur := s.PageIndex + 1
	if cur >= s.Window[1] || cur <= s.Window[0] || s.Window[1] > lastPage {
		s.Window = [2]int{cur, max(cur, min(cur+windowSpan, lastPage))}
	}
}
