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
	"strings"

	"github.com/google/tabula/core/columns"
	"golang.org/x/text/cases"
)

// SubstringMatcher matches values containing a query, ignoring case.
// Case is folded with Unicode full case folding, so "STRASSE" matches
// "Straße". A matcher is not safe for concurrent use.
type SubstringMatcher struct {
	folder cases.Caser
	query  string
}

// NewSubstringMatcher creates a matcher for query.
func NewSubstringMatcher(query string) *SubstringMatcher {
	folder := cases.Fold()
	return &SubstringMatcher{
		folder: folder,
		query:  folder.String(query),
	}
}

// Match reports whether the display form of v contains the query.
func (m *SubstringMatcher) Match(v columns.Value) bool {
	return strings.Contains(m.folder.String(v.String()), m.query)
}

// FilterIndices keeps the indices whose value in column key contains query,
// preserving order. An empty query keeps everything.
func (dt *DataTable) FilterIndices(indices []uint32, key, query string) []uint32 {
	if query == "" {
		out := make([]uint32, len(indices))
		copy(out, indices)
		return out
	}

	m := NewSubstringMatcher(query)
	out := make([]uint32, 0, len(indices))
	for _, idx := range indices {
		if m.Match(dt.rows[idx].Get(key)) {
			out = append(out, idx)
		}
	}
	return out
}
