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

package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/tabula/core/tables"
)

// filterPrefix marks a filter parameter (format: filter:columnName=value).
const filterPrefix = "filter:"

// Query represents the widget state carried by a URL
type Query struct {
	// Base path (e.g., "/")
	Path string

	Page         int              // 1-based page number (0 = not set)
	Sort         string           // Sort column key
	Direction    tables.Direction // Sort direction
	FilterColumn string           // Column of the single active filter
	FilterQuery  string           // Filter query
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	state := &Query{
		Path: u.Path,
	}

	q := u.Query()

	state.Sort = q.Get("sort")
	state.Direction = tables.ParseDirection(q.Get("dir"))

	if pageStr := q.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			state.Page = page
		}
	}

	// Only one filter can be active; pick the first by column name so the
	// choice does not depend on map order.
	var filterKeys []string
	for key, values := range q {
		if strings.HasPrefix(key, filterPrefix) && len(values) > 0 && values[0] != "" {
			filterKeys = append(filterKeys, key)
		}
	}
	if len(filterKeys) > 0 {
		sort.Strings(filterKeys)
		state.FilterColumn = strings.TrimPrefix(filterKeys[0], filterPrefix)
		state.FilterQuery = q.Get(filterKeys[0])
	}

	return state
}

// FromState captures a view state.
func FromState(path string, s tables.ViewState) *Query {
	q := &Query{
		Path:      path,
		Sort:      s.Sort.Key,
		Direction: s.Sort.Direction,
	}
	if s.Paginated() {
		q.Page = s.PageIndex + 1
	}
	if s.Filter.Active() {
		q.FilterColumn = s.Filter.Key
		q.FilterQuery = s.Filter.Query
	}
	return q
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := u.Query()

	if s.Page > 0 {
		q.Set("page", strconv.Itoa(s.Page))
	}

	if s.Sort != "" {
		q.Set("sort", s.Sort)
		q.Set("dir", s.Direction.String())
	}

	if s.FilterColumn != "" && s.FilterQuery != "" {
		q.Set(filterPrefix+s.FilterColumn, s.FilterQuery)
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a sanitized safehtml.URL.
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}
