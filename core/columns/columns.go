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

package columns

import (
	"fmt"
)

// Column describes how one field of a Row is labeled, sorted and filtered.
// The order of a column list fixes header, filter and cell order.
type Column struct {
	Key        string // must match a field of the rows
	Label      string
	Sortable   bool
	Searchable bool
}

// DisplayName returns the label, falling back to the key.
func (c Column) DisplayName() string {
	if c.Label == "" {
		return c.Key
	}
	return c.Label
}

// ValidateColumns checks that every column has a non-empty, unique key.
func ValidateColumns(cols []Column) error {
	seen := make(map[string]bool, len(cols))
	for i, c := range cols {
		if c.Key == "" {
			return fmt.Errorf("column %d has an empty key", i)
		}
		if seen[c.Key] {
			return fmt.Errorf("duplicate column key %q", c.Key)
		}
		seen[c.Key] = true
	}
	return nil
}

// Find returns the column with the given key.
func Find(cols []Column, key string) (Column, bool) {
	for _, c := range cols {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// Keys returns the column keys in order.
func Keys(cols []Column) []string {
	keys := make([]string, len(cols))
	for i, c := range cols {
		keys[i] = c.Key
	}
	return keys
}
