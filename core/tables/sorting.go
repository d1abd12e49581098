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
	"sort"

	"github.com/google/tabula/core/columns"
)

// SortIndices returns a sorted copy of indices ordered by the values of the
// column key. The sort is stable in both directions: rows with equal values
// keep their relative order from indices. Absent and NaN values stay at the
// end whichever the direction.
func (dt *DataTable) SortIndices(indices []uint32, key string, descending bool) []uint32 {
	sorted := make([]uint32, len(indices))
	copy(sorted, indices)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := dt.rows[sorted[i]].Get(key), dt.rows[sorted[j]].Get(key)
		if lastA, lastB := columns.SortsLast(a), columns.SortsLast(b); lastA || lastB {
			return !lastA && lastB
		}
		cmp := columns.Compare(a, b)
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
	return sorted
}
