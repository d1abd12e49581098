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

// Paginate partitions indices into consecutive pages of pageSize. The last
// page may be shorter; no empty trailing page is created. A pageSize of zero
// or less yields a single page holding everything, or no page at all when
// indices is empty.
func Paginate(indices []uint32, pageSize int) [][]uint32 {
	if len(indices) == 0 {
		return nil
	}
	if pageSize <= 0 {
		return [][]uint32{indices}
	}

	pages := make([][]uint32, 0, (len(indices)+pageSize-1)/pageSize)
	for start := 0; start < len(indices); start += pageSize {
		end := min(start+pageSize, len(indices))
		pages = append(pages, indices[start:end:end])
	}
	return pages
}
