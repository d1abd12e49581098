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

package datasources

import (
	"fmt"

	"github.com/google/tabula/core/columns"
)

// ColumnAnnotation overrides how a loaded column is presented. Nil flags
// keep the discovered value.
type ColumnAnnotation struct {
	Key        string
	Label      string
	Sortable   *bool
	Searchable *bool
}

// EnrichColumns combines discovered columns with annotations. Without
// annotations the discovered columns are returned unchanged; otherwise only
// annotated columns are kept, in annotation order.
func EnrichColumns(discovered []columns.Column, annotations []ColumnAnnotation) ([]columns.Column, error) {
	if len(annotations) == 0 {
		return discovered, nil
	}

	result := make([]columns.Column, 0, len(annotations))
	for _, ann := range annotations {
		col, ok := columns.Find(discovered, ann.Key)
		if !ok {
			return nil, fmt.Errorf("annotated column %q not found in source", ann.Key)
		}
		if ann.Label != "" {
			col.Label = ann.Label
		}
		if ann.Sortable != nil {
			col.Sortable = *ann.Sortable
		}
		if ann.Searchable != nil {
			col.Searchable = *ann.Searchable
		}
		result = append(result, col)
	}
	if err := columns.ValidateColumns(result); err != nil {
		return nil, fmt.Errorf("invalid column annotations: %w", err)
	}
	return result, nil
}
