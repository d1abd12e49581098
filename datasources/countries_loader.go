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
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/google/tabula/core/columns"
	"github.com/google/tabula/core/tables"
)

// CountryFields are the record fields kept from a countries API response,
// in display order.
var CountryFields = []string{"name", "capital", "region", "population", "nativeName"}

// CountriesLoader implements Loader for a restcountries-style JSON API: a
// JSON array of country objects fetched over HTTP.
//
// Required config keys:
//   - url: Endpoint returning the JSON array
type CountriesLoader struct {
	client *http.Client
}

// NewCountriesLoader creates a loader using client, or http.DefaultClient when nil.
func NewCountriesLoader(client *http.Client) *CountriesLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &CountriesLoader{client: client}
}

// SourceType returns "countries".
func (l *CountriesLoader) SourceType() string {
	return "countries"
}

// Load fetches the country list and flattens each entry to CountryFields.
func (l *CountriesLoader) Load(ctx context.Context, config map[string]string) (*tables.DataTable, error) {
	url := config["url"]
	if url == "" {
		return nil, fmt.Errorf("url is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch countries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch countries: unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	rows, err := ParseCountries(body)
	if err != nil {
		return nil, err
	}
	return tables.NewDataTable(CountryFields, rows), nil
}

// ParseCountries decodes a JSON array of country objects into rows.
// Fields missing from an entry stay absent.
func ParseCountries(data []byte) ([]columns.Row, error) {
	list := &structpb.ListValue{}
	if err := protojson.Unmarshal(data, list); err != nil {
		return nil, fmt.Errorf("failed to decode countries: %w", err)
	}

	rows := make([]columns.Row, 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		obj := item.GetStructValue()
		if obj == nil {
			return nil, fmt.Errorf("country %d is not an object", i)
		}
		row := make(columns.Row, len(CountryFields))
		fields := obj.GetFields()
		for _, key := range CountryFields {
			if v, ok := flattenValue(fields[key]); ok {
				row[key] = v
			}
		}
		// Newer API versions nest the native name under name.nativeName.
		if _, ok := row["nativeName"]; !ok {
			if nested := fields["name"].GetStructValue().GetFields()["nativeName"]; nested != nil {
				if v, ok := flattenValue(nested); ok {
					row["nativeName"] = v
				}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// flattenValue reduces a JSON value to a displayable scalar. Objects
// yield their "common" member or the first member in key order, lists
// their first element.
func flattenValue(v *structpb.Value) (columns.Value, bool) {
	if v == nil {
		return columns.Value{}, false
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return columns.StringValue(k.StringValue), true
	case *structpb.Value_NumberValue:
		return columns.NumberValue(k.NumberValue), true
	case *structpb.Value_BoolValue:
		if k.BoolValue {
			return columns.StringValue("true"), true
		}
		return columns.StringValue("false"), true
	case *structpb.Value_ListValue:
		values := k.ListValue.GetValues()
		if len(values) == 0 {
			return columns.Value{}, false
		}
		return flattenValue(values[0])
	case *structpb.Value_StructValue:
		fields := k.StructValue.GetFields()
		if common, ok := fields["common"]; ok {
			return flattenValue(common)
		}
		names := make([]string, 0, len(fields))
		for name := range fields {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if v, ok := flattenValue(fields[name]); ok {
				return v, true
			}
		}
		return columns.Value{}, false
	default:
		// JSON null
		return columns.Value{}, false
	}
}
