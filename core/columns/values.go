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
	"strconv"
	"strings"
)

// Kind is the dynamic type of a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindString
	KindNumber
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "absent"
	}
}

// Value is a displayable scalar: a string, a number, or absent.
// The zero Value is absent.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// StringValue wraps a string.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// NumberValue wraps a number.
func NumberValue(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// IntValue wraps an integer as a number.
func IntValue(i int64) Value {
	return NumberValue(float64(i))
}

// ParseValue returns a number when s is a plain decimal such as "42",
// "-3.5" or "0.25", a string otherwise. Exponents, NaN, infinities and
// integers with leading zeros stay strings so identifiers like "02134"
// keep their text.
func ParseValue(s string) Value {
	if isPlainDecimal(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return NumberValue(f)
		}
	}
	return StringValue(s)
}

func isPlainDecimal(s string) bool {
	s = strings.TrimPrefix(s, "-")
	intPart, frac, hasFrac := strings.Cut(s, ".")
	if !allDigits(intPart) || (len(intPart) > 1 && intPart[0] == '0') {
		return false
	}
	return !hasFrac || allDigits(frac)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// Number returns the numeric payload and whether the value is a number.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// String returns the display form of the value. Absent values render empty.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Row is one record of the dataset, keyed by column key.
type Row map[string]Value

// Get returns the value for key, or an absent Value if the row lacks it.
func (r Row) Get(key string) Value {
	return r[key]
}
