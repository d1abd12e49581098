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
	"math"
	"strings"
)

// Compare orders two values. Numbers compare numerically and sort before
// strings, strings compare lexicographically, absent values sort last.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		return compareKinds(a.kind, b.kind)
	}
	switch a.kind {
	case KindNumber:
		return compareFloat64s(a.num, b.num)
	case KindString:
		return strings.Compare(a.str, b.str)
	default:
		return 0
	}
}

// SortsLast reports whether v belongs after every comparable value
// regardless of sort direction: absent values and NaN.
func SortsLast(v Value) bool {
	return v.kind == KindAbsent || (v.kind == KindNumber && math.IsNaN(v.num))
}

// compareKinds ranks mixed kinds: number < string < absent.
func compareKinds(a, b Kind) int {
	rank := func(k Kind) int {
		switch k {
		case KindNumber:
			return 0
		case KindString:
			return 1
		default:
			return 2
		}
	}
	ra, rb := rank(a), rank(b)
	if ra < rb {
		return -1
	}
	if ra > rb {
		return 1
	}
	return 0
}

// compareFloat64s compares two float64 values with NaN handling.
// NaN values are considered greater than all other values (sort to end).
func compareFloat64s(a, b float64) int {
	aNaN := math.IsNaN(a)
	bNaN := math.IsNaN(b)

	if aNaN && bNaN {
		return 0
	}
	if aNaN {
		return 1
	}
	if bNaN {
		return -1
	}

	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}
