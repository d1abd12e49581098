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

// Package events routes DOM events from a widget's rendered markup back to
// its view-state operations.
package events

import (
	"slices"
)

// Class names that are part of the markup contract.
const (
	ClassSort         = "sort"
	ClassSearch       = "search"
	ClassPageNav      = "page-nav"
	ClassPageNo       = "page-no"
	ClassPreviousPage = "previous-page"
	ClassNextPage     = "next-page"
	ClassCurrentPage  = "curr-page"
)

// Data attributes read by the router, named as in a DOM dataset.
const (
	DataColumn = "col"
	DataPageNo = "pageno"
)

// Event types the router handles.
const (
	TypeClick = "click"
	TypeKeyUp = "keyup"
)

// enterKeyCode is the legacy KeyboardEvent.which value of the Enter key.
const enterKeyCode = 13

// Event is a DOM event as reported by a host.
type Event struct {
	Type    string `json:"type"`
	Key     string `json:"key,omitempty"`
	KeyCode int    `json:"keyCode,omitempty"`
	Target  Target `json:"target"`
}

// Target describes the element an event fired on.
type Target struct {
	Classes []string          `json:"classes"`
	Data    map[string]string `json:"data,omitempty"`
	Value   string            `json:"value,omitempty"`
}

// HasClass reports whether the target carries class c.
func (t Target) HasClass(c string) bool {
	return slices.Contains(t.Classes, c)
}

// IsEnter reports whether a key event is the Enter key.
func (e Event) IsEnter() bool {
	return e.Key == "Enter" || e.KeyCode == enterKeyCode
}

// Click builds a click event on an element with the given classes and data.
func Click(data map[string]string, classes ...string) Event {
	return Event{Type: TypeClick, Target: Target{Classes: classes, Data: data}}
}

// EnterKey builds an Enter key-up event on the search input of column col.
func EnterKey(col, value string) Event {
	return Event{
		Type:    TypeKeyUp,
		Key:     "Enter",
		KeyCode: enterKeyCode,
		Target: Target{
			Classes: []string{ClassSearch},
			Data:    map[string]string{DataColumn: col},
			Value:   value,
		},
	}
}
