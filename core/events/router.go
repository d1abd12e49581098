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

package events

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/google/safehtml"
	"golang.org/x/net/html"
)

// Handlers are the view-state operations an event can trigger.
type Handlers interface {
	SortBy(key string) bool
	FilterBy(key, query string) bool
	GoToPage(n int)
	NextPage()
	PrevPage()
}

// binding identifies one bound element by its role and argument.
type binding struct {
	role string // one of the contract classes
	arg  string // column key or page number
}

// Router binds handlers to the elements of the current markup. The markup
// is replaced wholesale on every render, so Bind must run after each render;
// events aimed at elements of an earlier render are dropped.
type Router struct {
	handlers Handlers
	after    func() error
	bindings map[binding]bool
}

// NewRouter creates a router. after runs once every handled event has
// mutated the view state; the widget uses it to re-render and re-bind.
func NewRouter(handlers Handlers, after func() error) *Router {
	return &Router{
		handlers: handlers,
		after:    after,
		bindings: make(map[binding]bool),
	}
}

// Bind replaces the binding set with the controls found in markup.
func (r *Router) Bind(markup safehtml.HTML) error {
	bindings := make(map[binding]bool)

	z := html.NewTokenizer(strings.NewReader(markup.String()))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return fmt.Errorf("failed to scan markup: %w", err)
			}
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		tok := z.Token()
		var classes []string
		attrs := make(map[string]string)
		for _, a := range tok.Attr {
			switch a.Key {
			case "class":
				classes = strings.Fields(a.Val)
			case "data-" + DataColumn, "data-" + DataPageNo:
				attrs[strings.TrimPrefix(a.Key, "data-")] = a.Val
			}
		}
		for _, c := range classes {
			switch c {
			case ClassSort, ClassSearch:
				bindings[binding{c, attrs[DataColumn]}] = true
			case ClassPageNo:
				bindings[binding{c, attrs[DataPageNo]}] = true
			case ClassPreviousPage, ClassNextPage:
				if slices.Contains(classes, ClassPageNav) {
					bindings[binding{c, ""}] = true
				}
			}
		}
	}

	r.bindings = bindings
	return nil
}

// Bound reports how many controls the last Bind found.
func (r *Router) Bound() int {
	return len(r.bindings)
}

// Dispatch routes ev to its handler. It reports whether a handler ran and
// accepted the event; events on unbound targets, key-ups other than Enter
// and sort or filter keys the engine rejects are ignored without a render.
func (r *Router) Dispatch(ev Event) (bool, error) {
	t := ev.Target
	col := t.Data[DataColumn]

	switch {
	case ev.Type == TypeClick && t.HasClass(ClassSort):
		if !r.bindings[binding{ClassSort, col}] {
			return false, nil
		}
		if !r.handlers.SortBy(col) {
			return false, nil
		}

	case ev.Type == TypeKeyUp && t.HasClass(ClassSearch):
		if !ev.IsEnter() || !r.bindings[binding{ClassSearch, col}] {
			return false, nil
		}
		if !r.handlers.FilterBy(col, t.Value) {
			return false, nil
		}

	case ev.Type == TypeClick && t.HasClass(ClassPageNav):
		switch {
		case t.HasClass(ClassPreviousPage) && r.bindings[binding{ClassPreviousPage, ""}]:
			r.handlers.PrevPage()
		case t.HasClass(ClassNextPage) && r.bindings[binding{ClassNextPage, ""}]:
			r.handlers.NextPage()
		default:
			return false, nil
		}

	case ev.Type == TypeClick && t.HasClass(ClassPageNo):
		raw := t.Data[DataPageNo]
		if !r.bindings[binding{ClassPageNo, raw}] {
			return false, nil
		}
		pageNo, err := strconv.Atoi(raw)
		if err != nil {
			return false, fmt.Errorf("invalid page number %q: %w", raw, err)
		}
		r.handlers.GoToPage(pageNo - 1)

	default:
		return false, nil
	}

	if r.after != nil {
		if err := r.after(); err != nil {
			return true, err
		}
	}
	return true, nil
}
