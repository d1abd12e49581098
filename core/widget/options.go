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

package widget

import (
	"github.com/google/tabula/core/rendering"
	"github.com/google/tabula/core/tables"
	"github.com/google/tabula/core/views"
	"github.com/rs/zerolog"
)

type options struct {
	pageSize int
	scope    tables.FilterScope
	policy   views.CellPolicy
	renderer *rendering.TableRenderer
	logger   zerolog.Logger
}

// Option configures a TableWidget.
type Option func(*options)

// WithPageSize enables pagination with n rows per page. Without it the whole
// dataset is shown.
func WithPageSize(n int) Option {
	return func(o *options) {
		o.pageSize = n
	}
}

// WithFilterScope selects whether filters narrow the current page (the
// default) or the whole dataset.
func WithFilterScope(scope tables.FilterScope) Option {
	return func(o *options) {
		o.scope = scope
	}
}

// WithRawCells interpolates row values into the markup without escaping.
// A value containing markup is injected into the page verbatim, so only use
// it with rows from a trusted source.
func WithRawCells() Option {
	return func(o *options) {
		o.policy = views.RawCells
	}
}

// WithRenderer shares a parsed renderer between widgets.
func WithRenderer(r *rendering.TableRenderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithLogger sets the logger used for dispatched events.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
