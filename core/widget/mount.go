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
	"github.com/google/safehtml"
)

// Mount is where a widget renders. The widget replaces the mount's whole
// content on every render.
type Mount interface {
	SetInnerHTML(markup safehtml.HTML)
}

// BufferMount keeps the latest markup in memory. Hosts read it after each
// dispatch and ship it wherever the table is displayed.
type BufferMount struct {
	markup  safehtml.HTML
	renders int
}

// SetInnerHTML replaces the buffered markup.
func (m *BufferMount) SetInnerHTML(markup safehtml.HTML) {
	m.markup = markup
	m.renders++
}

// Markup returns the latest markup.
func (m *BufferMount) Markup() safehtml.HTML {
	return m.markup
}

// Renders returns how many times the mount has been rendered into.
func (m *BufferMount) Renders() int {
	return m.renders
}
