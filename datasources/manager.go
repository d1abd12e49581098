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
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/google/tabula/core/tables"
)

// Source names a loader invocation: which loader and the config it receives.
type Source struct {
	Name       string
	SourceType string
	Config     map[string]string
}

// Manager coordinates data loading from multiple sources.
// Loaded tables are cached until invalidated.
type Manager struct {
	mu      sync.RWMutex
	loaders map[string]Loader
	sources map[string]Source
	tables  map[string]*tables.DataTable
	baseDir string
	logger  zerolog.Logger
}

// NewManager creates a manager with the built-in loaders registered.
func NewManager(logger zerolog.Logger) *Manager {
	m := &Manager{
		loaders: make(map[string]Loader),
		sources: make(map[string]Source),
		tables:  make(map[string]*tables.DataTable),
		logger:  logger,
	}
	m.RegisterLoader(NewCsvLoader())
	m.RegisterLoader(NewCountriesLoader(nil))
	m.RegisterLoader(NewSqliteLoader())
	return m
}

// RegisterLoader adds a loader, replacing any loader of the same source type.
func (m *Manager) RegisterLoader(loader Loader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// SetBaseDir sets the directory relative file paths are resolved against.
func (m *Manager) SetBaseDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseDir = dir
}

// AddSource registers a named source. Re-adding a name drops its cached table.
func (m *Manager) AddSource(src Source) error {
	if src.Name == "" {
		return fmt.Errorf("source name is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.loaders[src.SourceType]; !ok {
		return fmt.Errorf("no loader registered for source type %q", src.SourceType)
	}
	m.sources[src.Name] = src
	delete(m.tables, src.Name)
	return nil
}

// LoadData returns the DataTable for a named source.
// Returns cached data if already loaded; otherwise loads from the source.
func (m *Manager) LoadData(ctx context.Context, sourceName string) (*tables.DataTable, error) {
	m.mu.RLock()
	if table, ok := m.tables[sourceName]; ok {
		m.mu.RUnlock()
		return table, nil
	}
	source, ok := m.sources[sourceName]
	if !ok {
		m.mu.RUnlock()
		return nil, fmt.Errorf("source %q not found", sourceName)
	}
	loader := m.loaders[source.SourceType]
	baseDir := m.baseDir
	m.mu.RUnlock()

	config := resolveConfigPaths(source.Config, baseDir)
	table, err := loader.Load(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to load source %q: %w", sourceName, err)
	}
	m.logger.Info().
		Str("source", sourceName).
		Str("type", source.SourceType).
		Int("rows", table.Length()).
		Msg("loaded data source")

	m.mu.Lock()
	m.tables[sourceName] = table
	m.mu.Unlock()

	return table, nil
}

// resolveConfigPaths resolves relative file paths in config to absolute paths.
func resolveConfigPaths(config map[string]string, baseDir string) map[string]string {
	if baseDir == "" {
		return config
	}
	resolved := make(map[string]string, len(config))
	for k, v := range config {
		if (k == "file_path" || k == "path") && v != "" && !filepath.IsAbs(v) {
			resolved[k] = filepath.Join(baseDir, v)
		} else {
			resolved[k] = v
		}
	}
	return resolved
}

// InvalidateCache removes a source from the cache, forcing reload on next access.
func (m *Manager) InvalidateCache(sourceName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tables, sourceName)
}

// IsLoaded returns whether data for a source is currently cached.
func (m *Manager) IsLoaded(sourceName string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.tables[sourceName]
	return ok
}

// GetSourceNames returns the registered source names in sorted order.
func (m *Manager) GetSourceNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
