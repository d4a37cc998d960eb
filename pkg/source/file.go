/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package source provides the snapshot sources and poll requesters the
// refresh manager talks to.
package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/carverauto/meshradar/pkg/logger"
	"github.com/carverauto/meshradar/pkg/models"
)

// FileSource reads a diagnostics snapshot from a file on every fetch, so an
// external exporter can rewrite the file between refreshes. Files ending in
// .yaml or .yml are read as YAML, everything else as JSON.
type FileSource struct {
	path   string
	logger logger.Logger
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string, log logger.Logger) *FileSource {
	return &FileSource{path: path, logger: log}
}

// FetchSnapshot implements refresh.SnapshotSource.
func (f *FileSource) FetchSnapshot(ctx context.Context) ([]*models.NodeDiagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file '%s': %w", f.path, err)
	}

	decode := models.DecodeSnapshot

	switch strings.ToLower(filepath.Ext(f.path)) {
	case ".yaml", ".yml":
		decode = models.DecodeSnapshotYAML
	}

	nodes, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot file '%s': %w", f.path, err)
	}

	f.logger.Debug().Str("path", f.path).Int("nodes", len(nodes)).Msg("Loaded snapshot file")

	return nodes, nil
}
