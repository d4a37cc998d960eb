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

package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/meshradar/pkg/logger"
	"github.com/carverauto/meshradar/pkg/models"
)

const snapshotDoc = `{"nodes": [
	{"node_id": "1", "network_type": "thread", "is_connected": true,
	 "thread": {"extended_address": "ESIzRFVmd4g=", "rloc16": 1024, "routing_role": 6}},
	{"node_id": "2", "network_type": "WiFi", "wifi": {"bssid": "AAECAwQF", "rssi": -61}}
]}`

func TestFileSourceRereadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshotDoc), 0o600))

	src := NewFileSource(path, logger.NewTestLogger())

	nodes, err := src.FetchSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, models.NetworkWiFi, nodes[1].NetworkType)
	assert.Equal(t, models.RoleLeader, nodes[0].Thread.RoutingRole)

	require.NoError(t, os.WriteFile(path, []byte(`[{"node_id": "9", "network_type": "ethernet"}]`), 0o600))

	nodes, err = src.FetchSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "9", nodes[0].NodeID)
}

const snapshotYAML = `nodes:
  - node_id: "1"
    network_type: thread
    is_connected: true
    thread:
      extended_address: ESIzRFVmd4g=
      rloc16: 1024
      routing_role: 6
      neighbor_table:
        - ext_address: qrvM3e7/ABE=
          lqi: 180
          average_rssi: -70
  - node_id: "2"
    network_type: WiFi
    wifi:
      bssid: AAECAwQF
      rssi: -61
`

func TestFileSourceReadsYAML(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"snapshot.yaml", "snapshot.YML"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(snapshotYAML), 0o600))

		nodes, err := NewFileSource(path, logger.NewTestLogger()).FetchSnapshot(context.Background())
		require.NoError(t, err, name)
		require.Len(t, nodes, 2, name)

		assert.Equal(t, models.RoleLeader, nodes[0].Thread.RoutingRole)
		assert.Equal(t, uint16(1024), nodes[0].Thread.RLOC16)
		require.Len(t, nodes[0].Thread.NeighborTable, 1)
		require.NotNil(t, nodes[0].Thread.NeighborTable[0].AverageRSSI)
		assert.Equal(t, -70, *nodes[0].Thread.NeighborTable[0].AverageRSSI)
		assert.Equal(t, models.NetworkWiFi, nodes[1].NetworkType)
		assert.Equal(t, "AAECAwQF", nodes[1].WiFi.BSSID)
	}
}

func TestFileSourceYAMLErrors(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("nodes: ["), 0o600))

	_, err := NewFileSource(broken, logger.NewTestLogger()).FetchSnapshot(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")

	comments := filepath.Join(dir, "comments.yml")
	require.NoError(t, os.WriteFile(comments, []byte("# nothing exported yet\n"), 0o600))

	_, err = NewFileSource(comments, logger.NewTestLogger()).FetchSnapshot(context.Background())
	require.ErrorIs(t, err, models.ErrEmptySnapshot)
}

func TestFileSourceErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewFileSource(filepath.Join(dir, "missing.json"), logger.NewTestLogger()).
		FetchSnapshot(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	_, err = NewFileSource(empty, logger.NewTestLogger()).FetchSnapshot(context.Background())
	require.ErrorIs(t, err, models.ErrEmptySnapshot)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewFileSource(empty, logger.NewTestLogger()).FetchSnapshot(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
