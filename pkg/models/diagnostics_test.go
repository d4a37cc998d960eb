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

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSnapshotDocument(t *testing.T) {
	payload := []byte(`{
		"nodes": [
			{
				"node_id": "1",
				"name": "Kitchen Router",
				"network_type": "Thread",
				"is_connected": true,
				"thread": {
					"extended_address": "qrvM3e7/ABE=",
					"rloc16": 1024,
					"routing_role": 5,
					"neighbor_table": [{"ext_address": "ESIzRFVmd4g=", "rloc16": 1025, "lqi": 210, "average_rssi": -58, "rx_on_when_idle": true}]
				},
				"wifi": {"bssid": "AAECAwQF"}
			},
			{"node_id": "", "name": "dropped"},
			null,
			{"node_id": "2", "network_type": "wifi", "wifi": {"bssid": "AAECAwQF", "rssi": -61}, "thread": {"rloc16": 7}}
		]
	}`)

	nodes, err := DecodeSnapshot(payload)
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	thread := nodes[0]
	assert.Equal(t, NetworkThread, thread.NetworkType)
	require.NotNil(t, thread.Thread)
	assert.Nil(t, thread.WiFi, "wifi facts must be dropped from a thread node")
	assert.Equal(t, RoleRouter, thread.Thread.RoutingRole)
	require.Len(t, thread.Thread.NeighborTable, 1)
	require.NotNil(t, thread.Thread.NeighborTable[0].AverageRSSI)
	assert.Equal(t, -58, *thread.Thread.NeighborTable[0].AverageRSSI)
	assert.Nil(t, thread.Thread.NeighborTable[0].LastRSSI)

	wifi := nodes[1]
	assert.Equal(t, NetworkWiFi, wifi.NetworkType)
	assert.Nil(t, wifi.Thread)
	require.NotNil(t, wifi.WiFi)
	require.NotNil(t, wifi.WiFi.RSSI)
	assert.Equal(t, -61, *wifi.WiFi.RSSI)
}

func TestDecodeSnapshotArray(t *testing.T) {
	nodes, err := DecodeSnapshot([]byte(`[{"node_id": "7", "network_type": "ethernet", "thread": {"rloc16": 1}}]`))
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, NetworkEthernet, nodes[0].NetworkType)
	assert.Nil(t, nodes[0].Thread)
}

func TestDecodeSnapshotErrors(t *testing.T) {
	_, err := DecodeSnapshot([]byte("   "))
	require.ErrorIs(t, err, ErrEmptySnapshot)

	_, err = DecodeSnapshot([]byte(`{"nodes": 5}`))
	require.Error(t, err)

	_, err = DecodeSnapshot([]byte(`[{"node_id": 5}]`))
	require.Error(t, err)
}

func TestDecodeSnapshotYAML(t *testing.T) {
	nodes, err := DecodeSnapshotYAML([]byte(`
- node_id: "7"
  network_type: ethernet
- node_id: ""
- node_id: "8"
  network_type: thread
  thread:
    extended_address: qrvM3e7/ABE=
    rloc16: 2048
    routing_role: 3
`))
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, NetworkEthernet, nodes[0].NetworkType)
	require.NotNil(t, nodes[1].Thread)
	assert.Equal(t, uint16(2048), nodes[1].Thread.RLOC16)

	_, err = DecodeSnapshotYAML([]byte("\n\t\n"))
	require.ErrorIs(t, err, ErrEmptySnapshot)

	_, err = DecodeSnapshotYAML([]byte("nodes: 5"))
	require.Error(t, err)

	_, err = DecodeSnapshotYAML([]byte("- node_id: 5"))
	require.Error(t, err, "ids must be strings, as in the JSON form")
}

func TestParseNetworkType(t *testing.T) {
	tests := []struct {
		in   string
		want NetworkType
	}{
		{"thread", NetworkThread},
		{" THREAD ", NetworkThread},
		{"wifi", NetworkWiFi},
		{"Wi-Fi", NetworkWiFi},
		{"ethernet", NetworkEthernet},
		{"zigbee", NetworkUnknown},
		{"", NetworkUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNetworkType(tt.in))
		})
	}
}

func TestRoutingRole(t *testing.T) {
	assert.Equal(t, "leader", RoleLeader.String())
	assert.Equal(t, "sleepy_end_device", RoleSleepyEndDevice.String())
	assert.Equal(t, "unspecified", RoutingRole(42).String())

	assert.True(t, RoleRouter.IsRouterCapable())
	assert.True(t, RoleLeader.IsRouterCapable())
	assert.True(t, RoleREED.IsRouterCapable())
	assert.False(t, RoleEndDevice.IsRouterCapable())
	assert.False(t, RoleSleepyEndDevice.IsRouterCapable())
}

func TestRouteEntryActive(t *testing.T) {
	assert.True(t, (&RouteEntry{Allocated: true, LinkEstablished: true}).Active())
	assert.False(t, (&RouteEntry{Allocated: true}).Active())
	assert.False(t, (&RouteEntry{LinkEstablished: true}).Active())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Lamp", (&NodeDiagnostic{NodeID: "3", Name: "Lamp"}).DisplayName())
	assert.Equal(t, "3", (&NodeDiagnostic{NodeID: "3"}).DisplayName())
}
