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

package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/meshradar/pkg/models"
)

func simpleMesh() []*models.NodeDiagnostic {
	return []*models.NodeDiagnostic{
		withNeighbors(threadNode("1", ext(0xAA), 0x0400, models.RoleRouter, true),
			neighborRSSI(ext(0xBB), 0x0401, -60)),
		threadNode("2", ext(0xBB), 0x0401, models.RoleEndDevice, true),
	}
}

func TestNodeConnectionsSimpleMesh(t *testing.T) {
	snap := NewSnapshot(simpleMesh())

	router := snap.NodeConnections("1")
	require.Len(t, router, 1)
	assert.Equal(t, "2", router[0].PeerID)
	assert.Equal(t, "node-2", router[0].PeerName)
	assert.True(t, router[0].IsOutgoing)
	assert.Equal(t, models.SignalStrong, router[0].Signal)

	endDevice := snap.NodeConnections("2")
	require.Len(t, endDevice, 1)
	assert.Equal(t, "1", endDevice[0].PeerID)
	assert.False(t, endDevice[0].IsOutgoing)
	assert.Equal(t, models.SignalStrong, endDevice[0].Signal)
	assert.Equal(t, -60, *endDevice[0].RSSI)
}

func TestNodeConnectionsOutgoingSuppressesIncoming(t *testing.T) {
	nodes := []*models.NodeDiagnostic{
		withNeighbors(threadNode("1", ext(0xAA), 0x0400, models.RoleRouter, true),
			neighborRSSI(ext(0xBB), 0x0800, -90)),
		withNeighbors(threadNode("2", ext(0xBB), 0x0800, models.RoleRouter, true),
			neighborRSSI(ext(0xAA), 0x0400, -50)),
	}

	snap := NewSnapshot(nodes)

	conns := snap.NodeConnections("2")
	require.Len(t, conns, 1)
	assert.True(t, conns[0].IsOutgoing)
	assert.Equal(t, -50, *conns[0].RSSI, "the target's own measurement is authoritative")
}

func TestNodeConnectionsRouteEnrichment(t *testing.T) {
	nodes := []*models.NodeDiagnostic{
		withRoutes(
			withNeighbors(threadNode("1", ext(0xAA), 0x0400, models.RoleRouter, true),
				neighborRSSI(ext(0xBB), 0x0800, -72)),
			activeRoute(ext(0xBB), 0x0800, 1, 150, 0),
			activeRoute(ext(0xDD), 0x0C00, 2, 0, 0),
		),
		threadNode("2", ext(0xBB), 0x0800, models.RoleRouter, true),
		withRoutes(threadNode("3", ext(0xDD), 0x0C00, models.RoleRouter, true),
			activeRoute(ext(0xEE), 0x1000, 1, 250, 250)),
		threadNode("4", ext(0xEE), 0x1000, models.RoleRouter, false),
	}

	snap := NewSnapshot(nodes)
	conns := snap.NodeConnections("1")
	require.Len(t, conns, 2)

	neighbor := conns[0]
	assert.Equal(t, "2", neighbor.PeerID)
	assert.False(t, neighbor.FromRouteTable)
	assert.Equal(t, 1, *neighbor.PathCost)
	assert.Equal(t, 150, *neighbor.BidirectionalLQI)
	assert.Equal(t, models.SignalMedium, neighbor.Signal)

	routeOnly := conns[1]
	assert.Equal(t, "3", routeOnly.PeerID)
	assert.True(t, routeOnly.FromRouteTable)
	assert.True(t, routeOnly.IsOutgoing)
	assert.Equal(t, models.SignalUnknown, routeOnly.Signal)

	incomingRoute := snap.NodeConnections("4")
	require.Len(t, incomingRoute, 1)
	assert.Equal(t, "3", incomingRoute[0].PeerID)
	assert.False(t, incomingRoute[0].IsOutgoing)
	assert.True(t, incomingRoute[0].FromRouteTable)
}

func TestNodeConnectionsUnknownTarget(t *testing.T) {
	nodes := []*models.NodeDiagnostic{
		withNeighbors(threadNode("1", ext(0xAA), 0x0400, models.RoleRouter, true),
			neighborRSSI(ext(0xCC), 0, -70)),
		withNeighbors(threadNode("2", ext(0xBB), 0x0800, models.RoleRouter, false),
			neighborRSSI(ext(0xCC), 0, -80)),
	}

	snap := NewSnapshot(nodes)

	unknownID := UnknownID(extHex(0xCC))
	conns := snap.NodeConnections(unknownID)
	require.Len(t, conns, 2)
	assert.Equal(t, "1", conns[0].PeerID)
	assert.Equal(t, "2", conns[1].PeerID)

	for _, c := range conns {
		assert.False(t, c.IsOutgoing)
		assert.False(t, c.IsUnknown)
	}

	fromManaged := snap.NodeConnections("1")
	require.Len(t, fromManaged, 1)
	assert.True(t, fromManaged[0].IsUnknown)
	assert.Equal(t, unknownID, fromManaged[0].PeerID)
	assert.Equal(t, FormatMAC(extHex(0xCC)), fromManaged[0].PeerName)
}

func TestNodeConnectionsMissingOrNonThread(t *testing.T) {
	snap := NewSnapshot([]*models.NodeDiagnostic{
		wifiNode("9", "AAECAwQF", intp(-50), true),
	})

	assert.Empty(t, snap.NodeConnections("nope"))
	assert.Empty(t, snap.NodeConnections("9"))
	assert.NotNil(t, snap.NodeConnections("nope"))
}

func TestNodeConnectionsMatchGraphEdges(t *testing.T) {
	nodes := []*models.NodeDiagnostic{
		withRoutes(
			withNeighbors(threadNode("1", ext(0xAA), 0x0400, models.RoleLeader, true),
				neighborRSSI(ext(0xBB), 0x0800, -60),
				neighborRSSI(ext(0xCC), 0, -88)),
			activeRoute(ext(0xDD), 0x0C00, 2, 120, 140),
		),
		withNeighbors(threadNode("2", ext(0xBB), 0x0800, models.RoleRouter, true),
			models.NeighborEntry{RLOC16: 0x0C00, LQI: 240}),
		threadNode("3", ext(0xDD), 0x0C00, models.RoleEndDevice, false),
	}

	snap := NewSnapshot(nodes)
	graph := snap.Graph(models.NetworkThread)

	for _, v := range graph.Nodes {
		conns := snap.NodeConnections(v.ID)

		for _, c := range conns {
			assert.Len(t, findEdge(graph.Edges, v.ID, c.PeerID), 1,
				"view entry %s -> %s must match exactly one graph edge", v.ID, c.PeerID)
		}

		degree := 0

		for _, e := range graph.Edges {
			if e.From == v.ID || e.To == v.ID {
				degree++
			}
		}

		assert.Len(t, conns, degree, "view of %s must list every incident edge", v.ID)
	}
}
