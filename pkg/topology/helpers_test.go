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
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/carverauto/meshradar/pkg/models"
)

// ext returns the base64 form of an 8-byte extended address filled with b.
func ext(b byte) string {
	return base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{b}, 8))
}

// extHex returns the canonical hex form matching ext(b).
func extHex(b byte) string {
	return strings.Repeat(fmt.Sprintf("%02X", b), 8)
}

func intp(v int) *int {
	return &v
}

func threadNode(id string, extAddr string, rloc uint16, role models.RoutingRole, online bool) *models.NodeDiagnostic {
	return &models.NodeDiagnostic{
		NodeID:      id,
		Name:        "node-" + id,
		NetworkType: models.NetworkThread,
		IsConnected: online,
		Thread: &models.ThreadFacts{
			ExtendedAddress: extAddr,
			RLOC16:          rloc,
			RoutingRole:     role,
			Channel:         15,
		},
	}
}

func withNeighbors(n *models.NodeDiagnostic, entries ...models.NeighborEntry) *models.NodeDiagnostic {
	n.Thread.NeighborTable = append(n.Thread.NeighborTable, entries...)

	return n
}

func withRoutes(n *models.NodeDiagnostic, entries ...models.RouteEntry) *models.NodeDiagnostic {
	n.Thread.RouteTable = append(n.Thread.RouteTable, entries...)

	return n
}

func neighborRSSI(extAddr string, rloc uint16, rssi int) models.NeighborEntry {
	return models.NeighborEntry{
		ExtAddress:  extAddr,
		RLOC16:      rloc,
		LQI:         150,
		AverageRSSI: intp(rssi),
	}
}

func activeRoute(extAddr string, rloc uint16, cost, lqiIn, lqiOut int) models.RouteEntry {
	return models.RouteEntry{
		ExtAddress:      extAddr,
		RLOC16:          rloc,
		PathCost:        cost,
		LQIIn:           lqiIn,
		LQIOut:          lqiOut,
		Allocated:       true,
		LinkEstablished: true,
	}
}

func wifiNode(id, bssid string, rssi *int, online bool) *models.NodeDiagnostic {
	return &models.NodeDiagnostic{
		NodeID:      id,
		Name:        "wifi-" + id,
		NetworkType: models.NetworkWiFi,
		IsConnected: online,
		WiFi: &models.WiFiFacts{
			BSSID:   bssid,
			RSSI:    rssi,
			Channel: 6,
		},
	}
}

func findEdge(edges []models.Connection, a, b string) []models.Connection {
	var out []models.Connection

	for _, e := range edges {
		if (e.From == a && e.To == b) || (e.From == b && e.To == a) {
			out = append(out, e)
		}
	}

	return out
}

func findPeer(conns []models.NodeConnection, peer string) (models.NodeConnection, bool) {
	for _, c := range conns {
		if c.PeerID == peer {
			return c, true
		}
	}

	return models.NodeConnection{}, false
}
