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
	"strings"

	"github.com/carverauto/meshradar/pkg/models"
)

// AccessPointIDPrefix prefixes synthesized access point vertex ids.
const AccessPointIDPrefix = "ap_"

// AccessPointID builds the vertex id for a decoded BSSID.
func AccessPointID(bssidHex string) string {
	return AccessPointIDPrefix + bssidHex
}

// FormatMAC renders a hex hardware address as colon separated octets. Values
// that are not even-length hex are returned unchanged.
func FormatMAC(addrHex string) string {
	if addrHex == "" || len(addrHex)%2 != 0 {
		return addrHex
	}

	for _, c := range addrHex {
		if !strings.ContainsRune("0123456789ABCDEFabcdef", c) {
			return addrHex
		}
	}

	var b strings.Builder

	for i := 0; i < len(addrHex); i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}

		b.WriteString(addrHex[i : i+2])
	}

	return b.String()
}

// BuildStarConnections groups WiFi nodes by BSSID and emits one spoke per
// node. Nodes without a BSSID produce neither a vertex nor an edge.
func BuildStarConnections(nodes []*models.NodeDiagnostic) ([]models.AccessPoint, []models.Connection) {
	aps := make([]models.AccessPoint, 0)
	apIndex := make(map[string]int)
	edges := make([]models.Connection, 0)

	for _, node := range nodes {
		if node == nil || node.WiFi == nil {
			continue
		}

		bssid := DecodeAddress(node.WiFi.BSSID)
		if bssid == "" {
			continue
		}

		idx, ok := apIndex[bssid]
		if !ok {
			idx = len(aps)
			apIndex[bssid] = idx
			aps = append(aps, models.AccessPoint{
				ID:      AccessPointID(bssid),
				BSSID:   FormatMAC(bssid),
				Channel: node.WiFi.Channel,
				Clients: []string{},
			})
		}

		ap := &aps[idx]
		ap.Clients = append(ap.Clients, node.NodeID)

		if rssi := node.WiFi.RSSI; rssi != nil && (ap.BestRSSI == nil || *rssi > *ap.BestRSSI) {
			ap.BestRSSI = copyInt(rssi)
		}

		edges = append(edges, models.Connection{
			From:   node.NodeID,
			To:     ap.ID,
			Signal: ClassifyRSSI(node.WiFi.RSSI),
			RSSI:   copyInt(node.WiFi.RSSI),
		})
	}

	return aps, edges
}
