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

import "slices"

// RepollSet selects the minimal set of managed nodes to re-query for a target.
// An online node is queried itself, optionally together with its online
// neighbors. An offline node or an unknown device cannot be queried directly,
// so only its online neighbors are returned.
func (s *Snapshot) RepollSet(nodeID string, includeNeighbors bool) []string {
	out := make([]string, 0)

	node, managed := s.byID[nodeID]
	if managed && node.IsConnected {
		out = append(out, nodeID)

		if !includeNeighbors {
			return out
		}
	}

	for _, conn := range s.NodeConnections(nodeID) {
		if conn.IsUnknown {
			continue
		}

		peer, ok := s.byID[conn.PeerID]
		if !ok || !peer.IsConnected || slices.Contains(out, peer.NodeID) {
			continue
		}

		out = append(out, peer.NodeID)
	}

	return out
}
