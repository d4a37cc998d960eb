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

import "github.com/carverauto/meshradar/pkg/models"

// NodeConnections lists every connection visible from one node, using the same
// resolution rules as the graph. The target's own neighbor table comes first
// and is authoritative; rows in other nodes' neighbor tables that resolve to
// the target follow for peers not already listed. Route-only evidence is
// appended last so the view never omits an edge the graph shows.
func (s *Snapshot) NodeConnections(nodeID string) []models.NodeConnection {
	out := make([]models.NodeConnection, 0)

	target, managed := s.byID[nodeID]
	if managed && target.NetworkType != models.NetworkThread {
		return out
	}

	if _, unknown := s.unknowns.Get(nodeID); !managed && !unknown {
		return out
	}

	listed := make(map[string]struct{})
	add := func(peer resolvedPeer, ev linkEvidence, outgoing, fromRoute bool) {
		listed[peer.id] = struct{}{}
		out = append(out, models.NodeConnection{
			PeerID:           peer.id,
			PeerName:         s.peerName(peer),
			IsOutgoing:       outgoing,
			IsUnknown:        peer.unknown,
			Signal:           ev.signal,
			LQI:              ev.lqi,
			RSSI:             ev.rssi,
			PathCost:         ev.pathCost,
			BidirectionalLQI: ev.bidirectionalLQI,
			FromRouteTable:   fromRoute,
		})
	}

	if managed && target.Thread != nil {
		for i := range target.Thread.NeighborTable {
			entry := &target.Thread.NeighborTable[i]

			peer, ok := s.peers.resolve(entry.ExtAddress, entry.RLOC16)
			if !ok || peer.id == nodeID {
				continue
			}

			if _, dup := listed[peer.id]; dup {
				continue
			}

			add(peer, evidenceFromNeighbor(target, entry), true, false)
		}
	}

	for _, other := range s.thread {
		if other.NodeID == nodeID || other.Thread == nil {
			continue
		}

		if _, dup := listed[other.NodeID]; dup {
			continue
		}

		for i := range other.Thread.NeighborTable {
			entry := &other.Thread.NeighborTable[i]

			peer, ok := s.peers.resolve(entry.ExtAddress, entry.RLOC16)
			if !ok || peer.id != nodeID {
				continue
			}

			add(resolvedPeer{id: other.NodeID}, evidenceFromNeighbor(other, entry), false, false)

			break
		}
	}

	if managed && target.Thread != nil {
		for i := range target.Thread.RouteTable {
			route := &target.Thread.RouteTable[i]
			if !route.Active() {
				continue
			}

			peer, ok := s.peers.resolve(route.ExtAddress, route.RLOC16)
			if !ok || peer.id == nodeID {
				continue
			}

			if _, dup := listed[peer.id]; dup {
				continue
			}

			add(peer, evidenceFromRoute(route), true, true)
		}
	}

	for _, other := range s.thread {
		if other.NodeID == nodeID || other.Thread == nil {
			continue
		}

		if _, dup := listed[other.NodeID]; dup {
			continue
		}

		for i := range other.Thread.RouteTable {
			route := &other.Thread.RouteTable[i]
			if !route.Active() {
				continue
			}

			peer, ok := s.peers.resolve(route.ExtAddress, route.RLOC16)
			if !ok || peer.id != nodeID {
				continue
			}

			add(resolvedPeer{id: other.NodeID}, evidenceFromRoute(route), false, true)

			break
		}
	}

	return out
}

func (s *Snapshot) peerName(peer resolvedPeer) string {
	if peer.unknown {
		if dev, ok := s.unknowns.Get(peer.id); ok {
			return FormatMAC(dev.ExtAddressHex)
		}

		return peer.id
	}

	if node, ok := s.byID[peer.id]; ok {
		return node.DisplayName()
	}

	return peer.id
}
