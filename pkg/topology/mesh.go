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

// peerResolver holds the resolution rules shared by graph building and the
// node connection view, so both always agree on who a table row refers to.
type peerResolver struct {
	addrs    *AddressResolver
	unknowns *UnknownDevices
}

type resolvedPeer struct {
	id      string
	unknown bool
}

// resolve tries the extended address against managed nodes, then the RLOC16
// against managed nodes, then the extended address against unknown devices.
func (p *peerResolver) resolve(extRaw string, rloc uint16) (resolvedPeer, bool) {
	ext := addressKey(extRaw)

	if id, ok := p.addrs.ByExtAddress(ext); ok {
		return resolvedPeer{id: id}, true
	}

	if id, ok := p.addrs.ByRLOC16(rloc); ok {
		return resolvedPeer{id: id}, true
	}

	if id, ok := p.unknowns.ByExtAddress(ext); ok {
		return resolvedPeer{id: id, unknown: true}, true
	}

	return resolvedPeer{}, false
}

// pairKey is order independent so each unordered pair is emitted once.
func pairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}

	return a + "|" + b
}

// findRoute returns the active route entry on node for the given peer. Rows
// are matched by extended address; a peer known only by RLOC16 is matched by
// its non-zero short address.
func findRoute(node *models.NodeDiagnostic, peerExtRaw string, peerRLOC uint16) *models.RouteEntry {
	if node == nil || node.Thread == nil {
		return nil
	}

	ext := addressKey(peerExtRaw)

	for i := range node.Thread.RouteTable {
		route := &node.Thread.RouteTable[i]
		if !route.Active() {
			continue
		}

		if ext != "" {
			if addressKey(route.ExtAddress) == ext {
				return route
			}

			continue
		}

		if peerRLOC != 0 && route.RLOC16 == peerRLOC {
			return route
		}
	}

	return nil
}

// linkEvidence is the signal and route annotation attached to one edge.
type linkEvidence struct {
	signal           models.SignalQuality
	lqi              int
	rssi             *int
	pathCost         *int
	bidirectionalLQI *int
}

func evidenceFromNeighbor(owner *models.NodeDiagnostic, entry *models.NeighborEntry) linkEvidence {
	ev := linkEvidence{
		signal: ClassifyNeighbor(entry),
		lqi:    entry.LQI,
		rssi:   copyInt(NeighborRSSI(entry)),
	}

	if route := findRoute(owner, entry.ExtAddress, entry.RLOC16); route != nil {
		cost := route.PathCost
		ev.pathCost = &cost
		ev.bidirectionalLQI = BidirectionalLQI(route.LQIIn, route.LQIOut)
	}

	return ev
}

// evidenceFromRoute classifies purely from the bidirectional LQI; path cost
// alone never upgrades an unknown classification.
func evidenceFromRoute(route *models.RouteEntry) linkEvidence {
	bidi := BidirectionalLQI(route.LQIIn, route.LQIOut)
	cost := route.PathCost

	ev := linkEvidence{
		signal:           ClassifyLinkQuality(bidi),
		pathCost:         &cost,
		bidirectionalLQI: bidi,
	}

	if bidi != nil {
		ev.lqi = *bidi
	}

	return ev
}

func (ev linkEvidence) connection(from string, peer resolvedPeer, fromRoute bool) models.Connection {
	return models.Connection{
		From:             from,
		To:               peer.id,
		Signal:           ev.signal,
		LQI:              ev.lqi,
		RSSI:             ev.rssi,
		IsUnknown:        peer.unknown,
		PathCost:         ev.pathCost,
		BidirectionalLQI: ev.bidirectionalLQI,
		FromRouteTable:   fromRoute,
	}
}

// BuildMeshConnections merges neighbor and route table evidence into one
// undirected edge list. Nodes are processed in the given order; for each
// unordered pair the first neighbor-table observation wins, and route rows
// only add edges for pairs no neighbor table reported.
func BuildMeshConnections(
	nodes []*models.NodeDiagnostic, resolver *AddressResolver, unknowns *UnknownDevices) []models.Connection {
	peers := &peerResolver{addrs: resolver, unknowns: unknowns}
	seen := make(map[string]struct{})
	edges := make([]models.Connection, 0)

	for _, node := range nodes {
		if node == nil || node.Thread == nil {
			continue
		}

		for i := range node.Thread.NeighborTable {
			entry := &node.Thread.NeighborTable[i]

			peer, ok := peers.resolve(entry.ExtAddress, entry.RLOC16)
			if !ok || peer.id == node.NodeID {
				continue
			}

			key := pairKey(node.NodeID, peer.id)
			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}

			edges = append(edges, evidenceFromNeighbor(node, entry).connection(node.NodeID, peer, false))
		}
	}

	for _, node := range nodes {
		if node == nil || node.Thread == nil {
			continue
		}

		for i := range node.Thread.RouteTable {
			route := &node.Thread.RouteTable[i]
			if !route.Active() {
				continue
			}

			peer, ok := peers.resolve(route.ExtAddress, route.RLOC16)
			if !ok || peer.id == node.NodeID {
				continue
			}

			key := pairKey(node.NodeID, peer.id)
			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}

			edges = append(edges, evidenceFromRoute(route).connection(node.NodeID, peer, true))
		}
	}

	return edges
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}

	out := *v

	return &out
}
