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
	"github.com/carverauto/meshradar/pkg/models"
)

// Snapshot is the arena for one build: the node set sorted by id plus the
// lookup tables derived from it. It is immutable after NewSnapshot and safe
// for concurrent readers. Callers must not mutate the nodes they pass in.
type Snapshot struct {
	nodes    []*models.NodeDiagnostic
	byID     map[string]*models.NodeDiagnostic
	thread   []*models.NodeDiagnostic
	wifi     []*models.NodeDiagnostic
	resolver *AddressResolver
	unknowns *UnknownDevices
	peers    *peerResolver
}

// NewSnapshot prepares identity resolution and unknown-device detection for a
// set of node diagnostics.
func NewSnapshot(nodes []*models.NodeDiagnostic) *Snapshot {
	sorted := sortedUniqueNodes(nodes)

	s := &Snapshot{
		nodes: sorted,
		byID:  make(map[string]*models.NodeDiagnostic, len(sorted)),
	}

	for _, node := range sorted {
		s.byID[node.NodeID] = node

		switch node.NetworkType {
		case models.NetworkThread:
			s.thread = append(s.thread, node)
		case models.NetworkWiFi:
			s.wifi = append(s.wifi, node)
		case models.NetworkEthernet, models.NetworkUnknown:
		}
	}

	s.resolver = NewAddressResolver(s.thread)
	s.unknowns = DetectUnknownDevices(s.thread, s.resolver)
	s.peers = &peerResolver{addrs: s.resolver, unknowns: s.unknowns}

	return s
}

// Assemble builds the graph of one network type from a diagnostic snapshot.
func Assemble(nodes []*models.NodeDiagnostic, network models.NetworkType) *models.Graph {
	return NewSnapshot(nodes).Graph(network)
}

// Graph builds the graph for one network type. Types other than Thread and
// WiFi yield an empty graph.
func (s *Snapshot) Graph(network models.NetworkType) *models.Graph {
	switch network {
	case models.NetworkThread:
		return s.threadGraph()
	case models.NetworkWiFi:
		return s.wifiGraph()
	case models.NetworkEthernet, models.NetworkUnknown:
	}

	return newGraph(network, make([]models.ResolvedNode, 0), make([]models.Connection, 0))
}

func (s *Snapshot) threadGraph() *models.Graph {
	vertices := make([]models.ResolvedNode, 0, len(s.thread)+s.unknowns.Len())

	for _, node := range s.thread {
		vertices = append(vertices, threadVertex(node))
	}

	for _, dev := range s.unknowns.List() {
		vertices = append(vertices, unknownVertex(dev))
	}

	edges := BuildMeshConnections(s.thread, s.resolver, s.unknowns)

	return newGraph(models.NetworkThread, vertices, edges)
}

func (s *Snapshot) wifiGraph() *models.Graph {
	aps, edges := BuildStarConnections(s.wifi)

	vertices := make([]models.ResolvedNode, 0, len(s.wifi)+len(aps))

	for _, node := range s.wifi {
		if node.WiFi == nil || DecodeAddress(node.WiFi.BSSID) == "" {
			continue
		}

		vertices = append(vertices, wifiVertex(node))
	}

	for i := range aps {
		vertices = append(vertices, accessPointVertex(&aps[i]))
	}

	return newGraph(models.NetworkWiFi, vertices, edges)
}

func newGraph(network models.NetworkType, vertices []models.ResolvedNode, edges []models.Connection) *models.Graph {
	return &models.Graph{
		NetworkType: network,
		Nodes:       vertices,
		Edges:       edges,
		Stats:       computeStats(vertices, edges),
	}
}

func threadVertex(node *models.NodeDiagnostic) models.ResolvedNode {
	v := models.ResolvedNode{
		ID:          node.NodeID,
		Name:        node.DisplayName(),
		Kind:        models.KindNode,
		NetworkType: models.NetworkThread,
		Role:        models.RoleUnspecified.String(),
		IsOnline:    node.IsConnected,
	}

	if facts := node.Thread; facts != nil {
		v.Role = facts.RoutingRole.String()
		v.IsRouter = facts.RoutingRole.IsRouterCapable()
		v.ExtAddressHex = DecodeAddress(facts.ExtendedAddress)
		v.RLOC16 = facts.RLOC16
		v.Channel = facts.Channel
		v.NeighborCount = len(facts.NeighborTable)
		v.RouteCount = len(facts.RouteTable)
	}

	return v
}

func unknownVertex(dev models.UnknownDevice) models.ResolvedNode {
	return models.ResolvedNode{
		ID:            dev.ID,
		Name:          FormatMAC(dev.ExtAddressHex),
		Kind:          models.KindUnknown,
		NetworkType:   models.NetworkThread,
		Role:          "unknown",
		IsRouter:      dev.IsRouter,
		ExtAddressHex: dev.ExtAddressHex,
		BestRSSI:      dev.BestRSSI,
		SeenBy:        dev.SeenBy,
	}
}

func wifiVertex(node *models.NodeDiagnostic) models.ResolvedNode {
	return models.ResolvedNode{
		ID:          node.NodeID,
		Name:        node.DisplayName(),
		Kind:        models.KindNode,
		NetworkType: models.NetworkWiFi,
		IsOnline:    node.IsConnected,
		Channel:     node.WiFi.Channel,
		BestRSSI:    copyInt(node.WiFi.RSSI),
	}
}

func accessPointVertex(ap *models.AccessPoint) models.ResolvedNode {
	return models.ResolvedNode{
		ID:          ap.ID,
		Name:        ap.BSSID,
		Kind:        models.KindAccessPoint,
		NetworkType: models.NetworkWiFi,
		Role:        "access_point",
		IsOnline:    true,
		IsRouter:    true,
		Channel:     ap.Channel,
		BestRSSI:    ap.BestRSSI,
		ClientCount: len(ap.Clients),
	}
}

// Node returns the managed node with the given id.
func (s *Snapshot) Node(id string) (*models.NodeDiagnostic, bool) {
	node, ok := s.byID[id]

	return node, ok
}

// Nodes returns all managed nodes in build order.
func (s *Snapshot) Nodes() []*models.NodeDiagnostic {
	out := make([]*models.NodeDiagnostic, len(s.nodes))
	copy(out, s.nodes)

	return out
}

// UnknownDevices returns the external devices detected in this snapshot.
func (s *Snapshot) UnknownDevices() []models.UnknownDevice {
	return s.unknowns.List()
}

// UnknownDevice returns one external device by synthesized id.
func (s *Snapshot) UnknownDevice(id string) (models.UnknownDevice, bool) {
	return s.unknowns.Get(id)
}

// Resolver exposes the address lookup tables of this snapshot.
func (s *Snapshot) Resolver() *AddressResolver {
	return s.resolver
}
