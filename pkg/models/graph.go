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

// SignalQuality is the three-tier link classification plus unknown.
type SignalQuality string

const (
	SignalStrong  SignalQuality = "strong"
	SignalMedium  SignalQuality = "medium"
	SignalWeak    SignalQuality = "weak"
	SignalUnknown SignalQuality = "unknown"
)

// NodeKind distinguishes managed nodes from synthesized vertices.
type NodeKind string

const (
	KindNode        NodeKind = "node"
	KindUnknown     NodeKind = "unknown"
	KindAccessPoint NodeKind = "access_point"
)

// Connection is an undirected edge between two vertices of a graph.
// From is the node whose table supplied the evidence.
type Connection struct {
	From             string        `json:"from"`
	To               string        `json:"to"`
	Signal           SignalQuality `json:"signal"`
	LQI              int           `json:"lqi"`
	RSSI             *int          `json:"rssi,omitempty"`
	IsUnknown        bool          `json:"is_unknown"`
	PathCost         *int          `json:"path_cost,omitempty"`
	BidirectionalLQI *int          `json:"bidirectional_lqi,omitempty"`
	FromRouteTable   bool          `json:"from_route_table"`
}

// UnknownDevice is a device seen in neighbor tables that is not part of the managed fabric.
type UnknownDevice struct {
	ID            string   `json:"id"`
	ExtAddressHex string   `json:"ext_address_hex"`
	IsRouter      bool     `json:"is_router"`
	BestRSSI      *int     `json:"best_rssi,omitempty"`
	SeenBy        []string `json:"seen_by"`
}

// AccessPoint is a synthesized WiFi access point vertex.
type AccessPoint struct {
	ID       string   `json:"id"`
	BSSID    string   `json:"bssid"`
	Channel  int      `json:"channel,omitempty"`
	Clients  []string `json:"clients"`
	BestRSSI *int     `json:"best_rssi,omitempty"`
}

// ResolvedNode is a graph vertex annotated for presentation.
type ResolvedNode struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Kind          NodeKind    `json:"kind"`
	NetworkType   NetworkType `json:"network_type"`
	Role          string      `json:"role,omitempty"`
	IsOnline      bool        `json:"is_online"`
	IsRouter      bool        `json:"is_router"`
	ExtAddressHex string      `json:"ext_address_hex,omitempty"`
	RLOC16        uint16      `json:"rloc16,omitempty"`
	Channel       int         `json:"channel,omitempty"`
	BestRSSI      *int        `json:"best_rssi,omitempty"`
	SeenBy        []string    `json:"seen_by,omitempty"`
	NeighborCount int         `json:"neighbor_count,omitempty"`
	RouteCount    int         `json:"route_count,omitempty"`
	ClientCount   int         `json:"client_count,omitempty"`
}

// GraphStats summarizes a graph for dashboards.
type GraphStats struct {
	NodeCount    int                   `json:"node_count"`
	EdgeCount    int                   `json:"edge_count"`
	UnknownCount int                   `json:"unknown_count"`
	OfflineCount int                   `json:"offline_count"`
	RoleCounts   map[string]int        `json:"role_counts"`
	SignalCounts map[SignalQuality]int `json:"signal_counts"`
	Components   int                   `json:"components"`
	Isolated     []string              `json:"isolated"`
}

// Graph is one network type's vertex and edge set.
type Graph struct {
	NetworkType NetworkType    `json:"network_type"`
	Nodes       []ResolvedNode `json:"nodes"`
	Edges       []Connection   `json:"edges"`
	Stats       GraphStats     `json:"stats"`
}

// NodeConnection is one entry of a node's connection view.
type NodeConnection struct {
	PeerID           string        `json:"peer_id"`
	PeerName         string        `json:"peer_name"`
	IsOutgoing       bool          `json:"is_outgoing"`
	IsUnknown        bool          `json:"is_unknown"`
	Signal           SignalQuality `json:"signal"`
	LQI              int           `json:"lqi"`
	RSSI             *int          `json:"rssi,omitempty"`
	PathCost         *int          `json:"path_cost,omitempty"`
	BidirectionalLQI *int          `json:"bidirectional_lqi,omitempty"`
	FromRouteTable   bool          `json:"from_route_table"`
}
