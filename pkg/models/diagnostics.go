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

// Package models holds the diagnostic snapshot and topology graph types shared by meshradar packages.
package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// NetworkType identifies which transport a managed node is attached to.
type NetworkType string

const (
	NetworkThread   NetworkType = "thread"
	NetworkWiFi     NetworkType = "wifi"
	NetworkEthernet NetworkType = "ethernet"
	NetworkUnknown  NetworkType = "unknown"
)

// ParseNetworkType maps a free-form string onto a NetworkType, defaulting to NetworkUnknown.
func ParseNetworkType(s string) NetworkType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "thread":
		return NetworkThread
	case "wifi", "wi-fi":
		return NetworkWiFi
	case "ethernet":
		return NetworkEthernet
	default:
		return NetworkUnknown
	}
}

// UnmarshalJSON accepts any casing and maps unrecognized values to NetworkUnknown.
func (n *NetworkType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid network type: %w", err)
	}

	*n = ParseNetworkType(s)

	return nil
}

// RoutingRole is the Thread routing role reported by a node.
type RoutingRole int

const (
	RoleUnspecified RoutingRole = iota
	RoleUnassigned
	RoleSleepyEndDevice
	RoleEndDevice
	RoleREED
	RoleRouter
	RoleLeader
)

var routingRoleNames = map[RoutingRole]string{
	RoleUnspecified:     "unspecified",
	RoleUnassigned:      "unassigned",
	RoleSleepyEndDevice: "sleepy_end_device",
	RoleEndDevice:       "end_device",
	RoleREED:            "reed",
	RoleRouter:          "router",
	RoleLeader:          "leader",
}

func (r RoutingRole) String() string {
	if name, ok := routingRoleNames[r]; ok {
		return name
	}

	return routingRoleNames[RoleUnspecified]
}

// IsRouterCapable reports whether the role forwards traffic for other nodes.
func (r RoutingRole) IsRouterCapable() bool {
	return r == RoleRouter || r == RoleLeader || r == RoleREED
}

// NodeDiagnostic is the latest diagnostic snapshot of one managed device.
// Exactly one of Thread or WiFi is populated, selected by NetworkType.
type NodeDiagnostic struct {
	NodeID      string       `json:"node_id"`
	Name        string       `json:"name"`
	NetworkType NetworkType  `json:"network_type"`
	IsConnected bool         `json:"is_connected"`
	Thread      *ThreadFacts `json:"thread,omitempty"`
	WiFi        *WiFiFacts   `json:"wifi,omitempty"`
}

// ThreadFacts carries the Thread network diagnostics cluster of a node.
// ExtendedAddress is base64-encoded as delivered by the controller.
type ThreadFacts struct {
	ExtendedAddress string          `json:"extended_address"`
	RLOC16          uint16          `json:"rloc16"`
	RoutingRole     RoutingRole     `json:"routing_role"`
	Channel         int             `json:"channel,omitempty"`
	NeighborTable   []NeighborEntry `json:"neighbor_table,omitempty"`
	RouteTable      []RouteEntry    `json:"route_table,omitempty"`
}

// WiFiFacts carries the WiFi network diagnostics cluster of a node.
// BSSID is base64-encoded as delivered by the controller.
type WiFiFacts struct {
	BSSID        string `json:"bssid,omitempty"`
	RSSI         *int   `json:"rssi,omitempty"`
	Channel      int    `json:"channel,omitempty"`
	SecurityType int    `json:"security_type,omitempty"`
	WiFiVersion  int    `json:"wifi_version,omitempty"`
}

// NeighborEntry is one row of a node's locally measured neighbor table.
type NeighborEntry struct {
	ExtAddress   string `json:"ext_address"`
	RLOC16       uint16 `json:"rloc16"`
	LQI          int    `json:"lqi"`
	LastRSSI     *int   `json:"last_rssi,omitempty"`
	AverageRSSI  *int   `json:"average_rssi,omitempty"`
	RxOnWhenIdle bool   `json:"rx_on_when_idle"`
}

// RouteEntry is one row of a node's routing table.
type RouteEntry struct {
	ExtAddress      string `json:"ext_address"`
	RLOC16          uint16 `json:"rloc16"`
	PathCost        int    `json:"path_cost"`
	LQIIn           int    `json:"lqi_in"`
	LQIOut          int    `json:"lqi_out"`
	Allocated       bool   `json:"allocated"`
	LinkEstablished bool   `json:"link_established"`
}

// Active reports whether the route is an established, allocated path rather than a theoretical one.
func (r *RouteEntry) Active() bool {
	return r.Allocated && r.LinkEstablished
}

// Normalize enforces the tagged-union shape: facts that do not belong to the
// node's network type are discarded.
func (n *NodeDiagnostic) Normalize() {
	if n.NetworkType == "" {
		n.NetworkType = NetworkUnknown
	}

	switch n.NetworkType {
	case NetworkThread:
		n.WiFi = nil
	case NetworkWiFi:
		n.Thread = nil
	case NetworkEthernet, NetworkUnknown:
		n.Thread = nil
		n.WiFi = nil
	}
}

// DisplayName returns the configured name, falling back to the node id.
func (n *NodeDiagnostic) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}

	return n.NodeID
}

// Snapshot is the document shape delivered by snapshot sources.
type Snapshot struct {
	Nodes []*NodeDiagnostic `json:"nodes"`
}

// DecodeSnapshot parses either a {"nodes": [...]} document or a bare array of
// node diagnostics. Nil entries and entries without a node id are dropped.
func DecodeSnapshot(data []byte) ([]*NodeDiagnostic, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, ErrEmptySnapshot
	}

	var nodes []*NodeDiagnostic

	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &nodes); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot array: %w", err)
		}
	} else {
		var doc Snapshot
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot document: %w", err)
		}

		nodes = doc.Nodes
	}

	out := make([]*NodeDiagnostic, 0, len(nodes))

	for _, node := range nodes {
		if node == nil || node.NodeID == "" {
			continue
		}

		node.Normalize()
		out = append(out, node)
	}

	return out, nil
}

// DecodeSnapshotYAML parses the same document shapes as DecodeSnapshot written
// as YAML. Field names and value encodings match the JSON form.
func DecodeSnapshotYAML(data []byte) ([]*NodeDiagnostic, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, ErrEmptySnapshot
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML snapshot: %w", err)
	}

	if doc == nil {
		return nil, ErrEmptySnapshot
	}

	converted, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML snapshot: %w", err)
	}

	return DecodeSnapshot(converted)
}
