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

// Package topology reconstructs Thread mesh and WiFi star connectivity graphs from
// per-node diagnostic snapshots.
//
// Every function in this package is a pure transformation of its inputs: lookup
// tables, pair-dedup sets and unknown-device maps are created fresh for each
// build, so repeated builds over the same snapshot produce identical output.
package topology

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"github.com/carverauto/meshradar/pkg/models"
)

// DecodeAddress converts a base64-encoded hardware address into uppercase hex.
// Blank values decode to "". Other values that fail to decode are returned
// unchanged so they act as opaque keys that never match a decoded address.
func DecodeAddress(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	if key, ok := decodeAddress(raw); ok {
		return key
	}

	return raw
}

// addressKey returns the lookup key for an address, or "" when the address is
// absent or malformed. Opaque values are never used as keys.
func addressKey(raw string) string {
	key, _ := decodeAddress(raw)

	return key
}

func decodeAddress(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		// Some controllers strip the padding.
		decoded, err = base64.RawStdEncoding.DecodeString(trimmed)
	}

	if err != nil || len(decoded) == 0 {
		return "", false
	}

	return strings.ToUpper(hex.EncodeToString(decoded)), true
}

// AddressResolver maps the two Thread address kinds onto managed node ids.
// The extended address is the primary key; RLOC16 is only a fallback because
// short addresses are reassigned on rejoin.
type AddressResolver struct {
	byExt   map[string]string
	byRLOC  map[uint16]string
	extByID map[string]string
}

// NewAddressResolver indexes the Thread facts of the given nodes. When two nodes
// claim the same address the first one in iteration order keeps it.
func NewAddressResolver(nodes []*models.NodeDiagnostic) *AddressResolver {
	r := &AddressResolver{
		byExt:   make(map[string]string),
		byRLOC:  make(map[uint16]string),
		extByID: make(map[string]string),
	}

	for _, node := range nodes {
		if node == nil || node.Thread == nil {
			continue
		}

		if ext := addressKey(node.Thread.ExtendedAddress); ext != "" {
			if _, taken := r.byExt[ext]; !taken {
				r.byExt[ext] = node.NodeID
			}

			if _, ok := r.extByID[node.NodeID]; !ok {
				r.extByID[node.NodeID] = ext
			}
		}

		// zero means "not assigned"
		if rloc := node.Thread.RLOC16; rloc != 0 {
			if _, taken := r.byRLOC[rloc]; !taken {
				r.byRLOC[rloc] = node.NodeID
			}
		}
	}

	return r
}

// ByExtAddress resolves a decoded extended address.
func (r *AddressResolver) ByExtAddress(extHex string) (string, bool) {
	if extHex == "" {
		return "", false
	}

	id, ok := r.byExt[extHex]

	return id, ok
}

// ByRLOC16 resolves a short address. Zero never matches.
func (r *AddressResolver) ByRLOC16(rloc uint16) (string, bool) {
	if rloc == 0 {
		return "", false
	}

	id, ok := r.byRLOC[rloc]

	return id, ok
}

// ResolveKnown applies the primary/fallback order for managed nodes only.
func (r *AddressResolver) ResolveKnown(extHex string, rloc uint16) (string, bool) {
	if id, ok := r.ByExtAddress(extHex); ok {
		return id, true
	}

	return r.ByRLOC16(rloc)
}

// ExtAddressOf returns the decoded extended address of a managed node.
func (r *AddressResolver) ExtAddressOf(nodeID string) string {
	return r.extByID[nodeID]
}
