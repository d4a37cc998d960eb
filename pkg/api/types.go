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

package api

import (
	"time"

	"github.com/carverauto/meshradar/pkg/models"
)

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// RefreshResponse answers POST /api/topology/refresh and re-poll refreshes.
type RefreshResponse struct {
	Status   string    `json:"status"`
	Stale    bool      `json:"stale"`
	Sequence uint64    `json:"sequence,omitempty"`
	BuiltAt  time.Time `json:"built_at,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// RepollPlan lists the nodes a re-poll would query.
type RepollPlan struct {
	NodeID           string   `json:"node_id"`
	IncludeNeighbors bool     `json:"include_neighbors"`
	NodeIDs          []string `json:"node_ids"`
}

// RepollResponse answers POST /api/topology/nodes/{id}/repoll.
type RepollResponse struct {
	NodeID   string   `json:"node_id"`
	Polled   []string `json:"polled"`
	Status   string   `json:"status"`
	Stale    bool     `json:"stale"`
	Sequence uint64   `json:"sequence,omitempty"`
}

// ConnectionsResponse answers GET /api/topology/nodes/{id}/connections.
type ConnectionsResponse struct {
	NodeID      string                  `json:"node_id"`
	Connections []models.NodeConnection `json:"connections"`
}

// StreamMessage represents a message sent over the WebSocket
type StreamMessage struct {
	Type      string        `json:"type"` // "graph", "error", "ping"
	Sequence  uint64        `json:"sequence,omitempty"`
	Graph     *models.Graph `json:"graph,omitempty"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
