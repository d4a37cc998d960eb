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
	"context"

	"github.com/carverauto/meshradar/pkg/refresh"
)

// TopologyService is the part of refresh.Manager the API depends on.
type TopologyService interface {
	Current() *refresh.State
	Status() refresh.Status
	Refresh(ctx context.Context) (*refresh.State, error)
	PlanRepoll(nodeID string, includeNeighbors bool) ([]string, error)
	Repoll(ctx context.Context, nodeID string, includeNeighbors bool) (*refresh.RepollResult, error)
	Subscribe(buffer int) (<-chan *refresh.State, func())
}

var _ TopologyService = (*refresh.Manager)(nil)
