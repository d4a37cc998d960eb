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

//go:generate mockgen -destination=mock_refresh.go -package=refresh github.com/carverauto/meshradar/pkg/refresh SnapshotSource,PollRequester,GraphPublisher,Clock,Ticker

package refresh

import (
	"context"
	"time"

	"github.com/carverauto/meshradar/pkg/models"
)

// SnapshotSource delivers the latest diagnostics of every managed node.
type SnapshotSource interface {
	FetchSnapshot(ctx context.Context) ([]*models.NodeDiagnostic, error)
}

// PollRequester asks the device controller to re-query a set of nodes.
type PollRequester interface {
	RequestPoll(ctx context.Context, nodeIDs []string) error
}

// GraphPublisher forwards freshly built graphs to downstream consumers.
type GraphPublisher interface {
	PublishGraph(ctx context.Context, graph *models.Graph) error
}

// Clock abstracts time-related operations.
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker abstracts time.Ticker for testing.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}
