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

package refresh

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/carverauto/meshradar/pkg/models"
)

const (
	meterName = "github.com/carverauto/meshradar/pkg/refresh"

	metricBuildsTotal     = "meshradar_topology_builds_total"
	metricBuildLatency    = "meshradar_topology_build_duration_seconds"
	metricRefreshFailures = "meshradar_topology_refresh_failures_total"
	metricUnknownDevices  = "meshradar_topology_unknown_devices"
	metricGraphEdges      = "meshradar_topology_edges"
	metricRepollRequests  = "meshradar_topology_repoll_requests_total"
)

// metrics holds the instruments of one Manager. A nil instrument is skipped,
// so a failing meter never breaks a refresh.
type metrics struct {
	builds          metric.Int64Counter
	buildLatency    metric.Float64Histogram
	refreshFailures metric.Int64Counter
	unknownDevices  metric.Int64Gauge
	graphEdges      metric.Int64Gauge
	repollRequests  metric.Int64Counter
}

func newMetrics(provider metric.MeterProvider) *metrics {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}

	meter := provider.Meter(meterName)
	m := &metrics{}

	var err error

	if m.builds, err = meter.Int64Counter(
		metricBuildsTotal,
		metric.WithDescription("Total topology graph builds"),
	); err != nil {
		otel.Handle(err)
	}

	if m.buildLatency, err = meter.Float64Histogram(
		metricBuildLatency,
		metric.WithDescription("Latency of a full fetch and graph build"),
		metric.WithUnit("s"),
	); err != nil {
		otel.Handle(err)
	}

	if m.refreshFailures, err = meter.Int64Counter(
		metricRefreshFailures,
		metric.WithDescription("Total refreshes that kept the previous graph"),
	); err != nil {
		otel.Handle(err)
	}

	if m.unknownDevices, err = meter.Int64Gauge(
		metricUnknownDevices,
		metric.WithDescription("External devices seen in the latest Thread snapshot"),
	); err != nil {
		otel.Handle(err)
	}

	if m.graphEdges, err = meter.Int64Gauge(
		metricGraphEdges,
		metric.WithDescription("Edges in the latest graph per network type"),
	); err != nil {
		otel.Handle(err)
	}

	if m.repollRequests, err = meter.Int64Counter(
		metricRepollRequests,
		metric.WithDescription("Total re-poll requests sent to the device controller"),
	); err != nil {
		otel.Handle(err)
	}

	return m
}

func (m *metrics) recordBuild(ctx context.Context, state *State, duration time.Duration) {
	if m.builds != nil {
		m.builds.Add(ctx, 1)
	}

	if m.buildLatency != nil {
		m.buildLatency.Record(ctx, duration.Seconds())
	}

	if m.unknownDevices != nil {
		m.unknownDevices.Record(ctx, int64(state.Thread.Stats.UnknownCount))
	}

	if m.graphEdges != nil {
		for _, g := range []*models.Graph{state.Thread, state.WiFi} {
			m.graphEdges.Record(ctx, int64(g.Stats.EdgeCount),
				metric.WithAttributes(attribute.String("network", string(g.NetworkType))))
		}
	}
}

func (m *metrics) recordFailure(ctx context.Context, reason string) {
	if m.refreshFailures == nil {
		return
	}

	m.refreshFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *metrics) recordRepoll(ctx context.Context, outcome string) {
	if m.repollRequests == nil {
		return
	}

	m.repollRequests.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
