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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/mock/gomock"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}

	return out
}

func sumInt64(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}

	return total
}

func TestRefreshMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	ctrl := gomock.NewController(t)
	source := NewMockSnapshotSource(ctrl)

	gomock.InOrder(
		source.EXPECT().FetchSnapshot(gomock.Any()).Return(fleet(), nil),
		source.EXPECT().FetchSnapshot(gomock.Any()).Return(nil, errControllerDown),
	)

	poller := NewMockPollRequester(ctrl)

	m := newTestManager(source, WithMeterProvider(provider), WithPollRequester(poller))

	_, err := m.Refresh(context.Background())
	require.NoError(t, err)

	_, err = m.Refresh(context.Background())
	require.Error(t, err)

	poller.EXPECT().RequestPoll(gomock.Any(), gomock.Any()).Return(errControllerDown)

	_, err = m.Repoll(context.Background(), "1", false)
	require.ErrorIs(t, err, ErrRepollFailed)

	got := collect(t, reader)

	require.Contains(t, got, metricBuildsTotal)
	assert.Equal(t, int64(1), sumInt64(t, got[metricBuildsTotal]))

	require.Contains(t, got, metricRefreshFailures)
	assert.Equal(t, int64(1), sumInt64(t, got[metricRefreshFailures]))

	require.Contains(t, got, metricRepollRequests)
	assert.Equal(t, int64(1), sumInt64(t, got[metricRepollRequests]))

	require.Contains(t, got, metricUnknownDevices)
	gauge, ok := got[metricUnknownDevices].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(1), gauge.DataPoints[0].Value)

	require.Contains(t, got, metricGraphEdges)
	edges, ok := got[metricGraphEdges].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	assert.Len(t, edges.DataPoints, 2, "one point per network type")

	require.Contains(t, got, metricBuildLatency)
	hist, ok := got[metricBuildLatency].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
}
