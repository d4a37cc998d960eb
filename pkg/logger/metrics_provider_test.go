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


package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestInitializeMetricsDisabled(t *testing.T) {
	tests := []struct {
		name   string
		config MetricsConfig
	}{
		{name: "zero value", config: MetricsConfig{}},
		{name: "disabled with endpoint", config: MetricsConfig{Endpoint: "collector:4317"}},
		{name: "enabled without endpoint", config: MetricsConfig{Enabled: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := InitializeMetrics(context.Background(), tt.config)
			require.ErrorIs(t, err, ErrOTelMetricsDisabled)
			assert.Nil(t, provider)
		})
	}
}

func TestInitializeMetricsInstallsGlobalProvider(t *testing.T) {
	previous := otel.GetMeterProvider()
	t.Cleanup(func() { otel.SetMeterProvider(previous) })

	provider, err := InitializeMetrics(context.Background(), MetricsConfig{
		Enabled:        true,
		Endpoint:       "127.0.0.1:4317",
		Insecure:       true,
		Headers:        map[string]string{"x-tenant": "lab"},
		ServiceVersion: "test",
		ExportInterval: time.Hour,
	})
	require.NoError(t, err)
	require.NotNil(t, provider)

	assert.Same(t, provider, otel.GetMeterProvider())

	counter, err := provider.Meter("meshradar.test").Int64Counter("test_total")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// Nothing listens on the endpoint, so only the shutdown itself is checked.
	_ = provider.Shutdown(ctx)
}
