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

package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/carverauto/meshradar/pkg/config"
	"github.com/carverauto/meshradar/pkg/logger"
	"github.com/carverauto/meshradar/pkg/models"
	"github.com/carverauto/meshradar/pkg/source"
)

func TestBuildFileSource(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Source.Path = filepath.Join(t.TempDir(), "snapshot.json")

	snapshots, poller, closeFn, err := buildSource(cfg, logger.NewTestLogger())
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &source.FileSource{}, snapshots)
	assert.Nil(t, poller, "file snapshots cannot be re-polled")
}

func TestBuildUnknownSource(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Source.Type = "mqtt"

	_, _, _, err := buildSource(cfg, logger.NewTestLogger())
	require.ErrorIs(t, err, errUnknownSourceType)
}

func TestStartMetricsDisabled(t *testing.T) {
	opts, stop, err := startMetrics(context.Background(), config.DefaultConfig(), logger.NewTestLogger())
	require.NoError(t, err)
	assert.Empty(t, opts)

	stop()
}

func TestStartMetricsEnabled(t *testing.T) {
	previous := otel.GetMeterProvider()
	t.Cleanup(func() { otel.SetMeterProvider(previous) })

	cfg := config.DefaultConfig()
	cfg.Metrics = config.MetricsConfig{
		Enabled:  true,
		Endpoint: "127.0.0.1:4317",
		Insecure: true,
		Interval: models.Duration(time.Hour),
	}

	opts, stop, err := startMetrics(context.Background(), cfg, logger.NewTestLogger())
	require.NoError(t, err)
	require.Len(t, opts, 1, "the manager records on the exporting provider")
	assert.NotSame(t, previous, otel.GetMeterProvider())

	stop()
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source:\n  type: carrier-pigeon\n"), 0o600))

	err := Run(context.Background(), Options{ConfigPath: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRunStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "snapshot.json")
	require.NoError(t, os.WriteFile(snapshot, []byte(`{"nodes":[]}`), 0o600))

	t.Setenv("MESHRADAR_SOURCE_PATH", snapshot)
	t.Setenv("MESHRADAR_LOGGING_LEVEL", "error")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, Run(ctx, Options{ListenAddr: "127.0.0.1:0"}))
}
