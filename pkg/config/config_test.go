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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/meshradar/pkg/logger"
	"github.com/carverauto/meshradar/pkg/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "meshradar.json", `{
		"listen_addr": ":9000",
		"refresh_interval": "1m",
		"source": {"type": "nats", "nats_url": "nats://127.0.0.1:4222", "snapshot_subject": "diag.snapshot"}
	}`)

	cfg := DefaultConfig()
	require.NoError(t, NewLoader(logger.NewTestLogger()).LoadAndValidate(context.Background(), path, cfg))

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, models.Duration(time.Minute), cfg.RefreshInterval)
	assert.Equal(t, models.Duration(10*time.Second), cfg.RefreshTimeout, "unset fields keep their defaults")
	assert.Equal(t, SourceNATS, cfg.Source.Type)
	assert.Equal(t, "diag.snapshot", cfg.Source.SnapshotSubject)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "meshradar.yaml", `
listen_addr: ":9100"
refresh_timeout: 3s
source:
  type: file
  path: /var/lib/meshradar/snapshot.json
publish:
  enabled: true
  nats_url: nats://nats:4222
  stream: TOPO
  subject_prefix: topo
metrics:
  enabled: true
  endpoint: otel-collector:4317
  insecure: true
  interval: 30s
  headers:
    x-tenant: lab
logging:
  level: debug
`)

	cfg := DefaultConfig()
	require.NoError(t, NewLoader(logger.NewTestLogger()).LoadAndValidate(context.Background(), path, cfg))

	assert.Equal(t, ":9100", cfg.ListenAddr)
	assert.Equal(t, models.Duration(3*time.Second), cfg.RefreshTimeout)
	assert.Equal(t, "/var/lib/meshradar/snapshot.json", cfg.Source.Path)
	assert.True(t, cfg.Publish.Enabled)
	assert.Equal(t, "TOPO", cfg.Publish.Stream)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "otel-collector:4317", cfg.Metrics.Endpoint)
	assert.Equal(t, models.Duration(30*time.Second), cfg.Metrics.Interval)
	assert.Equal(t, map[string]string{"x-tenant": "lab"}, cfg.Metrics.Headers)
}

func TestEnvironmentOverrides(t *testing.T) {
	path := writeFile(t, "meshradar.json", `{"listen_addr": ":9000"}`)

	t.Setenv("MESHRADAR_LISTEN_ADDR", ":7000")
	t.Setenv("MESHRADAR_REPOLL_TIMEOUT", "750ms")
	t.Setenv("MESHRADAR_SOURCE_PATH", "/tmp/override.json")
	t.Setenv("MESHRADAR_PUBLISH_ENABLED", "false")
	t.Setenv("MESHRADAR_API_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := DefaultConfig()
	require.NoError(t, NewLoader(logger.NewTestLogger()).LoadAndValidate(context.Background(), path, cfg))

	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, models.Duration(750*time.Millisecond), cfg.RepollTimeout)
	assert.Equal(t, "/tmp/override.json", cfg.Source.Path)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.API.AllowedOrigins)
}

func TestEnvironmentOnly(t *testing.T) {
	t.Setenv("MESHRADAR_SOURCE_TYPE", "nats")
	t.Setenv("MESHRADAR_SOURCE_NATS_URL", "nats://example:4222")

	cfg := DefaultConfig()
	require.NoError(t, NewLoader(logger.NewTestLogger()).LoadAndValidate(context.Background(), "", cfg))

	assert.Equal(t, SourceNATS, cfg.Source.Type)
	assert.Equal(t, "nats://example:4222", cfg.Source.NATSURL)
}

func TestInvalidEnvironmentValue(t *testing.T) {
	t.Setenv("MESHRADAR_REFRESH_INTERVAL", "soon")

	err := NewLoader(logger.NewTestLogger()).LoadAndValidate(context.Background(), "", DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MESHRADAR_REFRESH_INTERVAL")
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing listen address", mutate: func(c *Config) { c.ListenAddr = "" }},
		{name: "unknown source type", mutate: func(c *Config) { c.Source.Type = "kafka" }},
		{name: "file source without path", mutate: func(c *Config) { c.Source.Path = "" }},
		{name: "nats source without url", mutate: func(c *Config) { c.Source.Type = SourceNATS }},
		{name: "publish without url", mutate: func(c *Config) { c.Publish.Enabled = true }},
		{name: "zero refresh timeout", mutate: func(c *Config) { c.RefreshTimeout = 0 }},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "chatty" }},
		{name: "metrics without endpoint", mutate: func(c *Config) { c.Metrics.Enabled = true }},
		{name: "zero metrics interval", mutate: func(c *Config) {
			c.Metrics = MetricsConfig{Enabled: true, Endpoint: "otel-collector:4317"}
		}},
	}

	loader := NewLoader(logger.NewTestLogger())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			require.Error(t, loader.ValidateConfig(cfg))
		})
	}

	require.NoError(t, loader.ValidateConfig(DefaultConfig()))
}

func TestLoadErrors(t *testing.T) {
	loader := NewLoader(nil)

	var cfg Config

	require.ErrorIs(t, loader.LoadAndValidate(context.Background(), "", cfg), errInvalidConfigPtr)

	err := loader.LoadAndValidate(context.Background(), filepath.Join(t.TempDir(), "missing.json"), &cfg)
	require.Error(t, err)

	bad := writeFile(t, "broken.yaml", "listen_addr: [")
	require.Error(t, loader.LoadAndValidate(context.Background(), bad, DefaultConfig()))
}
