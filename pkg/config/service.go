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
	"errors"
	"fmt"
	"time"

	"github.com/carverauto/meshradar/pkg/logger"
	"github.com/carverauto/meshradar/pkg/models"
)

var errNonPositiveDuration = errors.New("duration must be positive")

const (
	SourceFile = "file"
	SourceNATS = "nats"
)

// Config is the meshradar service configuration.
type Config struct {
	ListenAddr      string          `json:"listen_addr" yaml:"listen_addr" validate:"required"`
	RefreshInterval models.Duration `json:"refresh_interval" yaml:"refresh_interval"`
	RefreshTimeout  models.Duration `json:"refresh_timeout" yaml:"refresh_timeout"`
	RepollTimeout   models.Duration `json:"repoll_timeout" yaml:"repoll_timeout"`
	Source          SourceConfig    `json:"source" yaml:"source"`
	Publish         PublishConfig   `json:"publish" yaml:"publish"`
	API             APIConfig       `json:"api" yaml:"api"`
	Metrics         MetricsConfig   `json:"metrics" yaml:"metrics"`
	Logging         logger.Config   `json:"logging" yaml:"logging"`
}

// SourceConfig selects where node diagnostics snapshots come from.
type SourceConfig struct {
	Type            string `json:"type" yaml:"type" validate:"required,oneof=file nats"`
	Path            string `json:"path" yaml:"path" validate:"required_if=Type file"`
	NATSURL         string `json:"nats_url" yaml:"nats_url" validate:"required_if=Type nats"`
	SnapshotSubject string `json:"snapshot_subject" yaml:"snapshot_subject" validate:"required_if=Type nats"`
	PollSubject     string `json:"poll_subject" yaml:"poll_subject"`
}

// PublishConfig controls graph publication to JetStream.
type PublishConfig struct {
	Enabled       bool   `json:"enabled" yaml:"enabled"`
	NATSURL       string `json:"nats_url" yaml:"nats_url" validate:"required_if=Enabled true"`
	Stream        string `json:"stream" yaml:"stream" validate:"required_if=Enabled true"`
	SubjectPrefix string `json:"subject_prefix" yaml:"subject_prefix" validate:"required_if=Enabled true"`
}

// APIConfig secures the HTTP API. An empty APIKey leaves it open.
type APIConfig struct {
	APIKey         string   `json:"api_key" yaml:"api_key"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// MetricsConfig exports refresh metrics to an OTLP/gRPC collector. Disabled
// leaves the instruments on the global no-op provider.
type MetricsConfig struct {
	Enabled  bool              `json:"enabled" yaml:"enabled"`
	Endpoint string            `json:"endpoint" yaml:"endpoint" validate:"required_if=Enabled true"`
	Insecure bool              `json:"insecure" yaml:"insecure"`
	Headers  map[string]string `json:"headers" yaml:"headers"`
	Interval models.Duration   `json:"interval" yaml:"interval"`
}

// DefaultConfig returns a configuration reading snapshot.json from the working directory.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:      ":8090",
		RefreshInterval: models.Duration(30 * time.Second),
		RefreshTimeout:  models.Duration(10 * time.Second),
		RepollTimeout:   models.Duration(5 * time.Second),
		Source: SourceConfig{
			Type:            SourceFile,
			Path:            "snapshot.json",
			SnapshotSubject: "meshradar.diagnostics.snapshot",
			PollSubject:     "meshradar.diagnostics.poll",
		},
		Publish: PublishConfig{
			Stream:        "MESHRADAR_TOPOLOGY",
			SubjectPrefix: "meshradar.topology",
		},
		Metrics: MetricsConfig{
			Interval: models.Duration(15 * time.Second),
		},
		Logging: *logger.DefaultConfig(),
	}
}

// Validate implements Validator.
func (c *Config) Validate() error {
	durations := map[string]models.Duration{
		"refresh_interval": c.RefreshInterval,
		"refresh_timeout":  c.RefreshTimeout,
		"repoll_timeout":   c.RepollTimeout,
	}

	if c.Metrics.Enabled {
		durations["metrics.interval"] = c.Metrics.Interval
	}

	for name, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%w: %s", errNonPositiveDuration, name)
		}
	}

	return nil
}
