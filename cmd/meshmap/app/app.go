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

// Package app wires the meshmap topology service together.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carverauto/meshradar/pkg/api"
	"github.com/carverauto/meshradar/pkg/config"
	"github.com/carverauto/meshradar/pkg/logger"
	"github.com/carverauto/meshradar/pkg/publisher"
	"github.com/carverauto/meshradar/pkg/refresh"
	"github.com/carverauto/meshradar/pkg/source"
	"github.com/carverauto/meshradar/pkg/version"
)

var errUnknownSourceType = errors.New("unknown source type")

const metricsShutdownTimeout = 5 * time.Second

// Options contains runtime configuration derived from CLI flags.
type Options struct {
	ConfigPath string
	ListenAddr string
}

// Run boots the topology service and blocks until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg := config.DefaultConfig()

	if err := config.NewLoader(nil).LoadAndValidate(ctx, opts.ConfigPath, cfg); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if opts.ListenAddr != "" {
		cfg.ListenAddr = opts.ListenAddr
	}

	mainLogger, err := logger.New(&cfg.Logging)
	if err != nil {
		return err
	}

	snapshots, poller, closeSource, err := buildSource(cfg, mainLogger)
	if err != nil {
		return err
	}
	defer closeSource()

	managerOpts, stopMetrics, err := startMetrics(ctx, cfg, mainLogger)
	if err != nil {
		return err
	}
	defer stopMetrics()

	if poller != nil {
		managerOpts = append(managerOpts, refresh.WithPollRequester(poller))
	}

	if cfg.Publish.Enabled {
		pub, pubErr := publisher.Connect(ctx, cfg.Publish.NATSURL, cfg.Publish.Stream, cfg.Publish.SubjectPrefix, mainLogger)
		if pubErr != nil {
			return fmt.Errorf("failed to connect graph publisher: %w", pubErr)
		}

		defer func() {
			if closeErr := pub.Close(); closeErr != nil {
				mainLogger.Warn().Err(closeErr).Msg("Error closing graph publisher")
			}
		}()

		managerOpts = append(managerOpts, refresh.WithPublisher(pub))
	}

	manager := refresh.NewManager(snapshots, refresh.Config{
		RefreshTimeout: time.Duration(cfg.RefreshTimeout),
		RepollTimeout:  time.Duration(cfg.RepollTimeout),
	}, mainLogger, managerOpts...)

	apiServer := api.NewAPIServer(manager, mainLogger,
		api.WithAllowedOrigins(cfg.API.AllowedOrigins),
		api.WithAPIKey(cfg.API.APIKey),
	)

	mainLogger.Info().
		Str("version", version.String()).
		Str("listen_addr", cfg.ListenAddr).
		Str("source", cfg.Source.Type).
		Bool("publish", cfg.Publish.Enabled).
		Bool("metrics", cfg.Metrics.Enabled).
		Msg("Starting meshmap")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return manager.Run(gctx, time.Duration(cfg.RefreshInterval))
	})

	g.Go(func() error {
		return apiServer.Serve(gctx, cfg.ListenAddr)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	mainLogger.Info().Msg("meshmap stopped")

	return nil
}

// startMetrics installs the OTLP meter provider when metrics are enabled and
// returns the manager options that record on it.
func startMetrics(ctx context.Context, cfg *config.Config, log logger.Logger) ([]refresh.Option, func(), error) {
	provider, err := logger.InitializeMetrics(ctx, logger.MetricsConfig{
		Enabled:        cfg.Metrics.Enabled,
		Endpoint:       cfg.Metrics.Endpoint,
		Insecure:       cfg.Metrics.Insecure,
		Headers:        cfg.Metrics.Headers,
		ServiceName:    "meshmap",
		ServiceVersion: version.Version(),
		ExportInterval: time.Duration(cfg.Metrics.Interval),
	})
	if errors.Is(err, logger.ErrOTelMetricsDisabled) {
		return nil, func() {}, nil
	}

	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	log.Info().Str("endpoint", cfg.Metrics.Endpoint).Msg("Exporting metrics over OTLP")

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()

		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Error flushing metrics")
		}
	}

	return []refresh.Option{refresh.WithMeterProvider(provider)}, stop, nil
}

func buildSource(
	cfg *config.Config, log logger.Logger) (refresh.SnapshotSource, refresh.PollRequester, func(), error) {
	switch cfg.Source.Type {
	case config.SourceFile:
		return source.NewFileSource(cfg.Source.Path, log), nil, func() {}, nil
	case config.SourceNATS:
		src, err := source.ConnectNATS(cfg.Source.NATSURL, cfg.Source.SnapshotSubject, cfg.Source.PollSubject, log)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect snapshot source: %w", err)
		}

		closeFn := func() {
			if err := src.Close(); err != nil {
				log.Warn().Err(err).Msg("Error closing NATS source")
			}
		}

		if cfg.Source.PollSubject == "" {
			log.Warn().Msg("No poll subject configured, re-poll is disabled")

			return src, nil, closeFn, nil
		}

		return src, src, closeFn, nil
	}

	return nil, nil, nil, fmt.Errorf("%w: %q", errUnknownSourceType, cfg.Source.Type)
}
