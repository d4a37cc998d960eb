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

// Package cli implements the meshmap-cli topology browser.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/carverauto/meshradar/pkg/logger"
	"github.com/carverauto/meshradar/pkg/models"
	"github.com/carverauto/meshradar/pkg/source"
	"github.com/carverauto/meshradar/pkg/topology"
)

// ParseFlags parses meshmap-cli arguments, not including the program name.
func ParseFlags(args []string) (*CmdConfig, error) {
	fs := flag.NewFlagSet("meshmap-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	help := fs.Bool("help", false, "show help message")
	snapshot := fs.String("snapshot", "", "path to a JSON diagnostics snapshot")
	network := fs.String("network", string(models.NetworkThread), "graph to show: thread or wifi")
	printOnce := fs.Bool("print", false, "render the graph once and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &CmdConfig{
		Help:     *help,
		Snapshot: *snapshot,
		Network:  models.ParseNetworkType(*network),
		Print:    *printOnce,
	}

	if cfg.Help {
		return cfg, nil
	}

	if cfg.Snapshot == "" {
		return nil, errSnapshotRequired
	}

	if cfg.Network != models.NetworkThread && cfg.Network != models.NetworkWiFi {
		return nil, fmt.Errorf("%w: %q", errUnsupportedNetwork, *network)
	}

	return cfg, nil
}

// LoadSnapshot reads a snapshot file and builds the topology from it.
func LoadSnapshot(ctx context.Context, path string, log logger.Logger) (*topology.Snapshot, error) {
	nodes, err := source.NewFileSource(path, log).FetchSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	return topology.NewSnapshot(nodes), nil
}

// Run loads the snapshot and either prints the graph to out or starts the interactive browser.
func Run(ctx context.Context, cfg *CmdConfig, out io.Writer, log logger.Logger) error {
	snap, err := LoadSnapshot(ctx, cfg.Snapshot, log)
	if err != nil {
		return err
	}

	if cfg.Print {
		_, err = fmt.Fprint(out, RenderGraph(snap.Graph(cfg.Network)))

		return err
	}

	p := tea.NewProgram(newModel(snap, cfg.Network), tea.WithAltScreen(), tea.WithContext(ctx))

	_, err = p.Run()

	return err
}
