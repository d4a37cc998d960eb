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

package cli

import (
	"github.com/charmbracelet/bubbles/table"

	"github.com/carverauto/meshradar/pkg/models"
	"github.com/carverauto/meshradar/pkg/topology"
)

// CmdConfig holds parsed command-line configuration.
type CmdConfig struct {
	Help     bool
	Snapshot string
	Network  models.NetworkType
	Print    bool
}

type viewMode int

const (
	modeNodes viewMode = iota
	modeDetail
)

type model struct {
	snapshot *topology.Snapshot
	network  models.NetworkType
	graph    *models.Graph
	nodes    table.Model
	conns    table.Model
	mode     viewMode
	selected string
	repoll   []string
	width    int
	styles   styles
}
