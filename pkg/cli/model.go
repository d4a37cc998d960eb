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
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/carverauto/meshradar/pkg/models"
	"github.com/carverauto/meshradar/pkg/topology"
)

const (
	defaultTableHeight = 15
	chromeHeight       = 10
)

func nodeColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 26},
		{Title: "Name", Width: 22},
		{Title: "Kind", Width: 12},
		{Title: "Role", Width: 17},
		{Title: "Status", Width: 8},
		{Title: "Links", Width: 5},
	}
}

func connColumns() []table.Column {
	return []table.Column{
		{Title: "Peer", Width: 26},
		{Title: "Name", Width: 22},
		{Title: "Dir", Width: 4},
		{Title: "Signal", Width: 8},
		{Title: "LQI", Width: 4},
		{Title: "RSSI", Width: 5},
		{Title: "Cost", Width: 4},
		{Title: "Bidir", Width: 5},
		{Title: "Source", Width: 8},
	}
}

func newModel(snap *topology.Snapshot, network models.NetworkType) *model {
	m := &model{
		snapshot: snap,
		styles:   newStyles(),
		nodes: table.New(
			table.WithColumns(nodeColumns()),
			table.WithFocused(true),
			table.WithHeight(defaultTableHeight),
			table.WithStyles(tableStyles()),
		),
		conns: table.New(
			table.WithColumns(connColumns()),
			table.WithHeight(defaultTableHeight),
			table.WithStyles(tableStyles()),
		),
	}

	m.setNetwork(network)

	return m
}

func (m *model) setNetwork(network models.NetworkType) {
	m.network = network
	m.graph = m.snapshot.Graph(network)
	m.nodes.SetRows(nodeRows(m.graph))
	m.nodes.SetCursor(0)
	m.mode = modeNodes
}

func nodeRows(g *models.Graph) []table.Row {
	degree := make(map[string]int, len(g.Nodes))

	for i := range g.Edges {
		degree[g.Edges[i].From]++
		degree[g.Edges[i].To]++
	}

	rows := make([]table.Row, 0, len(g.Nodes))

	for i := range g.Nodes {
		n := &g.Nodes[i]
		rows = append(rows, table.Row{
			n.ID,
			n.Name,
			string(n.Kind),
			n.Role,
			onlineLabel(n),
			strconv.Itoa(degree[n.ID]),
		})
	}

	return rows
}

func connRows(conns []models.NodeConnection) []table.Row {
	rows := make([]table.Row, 0, len(conns))

	for i := range conns {
		c := &conns[i]

		dir := "in"
		if c.IsOutgoing {
			dir = "out"
		}

		source := "neighbor"
		if c.FromRouteTable {
			source = "route"
		}

		rows = append(rows, table.Row{
			c.PeerID,
			c.PeerName,
			dir,
			string(c.Signal),
			strconv.Itoa(c.LQI),
			optionalInt(c.RSSI),
			optionalInt(c.PathCost),
			optionalInt(c.BidirectionalLQI),
			source,
		})
	}

	return rows
}

func (*model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

		if h := msg.Height - chromeHeight; h > 0 {
			m.nodes.SetHeight(h)
			m.conns.SetHeight(h)
		}

		return m, nil
	case tea.KeyMsg:
		if handled, cmd := m.handleKeyMsg(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd

	if m.mode == modeDetail {
		m.conns, cmd = m.conns.Update(msg)
	} else {
		m.nodes, cmd = m.nodes.Update(msg)
	}

	return m, cmd
}

func (m *model) handleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return true, tea.Quit
	case "esc":
		if m.mode == modeDetail {
			m.mode = modeNodes
			m.conns.Blur()
			m.nodes.Focus()

			return true, nil
		}

		return true, tea.Quit
	case "enter":
		if m.mode == modeNodes {
			m.openDetail()
		}

		return true, nil
	case "tab":
		next := models.NetworkWiFi
		if m.network == models.NetworkWiFi {
			next = models.NetworkThread
		}

		m.setNetwork(next)
		m.conns.Blur()
		m.nodes.Focus()

		return true, nil
	}

	return false, nil
}

func (m *model) openDetail() {
	row := m.nodes.SelectedRow()
	if row == nil {
		return
	}

	m.selected = row[0]
	m.repoll = m.snapshot.RepollSet(m.selected, false)
	m.conns.SetRows(connRows(m.snapshot.NodeConnections(m.selected)))
	m.conns.SetCursor(0)
	m.nodes.Blur()
	m.conns.Focus()
	m.mode = modeDetail
}

func (m *model) View() string {
	var content strings.Builder

	st := &m.styles

	content.WriteString(st.title.Render(fmt.Sprintf("meshradar: %s topology", m.network)))
	content.WriteString("\n")
	content.WriteString(st.muted.Render(fmt.Sprintf("%d nodes, %d edges, %d unknown",
		m.graph.Stats.NodeCount, m.graph.Stats.EdgeCount, m.graph.Stats.UnknownCount)))
	content.WriteString("\n\n")

	if m.mode == modeDetail {
		content.WriteString(m.renderDetail())
	} else {
		content.WriteString(m.nodes.View())
		content.WriteString("\n\n")
		content.WriteString(st.help.Render("↑/↓ move | Enter → connections | Tab → switch network | q → quit"))
	}

	return st.app.Render(content.String())
}

func (m *model) renderDetail() string {
	var content strings.Builder

	st := &m.styles

	content.WriteString(st.label.Render("Connections of " + m.selected))
	content.WriteString("\n")

	if len(m.conns.Rows()) == 0 {
		content.WriteString(st.muted.Render("no connections"))
	} else {
		content.WriteString(m.conns.View())
	}

	content.WriteString("\n\n")
	content.WriteString(st.label.Render("Re-poll set: "))

	if len(m.repoll) == 0 {
		content.WriteString(st.muted.Render("nothing reachable"))
	} else {
		content.WriteString(strings.Join(m.repoll, ", "))
	}

	content.WriteString("\n\n")
	content.WriteString(st.help.Render("↑/↓ move | Esc → back | q → quit"))

	return content.String()
}
