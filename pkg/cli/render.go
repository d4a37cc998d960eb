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

	"github.com/carverauto/meshradar/pkg/models"
)

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}

	return strconv.Itoa(*v)
}

func onlineLabel(n *models.ResolvedNode) string {
	switch {
	case n.Kind != models.KindNode:
		return "-"
	case n.IsOnline:
		return "online"
	default:
		return "offline"
	}
}

// RenderGraph draws a graph as a node list followed by an edge list.
func RenderGraph(g *models.Graph) string {
	st := newStyles()
	names := make(map[string]string, len(g.Nodes))

	var b strings.Builder

	b.WriteString(st.title.Render(fmt.Sprintf("%s topology", g.NetworkType)))
	b.WriteString("\n")
	b.WriteString(st.muted.Render(fmt.Sprintf("%d nodes, %d edges, %d unknown, %d offline, %d components",
		g.Stats.NodeCount, g.Stats.EdgeCount, g.Stats.UnknownCount, g.Stats.OfflineCount, g.Stats.Components)))
	b.WriteString("\n\n")

	b.WriteString(st.label.Render("Nodes"))
	b.WriteString("\n")

	for i := range g.Nodes {
		n := &g.Nodes[i]
		names[n.ID] = n.Name

		status := onlineLabel(n)
		statusStyle := st.muted

		switch status {
		case "online":
			statusStyle = st.online
		case "offline":
			statusStyle = st.offline
		}

		line := fmt.Sprintf("  %-26s %-24s %-13s %s", n.ID, n.Name, n.Kind, statusStyle.Render(status))
		if n.Role != "" {
			line += " " + st.muted.Render(n.Role)
		}

		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(st.label.Render("Edges"))
	b.WriteString("\n")

	if len(g.Edges) == 0 {
		b.WriteString(st.muted.Render("  none") + "\n")
	}

	for i := range g.Edges {
		e := &g.Edges[i]

		detail := fmt.Sprintf("lqi=%d rssi=%s", e.LQI, optionalInt(e.RSSI))
		if e.FromRouteTable {
			detail += fmt.Sprintf(" cost=%s bidir=%s", optionalInt(e.PathCost), optionalInt(e.BidirectionalLQI))
		}

		b.WriteString(fmt.Sprintf("  %s <-> %s  %s  %s\n",
			nameOr(names, e.From), nameOr(names, e.To),
			st.signal(e.Signal).Render(string(e.Signal)),
			st.muted.Render(detail)))
	}

	if len(g.Stats.Isolated) > 0 {
		b.WriteString("\n")
		b.WriteString(st.label.Render("Isolated: "))
		b.WriteString(strings.Join(g.Stats.Isolated, ", "))
		b.WriteString("\n")
	}

	return b.String()
}

func nameOr(names map[string]string, id string) string {
	if name, ok := names[id]; ok && name != "" && name != id {
		return fmt.Sprintf("%s (%s)", name, id)
	}

	return id
}
