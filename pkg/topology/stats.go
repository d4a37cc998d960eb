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

package topology

import (
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/carverauto/meshradar/pkg/models"
)

func computeStats(vertices []models.ResolvedNode, edges []models.Connection) models.GraphStats {
	stats := models.GraphStats{
		NodeCount:    len(vertices),
		EdgeCount:    len(edges),
		RoleCounts:   make(map[string]int),
		SignalCounts: make(map[models.SignalQuality]int),
		Isolated:     make([]string, 0),
	}

	index := make(map[string]int64, len(vertices))
	g := simple.NewUndirectedGraph()

	for i := range vertices {
		v := &vertices[i]
		index[v.ID] = int64(i)
		g.AddNode(simple.Node(i))

		if v.Role != "" {
			stats.RoleCounts[v.Role]++
		}

		switch v.Kind {
		case models.KindUnknown:
			stats.UnknownCount++
		case models.KindNode:
			if !v.IsOnline {
				stats.OfflineCount++
			}
		case models.KindAccessPoint:
		}
	}

	for i := range edges {
		e := &edges[i]
		stats.SignalCounts[e.Signal]++

		from, okFrom := index[e.From]
		to, okTo := index[e.To]

		if !okFrom || !okTo || from == to {
			continue
		}

		g.SetEdge(simple.Edge{F: simple.Node(from), T: simple.Node(to)})
	}

	stats.Components = len(topo.ConnectedComponents(g))

	for i := range vertices {
		if g.From(int64(i)).Len() == 0 {
			stats.Isolated = append(stats.Isolated, vertices[i].ID)
		}
	}

	return stats
}
