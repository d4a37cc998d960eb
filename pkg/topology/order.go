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
	"sort"
	"strconv"

	"github.com/carverauto/meshradar/pkg/models"
)

// compareNodeIDs orders numeric ids numerically and everything else
// lexicographically, with numeric ids first.
func compareNodeIDs(a, b string) int {
	an, aErr := strconv.ParseUint(a, 10, 64)
	bn, bErr := strconv.ParseUint(b, 10, 64)

	switch {
	case aErr == nil && bErr == nil:
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}

	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// sortedUniqueNodes returns the non-nil nodes sorted by id. For duplicate ids
// the first occurrence in input order is kept.
func sortedUniqueNodes(nodes []*models.NodeDiagnostic) []*models.NodeDiagnostic {
	out := make([]*models.NodeDiagnostic, 0, len(nodes))
	seen := make(map[string]struct{}, len(nodes))

	for _, node := range nodes {
		if node == nil || node.NodeID == "" {
			continue
		}

		if _, dup := seen[node.NodeID]; dup {
			continue
		}

		seen[node.NodeID] = struct{}{}
		out = append(out, node)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return compareNodeIDs(out[i].NodeID, out[j].NodeID) < 0
	})

	return out
}
