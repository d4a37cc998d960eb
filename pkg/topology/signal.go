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

import "github.com/carverauto/meshradar/pkg/models"

const (
	rssiStrongAbove = -70
	rssiMediumAbove = -85

	lqiStrongAbove = 200
	lqiMediumAbove = 100
)

// ClassifyRSSI maps an RSSI reading in dBm onto a signal tier.
func ClassifyRSSI(rssi *int) models.SignalQuality {
	if rssi == nil {
		return models.SignalUnknown
	}

	switch {
	case *rssi > rssiStrongAbove:
		return models.SignalStrong
	case *rssi > rssiMediumAbove:
		return models.SignalMedium
	default:
		return models.SignalWeak
	}
}

// ClassifyLQI maps a 0-255 link quality indicator onto a signal tier.
func ClassifyLQI(lqi int) models.SignalQuality {
	switch {
	case lqi > lqiStrongAbove:
		return models.SignalStrong
	case lqi > lqiMediumAbove:
		return models.SignalMedium
	default:
		return models.SignalWeak
	}
}

// ClassifyLinkQuality classifies an optional LQI; a missing value is unknown.
func ClassifyLinkQuality(lqi *int) models.SignalQuality {
	if lqi == nil {
		return models.SignalUnknown
	}

	return ClassifyLQI(*lqi)
}

// NeighborRSSI picks the averaged RSSI when present, else the last sample.
func NeighborRSSI(entry *models.NeighborEntry) *int {
	if entry.AverageRSSI != nil {
		return entry.AverageRSSI
	}

	return entry.LastRSSI
}

// ClassifyNeighbor classifies a neighbor table row. RSSI wins over LQI.
func ClassifyNeighbor(entry *models.NeighborEntry) models.SignalQuality {
	if rssi := NeighborRSSI(entry); rssi != nil {
		return ClassifyRSSI(rssi)
	}

	return ClassifyLQI(entry.LQI)
}

// BidirectionalLQI combines the inbound and outbound LQI of a route entry.
// Both positive: rounded mean. One positive: that one. Neither: nil.
func BidirectionalLQI(lqiIn, lqiOut int) *int {
	var v int

	switch {
	case lqiIn > 0 && lqiOut > 0:
		// round half up on non-negative integers
		v = (lqiIn + lqiOut + 1) / 2
	case lqiIn > 0:
		v = lqiIn
	case lqiOut > 0:
		v = lqiOut
	default:
		return nil
	}

	return &v
}
