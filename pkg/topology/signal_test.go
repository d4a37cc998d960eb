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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carverauto/meshradar/pkg/models"
)

func TestClassifyRSSI(t *testing.T) {
	tests := []struct {
		name string
		rssi *int
		want models.SignalQuality
	}{
		{"nil", nil, models.SignalUnknown},
		{"strong", intp(-40), models.SignalStrong},
		{"just above strong threshold", intp(-69), models.SignalStrong},
		{"strong threshold is medium", intp(-70), models.SignalMedium},
		{"just above medium threshold", intp(-84), models.SignalMedium},
		{"medium threshold is weak", intp(-85), models.SignalWeak},
		{"very weak", intp(-100), models.SignalWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRSSI(tt.rssi))
		})
	}
}

func TestClassifyLQI(t *testing.T) {
	tests := []struct {
		lqi  int
		want models.SignalQuality
	}{
		{255, models.SignalStrong},
		{201, models.SignalStrong},
		{200, models.SignalMedium},
		{101, models.SignalMedium},
		{100, models.SignalWeak},
		{0, models.SignalWeak},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyLQI(tt.lqi), "lqi %d", tt.lqi)
	}

	assert.Equal(t, models.SignalUnknown, ClassifyLinkQuality(nil))
	assert.Equal(t, models.SignalStrong, ClassifyLinkQuality(intp(230)))
}

func TestClassifyNeighbor(t *testing.T) {
	averaged := models.NeighborEntry{LQI: 20, LastRSSI: intp(-95), AverageRSSI: intp(-60)}
	assert.Equal(t, models.SignalStrong, ClassifyNeighbor(&averaged), "average rssi wins")
	assert.Equal(t, -60, *NeighborRSSI(&averaged))

	lastOnly := models.NeighborEntry{LQI: 250, LastRSSI: intp(-90)}
	assert.Equal(t, models.SignalWeak, ClassifyNeighbor(&lastOnly), "rssi wins over lqi")
	assert.Equal(t, -90, *NeighborRSSI(&lastOnly))

	lqiOnly := models.NeighborEntry{LQI: 150}
	assert.Equal(t, models.SignalMedium, ClassifyNeighbor(&lqiOnly))
	assert.Nil(t, NeighborRSSI(&lqiOnly))
}

func TestBidirectionalLQI(t *testing.T) {
	tests := []struct {
		name    string
		in, out int
		want    *int
	}{
		{"both positive averaged", 200, 100, intp(150)},
		{"half rounds up", 100, 151, intp(126)},
		{"only in", 180, 0, intp(180)},
		{"only out", 0, 90, intp(90)},
		{"neither", 0, 0, nil},
		{"negative ignored", -5, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BidirectionalLQI(tt.in, tt.out))
		})
	}
}
