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
	"slices"

	"github.com/carverauto/meshradar/pkg/models"
)

// UnknownIDPrefix prefixes the ids synthesized for devices outside the managed fabric.
const UnknownIDPrefix = "unknown_"

// UnknownID builds the stable id for an external device.
func UnknownID(extHex string) string {
	return UnknownIDPrefix + extHex
}

// UnknownDevices is the completed set of external devices for one build, in
// first-observation order.
type UnknownDevices struct {
	devices []*models.UnknownDevice
	byExt   map[string]*models.UnknownDevice
	byID    map[string]*models.UnknownDevice
}

// DetectUnknownDevices scans every neighbor table for peers that resolve to no
// managed node by either address. It must complete before connection building.
func DetectUnknownDevices(nodes []*models.NodeDiagnostic, resolver *AddressResolver) *UnknownDevices {
	u := &UnknownDevices{
		byExt: make(map[string]*models.UnknownDevice),
		byID:  make(map[string]*models.UnknownDevice),
	}

	for _, node := range nodes {
		if node == nil || node.Thread == nil {
			continue
		}

		for i := range node.Thread.NeighborTable {
			entry := &node.Thread.NeighborTable[i]

			ext := addressKey(entry.ExtAddress)
			if ext == "" {
				continue
			}

			if _, ok := resolver.ResolveKnown(ext, entry.RLOC16); ok {
				continue
			}

			u.observe(node.NodeID, ext, entry)
		}
	}

	return u
}

func (u *UnknownDevices) observe(observer, ext string, entry *models.NeighborEntry) {
	dev, ok := u.byExt[ext]
	if !ok {
		dev = &models.UnknownDevice{
			ID:            UnknownID(ext),
			ExtAddressHex: ext,
			SeenBy:        []string{},
		}
		u.byExt[ext] = dev
		u.byID[dev.ID] = dev
		u.devices = append(u.devices, dev)
	}

	if !slices.Contains(dev.SeenBy, observer) {
		dev.SeenBy = append(dev.SeenBy, observer)
	}

	dev.IsRouter = dev.IsRouter || entry.RxOnWhenIdle

	if rssi := NeighborRSSI(entry); rssi != nil {
		if dev.BestRSSI == nil || *rssi > *dev.BestRSSI {
			best := *rssi
			dev.BestRSSI = &best
		}
	}
}

// ByExtAddress returns the unknown device id for a decoded extended address.
func (u *UnknownDevices) ByExtAddress(extHex string) (string, bool) {
	if extHex == "" {
		return "", false
	}

	dev, ok := u.byExt[extHex]
	if !ok {
		return "", false
	}

	return dev.ID, true
}

// Get returns a copy of the device with the given synthesized id.
func (u *UnknownDevices) Get(id string) (models.UnknownDevice, bool) {
	dev, ok := u.byID[id]
	if !ok {
		return models.UnknownDevice{}, false
	}

	return copyUnknown(dev), true
}

// List returns copies of all unknown devices in first-observation order.
func (u *UnknownDevices) List() []models.UnknownDevice {
	out := make([]models.UnknownDevice, 0, len(u.devices))
	for _, dev := range u.devices {
		out = append(out, copyUnknown(dev))
	}

	return out
}

// Len returns the number of unknown devices.
func (u *UnknownDevices) Len() int {
	return len(u.devices)
}

func copyUnknown(dev *models.UnknownDevice) models.UnknownDevice {
	out := *dev
	out.SeenBy = make([]string, len(dev.SeenBy))
	copy(out.SeenBy, dev.SeenBy)

	if dev.BestRSSI != nil {
		best := *dev.BestRSSI
		out.BestRSSI = &best
	}

	return out
}
