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
	"github.com/charmbracelet/lipgloss"

	"github.com/carverauto/meshradar/pkg/models"
)

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaOrange     = "#FFB86C"
	draculaPink       = "#FF79C6"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaYellow     = "#F1FA8C"
	draculaComment    = "#6272A4"
)

const appPadding = 2

type styles struct {
	title, label, help, muted, app lipgloss.Style
	strong, medium, weak, unknown  lipgloss.Style
	online, offline                lipgloss.Style
}

func newStyles() styles {
	return styles{
		title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		app: lipgloss.NewStyle().
			Padding(0, appPadding).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(draculaCyan)).
			Foreground(lipgloss.Color(draculaForeground)),
		strong:  lipgloss.NewStyle().Foreground(lipgloss.Color(draculaGreen)),
		medium:  lipgloss.NewStyle().Foreground(lipgloss.Color(draculaOrange)),
		weak:    lipgloss.NewStyle().Foreground(lipgloss.Color(draculaRed)),
		unknown: lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment)),
		online:  lipgloss.NewStyle().Foreground(lipgloss.Color(draculaGreen)),
		offline: lipgloss.NewStyle().Foreground(lipgloss.Color(draculaRed)),
	}
}

func (s *styles) signal(q models.SignalQuality) lipgloss.Style {
	switch q {
	case models.SignalStrong:
		return s.strong
	case models.SignalMedium:
		return s.medium
	case models.SignalWeak:
		return s.weak
	case models.SignalUnknown:
	}

	return s.unknown
}

func tableStyles() table.Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(draculaPurple)).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(draculaForeground)).
		Background(lipgloss.Color(draculaPurple)).
		Bold(false)

	return ts
}
