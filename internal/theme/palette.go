// Package theme keeps the whole dashboard consistent with exactly one of two
// palettes. Controls form a closed set of themeable kinds; those the tree walk
// does not reach are tracked by generation-tagged handles in a Registry.
package theme

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ID names a theme variant.
type ID string

const (
	Light ID = "light"
	Dark  ID = "dark"
)

// ParseID accepts "light" or "dark" in any case.
func ParseID(s string) (ID, bool) {
	switch ID(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	default:
		return Light, false
	}
}

// Toggle returns the other variant.
func (id ID) Toggle() ID {
	if id == Dark {
		return Light
	}
	return Dark
}

// Role is a semantic colour slot.
type Role int

const (
	RolePrimary Role = iota
	RoleSecondary
	RoleAccent
	RoleSuccess
	RoleWarning
	RoleDanger
	RoleBackground
	RoleText
	RoleCardBackground
	RoleCardBorder
	RoleHover
	RoleKPIBlue
	RoleKPIAmber
	RoleKPIGreen
	RoleKPIRed
	roleCount
)

var roleNames = [roleCount]string{
	"primary", "secondary", "accent", "success", "warning", "danger", "background", "text",
	"card_bg", "card_border", "hover", "kpi_blue", "kpi_amber", "kpi_green", "kpi_red",
}

// Roles lists every colour slot in declaration order.
func Roles() []Role {
	roles := make([]Role, roleCount)
	for i := range roles {
		roles[i] = Role(i)
	}
	return roles
}

func (r Role) String() string {
	if r < 0 || r >= roleCount {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// Palette maps every Role to a colour. It is a value type and never mutated
// after construction.
type Palette struct {
	colors [roleCount]lipgloss.Color
}

// Color returns the colour for r, or "" for an unknown role.
func (p Palette) Color(r Role) lipgloss.Color {
	if r < 0 || r >= roleCount {
		return ""
	}
	return p.colors[r]
}

// Series is a chart colour sequence.
type Series int

const (
	SeriesCategory Series = iota
	SeriesBar
	SeriesHistogram
	SeriesTop
	seriesCount
)

// ChartPalette maps each Series to an ordered colour list.
type ChartPalette struct {
	series [seriesCount][]lipgloss.Color
}

// Colors returns a copy of the sequence for s.
func (c ChartPalette) Colors(s Series) []lipgloss.Color {
	if s < 0 || s >= seriesCount {
		return nil
	}
	return slices.Clone(c.series[s])
}

// At returns the i-th colour of s, cycling through the sequence.
func (c ChartPalette) At(s Series, i int) lipgloss.Color {
	if s < 0 || s >= seriesCount || len(c.series[s]) == 0 {
		return ""
	}
	seq := c.series[s]
	return seq[((i%len(seq))+len(seq))%len(seq)]
}

// Theme bundles the UI and chart palettes of one variant.
type Theme struct {
	ID      ID
	Palette Palette
	Charts  ChartPalette
}

var lightTheme = Theme{
	ID: Light,
	Palette: Palette{colors: [roleCount]lipgloss.Color{
		RolePrimary:        "#2563eb",
		RoleSecondary:      "#3b82f6",
		RoleAccent:         "#1d4ed8",
		RoleSuccess:        "#059669",
		RoleWarning:        "#d97706",
		RoleDanger:         "#dc2626",
		RoleBackground:     "#ffffff",
		RoleText:           "#1e293b",
		RoleCardBackground: "#ffffff",
		RoleCardBorder:     "#e2e8f0",
		RoleHover:          "#f8fafc",
		RoleKPIBlue:        "#3b82f6",
		RoleKPIAmber:       "#f59e0b",
		RoleKPIGreen:       "#10b981",
		RoleKPIRed:         "#ef4444",
	}},
	Charts: ChartPalette{series: [seriesCount][]lipgloss.Color{
		SeriesCategory:  {"#3b82f6", "#059669", "#d97706", "#dc2626", "#8b5cf6"},
		SeriesBar:       {"#0891b2", "#0d9488", "#0284c7", "#4f46e5", "#7c3aed"},
		SeriesHistogram: {"#0ea5e9", "#06b6d4", "#0284c7", "#2563eb", "#4f46e5"},
		SeriesTop:       {"#f59e0b", "#d97706", "#b45309", "#92400e", "#78350f"},
	}},
}

var darkTheme = Theme{
	ID: Dark,
	Palette: Palette{colors: [roleCount]lipgloss.Color{
		RolePrimary:        "#3b82f6",
		RoleSecondary:      "#60a5fa",
		RoleAccent:         "#2563eb",
		RoleSuccess:        "#10b981",
		RoleWarning:        "#f59e0b",
		RoleDanger:         "#ef4444",
		RoleBackground:     "#0f172a",
		RoleText:           "#f8fafc",
		RoleCardBackground: "#1e293b",
		RoleCardBorder:     "#374151",
		RoleHover:          "#2d3748",
		RoleKPIBlue:        "#60a5fa",
		RoleKPIAmber:       "#fbbf24",
		RoleKPIGreen:       "#34d399",
		RoleKPIRed:         "#f87171",
	}},
	Charts: ChartPalette{series: [seriesCount][]lipgloss.Color{
		SeriesCategory:  {"#60a5fa", "#34d399", "#fbbf24", "#f87171", "#c084fc"},
		SeriesBar:       {"#22d3ee", "#2dd4bf", "#38bdf8", "#818cf8", "#a78bfa"},
		SeriesHistogram: {"#38bdf8", "#22d3ee", "#60a5fa", "#6366f1", "#818cf8"},
		SeriesTop:       {"#fbbf24", "#f59e0b", "#fb923c", "#fdba74", "#fed7aa"},
	}},
}

// ForID selects the theme for id. Unknown ids get the light theme.
func ForID(id ID) Theme {
	if id == Dark {
		return darkTheme
	}
	return lightTheme
}
