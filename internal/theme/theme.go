// Package theme maps the stored theme preference onto terminal colors.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/studyboard/internal/model"
)

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// Resolve picks the effective mode. system follows prefersDark; an unknown
// value is treated like system.
func Resolve(t model.Theme, prefersDark bool) Mode {
	switch t {
	case model.ThemeLight:
		return Light
	case model.ThemeDark:
		return Dark
	}
	if prefersDark {
		return Dark
	}
	return Light
}

// PrefersDark asks the terminal for its background color. Terminals that do
// not answer count as dark.
func PrefersDark() bool {
	return lipgloss.HasDarkBackground()
}

// Next cycles light, dark, system for the theme toggle.
func Next(t model.Theme) model.Theme {
	switch t {
	case model.ThemeLight:
		return model.ThemeDark
	case model.ThemeDark:
		return model.ThemeSystem
	default:
		return model.ThemeLight
	}
}

type Palette struct {
	Mode      Mode
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	Border    lipgloss.Color
	Surface   lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	BarFilled string
	BarEmpty  string
}

func For(m Mode) Palette {
	if m == Dark {
		return Palette{
			Mode:      Dark,
			Text:      lipgloss.Color("#E5E7EB"),
			Muted:     lipgloss.Color("#9CA3AF"),
			Accent:    lipgloss.Color("#A78BFA"),
			Border:    lipgloss.Color("#4B5563"),
			Surface:   lipgloss.Color("#1F2937"),
			Success:   lipgloss.Color("#34D399"),
			Warning:   lipgloss.Color("#FBBF24"),
			Danger:    lipgloss.Color("#F87171"),
			BarFilled: "#34D399",
			BarEmpty:  "#374151",
		}
	}
	return Palette{
		Mode:      Light,
		Text:      lipgloss.Color("#111827"),
		Muted:     lipgloss.Color("#6B7280"),
		Accent:    lipgloss.Color("#7C3AED"),
		Border:    lipgloss.Color("#D1D5DB"),
		Surface:   lipgloss.Color("#F9FAFB"),
		Success:   lipgloss.Color("#059669"),
		Warning:   lipgloss.Color("#D97706"),
		Danger:    lipgloss.Color("#DC2626"),
		BarFilled: "#10B981",
		BarEmpty:  "#E5E7EB",
	}
}
