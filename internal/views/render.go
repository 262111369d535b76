package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/studyboard/internal/theme"
)

type AppData struct {
	Header       string
	Tabs         []string
	ActiveTab    int
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

// Styles is the lipgloss set for one palette.
type Styles struct {
	Palette    theme.Palette
	Header     lipgloss.Style
	Tab        lipgloss.Style
	ActiveTab  lipgloss.Style
	Panel      lipgloss.Style
	Status     lipgloss.Style
	Error      lipgloss.Style
	Footer     lipgloss.Style
	Muted      lipgloss.Style
	Title      lipgloss.Style
	Done       lipgloss.Style
	Selected   lipgloss.Style
	PrioHigh   lipgloss.Style
	PrioMedium lipgloss.Style
	PrioLow    lipgloss.Style
}

func NewStyles(p theme.Palette) Styles {
	return Styles{
		Palette:    p,
		Header:     lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Tab:        lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1),
		ActiveTab:  lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Surface).Padding(0, 1).Underline(true),
		Panel:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		Status:     lipgloss.NewStyle().Foreground(p.Success),
		Error:      lipgloss.NewStyle().Foreground(p.Danger),
		Footer:     lipgloss.NewStyle().Foreground(p.Muted),
		Muted:      lipgloss.NewStyle().Foreground(p.Muted),
		Title:      lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		Done:       lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true),
		Selected:   lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		PrioHigh:   lipgloss.NewStyle().Foreground(p.Danger),
		PrioMedium: lipgloss.NewStyle().Foreground(p.Warning),
		PrioLow:    lipgloss.NewStyle().Foreground(p.Muted),
	}
}

func RenderApp(s Styles, data AppData) string {
	left := s.Panel.Width(58).Render(data.LeftPane)
	row := left
	if strings.TrimSpace(data.RightPane) != "" {
		right := s.Panel.Width(50).Render(data.RightPane)
		row = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	tabs := make([]string, 0, len(data.Tabs))
	for i, tab := range data.Tabs {
		if i == data.ActiveTab {
			tabs = append(tabs, s.ActiveTab.Render(tab))
			continue
		}
		tabs = append(tabs, s.Tab.Render(tab))
	}

	lines := []string{
		s.Header.Render(data.Header),
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		row,
	}
	if data.StatusLine != "" {
		if data.StatusError {
			lines = append(lines, s.Error.Render(data.StatusLine))
		} else {
			lines = append(lines, s.Status.Render(data.StatusLine))
		}
	}
	if data.Notification != "" {
		lines = append(lines, s.Panel.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, s.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders task notes. Rendering errors fall back to the raw text.
func RenderMarkdown(md string, mode theme.Mode) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "light"
	if mode == theme.Dark {
		style = "dark"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

// Bar renders a fixed-width text progress bar.
func Bar(value float64, width int) string {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
