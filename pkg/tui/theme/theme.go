package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/habits/pkg/calendar"
)

// Theme centralizes Lip Gloss styles for the dashboard.
type Theme struct {
	Footer   FooterTheme
	Panel    PanelTheme
	Slot     SlotTheme
	Calendar calendar.Options
	Bar      BarTheme
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame   lipgloss.Style
	Focused lipgloss.Style
	Title   lipgloss.Style
}

// SlotTheme styles the hour rows of a day plan.
type SlotTheme struct {
	Hour   lipgloss.Style
	Empty  lipgloss.Style
	Entry  lipgloss.Style
	Note   lipgloss.Style
	Cursor lipgloss.Style
}

// BarTheme blends achievement bars from Low (0%) to High (100%).
type BarTheme struct {
	Low  colorful.Color
	High colorful.Color
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	low, _ := colorful.Hex("#e06c75")
	high, _ := colorful.Hex("#98c379")

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return Theme{
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
		Panel: PanelTheme{
			Frame:   frame,
			Focused: frame.BorderForeground(lipgloss.Color("212")),
			Title:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
		Slot: SlotTheme{
			Hour:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Empty:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Entry:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
			Note:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
			Cursor: lipgloss.NewStyle().Reverse(true),
		},
		Calendar: calendar.DefaultOptions(),
		Bar:      BarTheme{Low: low, High: high},
	}
}

// BarColor is the bar colour for an achievement rate of 0-100.
func (b BarTheme) BarColor(rate int) lipgloss.Style {
	rate = min(max(rate, 0), 100)
	c := b.Low.BlendLab(b.High, float64(rate)/100).Clamped()
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
}
