package interactive

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/joshyorko/previewctl/registry"
)

// Theme defines the color palette of the shell
type Theme struct {
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	TextBright lipgloss.AdaptiveColor
	Text       lipgloss.AdaptiveColor
	TextMuted  lipgloss.AdaptiveColor

	Border    lipgloss.AdaptiveColor
	BorderDim lipgloss.AdaptiveColor
	Surface   lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor

	// Groups match the node colours of the host's node graph.
	Groups map[registry.Group]lipgloss.Color
}

func DefaultTheme() Theme {
	return Theme{
		Primary:   lipgloss.AdaptiveColor{Dark: "#82aaff", Light: "#2e7de9"},
		Secondary: lipgloss.AdaptiveColor{Dark: "#c792ea", Light: "#7847bd"},
		Accent:    lipgloss.AdaptiveColor{Dark: "#89ddff", Light: "#007197"},

		Success: lipgloss.AdaptiveColor{Dark: "#c3e88d", Light: "#587539"},
		Warning: lipgloss.AdaptiveColor{Dark: "#ffcb6b", Light: "#8c6c3e"},
		Error:   lipgloss.AdaptiveColor{Dark: "#ff5370", Light: "#f52a65"},
		Info:    lipgloss.AdaptiveColor{Dark: "#89ddff", Light: "#0891b2"},

		TextBright: lipgloss.AdaptiveColor{Dark: "#eeffff", Light: "#343b58"},
		Text:       lipgloss.AdaptiveColor{Dark: "#bfc7d5", Light: "#4c505e"},
		TextMuted:  lipgloss.AdaptiveColor{Dark: "#697098", Light: "#8990a3"},

		Border:    lipgloss.AdaptiveColor{Dark: "#5c6370", Light: "#c4c8da"},
		BorderDim: lipgloss.AdaptiveColor{Dark: "#3e4452", Light: "#dfe1e8"},
		Surface:   lipgloss.AdaptiveColor{Dark: "#292d3e", Light: "#e9e9ec"},
		Highlight: lipgloss.AdaptiveColor{Dark: "#3a3f58", Light: "#e1e2e7"},

		Groups: map[registry.Group]lipgloss.Color{
			registry.Objects: lipgloss.Color("#bdbdbd"),
			registry.Shaders: lipgloss.Color("#ff7c8f"),
			registry.Cameras: lipgloss.Color("#877c9b"),
		},
	}
}
