package interactive

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/joshyorko/previewctl/registry"
)

type Styles struct {
	theme Theme

	Title    lipgloss.Style
	Subtle   lipgloss.Style
	Text     lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Divider  lipgloss.Style
	Spinner  lipgloss.Style

	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	PanelTitle   lipgloss.Style

	Button       lipgloss.Style
	ButtonActive lipgloss.Style

	Modal        lipgloss.Style
	ModalTitle   lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastInfo    lipgloss.Style

	GroupHeader map[registry.Group]lipgloss.Style
	GroupButton map[registry.Group]lipgloss.Style
}

func NewStyles() *Styles {
	return NewStylesWithTheme(DefaultTheme())
}

func NewStylesWithTheme(theme Theme) *Styles {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderDim).
		Padding(0, 1).
		Width(26)

	headers := make(map[registry.Group]lipgloss.Style)
	buttons := make(map[registry.Group]lipgloss.Style)
	for group, color := range theme.Groups {
		headers[group] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1a1b26")).Background(color).Padding(0, 1)
		buttons[group] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1a1b26")).Background(color).Padding(0, 2)
	}

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.TextBright).Background(theme.Primary).Padding(0, 1),
		Subtle:   lipgloss.NewStyle().Foreground(theme.TextMuted),
		Text:     lipgloss.NewStyle().Foreground(theme.Text),
		Cursor:   lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(theme.TextBright).Background(theme.Highlight),
		Success:  lipgloss.NewStyle().Foreground(theme.Success),
		Warning:  lipgloss.NewStyle().Foreground(theme.Warning),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(theme.Error),
		Divider:  lipgloss.NewStyle().Foreground(theme.BorderDim),
		Spinner:  lipgloss.NewStyle().Foreground(theme.Accent),

		Panel:        panel,
		PanelFocused: panel.BorderForeground(theme.Primary),
		PanelTitle:   lipgloss.NewStyle().Bold(true).Foreground(theme.Secondary),

		Button:       lipgloss.NewStyle().Foreground(theme.Text).Background(theme.Surface).Padding(0, 2),
		ButtonActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1a1b26")).Background(theme.Accent).Padding(0, 2),

		Modal:        lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(theme.Warning).Padding(1, 2).Width(56),
		ModalTitle:   lipgloss.NewStyle().Bold(true).Foreground(theme.Warning),
		ToastSuccess: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Success).Padding(0, 1),
		ToastInfo:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(theme.Info).Padding(0, 1),

		GroupHeader: headers,
		GroupButton: buttons,
	}
}

// ApplyButton is tinted with the colour of the selected class group.
func (it *Styles) ApplyButton(group registry.Group) lipgloss.Style {
	style, ok := it.GroupButton[group]
	if !ok {
		return it.ButtonActive
	}
	return style
}

func (it *Styles) Header(group registry.Group) lipgloss.Style {
	style, ok := it.GroupHeader[group]
	if !ok {
		return it.PanelTitle
	}
	return style
}
