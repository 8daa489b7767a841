package interactive

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshyorko/previewctl/common"
)

// Run owns the terminal until the user quits. Log output goes to the
// activity pane meanwhile.
func Run(config Config) error {
	shell := NewShell(config)
	common.SetLogInterceptor(shell.activity.Intercept)
	defer common.ClearLogInterceptor()

	program := tea.NewProgram(shell, tea.WithAltScreen())
	shell.notify = program.Send
	_, err := program.Run()
	return err
}
