package interactive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joshyorko/previewctl/common"
	"github.com/joshyorko/previewctl/registry"
	"github.com/joshyorko/previewctl/rpc"
	"github.com/joshyorko/previewctl/toggling"
)

type section int

const (
	sectionClasses section = iota
	sectionParameters
	sectionActions
	sectionCount
)

var (
	copyToClipboard = clipboard.WriteAll
)

// Warning is the modal shown when an apply fails.
type Warning struct {
	Title   string
	Message string
}

func warningFor(err error, report toggling.Report) *Warning {
	title, message := rpc.Describe(err)
	if len(report.Failures) > 1 {
		message = fmt.Sprintf("%s (and %d more failures)", message, len(report.Failures)-1)
	}
	return &Warning{Title: title, Message: message}
}

type appliedMsg struct {
	report toggling.Report
	err    error
}

type phaseMsg toggling.Phase

type wroteMsg toggling.Write

// Config carries what the shell needs from the command line.
type Config struct {
	Gateway   toggling.Gateway
	Endpoint  string
	KeepGoing bool
}

type Shell struct {
	config   Config
	styles   *Styles
	classes  []registry.Class
	checked  map[string]map[string]bool
	class    int
	action   toggling.Action
	focus    section
	cursor   int
	busy     bool
	phase    toggling.Phase
	written  int
	warning  *Warning
	warned   int
	toast    *Toast
	toasts   int64
	last     *toggling.Report
	activity *Activity
	spinner  spinner.Model
	help     help.Model
	showHelp bool
	notify   func(tea.Msg)
	width    int
	height   int
	quitting bool
}

// NewShell returns a shell with every control at its default: first class,
// all checkboxes checked, action On.
func NewShell(config Config) *Shell {
	styles := NewStyles()

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    time.Second / 10,
	}
	s.Style = styles.Spinner

	classes := registry.Classes()
	checked := make(map[string]map[string]bool)
	for _, class := range classes {
		checked[class.Name] = make(map[string]bool)
		for _, parameter := range class.Parameters {
			checked[class.Name][parameter.Name] = true
		}
	}

	return &Shell{
		config:   config,
		styles:   styles,
		classes:  classes,
		checked:  checked,
		action:   toggling.On,
		focus:    sectionClasses,
		activity: NewActivity(200),
		spinner:  s,
		help:     help.New(),
		width:    100,
		height:   30,
	}
}

func (it *Shell) selected() registry.Class {
	return it.classes[it.class]
}

// Request captures the controls as they are right now.
func (it *Shell) Request() toggling.Request {
	class := it.selected()
	checked := make(map[string]bool, len(it.checked[class.Name]))
	for name, state := range it.checked[class.Name] {
		checked[name] = state
	}
	return toggling.Request{Class: class.Name, Action: it.action, Checked: checked}
}

func (it *Shell) Warning() *Warning {
	return it.warning
}

func (it *Shell) Init() tea.Cmd {
	return nil
}

func (it *Shell) sectionSize(which section) int {
	switch which {
	case sectionClasses:
		return len(it.classes)
	case sectionParameters:
		if it.selected().MultiParameter() {
			return len(it.selected().Parameters)
		}
		return 0
	case sectionActions:
		return len(toggling.Actions())
	}
	return 0
}

func (it *Shell) moveFocus(step int) {
	for i := section(0); i < sectionCount; i++ {
		it.focus = section((int(it.focus) + step + int(sectionCount)) % int(sectionCount))
		if it.sectionSize(it.focus) > 0 {
			break
		}
	}
	it.cursor = 0
	switch it.focus {
	case sectionClasses:
		it.cursor = it.class
	case sectionActions:
		it.cursor = int(it.action)
	}
}

func (it *Shell) moveCursor(step int) {
	size := it.sectionSize(it.focus)
	if size == 0 {
		return
	}
	it.cursor = (it.cursor + step + size) % size
	switch it.focus {
	case sectionClasses:
		it.class = it.cursor
	case sectionActions:
		it.action = toggling.Action(it.cursor)
	}
}

func (it *Shell) toggleCheck() {
	if it.focus != sectionParameters || it.sectionSize(sectionParameters) == 0 {
		return
	}
	class := it.selected()
	name := class.Parameters[it.cursor].Name
	it.checked[class.Name][name] = !it.checked[class.Name][name]
}

func (it *Shell) apply() tea.Cmd {
	request := it.Request()
	gateway := it.config.Gateway
	notify := it.notify
	options := toggling.Options{
		KeepGoing: it.config.KeepGoing,
		OnPhase: func(phase toggling.Phase) {
			if notify != nil {
				notify(phaseMsg(phase))
			}
		},
		OnWrite: func(write toggling.Write) {
			if notify != nil {
				notify(wroteMsg(write))
			}
		},
	}
	it.busy = true
	it.written = 0
	it.phase = toggling.Fetching
	common.Log("Applying %s to %s [%s].", request.Action.Label(), strings.ToLower(it.selected().Label), request.Fingerprint())
	return tea.Batch(it.spinner.Tick, func() tea.Msg {
		report, err := toggling.Apply(context.Background(), gateway, request, options)
		return appliedMsg{report: report, err: err}
	})
}

func (it *Shell) showToast(kind ToastType, message string) tea.Cmd {
	it.toasts++
	it.toast = &Toast{ID: it.toasts, Type: kind, Message: message}
	return expireToast(it.toasts)
}

func (it *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		it.width = msg.Width
		it.height = msg.Height
		it.help.Width = msg.Width
		return it, nil

	case spinner.TickMsg:
		if !it.busy {
			return it, nil
		}
		var cmd tea.Cmd
		it.spinner, cmd = it.spinner.Update(msg)
		return it, cmd

	case phaseMsg:
		it.phase = toggling.Phase(msg)
		return it, nil

	case wroteMsg:
		it.written++
		return it, nil

	case toastTimeoutMsg:
		if it.toast != nil && it.toast.ID == msg.ID {
			it.toast = nil
		}
		return it, nil

	case appliedMsg:
		it.busy = false
		it.phase = toggling.Idle
		report := msg.report
		it.last = &report
		if msg.err != nil {
			it.warning = warningFor(msg.err, report)
			it.warned++
			common.Log("%s: %s", it.warning.Title, it.warning.Message)
			return it, nil
		}
		common.Log("%s in %ss.", report.Summary(), report.Elapsed)
		return it, it.showToast(ToastSuccess, report.Summary())

	case tea.KeyMsg:
		return it.handleKey(msg)
	}
	return it, nil
}

func (it *Shell) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		it.quitting = true
		return it, tea.Quit
	}
	if it.busy {
		return it, nil
	}
	if it.warning != nil {
		switch {
		case key.Matches(msg, keys.Dismiss):
			it.warning = nil
		case key.Matches(msg, keys.Copy):
			err := copyToClipboard(it.warning.Title + ": " + it.warning.Message)
			if err != nil {
				common.Uncritical("clipboard", err)
				return it, nil
			}
			return it, it.showToast(ToastInfo, "Warning copied to clipboard.")
		}
		return it, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		it.quitting = true
		return it, tea.Quit
	case key.Matches(msg, keys.Help):
		it.showHelp = !it.showHelp
		it.help.ShowAll = it.showHelp
	case key.Matches(msg, keys.Up):
		it.moveCursor(-1)
	case key.Matches(msg, keys.Down):
		it.moveCursor(1)
	case key.Matches(msg, keys.Next):
		it.moveFocus(1)
	case key.Matches(msg, keys.Previous):
		it.moveFocus(-1)
	case key.Matches(msg, keys.Check):
		it.toggleCheck()
	case key.Matches(msg, keys.Apply):
		return it, it.apply()
	}
	return it, nil
}

func (it *Shell) View() string {
	if it.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(it.renderHeader())
	b.WriteString("\n\n")
	if it.warning != nil {
		b.WriteString(it.renderWarning())
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			it.renderPanel(sectionClasses, "Node class", it.classLines()),
			" ",
			it.renderPanel(sectionParameters, "Parameters", it.parameterLines()),
			" ",
			it.renderPanel(sectionActions, "Action", it.actionLines()),
		))
	}
	b.WriteString("\n\n")
	b.WriteString(it.renderStatus())
	b.WriteString("\n")
	b.WriteString(it.renderActivity(6))
	b.WriteString("\n")
	b.WriteString(it.help.View(keys))
	return b.String()
}

func (it *Shell) renderHeader() string {
	title := it.styles.Title.Render(common.Product)
	version := it.styles.Subtle.Render(" " + common.Version + " ")
	endpoint := it.styles.Text.Render(it.config.Endpoint)
	return title + version + it.styles.Divider.Render("|") + " " + endpoint
}

func (it *Shell) line(at int, focused bool, marker, label string) string {
	pointer := "  "
	style := it.styles.Text
	if focused && at == it.cursor {
		pointer = it.styles.Cursor.Render("> ")
		style = it.styles.Selected
	}
	return pointer + style.Render(marker+" "+label)
}

func radio(on bool) string {
	if on {
		return "(•)"
	}
	return "( )"
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (it *Shell) classLines() []string {
	focused := it.focus == sectionClasses
	lines := make([]string, 0, len(it.classes)+3)
	for at, class := range it.classes {
		if at == 0 || it.classes[at-1].Group != class.Group {
			lines = append(lines, it.styles.Header(class.Group).Render(class.Group.String()))
		}
		lines = append(lines, it.line(at, focused, radio(at == it.class), class.Label))
	}
	return lines
}

func (it *Shell) parameterLines() []string {
	class := it.selected()
	if !class.MultiParameter() {
		return []string{it.styles.Subtle.Render("single parameter:"), it.styles.Subtle.Render(class.Parameters[0].Name)}
	}
	focused := it.focus == sectionParameters
	lines := make([]string, 0, len(class.Parameters))
	for at, parameter := range class.Parameters {
		lines = append(lines, it.line(at, focused, checkbox(it.checked[class.Name][parameter.Name]), parameter.Label))
	}
	return lines
}

func (it *Shell) actionLines() []string {
	focused := it.focus == sectionActions
	lines := []string{}
	for at, action := range toggling.Actions() {
		lines = append(lines, it.line(at, focused, radio(action == it.action), action.Label()))
	}
	return lines
}

func (it *Shell) renderPanel(which section, title string, lines []string) string {
	style := it.styles.Panel
	if it.focus == which {
		style = it.styles.PanelFocused
	}
	content := it.styles.PanelTitle.Render(title) + "\n" + strings.Join(lines, "\n")
	return style.Render(content)
}

func (it *Shell) renderWarning() string {
	var b strings.Builder
	b.WriteString(it.styles.ModalTitle.Render("⚠ " + it.warning.Title))
	b.WriteString("\n\n")
	b.WriteString(it.styles.Text.Render(it.warning.Message))
	b.WriteString("\n\n")
	b.WriteString(it.styles.Subtle.Render("esc/enter dismiss · c copy"))
	return it.styles.Modal.Render(b.String())
}

func (it *Shell) renderStatus() string {
	if it.busy {
		state := "Fetching nodes"
		if it.phase == toggling.Applying {
			state = fmt.Sprintf("Applying (%d writes)", it.written)
		}
		return it.spinner.View() + " " + it.styles.Warning.Render(state)
	}
	button := it.styles.ApplyButton(it.selected().Group).Render("Apply")
	if it.toast != nil {
		style := it.styles.ToastInfo
		if it.toast.Type == ToastSuccess {
			style = it.styles.ToastSuccess
		}
		return button + "  " + style.Render(it.toast.Message)
	}
	if it.last != nil {
		return button + "  " + it.styles.Subtle.Render("last: "+it.last.Summary())
	}
	return button
}

func (it *Shell) renderActivity(count int) string {
	lines := it.activity.Recent(count)
	divider := it.styles.Divider.Render(strings.Repeat("─", max(it.width-2, 10)))
	if len(lines) == 0 {
		return divider + "\n" + it.styles.Subtle.Render("No activity yet...")
	}
	return divider + "\n" + it.styles.Subtle.Render(strings.Join(lines, "\n"))
}
