package interactive

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type ToastType int

const (
	ToastInfo ToastType = iota
	ToastSuccess
)

type Toast struct {
	ID      int64
	Type    ToastType
	Message string
}

// toastTimeoutMsg is sent when a toast expires
type toastTimeoutMsg struct {
	ID int64
}

const toastDuration = 3 * time.Second

func expireToast(id int64) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastTimeoutMsg{ID: id}
	})
}
