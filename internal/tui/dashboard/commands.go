package dashboard

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	statusTimeout = 5 * time.Second
	errorTimeout  = 10 * time.Second
)

// startCmd defers the initial load to the first Update.
func startCmd() tea.Cmd {
	return func() tea.Msg {
		return startMsg{}
	}
}

// clearStatusCmd hides status line seq after statusTimeout.
func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}

// clearErrorCmd hides error banner seq after errorTimeout.
func clearErrorCmd(seq int) tea.Cmd {
	return tea.Tick(errorTimeout, func(time.Time) tea.Msg {
		return ClearErrorMsg{Seq: seq}
	})
}
