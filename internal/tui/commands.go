package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/phenixzain/portfolio-blog/internal/blog"
)

// runList performs the list attempt off the update loop.
func runList(attempt *blog.ListAttempt) tea.Cmd {
	if attempt == nil {
		return nil
	}
	return func() tea.Msg {
		return listLoadedMsg{Result: attempt.Run()}
	}
}

// runDetail performs the detail attempt off the update loop.
func runDetail(attempt *blog.DetailAttempt) tea.Cmd {
	if attempt == nil {
		return nil
	}
	return func() tea.Msg {
		return detailLoadedMsg{Result: attempt.Run()}
	}
}
