// Package ui holds the transient notification line shown under the controller view.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"
	"github.com/playshell/playshell/style"
)

// NotificationLifetime is how long a notification stays visible.
const NotificationLifetime = 3 * time.Second

// Notification is a message that replaces the current notification.
type Notification string

// ClearNotificationMsg hides the notification it was scheduled for.
type ClearNotificationMsg struct {
	id int
}

// Notify returns a command that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return Notification(text)
	}
}

// Model is the notification line.
type Model struct {
	notification string
	id           int
}

// Update shows new notifications and hides expired ones. A newer
// notification is not hidden by the timer of an older one.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case Notification:
		m.notification = string(msg)
		m.id++
		id := m.id
		return tea.Tick(NotificationLifetime, func(time.Time) tea.Msg {
			return ClearNotificationMsg{id: id}
		})
	case ClearNotificationMsg:
		if msg.id == m.id {
			m.notification = ""
		}
	}

	return nil
}

// Text returns the visible notification, or "".
func (m *Model) Text() string {
	return m.notification
}

// View renders the notification at most width cells wide.
func (m *Model) View(width int) string {
	if m.notification == "" {
		return ""
	}

	text := m.notification
	if width > 0 {
		text = truncate.StringWithTail(text, uint(width), "…")
	}

	return style.Fg(style.FaintColor)(text)
}
