package tui

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/taskmaster/internal/reminder"
	"github.com/Makepad-fr/taskmaster/internal/session"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.screen == screenLogin {
		return m.loginView()
	}
	if a, ok := m.sched.Queue().Peek(); ok {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, alertView(a, m.sched.Queue().Len()))
	}
	if m.mode == modeDetail {
		return frameStyle.Render(m.detail + "\n\n" + helpStyle.Render("esc back"))
	}

	header := m.headerView()
	form := m.formView()
	status := m.statusView()

	parts := []string{header, m.list.View()}
	if form != "" {
		parts = append(parts, form)
	}
	if status != "" {
		parts = append(parts, status)
	}
	return frameStyle.Render(strings.Join(parts, "\n"))
}

// layout sizes the list to the space left by the header, form and status.
func (m *Model) layout() {
	h := m.height - lipgloss.Height(m.headerView()) - 3
	if form := m.formView(); form != "" {
		h -= lipgloss.Height(form)
	}
	if status := m.statusView(); status != "" {
		h -= lipgloss.Height(status)
	}
	if h < 5 {
		h = 5
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) loginView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("TaskMaster") + "\n")
	b.WriteString(mutedStyle.Render("Sign in to your account") + "\n\n")
	b.WriteString("Email\n" + m.email.View() + "\n\n")
	b.WriteString("Password\n" + m.password.View() + "\n")
	if m.loginErr != "" {
		b.WriteString("\n" + errorStyle.Render(m.loginErr) + "\n")
	}
	if m.loginNote != "" {
		b.WriteString("\n" + accentStyle.Render(m.loginNote) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("tab next field • enter sign in • ctrl+f forgot password • esc quit"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frameStyle.Render(b.String()))
}

func (m Model) headerView() string {
	if m.session == nil {
		return ""
	}
	avatar := avatarStyle.Render(m.session.Initial())
	greeting := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.session.Username()),
		mutedStyle.Render(session.Greeting),
	)
	return lipgloss.JoinHorizontal(lipgloss.Center, avatar, " ", greeting)
}

func (m Model) formView() string {
	var title, first, second string
	switch m.mode {
	case modeAdd:
		title = "Add new todo"
		first, second = "Title", "Description"
	case modeEdit:
		title = "Edit todo"
		first, second = "Title", "Description"
	case modeReminder:
		title = "Set a reminder"
		first, second = "Date", "Time"
	default:
		return ""
	}
	if m.busy {
		title += mutedStyle.Render("  saving…")
	}

	firstIn, secondIn := m.title.View(), m.desc.View()
	if m.mode == modeReminder {
		firstIn, secondIn = m.date.View(), m.clock.View()
	}
	lines := []string{
		titleStyle.Render(title),
		first + "\n" + firstIn,
		second + "\n" + secondIn,
	}
	if m.formErr != "" {
		lines = append(lines, errorStyle.Render(m.formErr))
	}
	hint := "tab next field • enter save • esc cancel"
	if m.mode == modeReminder {
		hint = "tab next field • enter set • esc skip"
	}
	lines = append(lines, helpStyle.Render(hint))
	return frameStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) statusView() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render("✖ " + m.status)
	}
	return successStyle.Render(m.status)
}

func alertView(a reminder.Alert, queued int) string {
	lines := []string{
		pendingStyle.Render("⏰ Reminder"),
		"",
		titleStyle.Render(a.Title),
	}
	if a.Description != "" {
		lines = append(lines, a.Description)
	}
	lines = append(lines, "", mutedStyle.Render("Due "+a.Due.Format("Mon Jan 2 15:04")))
	if queued > 1 {
		lines = append(lines, mutedStyle.Render(pluralMore(queued-1)))
	}
	lines = append(lines, "", helpStyle.Render("enter dismiss"))
	return modalStyle.Render(strings.Join(lines, "\n"))
}

func pluralMore(n int) string {
	if n == 1 {
		return "1 more reminder waiting"
	}
	return fmt.Sprintf("%d more reminders waiting", n)
}
