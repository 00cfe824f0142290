package tui

import (
	"context"
	"time"

	"github.com/Makepad-fr/taskmaster/internal/model"
	"github.com/Makepad-fr/taskmaster/internal/todolist"
	tea "github.com/charmbracelet/bubbletea"
)

// Messages delivered when background work finishes.
type (
	tickMsg      time.Time
	populatedMsg struct{ err error }
	createdMsg   struct {
		res todolist.CreateResult
		err error
	}
	seededMsg struct {
		item model.Item
		err  error
	}
	deletedMsg struct {
		id  int
		err error
	}
	updatedMsg struct {
		item model.Item
		err  error
	}
)

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func populateCmd(ctx context.Context, svc *todolist.Service, limit int) tea.Cmd {
	return func() tea.Msg {
		return populatedMsg{err: svc.Populate(ctx, limit)}
	}
}

func createCmd(ctx context.Context, svc *todolist.Service, title, description string) tea.Cmd {
	return func() tea.Msg {
		res, err := svc.Create(ctx, title, description)
		return createdMsg{res: res, err: err}
	}
}

func seedCmd(ctx context.Context, svc *todolist.Service) tea.Cmd {
	return func() tea.Msg {
		it, err := svc.Seed(ctx)
		return seededMsg{item: it, err: err}
	}
}

func deleteCmd(ctx context.Context, svc *todolist.Service, id int) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: svc.Delete(ctx, id)}
	}
}

func updateCmd(ctx context.Context, svc *todolist.Service, id int, title, description string) tea.Cmd {
	return func() tea.Msg {
		it, err := svc.Update(ctx, id, title, description)
		return updatedMsg{item: it, err: err}
	}
}
