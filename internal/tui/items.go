package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/Makepad-fr/taskmaster/internal/model"
	"github.com/Makepad-fr/taskmaster/internal/ui"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"
)

// listItem adapts model.Item to list.Item.
type listItem struct {
	item model.Item
}

func (i listItem) Title() string { return i.item.Title }

func (i listItem) Description() string {
	meta := ui.FormatAdded(i.item)
	if r := i.item.Reminder; r != nil {
		meta = "⏰ " + ui.FormatReminder(*r, nil) + "  " + meta
	}
	return meta
}

func (i listItem) FilterValue() string { return i.item.Title + " " + i.item.Description }

func toListItems(items []model.Item) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, it := range items {
		out = append(out, listItem{item: it})
	}
	return out
}

// itemDelegate renders a title line and a muted metadata line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 2 }
func (d itemDelegate) Spacing() int                              { return 1 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	width := m.Width() - 4
	if width < 10 {
		width = 10
	}

	box := mutedStyle.Render(boxUnchecked)
	text := truncate.StringWithTail(it.item.Title, uint(width-2), "…")
	if it.item.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	meta := it.Description()
	if it.item.Reminder != nil {
		meta = pendingStyle.Render(truncate.StringWithTail(meta, uint(width), "…"))
	} else {
		meta = mutedStyle.Render(truncate.StringWithTail(meta, uint(width), "…"))
	}
	fmt.Fprintf(w, "%s%s %s\n%s%s", prefix, box, text, strings.Repeat(" ", 4), meta)
}
