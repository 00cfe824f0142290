package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Makepad-fr/taskmaster/internal/model"
	"github.com/Makepad-fr/taskmaster/internal/reminder"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// Layouts used when showing dates to the user.
const (
	AddedLayout    = "Jan 2, 2006 15:04"
	ReminderDay    = "Mon"
	ReminderDate   = "Jan 2"
	minPanelWidth  = 20
	panelDecorCols = 4
)

// FormatReminder returns "Mon Jan 2 15:04" for r, or the raw fields when
// they do not parse.
func FormatReminder(r model.Reminder, loc *time.Location) string {
	due, err := r.Due(loc)
	if err != nil {
		return r.Date + " " + r.Time
	}
	return due.Format(ReminderDay) + " " + due.Format(ReminderDate) + " " + r.Time
}

// FormatAdded returns the "Added on" line for it.
func FormatAdded(it model.Item) string {
	return "Added on: " + it.CreatedAt.Local().Format(AddedLayout)
}

// ItemLines renders items as panel rows no wider than width.
func ItemLines(w io.Writer, items []model.Item, width int) []string {
	t := Current()
	inner := width - panelDecorCols
	if inner < minPanelWidth {
		inner = minPanelWidth
	}
	fit := func(s string) string { return truncate.StringWithTail(s, uint(inner), "…") }

	var lines []string
	done := 0
	for i, it := range items {
		if i > 0 {
			lines = append(lines, "")
		}
		box := t.BoxUnchecked
		if it.Completed {
			box = t.BoxChecked
			done++
		}
		head := fmt.Sprintf("%s #%d %s", box, it.ID, it.Title)
		lines = append(lines, Color(w, t.Title, fit(head)))
		if it.Description != "" {
			for _, ln := range strings.Split(wordwrap.String(it.Description, inner-2), "\n") {
				lines = append(lines, "  "+fit(ln))
			}
		}
		if it.Reminder != nil {
			lines = append(lines, Color(w, t.Pending, fit("  "+t.SymBell+" "+FormatReminder(*it.Reminder, nil))))
		}
		lines = append(lines, Color(w, t.Muted, fit("  "+FormatAdded(it))))
	}
	if len(items) == 0 {
		lines = append(lines, Color(w, t.Muted, "No todos yet."))
	} else {
		lines = append(lines, "", fmt.Sprintf("%d/%d done %s", done, len(items), ProgressBar(done, len(items), 10)))
	}
	return lines
}

// AlertLines renders a fired reminder.
func AlertLines(w io.Writer, a reminder.Alert) []string {
	t := Current()
	lines := []string{
		Color(w, t.Pending, t.SymBell+" Reminder: "+a.Title),
	}
	if a.Description != "" {
		lines = append(lines, a.Description)
	}
	lines = append(lines, Color(w, t.Muted, "Due "+a.Due.Format(ReminderDay+" "+ReminderDate+" 15:04")))
	return lines
}
