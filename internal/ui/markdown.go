package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Makepad-fr/taskmaster/internal/model"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

var (
	rendererMu sync.Mutex
	renderers  = map[rendererKey]*glamour.TermRenderer{}
)

type rendererKey struct {
	width int
	ascii bool
}

// ItemMarkdown describes it as a markdown document.
func ItemMarkdown(it model.Item) string {
	var b strings.Builder
	status := "open"
	if it.Completed {
		status = "done"
	}
	fmt.Fprintf(&b, "# %s\n\n", it.Title)
	if it.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", it.Description)
	}
	fmt.Fprintf(&b, "- **Status:** %s\n", status)
	fmt.Fprintf(&b, "- **Source:** %s\n", it.Origin)
	if it.Reminder != nil {
		fmt.Fprintf(&b, "- **Reminder:** %s\n", FormatReminder(*it.Reminder, nil))
	}
	fmt.Fprintf(&b, "- **%s**\n", FormatAdded(it))
	return b.String()
}

// RenderMarkdown formats markdown for a terminal of the given width.
// On renderer errors the source text is returned unchanged.
func RenderMarkdown(width int, md string) string {
	if width < 1 {
		width = 1
	}
	r := markdownRenderer(width)
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownRenderer(width int) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	key := rendererKey{width: width, ascii: disableColor || current.Name == "mono"}
	if cached, ok := renderers[key]; ok {
		return cached
	}
	style := styles.DarkStyleConfig
	if key.ascii {
		style = styles.ASCIIStyleConfig
	}
	created, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[key] = created
	return created
}
