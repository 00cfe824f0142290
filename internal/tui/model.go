// Package tui is the interactive terminal front end: a login screen followed
// by the todo list, with forms for adding, editing and scheduling reminders.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Makepad-fr/taskmaster/internal/model"
	"github.com/Makepad-fr/taskmaster/internal/reminder"
	"github.com/Makepad-fr/taskmaster/internal/session"
	"github.com/Makepad-fr/taskmaster/internal/todolist"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type screen int

const (
	screenLogin screen = iota
	screenList
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeReminder
	modeDetail
)

// Options wires the program to its collaborators.
type Options struct {
	Service   *todolist.Service
	Scheduler *reminder.Scheduler
	Logger    *log.Logger
	// Email pre-fills the login form.
	Email string
	// SessionID becomes the login session's id. Empty generates one.
	SessionID string
	// InitialLimit is how many todos to load after login. 0 starts empty.
	InitialLimit int
	Now          func() time.Time
	// Detail renders the markdown shown for a selected item.
	Detail func(width int, it model.Item) string
}

// Model is the Bubble Tea model for the whole program.
type Model struct {
	ctx          context.Context
	svc          *todolist.Service
	sched        *reminder.Scheduler
	log          *log.Logger
	now          func() time.Time
	detailFn     func(int, model.Item) string
	initialLimit int
	sessionID    string

	screen  screen
	mode    mode
	session *session.Session

	email     textinput.Model
	password  textinput.Model
	loginErr  string
	loginNote string

	list list.Model

	// add and edit share the title/description pair; reminders use date/clock
	title   textinput.Model
	desc    textinput.Model
	date    textinput.Model
	clock   textinput.Model
	focus   int
	target  int
	busy    bool
	formErr string
	detail  string

	status    string
	statusErr bool
	version   uint64

	width, height int
}

// New builds the initial model, showing the login screen.
func New(ctx context.Context, opts Options) Model {
	m := Model{
		ctx:          ctx,
		svc:          opts.Service,
		sched:        opts.Scheduler,
		log:          opts.Logger,
		now:          opts.Now,
		detailFn:     opts.Detail,
		initialLimit: opts.InitialLimit,
		sessionID:    opts.SessionID,
		width:        80,
		height:       24,
	}
	if m.log == nil {
		m.log = log.New(io.Discard)
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.detailFn == nil {
		m.detailFn = func(_ int, it model.Item) string { return it.Title + "\n\n" + it.Description }
	}

	m.email = newInput("you@example.com", 254)
	m.email.SetValue(opts.Email)
	m.password = newInput("password", 128)
	m.password.EchoMode = textinput.EchoPassword
	m.password.EchoCharacter = '•'
	if opts.Email != "" {
		m.password.Focus()
	} else {
		m.email.Focus()
	}

	m.title = newInput("Title", 200)
	m.desc = newInput("Description", 500)
	m.date = newInput(model.DateLayout, 10)
	m.clock = newInput("HH:MM", 5)

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	l.KeyMap.Quit.SetEnabled(false)
	l.AdditionalShortHelpKeys = keys.listHelp
	l.AdditionalFullHelpKeys = keys.listHelp
	m.list = l
	m.refresh()
	m.layout()
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return ti
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(m.sched.Interval()))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	nm := next.(Model)
	nm.layout()
	return nm, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tickMsg:
		m.sched.Tick(time.Time(msg))
		if m.svc.Store().Version() != m.version {
			return m, tea.Batch(m.refresh(), tickCmd(m.sched.Interval()))
		}
		return m, tickCmd(m.sched.Interval())

	case populatedMsg:
		if msg.err != nil {
			m.setErr(fmt.Errorf("could not load todos: %w", msg.err))
		}
		return m, m.refresh()

	case createdMsg:
		return m.handleCreated(msg)

	case seededMsg:
		if msg.err != nil {
			m.setErr(msg.err)
			return m, nil
		}
		m.setStatus("Added a sample todo: " + msg.item.Title)
		return m, m.refresh()

	case deletedMsg:
		if msg.err != nil {
			m.setErr(msg.err)
			return m, m.refresh()
		}
		m.setStatus(fmt.Sprintf("Deleted #%d", msg.id))
		return m, m.refresh()

	case updatedMsg:
		return m.handleUpdated(msg)

	case tea.KeyMsg:
		if key.Matches(msg, keys.ForceEnd) {
			return m, tea.Quit
		}
	}

	if m.screen == screenLogin {
		return m.updateLogin(msg)
	}
	if _, pending := m.sched.Queue().Peek(); pending {
		if k, ok := msg.(tea.KeyMsg); ok {
			if key.Matches(k, keys.Dismiss) {
				m.sched.Queue().Pop()
			}
			return m, nil
		}
	}

	switch m.mode {
	case modeAdd, modeEdit:
		return m.updateItemForm(msg)
	case modeReminder:
		return m.updateReminderForm(msg)
	case modeDetail:
		if k, ok := msg.(tea.KeyMsg); ok && (key.Matches(k, keys.Back) || key.Matches(k, keys.Open) || key.Matches(k, keys.Quit)) {
			m.mode = modeBrowse
			m.detail = ""
		}
		return m, nil
	}
	return m.updateBrowse(msg)
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, keys.Back):
		return m, tea.Quit
	case key.Matches(k, keys.Forgot):
		m.loginNote = session.ForgotPasswordMessage
		return m, nil
	case key.Matches(k, keys.Next):
		if m.email.Focused() {
			m.email.Blur()
			m.password.Focus()
		} else {
			m.password.Blur()
			m.email.Focus()
		}
		return m, nil
	case key.Matches(k, keys.Submit):
		s, err := session.LoginWithID(m.sessionID, m.email.Value(), m.password.Value())
		if err != nil {
			m.loginErr = err.Error()
			return m, nil
		}
		m.session = s
		m.screen = screenList
		m.loginErr, m.loginNote = "", ""
		m.password.SetValue("")
		m.email.Blur()
		m.password.Blur()
		m.log.Info("logged in", "user", s.Username())
		if m.initialLimit > 0 {
			m.setStatus("Loading todos…")
			return m, populateCmd(m.ctx, m.svc, m.initialLimit)
		}
		return m, m.refresh()
	}

	var cmd tea.Cmd
	if m.email.Focused() {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	sel, hasSel := m.selected()
	switch {
	case key.Matches(k, keys.Quit):
		return m, tea.Quit
	case key.Matches(k, keys.Add):
		m.openItemForm(modeAdd, "", "")
		return m, textinput.Blink
	case key.Matches(k, keys.Seed):
		m.setStatus("Fetching a sample todo…")
		return m, seedCmd(m.ctx, m.svc)
	}
	if !hasSel {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(k, keys.Edit):
		sess, err := m.svc.BeginEdit(sel.ID)
		if err != nil {
			m.setErr(err)
			return m, nil
		}
		m.openItemForm(modeEdit, sess.Title, sess.Description)
		m.target = sess.ID
		return m, textinput.Blink
	case key.Matches(k, keys.Delete):
		m.setStatus(fmt.Sprintf("Deleting #%d…", sel.ID))
		return m, deleteCmd(m.ctx, m.svc, sel.ID)
	case key.Matches(k, keys.Remind):
		m.openReminderForm(sel)
		return m, textinput.Blink
	case key.Matches(k, keys.Toggle):
		if err := m.svc.ToggleCompleted(sel.ID); err != nil {
			m.setErr(err)
		}
		return m, m.refresh()
	case key.Matches(k, keys.Open):
		m.mode = modeDetail
		m.detail = m.detailFn(m.width-6, sel)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateItemForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Back):
			if m.mode == modeEdit {
				m.svc.CancelEdit()
			}
			m.closeForm()
			return m, nil
		case key.Matches(k, keys.Next):
			m.focus = 1 - m.focus
			m.focusInputs(&m.title, &m.desc)
			return m, nil
		case key.Matches(k, keys.Submit):
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.formErr = ""
			if m.mode == modeEdit {
				return m, updateCmd(m.ctx, m.svc, m.target, m.title.Value(), m.desc.Value())
			}
			return m, createCmd(m.ctx, m.svc, m.title.Value(), m.desc.Value())
		}
	}
	var cmd tea.Cmd
	if m.focus == 0 {
		m.title, cmd = m.title.Update(msg)
	} else {
		m.desc, cmd = m.desc.Update(msg)
	}
	return m, cmd
}

func (m Model) updateReminderForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Back):
			m.closeForm()
			return m, nil
		case key.Matches(k, keys.Next):
			m.focus = 1 - m.focus
			m.focusInputs(&m.date, &m.clock)
			return m, nil
		case key.Matches(k, keys.Submit):
			if err := m.svc.AttachReminder(m.target, m.date.Value(), m.clock.Value()); err != nil {
				m.formErr = reminderError(err)
				return m, nil
			}
			m.setStatus(fmt.Sprintf("Reminder set for %s %s", strings.TrimSpace(m.date.Value()), strings.TrimSpace(m.clock.Value())))
			m.closeForm()
			return m, m.refresh()
		}
	}
	var cmd tea.Cmd
	if m.focus == 0 {
		m.date, cmd = m.date.Update(msg)
	} else {
		m.clock, cmd = m.clock.Update(msg)
	}
	return m, cmd
}

func (m Model) handleCreated(msg createdMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.formErr = msg.err.Error()
		return m, nil
	}
	m.closeForm()
	cmd := m.refresh()
	if msg.res.Seeded {
		m.setStatus("Added a sample todo: " + msg.res.Item.Title)
		return m, cmd
	}
	m.setStatus("Added " + msg.res.Item.Title)
	m.openReminderForm(msg.res.Item)
	return m, tea.Batch(cmd, textinput.Blink)
}

func (m Model) handleUpdated(msg updatedMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		if errors.Is(msg.err, todolist.ErrGateway) && m.mode == modeEdit {
			m.formErr = msg.err.Error()
			return m, nil
		}
		m.closeForm()
		m.setErr(msg.err)
		return m, m.refresh()
	}
	m.closeForm()
	m.setStatus("Saved " + msg.item.Title)
	return m, m.refresh()
}

func (m *Model) openItemForm(md mode, title, desc string) {
	m.mode = md
	m.focus = 0
	m.formErr = ""
	m.busy = false
	m.title.SetValue(title)
	m.title.CursorEnd()
	m.desc.SetValue(desc)
	m.desc.CursorEnd()
	m.focusInputs(&m.title, &m.desc)
}

func (m *Model) openReminderForm(it model.Item) {
	m.mode = modeReminder
	m.target = it.ID
	m.focus = 1
	m.formErr = ""
	date, clock := m.now().Format(model.DateLayout), ""
	if it.Reminder != nil {
		date, clock = it.Reminder.Date, it.Reminder.Time
	}
	m.date.SetValue(date)
	m.clock.SetValue(clock)
	m.focusInputs(&m.date, &m.clock)
}

func (m *Model) closeForm() {
	m.mode = modeBrowse
	m.busy = false
	m.formErr = ""
	m.target = 0
	for _, ti := range []*textinput.Model{&m.title, &m.desc, &m.date, &m.clock} {
		ti.SetValue("")
		ti.Blur()
	}
}

func (m *Model) focusInputs(first, second *textinput.Model) {
	if m.focus == 0 {
		first.Focus()
		second.Blur()
	} else {
		first.Blur()
		second.Focus()
	}
}

func (m *Model) selected() (model.Item, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return it.item, true
}

// refresh rebuilds the list rows from the store, keeping the selection.
func (m *Model) refresh() tea.Cmd {
	sel, hadSel := m.selected()
	m.version = m.svc.Store().Version()
	items := m.svc.Store().Get()
	cmd := m.list.SetItems(toListItems(items))
	if hadSel && m.list.FilterState() == list.Unfiltered {
		for i, it := range items {
			if it.ID == sel.ID {
				m.list.Select(i)
				break
			}
		}
	}
	m.list.Title = listTitle(items)
	return cmd
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setErr(err error) {
	m.status, m.statusErr = err.Error(), true
	m.log.Warn("operation failed", "err", err)
}

func reminderError(err error) string {
	if errors.Is(err, model.ErrEmptyReminder) {
		return "Pick both a date and a time"
	}
	return err.Error()
}

func listTitle(items []model.Item) string {
	done, pending, reminders := 0, 0, 0
	for _, it := range items {
		if it.Completed {
			done++
		} else {
			pending++
		}
		if it.Reminder != nil {
			reminders++
		}
	}
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), pending,
		pendingStyle.Render("⏰"), reminders,
		accentStyle.Render("Total"), len(items),
	)
}
