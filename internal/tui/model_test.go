package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Makepad-fr/taskmaster/internal/model"
	"github.com/Makepad-fr/taskmaster/internal/reminder"
	"github.com/Makepad-fr/taskmaster/internal/session"
	"github.com/Makepad-fr/taskmaster/internal/store"
	"github.com/Makepad-fr/taskmaster/internal/todolist"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"
)

var now = time.Date(2026, time.October, 14, 8, 0, 0, 0, time.UTC)

type fakeGateway struct {
	page   []model.Item
	updErr error
}

func (g *fakeGateway) List(_ context.Context, limit int) ([]model.Item, error) {
	if limit > len(g.page) {
		limit = len(g.page)
	}
	return append([]model.Item(nil), g.page[:limit]...), nil
}

func (g *fakeGateway) Delete(context.Context, int) error { return nil }

func (g *fakeGateway) Update(_ context.Context, it model.Item) (model.Item, error) {
	if g.updErr != nil {
		return model.Item{}, g.updErr
	}
	return it, nil
}

func samplePage() []model.Item {
	return []model.Item{
		{ID: 1, UserID: 1, Title: "delectus aut autem"},
		{ID: 2, UserID: 1, Title: "quis ut nam facilis"},
		{ID: 3, UserID: 1, Title: "fugiat veniam minus"},
	}
}

type harness struct {
	m     Model
	store *store.Store
	sched *reminder.Scheduler
}

func newHarness(t *testing.T, gw *fakeGateway, limit int) *harness {
	t.Helper()
	return newHarnessWith(t, gw, Options{InitialLimit: limit})
}

func newHarnessWith(t *testing.T, gw *fakeGateway, opts Options) *harness {
	t.Helper()
	st := store.New()
	tick := now
	svc := todolist.New(st, gw, todolist.Options{
		SeedOnEmpty: true,
		Now: func() time.Time {
			tick = tick.Add(time.Second)
			return tick
		},
		Intn: func(int) int { return 0 },
	})
	sched := reminder.New(st, nil, reminder.Options{Location: time.UTC})
	opts.Service = svc
	opts.Scheduler = sched
	opts.Now = func() time.Time { return now }
	m := New(context.Background(), opts)
	return &harness{m: m, store: st, sched: sched}
}

// send delivers msg and runs any single command it returns that reports
// back a domain message, so async operations complete inline.
func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) sendAndRun(msg tea.Msg) {
	cmd := h.send(msg)
	if cmd == nil {
		return
	}
	switch out := cmd().(type) {
	case populatedMsg, createdMsg, seededMsg, deletedMsg, updatedMsg:
		h.send(out)
	}
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	h.m.email.SetValue("grace.hopper@example.com")
	h.m.password.SetValue("cobol")
	h.sendAndRun(keyMsg(tea.KeyEnter))
	if h.m.screen != screenList {
		t.Fatalf("still on login screen: %q", h.m.loginErr)
	}
}

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestLogin_RequiresBothFields(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, &fakeGateway{}, 0)

	h.send(keyMsg(tea.KeyEnter))
	is.Equal(h.m.screen, screenLogin)
	is.Equal(h.m.loginErr, "Please enter both email and password")
	is.True(strings.Contains(h.m.View(), "Please enter both email and password"))

	h.send(keyMsg(tea.KeyCtrlF))
	is.Equal(h.m.loginNote, session.ForgotPasswordMessage)
}

func TestLogin_TypingAndTab(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, &fakeGateway{}, 0)
	h.send(runes("ada@x.io"))
	h.send(keyMsg(tea.KeyTab))
	h.send(runes("pw"))
	is.Equal(h.m.email.Value(), "ada@x.io")
	is.Equal(h.m.password.Value(), "pw")

	h.sendAndRun(keyMsg(tea.KeyEnter))
	is.Equal(h.m.screen, screenList)
	is.Equal(h.m.session.Username(), "ada")
	is.Equal(h.m.password.Value(), "") // not kept around
	is.True(strings.Contains(h.m.View(), session.Greeting))
}

func TestLogin_UsesGivenSessionID(t *testing.T) {
	is := is.New(t)
	h := newHarnessWith(t, &fakeGateway{}, Options{SessionID: "run-42"})
	h.login(t)
	is.Equal(h.m.session.ID, "run-42")
}

func TestAdd_WhileLoadingSurvivesPopulate(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, &fakeGateway{page: samplePage()}, 2)
	h.m.email.SetValue("grace.hopper@example.com")
	h.m.password.SetValue("cobol")
	populate := h.send(keyMsg(tea.KeyEnter))
	is.Equal(h.m.screen, screenList)

	// the user adds a todo before the initial load completes
	h.send(runes("a"))
	h.m.title.SetValue("Buy milk")
	h.m.desc.SetValue("2 liters")
	h.sendAndRun(keyMsg(tea.KeyEnter))
	is.Equal(h.store.Len(), 1)

	h.send(populate())
	is.Equal(h.store.Len(), 3)
	is.Equal(len(h.m.list.Items()), 3)
	found := false
	for _, it := range h.store.Get() {
		if it.Title == "Buy milk" {
			found = true
		}
	}
	is.True(found)
}

func TestLogin_PopulatesStore(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, &fakeGateway{page: samplePage()}, 2)
	h.login(t)
	is.Equal(h.store.Len(), 2)
	is.Equal(len(h.m.list.Items()), 2)
}

func TestAdd_OpensReminderFormThenFires(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, &fakeGateway{}, 0)
	h.login(t)

	h.send(runes("a"))
	is.Equal(h.m.mode, modeAdd)
	h.m.title.SetValue("Stretch")
	h.m.desc.SetValue("five minutes")
	h.sendAndRun(keyMsg(tea.KeyEnter))

	is.Equal(h.store.Len(), 1)
	is.Equal(h.m.mode, modeReminder)
	created := h.store.Get()[0]
	is.Equal(h.m.target, created.ID)
	is.Equal(h.m.date.Value(), "2026-10-14")

	h.m.clock.SetValue("09:00")
	h.send(keyMsg(tea.KeyEnter))
	is.Equal(h.m.mode, modeBrowse)
	got, _ := h.store.Find(created.ID)
	is.Equal(*got.Reminder, model.Reminder{Date: "2026-10-14", Time: "09:00"})

	h.send(tickMsg(now.Add(30 * time.Minute)))
	is.Equal(h.sched.Queue().Len(), 0)

	h.send(tickMsg(now.Add(time.Hour)))
	is.Equal(h.sched.Queue().Len(), 1)
	is.True(strings.Contains(h.m.View(), "Stretch"))
	got, _ = h.store.Find(created.ID)
	is.True(!got.HasReminder())

	h.send(runes("d")) // keys other than dismiss are swallowed by the alert
	is.Equal(h.store.Len(), 1)
	h.send(keyMsg(tea.KeyEnter))
	is.Equal(h.sched.Queue().Len(), 0)
}

func TestReminderForm_NeedsBothParts(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, &fakeGateway{}, 0)
	h.login(t)
	h.send(runes("a"))
	h.m.title.SetValue("Stretch")
	h.m.desc.SetValue("five minutes")
	h.sendAndRun(keyMsg(tea.KeyEnter))

	h.m.date.SetValue("")
	h.send(keyMsg(tea.KeyEnter))
	is.Equal(h.m.mode, modeReminder)
	is.Equal(h.m.formErr, "Pick both a date and a time")

	h.send(keyMsg(tea.KeyEsc))
	is.Equal(h.m.mode, modeBrowse)
	is.True(!h.store.Get()[0].HasReminder())
}

func TestAdd_EmptyInputAddsSample(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, &fakeGateway{page: samplePage()}, 0)
	h.login(t)

	h.send(runes("a"))
	h.sendAndRun(keyMsg(tea.KeyEnter))
	is.Equal(h.m.mode, modeBrowse)
	is.Equal(h.store.Len(), 1)
	is.Equal(h.store.Get()[0].Origin, model.Seeded)
	is.True(strings.Contains(h.m.status, "sample"))
}

func TestSeedDeleteToggle(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, &fakeGateway{page: samplePage()}, 0)
	h.login(t)

	h.sendAndRun(runes("s"))
	h.sendAndRun(runes("s"))
	is.Equal(h.store.Len(), 2)
	is.Equal(len(h.m.list.Items()), 2)

	first, ok := h.m.selected()
	is.True(ok)
	h.send(runes(" "))
	got, _ := h.store.Find(first.ID)
	is.True(got.Completed)

	h.sendAndRun(runes("d"))
	is.Equal(h.store.Len(), 1)
	_, ok = h.store.Find(first.ID)
	is.True(!ok)
}

func TestEdit_FailureKeepsFormOpen(t *testing.T) {
	is := is.New(t)
	gw := &fakeGateway{page: samplePage()}
	h := newHarness(t, gw, 1)
	h.login(t)

	h.send(runes("e"))
	is.Equal(h.m.mode, modeEdit)
	is.Equal(h.m.title.Value(), "delectus aut autem")

	gw.updErr = errors.New("service unavailable")
	h.m.title.SetValue("renamed")
	h.sendAndRun(keyMsg(tea.KeyEnter))
	is.Equal(h.m.mode, modeEdit)
	is.True(strings.Contains(h.m.formErr, "service unavailable"))

	gw.updErr = nil
	h.sendAndRun(keyMsg(tea.KeyEnter))
	is.Equal(h.m.mode, modeBrowse)
	is.Equal(h.store.Get()[0].Title, "renamed")
}

func TestEdit_EscCancelsSession(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, &fakeGateway{page: samplePage()}, 1)
	h.login(t)
	h.send(runes("e"))
	h.send(keyMsg(tea.KeyEsc))
	is.Equal(h.m.mode, modeBrowse)
	_, editing := h.m.svc.Editing()
	is.True(!editing)
}

func TestDetail(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, &fakeGateway{page: samplePage()}, 1)
	h.login(t)
	h.send(keyMsg(tea.KeyEnter))
	is.Equal(h.m.mode, modeDetail)
	is.True(strings.Contains(h.m.View(), "delectus aut autem"))
	h.send(keyMsg(tea.KeyEsc))
	is.Equal(h.m.mode, modeBrowse)
}

func TestQuit(t *testing.T) {
	is := is.New(t)
	h := newHarness(t, &fakeGateway{}, 0)
	h.login(t)
	cmd := h.send(runes("q"))
	is.True(cmd != nil)
	_, ok := cmd().(tea.QuitMsg)
	is.True(ok)
}
