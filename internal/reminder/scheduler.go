// Package reminder fires due reminders from the todo store.
//
// Each item moves through no-reminder, pending and fired. Firing clears the
// reminder on the item and emits an Alert; nothing else about the item changes.
package reminder

import (
	"context"
	"io"
	"time"

	"github.com/Makepad-fr/taskmaster/internal/model"
	"github.com/Makepad-fr/taskmaster/internal/store"
	"github.com/charmbracelet/log"
)

// DefaultInterval is how often Run checks for due reminders.
const DefaultInterval = time.Second

// Options configures a Scheduler.
type Options struct {
	Interval time.Duration
	// Location interprets reminder dates and times. Defaults to time.Local.
	Location *time.Location
	Logger   *log.Logger
	// OnAlert is called for each alert after it has been queued.
	OnAlert func(Alert)
	Now     func() time.Time
}

// Scheduler checks the store for due reminders.
type Scheduler struct {
	store    *store.Store
	queue    *Queue
	interval time.Duration
	loc      *time.Location
	log      *log.Logger
	onAlert  func(Alert)
	now      func() time.Time
}

// New returns a scheduler reading st and pushing to q.
func New(st *store.Store, q *Queue, opts Options) *Scheduler {
	s := &Scheduler{
		store:    st,
		queue:    q,
		interval: opts.Interval,
		loc:      opts.Location,
		log:      opts.Logger,
		onAlert:  opts.OnAlert,
		now:      opts.Now,
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.queue == nil {
		s.queue = &Queue{}
	}
	return s
}

// Queue returns the alert queue.
func (s *Scheduler) Queue() *Queue { return s.queue }

// Interval returns the tick period.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Tick fires every reminder due at now, in store order, and returns the
// alerts it queued. A second call at the same instant fires nothing.
func (s *Scheduler) Tick(now time.Time) []Alert {
	if !s.anyDue(now) {
		return nil
	}
	var fired []Alert
	s.store.Update(func(items []model.Item) []model.Item {
		for i := range items {
			r := items[i].Reminder
			if r == nil {
				continue
			}
			due, err := r.Due(s.loc)
			if err != nil {
				s.log.Warn("skipping reminder", "id", items[i].ID, "err", err)
				continue
			}
			if now.Before(due) {
				continue
			}
			fired = append(fired, Alert{
				ItemID:      items[i].ID,
				Title:       items[i].Title,
				Description: items[i].Description,
				Due:         due,
				FiredAt:     now,
			})
			items[i] = items[i].WithoutReminder()
		}
		return items
	})
	if len(fired) == 0 {
		return nil
	}

	s.queue.Push(fired...)
	for _, a := range fired {
		s.log.Info("reminder fired", "id", a.ItemID, "due", a.Due.Format(time.RFC3339))
		if s.onAlert != nil {
			s.onAlert(a)
		}
	}
	return fired
}

// anyDue reports whether a write is needed, so idle ticks leave the store
// alone. An unparseable reminder never comes due.
func (s *Scheduler) anyDue(now time.Time) bool {
	for _, it := range s.store.Get() {
		if it.Reminder == nil {
			continue
		}
		if due, err := it.Reminder.Due(s.loc); err == nil && !now.Before(due) {
			return true
		}
	}
	return false
}

// Run ticks every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick(s.now())
		}
	}
}
