// Package todolist implements the operations that change the todo list:
// create, seed, delete, edit, update and attaching reminders.
//
// Every operation works on an explicit *store.Store. Gateway calls never hold
// a lock; each one applies its result to the live store when it completes,
// so overlapping calls land in completion order.
package todolist

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Makepad-fr/taskmaster/internal/model"
	"github.com/Makepad-fr/taskmaster/internal/store"
	"github.com/charmbracelet/log"
)

// MaxSeedLimit bounds the random page size used by Seed.
const MaxSeedLimit = 10

// defaultUserID matches what the demo API assigns to the first user.
const defaultUserID = 1

// Gateway is the remote CRUD endpoint.
type Gateway interface {
	List(ctx context.Context, limit int) ([]model.Item, error)
	Delete(ctx context.Context, id int) error
	Update(ctx context.Context, it model.Item) (model.Item, error)
}

// Options configures a Service.
type Options struct {
	// SeedOnEmpty makes Create fall back to Seed when title or description is empty.
	SeedOnEmpty bool
	Logger      *log.Logger
	// Now defaults to time.Now.
	Now func() time.Time
	// Intn returns a uniform int in [0, n). Defaults to math/rand.
	Intn func(n int) int
}

// EditSession is the buffer of the single item being edited.
type EditSession struct {
	ID          int
	Title       string
	Description string
}

// CreateResult tells the caller which path Create took.
type CreateResult struct {
	Item   model.Item
	Seeded bool
}

// Service runs list operations against a store.
type Service struct {
	store       *store.Store
	gw          Gateway
	log         *log.Logger
	now         func() time.Time
	intn        func(int) int
	seedOnEmpty bool

	mu   sync.Mutex
	edit *EditSession
}

// New returns a Service mutating st and calling gw.
func New(st *store.Store, gw Gateway, opts Options) *Service {
	s := &Service{
		store:       st,
		gw:          gw,
		log:         opts.Logger,
		now:         opts.Now,
		intn:        opts.Intn,
		seedOnEmpty: opts.SeedOnEmpty,
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.intn == nil {
		s.intn = rand.Intn
	}
	return s
}

// Store returns the store the service mutates.
func (s *Service) Store() *store.Store { return s.store }

// Create adds a user item. With an empty title or description it seeds
// from the gateway instead, when SeedOnEmpty is set.
func (s *Service) Create(ctx context.Context, title, description string) (CreateResult, error) {
	candidate := model.Item{
		UserID:      defaultUserID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Origin:      model.UserCreated,
	}
	if err := candidate.Validate(); err != nil {
		if !s.seedOnEmpty {
			return CreateResult{}, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		s.log.Debug("empty input, seeding instead", "op", "create")
		it, err := s.Seed(ctx)
		if err != nil {
			return CreateResult{Seeded: true}, err
		}
		return CreateResult{Item: it, Seeded: true}, nil
	}

	var created model.Item
	s.store.Update(func(items []model.Item) []model.Item {
		created = candidate
		created.ID = nextID(items, len(items)+1)
		created.CreatedAt = s.now()
		return append([]model.Item{created}, items...)
	})
	s.log.Info("created", "op", "create", "id", created.ID)
	return CreateResult{Item: created}, nil
}

// Seed fetches a random page of up to MaxSeedLimit todos and inserts one of
// them at random, stamped with the current time.
func (s *Service) Seed(ctx context.Context) (model.Item, error) {
	limit := s.intn(MaxSeedLimit) + 1
	page, err := s.gw.List(ctx, limit)
	if err != nil {
		s.log.Error("fetching random todo", "op", "seed", "limit", limit, "err", err)
		return model.Item{}, fmt.Errorf("%w: %w", ErrGateway, err)
	}
	if len(page) == 0 {
		s.log.Error("fetching random todo: empty response", "op", "seed", "limit", limit)
		return model.Item{}, fmt.Errorf("%w: empty response", ErrGateway)
	}

	picked := page[s.intn(len(page))]
	picked = picked.WithoutReminder()
	picked.Origin = model.Seeded

	s.store.Update(func(items []model.Item) []model.Item {
		picked.ID = nextID(items, picked.ID)
		picked.CreatedAt = s.now()
		return append([]model.Item{picked}, items...)
	})
	s.log.Info("seeded", "op", "seed", "id", picked.ID, "limit", limit)
	return picked, nil
}

// Populate adds limit todos from the gateway to the live contents. Items
// already in the store are kept and incoming ids are resolved against
// them. A limit of zero leaves the store alone.
func (s *Service) Populate(ctx context.Context, limit int) error {
	if limit <= 0 {
		return nil
	}
	page, err := s.gw.List(ctx, limit)
	if err != nil {
		s.log.Error("loading todos", "op", "populate", "err", err)
		return fmt.Errorf("%w: %w", ErrGateway, err)
	}
	now := s.now()
	s.store.Update(func(items []model.Item) []model.Item {
		for i, it := range page {
			it = it.WithoutReminder()
			it.Origin = model.Seeded
			it.ID = nextID(items, it.ID)
			// keep the gateway's order: earlier entries are newer
			it.CreatedAt = now.Add(-time.Duration(i) * time.Second)
			items = append(items, it)
		}
		return items
	})
	s.log.Info("loaded", "op", "populate", "count", len(page))
	return nil
}

// Delete removes the item remotely, then locally.
func (s *Service) Delete(ctx context.Context, id int) error {
	if _, ok := s.store.Find(id); !ok {
		s.log.Warn("delete of unknown todo", "op", "delete", "id", id)
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err := s.gw.Delete(ctx, id); err != nil {
		s.log.Error("deleting todo", "op", "delete", "id", id, "err", err)
		return fmt.Errorf("%w: %w", ErrGateway, err)
	}
	s.store.Update(func(items []model.Item) []model.Item {
		out := items[:0]
		for _, it := range items {
			if it.ID != id {
				out = append(out, it)
			}
		}
		return out
	})

	s.mu.Lock()
	if s.edit != nil && s.edit.ID == id {
		s.edit = nil
	}
	s.mu.Unlock()

	s.log.Info("deleted", "op", "delete", "id", id)
	return nil
}

// BeginEdit starts editing id, discarding any other edit in progress.
func (s *Service) BeginEdit(id int) (EditSession, error) {
	it, ok := s.store.Find(id)
	if !ok {
		return EditSession{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	sess := EditSession{ID: it.ID, Title: it.Title, Description: it.Description}
	s.mu.Lock()
	s.edit = &sess
	s.mu.Unlock()
	return sess, nil
}

// Editing returns the current edit session, if any.
func (s *Service) Editing() (EditSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.edit == nil {
		return EditSession{}, false
	}
	return *s.edit, true
}

// CancelEdit drops the current edit session.
func (s *Service) CancelEdit() {
	s.mu.Lock()
	s.edit = nil
	s.mu.Unlock()
}

// Update sends the edited title and description and stores the server
// echo in place of the item. The edit session stays open on failure.
func (s *Service) Update(ctx context.Context, id int, title, description string) (model.Item, error) {
	sess, ok := s.Editing()
	if !ok || sess.ID != id {
		return model.Item{}, fmt.Errorf("%w: %d", ErrNoEditSession, id)
	}
	current, ok := s.store.Find(id)
	if !ok {
		s.CancelEdit()
		return model.Item{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	current.Title = title
	current.Description = description
	echo, err := s.gw.Update(ctx, current)
	if err != nil {
		s.log.Error("updating todo", "op", "update", "id", id, "err", err)
		return model.Item{}, fmt.Errorf("%w: %w", ErrGateway, err)
	}
	echo.ID = id
	echo.Origin = current.Origin

	found := false
	s.store.Update(func(items []model.Item) []model.Item {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			// a reminder that fired while the request was in flight stays fired
			if current.Reminder != nil && items[i].Reminder == nil {
				echo = echo.WithoutReminder()
			}
			items[i] = echo
			found = true
		}
		return items
	})

	s.mu.Lock()
	if s.edit != nil && s.edit.ID == id {
		s.edit = nil
	}
	s.mu.Unlock()

	if !found {
		s.log.Warn("todo deleted during update", "op", "update", "id", id)
		return model.Item{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	s.log.Info("updated", "op", "update", "id", id)
	return echo, nil
}

// AttachReminder schedules a reminder on id. Date and time must both be given.
func (s *Service) AttachReminder(id int, date, clock string) error {
	r, err := model.NewReminder(date, clock)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	found := false
	s.store.Update(func(items []model.Item) []model.Item {
		for i := range items {
			if items[i].ID == id {
				rr := r
				items[i].Reminder = &rr
				found = true
			}
		}
		return items
	})
	if !found {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	s.log.Info("reminder set", "op", "remind", "id", id, "date", r.Date, "time", r.Time)
	return nil
}

// ToggleCompleted flips the completed flag locally.
func (s *Service) ToggleCompleted(id int) error {
	found := false
	s.store.Update(func(items []model.Item) []model.Item {
		for i := range items {
			if items[i].ID == id {
				items[i].Completed = !items[i].Completed
				found = true
			}
		}
		return items
	})
	if !found {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// nextID returns want unless it is taken (or not positive), in which case
// it returns one more than the largest id in items.
func nextID(items []model.Item, want int) int {
	maxID := 0
	taken := false
	for _, it := range items {
		if it.ID == want {
			taken = true
		}
		if it.ID > maxID {
			maxID = it.ID
		}
	}
	if want > 0 && !taken {
		return want
	}
	return maxID + 1
}
