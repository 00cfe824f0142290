package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layouts for the two halves of a reminder.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Origin tags where an item came from.
type Origin int

const (
	// UserCreated items were typed in by the user; title and description are required.
	UserCreated Origin = iota
	// Seeded items were sampled from the remote gateway and carry whatever it returned.
	Seeded
)

func (o Origin) String() string {
	switch o {
	case UserCreated:
		return "user"
	case Seeded:
		return "seeded"
	default:
		return fmt.Sprintf("origin(%d)", int(o))
	}
}

// Reminder is a single scheduled instant split into a calendar date and a wall-clock time.
// Both parts always travel together.
type Reminder struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM
}

var (
	ErrEmptyReminder   = errors.New("reminder needs both a date and a time")
	ErrInvalidReminder = errors.New("invalid reminder")
)

// NewReminder checks both parts and returns a reminder.
func NewReminder(date, clock string) (Reminder, error) {
	r := Reminder{Date: strings.TrimSpace(date), Time: strings.TrimSpace(clock)}
	if r.Date == "" || r.Time == "" {
		return Reminder{}, ErrEmptyReminder
	}
	if _, err := r.Due(time.Local); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

// Due combines date and time in loc, seconds = 0.
func (r Reminder) Due(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout+"T"+TimeLayout, r.Date+"T"+r.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q %q", ErrInvalidReminder, r.Date, r.Time)
	}
	return t, nil
}

// Item is the domain model for a todo entry.
type Item struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Completed   bool      `json:"completed"`
	Reminder    *Reminder `json:"reminder,omitempty"`
	Origin      Origin    `json:"origin"`
}

// HasReminder reports whether a reminder is pending on the item.
func (it Item) HasReminder() bool { return it.Reminder != nil }

// WithoutReminder returns a copy of the item with the reminder cleared.
func (it Item) WithoutReminder() Item {
	it.Reminder = nil
	return it
}

// Validate checks the per-origin content rules.
func (it Item) Validate() error {
	if it.Origin == Seeded {
		return nil
	}
	if strings.TrimSpace(it.Title) == "" || strings.TrimSpace(it.Description) == "" {
		return errors.New("title and description are required")
	}
	return nil
}
