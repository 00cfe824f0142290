package gateway

import (
	"time"

	"github.com/Makepad-fr/taskmaster/internal/model"
)

// wireTodo is the JSON shape exchanged with /todos. The demo API itself only
// knows userId, id, title and completed; it echoes anything else it is sent.
type wireTodo struct {
	UserID       int     `json:"userId,omitempty"`
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	Completed    bool    `json:"completed"`
	CreatedAt    string  `json:"createdAt,omitempty"`
	ReminderDate *string `json:"reminderDate,omitempty"`
	ReminderTime *string `json:"reminderTime,omitempty"`
}

func newWireTodo(it model.Item) wireTodo {
	w := wireTodo{
		UserID:    it.UserID,
		ID:        it.ID,
		Title:     it.Title,
		Completed: it.Completed,
	}
	if it.Description != "" || it.Origin == model.UserCreated {
		d := it.Description
		w.Description = &d
	}
	if !it.CreatedAt.IsZero() {
		w.CreatedAt = it.CreatedAt.Format(time.RFC3339Nano)
	}
	if it.Reminder != nil {
		date, clock := it.Reminder.Date, it.Reminder.Time
		w.ReminderDate, w.ReminderTime = &date, &clock
	}
	return w
}

// item converts w, taking identity and anything w lacks from base.
func (w wireTodo) item(base model.Item) model.Item {
	it := base
	if it.ID == 0 {
		it.ID = w.ID
	}
	if w.UserID != 0 {
		it.UserID = w.UserID
	}
	it.Title = w.Title
	it.Completed = w.Completed
	if w.Description != nil {
		it.Description = *w.Description
	} else if base.Origin == model.Seeded {
		it.Description = ""
	}
	if w.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, w.CreatedAt); err == nil {
			it.CreatedAt = t
		}
	}
	it = it.WithoutReminder()
	if w.ReminderDate != nil && w.ReminderTime != nil {
		// an echo the scheduler could never fire is dropped
		if r, err := model.NewReminder(*w.ReminderDate, *w.ReminderTime); err == nil {
			it.Reminder = &r
		}
	}
	return it
}
