package model

import (
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestNewReminder(t *testing.T) {
	t.Run("requires both parts", func(t *testing.T) {
		is := is.New(t)
		_, err := NewReminder("2026-10-14", "")
		is.True(errors.Is(err, ErrEmptyReminder))
		_, err = NewReminder("", "09:30")
		is.True(errors.Is(err, ErrEmptyReminder))
	})
	t.Run("rejects unparsable values", func(t *testing.T) {
		is := is.New(t)
		_, err := NewReminder("14/10/2026", "09:30")
		is.True(errors.Is(err, ErrInvalidReminder))
		_, err = NewReminder("2026-10-14", "9h30")
		is.True(errors.Is(err, ErrInvalidReminder))
	})
	t.Run("trims input", func(t *testing.T) {
		is := is.New(t)
		r, err := NewReminder(" 2026-10-14 ", " 09:30")
		is.NoErr(err)
		is.Equal(r, Reminder{Date: "2026-10-14", Time: "09:30"})
	})
}

func TestReminder_Due(t *testing.T) {
	is := is.New(t)
	loc := time.FixedZone("test", 2*60*60)
	due, err := Reminder{Date: "2026-10-14", Time: "00:00"}.Due(loc)
	is.NoErr(err)
	is.Equal(due, time.Date(2026, time.October, 14, 0, 0, 0, 0, loc))
}

func TestItem_Validate(t *testing.T) {
	is := is.New(t)
	is.True(Item{Title: "Buy milk"}.Validate() != nil)
	is.NoErr(Item{Title: "Buy milk", Description: "2 liters"}.Validate())
	// seeded items carry whatever the gateway returned
	is.NoErr(Item{Title: "delectus aut autem", Origin: Seeded}.Validate())
	is.NoErr(Item{Origin: Seeded}.Validate())
}

func TestItem_WithoutReminder(t *testing.T) {
	is := is.New(t)
	it := Item{ID: 1, Reminder: &Reminder{Date: "2026-10-14", Time: "10:00"}}
	is.True(it.HasReminder())
	cleared := it.WithoutReminder()
	is.True(!cleared.HasReminder())
	is.True(it.HasReminder()) // original untouched
}
