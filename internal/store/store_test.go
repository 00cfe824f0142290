package store

import (
	"sync"
	"testing"
	"time"

	"github.com/Makepad-fr/taskmaster/internal/model"
	"github.com/matryer/is"
)

var t0 = time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)

func item(id int, age time.Duration) model.Item {
	return model.Item{ID: id, Title: "t", Description: "d", CreatedAt: t0.Add(-age)}
}

func ids(items []model.Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestNew_Sorts(t *testing.T) {
	is := is.New(t)
	s := New(item(1, 3*time.Hour), item(2, time.Hour), item(3, 2*time.Hour))
	is.Equal(ids(s.Get()), []int{2, 3, 1})
	is.True(Sorted(s.Get()))
}

func TestStore_Replace(t *testing.T) {
	is := is.New(t)
	s := New()
	v := s.Version()
	s.Replace([]model.Item{item(1, 2*time.Hour), item(2, 0)})
	is.Equal(ids(s.Get()), []int{2, 1})
	is.True(s.Version() > v)
	is.Equal(s.Len(), 2)
}

func TestStore_UpdatePrependKeepsNewestInsertFirst(t *testing.T) {
	is := is.New(t)
	s := New(item(1, 0))
	s.Update(func(items []model.Item) []model.Item {
		return append([]model.Item{item(2, 0)}, items...)
	})
	is.Equal(ids(s.Get()), []int{2, 1})
}

func TestStore_GetIsASnapshot(t *testing.T) {
	is := is.New(t)
	it := item(1, 0)
	it.Reminder = &model.Reminder{Date: "2026-10-14", Time: "10:00"}
	s := New(it)

	snap := s.Get()
	snap[0].Title = "changed"
	snap[0].Reminder.Time = "11:00"

	got, ok := s.Find(1)
	is.True(ok)
	is.Equal(got.Title, "t")
	is.Equal(got.Reminder.Time, "10:00")
}

func TestStore_Find(t *testing.T) {
	is := is.New(t)
	s := New(item(1, 0))
	_, ok := s.Find(2)
	is.True(!ok)
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	is := is.New(t)
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Update(func(items []model.Item) []model.Item {
				return append(items, item(i, time.Duration(i)*time.Minute))
			})
		}(i)
	}
	wg.Wait()
	is.Equal(s.Len(), 50)
	is.True(Sorted(s.Get()))
}
