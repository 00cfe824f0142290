// Package store holds the session's todo list in memory.
//
// The list is kept sorted by creation time, newest first. Every write
// re-sorts before readers can see it; there is no on-disk copy.
package store

import (
	"sort"
	"sync"

	"github.com/Makepad-fr/taskmaster/internal/model"
)

// Store is the canonical holder of the current item list.
type Store struct {
	mu      sync.RWMutex
	items   []model.Item
	version uint64
}

// New returns a store holding items, already sorted.
func New(items ...model.Item) *Store {
	s := &Store{}
	s.items = sortItems(clone(items))
	return s
}

// Get returns a sorted snapshot. Callers may modify it freely.
func (s *Store) Get() []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.items)
}

// Replace swaps the whole list.
func (s *Store) Replace(items []model.Item) {
	sorted := sortItems(clone(items))
	s.mu.Lock()
	s.items = sorted
	s.version++
	s.mu.Unlock()
}

// Update runs fn against the live contents and stores what it returns.
// fn receives a copy; it runs under the write lock so it must not call back into the store.
func (s *Store) Update(fn func([]model.Item) []model.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = sortItems(clone(fn(clone(s.items))))
	s.version++
}

// Find returns the item with the given id.
func (s *Store) Find(id int) (model.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Version increases on every write.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// sortItems orders newest first. Stable, so an item prepended before sorting
// stays ahead of older items with the same timestamp.
func sortItems(items []model.Item) []model.Item {
	if Sorted(items) {
		return items
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

func clone(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	for i, it := range items {
		if it.Reminder != nil {
			r := *it.Reminder
			it.Reminder = &r
		}
		out[i] = it
	}
	return out
}

// Sorted reports whether items are ordered newest first.
func Sorted(items []model.Item) bool {
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			return false
		}
	}
	return true
}
