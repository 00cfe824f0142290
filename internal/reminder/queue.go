package reminder

import (
	"sync"
	"time"
)

// Alert is a fired reminder.
type Alert struct {
	ItemID      int
	Title       string
	Description string
	Due         time.Time
	FiredAt     time.Time
}

// Queue holds fired alerts until they are shown, oldest first.
type Queue struct {
	mu     sync.Mutex
	alerts []Alert
}

func (q *Queue) Push(alerts ...Alert) {
	q.mu.Lock()
	q.alerts = append(q.alerts, alerts...)
	q.mu.Unlock()
}

// Peek returns the oldest alert without removing it.
func (q *Queue) Peek() (Alert, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.alerts) == 0 {
		return Alert{}, false
	}
	return q.alerts[0], true
}

// Pop removes and returns the oldest alert.
func (q *Queue) Pop() (Alert, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.alerts) == 0 {
		return Alert{}, false
	}
	a := q.alerts[0]
	q.alerts = q.alerts[1:]
	return a, true
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.alerts)
}

// Drain empties the queue and returns what it held.
func (q *Queue) Drain() []Alert {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.alerts
	q.alerts = nil
	return out
}
