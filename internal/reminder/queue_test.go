package reminder

import (
	"testing"

	"github.com/matryer/is"
)

func TestQueue(t *testing.T) {
	is := is.New(t)
	var q Queue

	_, ok := q.Peek()
	is.True(!ok)
	_, ok = q.Pop()
	is.True(!ok)

	q.Push(Alert{ItemID: 1}, Alert{ItemID: 2})
	q.Push(Alert{ItemID: 3})
	is.Equal(q.Len(), 3)

	a, ok := q.Peek()
	is.True(ok)
	is.Equal(a.ItemID, 1)
	is.Equal(q.Len(), 3)

	a, _ = q.Pop()
	is.Equal(a.ItemID, 1)

	rest := q.Drain()
	is.Equal(len(rest), 2)
	is.Equal(rest[0].ItemID, 2)
	is.Equal(rest[1].ItemID, 3)
	is.Equal(q.Len(), 0)
}
