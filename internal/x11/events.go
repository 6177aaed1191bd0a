package x11

import (
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/eapache/queue"
)

// queued is one item read off the wire. Exactly one of ev and err is set,
// unless closed is true.
type queued struct {
	ev     xgb.Event
	err    xgb.Error
	closed bool
}

// EventQueue buffers events read by a background goroutine so that the
// owner can poll the pending count and drain without blocking.
type EventQueue struct {
	mu    sync.Mutex
	items *queue.Queue
	ready chan struct{}
}

// eventSource is the subset of *xgb.Conn the reader needs.
type eventSource interface {
	WaitForEvent() (xgb.Event, xgb.Error)
}

func newEventQueue(src eventSource) *EventQueue {
	q := &EventQueue{
		items: queue.New(),
		ready: make(chan struct{}, 1),
	}
	go q.read(src)
	return q
}

func (q *EventQueue) read(src eventSource) {
	for {
		ev, xerr := src.WaitForEvent()
		// Both nil means the connection is gone.
		if ev == nil && xerr == nil {
			q.push(queued{closed: true})
			return
		}
		q.push(queued{ev: ev, err: xerr})
	}
}

func (q *EventQueue) push(item queued) {
	q.mu.Lock()
	q.items.Add(item)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Ready receives a value whenever new items were queued.
func (q *EventQueue) Ready() <-chan struct{} {
	return q.ready
}

// Pending returns how many items can be read without blocking.
func (q *EventQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}

// Next pops the oldest queued item. ok is false when the queue is empty.
// closed is true for the final item after the connection went away; it stays
// queued so every later call observes it too.
func (q *EventQueue) Next() (ev xgb.Event, xerr xgb.Error, closed, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.items.Length() == 0 {
		return nil, nil, false, false
	}
	item := q.items.Peek().(queued)
	if item.closed {
		return nil, nil, true, true
	}
	q.items.Remove()
	return item.ev, item.err, false, true
}
