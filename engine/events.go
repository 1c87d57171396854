package engine

import "time"

// EventKind names a status event.
type EventKind string

const (
	EventTransitionStarted   EventKind = "transition_started"
	EventTransitionCompleted EventKind = "transition_completed"
	EventTransitionReverted  EventKind = "transition_reverted"
	EventInsufficientScenes  EventKind = "insufficient_scenes"
	EventConfigReloaded      EventKind = "config_reloaded"
	EventError               EventKind = "error"
)

// Event is a status notification for overlays and logs.
type Event struct {
	Kind EventKind
	From int
	To   int
	At   time.Duration
	Err  error
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
	limit int
}

// Push adds an event. Once the queue holds limit events the oldest is dropped.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	if q.limit > 0 && len(q.items) >= q.limit {
		q.items = q.items[1:]
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
