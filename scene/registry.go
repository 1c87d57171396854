package scene

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrOutOfRange   = errors.New("scene: index out of range")
	ErrInvalidEntry = errors.New("scene: invalid entry")
)

// Registry is the ordered, append-only collection of scene entries. Indices
// are stable for the lifetime of the process.
type Registry struct {
	entries []*Entry
	onFirst func(e *Entry)
}

func NewRegistry() *Registry {
	return &Registry{}
}

// OnFirst sets the hook run when the first entry is registered.
func (r *Registry) OnFirst(fn func(e *Entry)) {
	r.onFirst = fn
}

// Register appends an entry and returns its index.
func (r *Registry) Register(e Entry) (int, error) {
	if e.Scene == nil || e.Camera == nil {
		return -1, fmt.Errorf("%w: %q needs a scene and a camera", ErrInvalidEntry, e.Name)
	}
	entry := e
	r.entries = append(r.entries, &entry)
	idx := len(r.entries) - 1
	if idx == 0 && r.onFirst != nil {
		r.onFirst(&entry)
	}
	return idx, nil
}

func (r *Registry) Count() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Get returns the entry at index i.
func (r *Registry) Get(i int) (*Entry, error) {
	if r == nil || i < 0 || i >= len(r.entries) {
		return nil, fmt.Errorf("%w: %d (count %d)", ErrOutOfRange, i, r.Count())
	}
	return r.entries[i], nil
}

// MustGet is Get for indices the caller has already validated.
func (r *Registry) MustGet(i int) *Entry {
	e, err := r.Get(i)
	if err != nil {
		panic(err)
	}
	return e
}

// Entries returns the registered entries in index order.
func (r *Registry) Entries() []*Entry {
	if r == nil {
		return nil
	}
	out := make([]*Entry, 0, len(r.entries))
	return append(out, r.entries...)
}

func (r *Registry) Names() []string {
	names := make([]string, 0, r.Count())
	for _, e := range r.Entries() {
		names = append(names, e.Name)
	}
	return names
}

// AnimateAll runs every entry's animate callback except the skipped indices.
func (r *Registry) AnimateAll(dt time.Duration, skip ...int) {
	if r == nil {
		return
	}
	for i, e := range r.entries {
		if contains(skip, i) {
			continue
		}
		e.animate(dt)
	}
}

// SetAspect updates every registered camera.
func (r *Registry) SetAspect(aspect float64) {
	if r == nil {
		return
	}
	for _, e := range r.entries {
		e.Camera.SetAspect(aspect)
	}
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
