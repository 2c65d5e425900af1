// Package dashboard keeps the admin screens' state: the loaded entities, the
// search and filter inputs, the selected entity and the optimistic mutations
// made against the API.
package dashboard

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrBusy rejects a mutation on an entity that already has one in flight.
	ErrBusy = errors.New("entity has a pending change")
	// ErrClosed is returned once the controller has been closed.
	ErrClosed = errors.New("controller closed")
	// ErrUnknownEntity is returned for ids that are not in the loaded list.
	ErrUnknownEntity = errors.New("entity not loaded")
)

// Entity is anything the dashboard lists.
type Entity interface {
	EntityID() string
}

// Resource is the remote collection behind a screen.
type Resource[T Entity] interface {
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

// Matcher reports whether an entity passes the search term and filter.
type Matcher[T Entity] func(item T, term, filter string) bool

// State is a copy of the controller state.
type State[T Entity] struct {
	Items      []T
	Loading    bool
	Err        error
	SearchTerm string
	Filter     string
	Selected   *T
}

// Controller holds one screen's state. All methods are safe for concurrent use.
type Controller[T Entity] struct {
	res    Resource[T]
	match  Matcher[T]
	notify Notifier
	labels Labels

	mu       sync.Mutex
	items    []T
	loading  bool
	err      error
	search   string
	filter   string
	selected string
	inflight map[string]struct{}
	loadSeq  uint64
	closed   bool
}

// Labels are the notification texts for one kind of entity.
type Labels struct {
	DeletedTitle string
	DeletedBody  string
	DeleteFailed string
}

func newController[T Entity](res Resource[T], match Matcher[T], notify Notifier, labels Labels) *Controller[T] {
	if notify == nil {
		notify = Discard
	}
	return &Controller[T]{
		res:      res,
		match:    match,
		notify:   notify,
		labels:   labels,
		items:    []T{},
		inflight: map[string]struct{}{},
	}
}

// Load replaces the list with a fresh one from the resource. Only the most
// recent Load may publish its result.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.loadSeq++
	seq := c.loadSeq
	c.loading = true
	c.err = nil
	c.mu.Unlock()

	items, err := c.res.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if seq != c.loadSeq {
		return err
	}
	c.loading = false
	if err != nil {
		c.err = err
		return err
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	return nil
}

func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := State[T]{
		Items:      append([]T(nil), c.items...),
		Loading:    c.loading,
		Err:        c.err,
		SearchTerm: c.search,
		Filter:     c.filter,
	}
	if i := c.indexLocked(c.selected); i >= 0 {
		sel := c.items[i]
		s.Selected = &sel
	}
	return s
}

func (c *Controller[T]) SetSearch(term string) {
	c.mu.Lock()
	c.search = term
	c.mu.Unlock()
}

func (c *Controller[T]) SetFilter(filter string) {
	c.mu.Lock()
	c.filter = filter
	c.mu.Unlock()
}

// Visible is the loaded list narrowed by the current search term and filter,
// in load order.
func (c *Controller[T]) Visible() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Filter(c.items, c.search, c.filter, c.match)
}

// Filter keeps the items that match term and filter without reordering them.
func Filter[T Entity](items []T, term, filter string, match Matcher[T]) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if match(it, term, filter) {
			out = append(out, it)
		}
	}
	return out
}

// Select marks id as the entity shown in the detail view.
func (c *Controller[T]) Select(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexLocked(id) < 0 {
		return ErrUnknownEntity
	}
	c.selected = id
	return nil
}

// Busy reports whether id has a mutation in flight.
func (c *Controller[T]) Busy(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inflight[id]
	return ok
}

// Delete removes id remotely and reloads the list on success. The detail view
// is closed when it showed id.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	if err := c.begin(id); err != nil {
		return err
	}
	err := c.res.Delete(ctx, id)
	if !c.end(id) {
		return ErrClosed
	}

	c.mu.Lock()
	if c.selected == id {
		c.selected = ""
	}
	c.mu.Unlock()

	if err != nil {
		c.notify.Notify(Failure(c.labels.DeleteFailed, err))
		return err
	}
	c.notify.Notify(Success(c.labels.DeletedTitle, c.labels.DeletedBody))
	// a failed refresh shows up in State().Err
	_ = c.Load(ctx)
	return nil
}

// Close stops the controller. Responses arriving afterwards are dropped.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// mutate runs an optimistic change to one entity: edit is applied locally,
// fields are sent, and the entity's previous value is restored on failure.
// Only that entity is rolled back; the rest of the list keeps whatever other
// mutations wrote meanwhile. With a single mutation in flight this is the same
// as restoring the whole list.
func (c *Controller[T]) mutate(ctx context.Context, id string, edit func(T) T, fields func(T) map[string]any) (T, error) {
	var zero T
	if err := c.begin(id); err != nil {
		return zero, err
	}

	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		c.end(id)
		return zero, ErrUnknownEntity
	}
	before := c.items[i]
	after := edit(before)
	c.mu.Unlock()

	err := Optimistic(ctx,
		func() { c.replace(id, after) },
		func(ctx context.Context) error { return c.res.Update(ctx, id, fields(after)) },
		func() { c.replace(id, before) },
	)
	if !c.end(id) {
		return zero, ErrClosed
	}
	if err != nil {
		return before, err
	}
	return after, nil
}

func (c *Controller[T]) begin(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if _, ok := c.inflight[id]; ok {
		return ErrBusy
	}
	c.inflight[id] = struct{}{}
	return nil
}

// end clears the in-flight mark and reports whether the controller is still open.
func (c *Controller[T]) end(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, id)
	return !c.closed
}

func (c *Controller[T]) replace(id string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if i := c.indexLocked(id); i >= 0 {
		c.items[i] = v
	}
}

func (c *Controller[T]) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, it := range c.items {
		if it.EntityID() == id {
			return i
		}
	}
	return -1
}
