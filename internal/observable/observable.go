// Package observable provides push-based values for wiring view models to
// views: a Property keeps its last value, a Signal does not.
package observable

import (
	"sync"
)

// Token cancels a subscription. Cancel is idempotent.
type Token struct {
	cancel func()
	once   *sync.Once
}

// Cancel removes the subscription the token was returned for
func (t Token) Cancel() {
	if t.once == nil {
		return
	}
	t.once.Do(t.cancel)
}

// subscribers is an ordered observer list shared by Property and Signal
type subscribers[T any] struct {
	mu     sync.Mutex
	nextID int
	order  []int
	fns    map[int]func(T)
}

func (s *subscribers[T]) add(fn func(T)) Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fns == nil {
		s.fns = make(map[int]func(T))
	}
	id := s.nextID
	s.nextID++
	s.fns[id] = fn
	s.order = append(s.order, id)

	return Token{
		once:   &sync.Once{},
		cancel: func() { s.remove(id) },
	}
}

func (s *subscribers[T]) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.fns, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// snapshot returns the callbacks in subscription order so they can run
// without holding the lock
func (s *subscribers[T]) snapshot() []func(T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fns := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.fns[id])
	}
	return fns
}

func (s *subscribers[T]) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Property holds a value and notifies subscribers whenever it is replaced.
// Callbacks must not Set or Modify the property they observe.
type Property[T any] struct {
	// notify orders deliveries: a subscriber's last callback always carries
	// the latest value
	notify sync.Mutex
	mu     sync.RWMutex
	value  T
	subs   subscribers[T]
}

// NewProperty creates a property with an initial value
func NewProperty[T any](initial T) *Property[T] {
	return &Property[T]{value: initial}
}

// Value returns the current value
func (p *Property[T]) Value() T {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Set replaces the value and notifies subscribers in subscription order.
// Callbacks run on the caller's goroutine.
func (p *Property[T]) Set(v T) {
	p.notify.Lock()
	defer p.notify.Unlock()

	p.mu.Lock()
	p.value = v
	p.mu.Unlock()

	for _, fn := range p.subs.snapshot() {
		fn(v)
	}
}

// Modify replaces the value with f(current) while holding the write lock, so
// concurrent modifications never lose an update, then notifies subscribers.
func (p *Property[T]) Modify(f func(T) T) T {
	p.notify.Lock()
	defer p.notify.Unlock()

	p.mu.Lock()
	v := f(p.value)
	p.value = v
	p.mu.Unlock()

	for _, fn := range p.subs.snapshot() {
		fn(v)
	}
	return v
}

// Subscribe calls fn with the current value right away and again after every
// Set. A Set racing with Subscribe is delivered after the initial value.
func (p *Property[T]) Subscribe(fn func(T)) Token {
	p.notify.Lock()
	defer p.notify.Unlock()

	token := p.subs.add(fn)
	fn(p.Value())
	return token
}

// Subscribers returns the number of active subscriptions
func (p *Property[T]) Subscribers() int {
	return p.subs.count()
}

// Map derives a property whose value is f applied to the source value. The
// returned token stops the derivation.
func Map[T, U any](src *Property[T], f func(T) U) (*Property[U], Token) {
	var zero U
	derived := NewProperty(zero)
	token := src.Subscribe(func(v T) {
		derived.Set(f(v))
	})
	return derived, token
}

// Signal delivers values to the observers present when they are sent
type Signal[T any] struct {
	subs subscribers[T]
}

// NewSignal creates a signal without observers
func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Send delivers v to every observer on the caller's goroutine
func (s *Signal[T]) Send(v T) {
	for _, fn := range s.subs.snapshot() {
		fn(v)
	}
}

// Observe registers fn for future values
func (s *Signal[T]) Observe(fn func(T)) Token {
	return s.subs.add(fn)
}

// Observers returns the number of active observers
func (s *Signal[T]) Observers() int {
	return s.subs.count()
}

// Bag collects tokens so an owner can cancel all of its subscriptions at once
type Bag struct {
	mu     sync.Mutex
	tokens []Token
}

// Add stores a token in the bag
func (b *Bag) Add(t Token) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = append(b.tokens, t)
}

// CancelAll cancels every token added so far and empties the bag
func (b *Bag) CancelAll() {
	b.mu.Lock()
	tokens := b.tokens
	b.tokens = nil
	b.mu.Unlock()

	for _, t := range tokens {
		t.Cancel()
	}
}
