package pubsub

import "sync"

// Subscription releases a callback registered on Listeners.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe removes the callback. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

type listener[T any] struct {
	id int
	fn func(T)
}

// Listeners delivers values synchronously to registered callbacks.
// Callbacks run on the publishing goroutine, in registration order.
// A callback may subscribe or unsubscribe during delivery. A callback added
// mid-delivery first runs on the next Notify; one removed mid-delivery is
// skipped for the rest of the current Notify.
type Listeners[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   []listener[T]
}

// NewListeners creates an empty callback set.
func NewListeners[T any]() *Listeners[T] {
	return &Listeners[T]{}
}

// Add registers fn and returns its subscription.
func (l *Listeners[T]) Add(fn func(T)) *Subscription {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	l.subs = append(l.subs, listener[T]{id: id, fn: fn})

	return &Subscription{cancel: func() { l.remove(id) }}
}

// Notify calls every registered callback with v.
func (l *Listeners[T]) Notify(v T) {
	l.mu.Lock()
	snapshot := make([]listener[T], len(l.subs))
	copy(snapshot, l.subs)
	l.mu.Unlock()

	for _, s := range snapshot {
		if l.active(s.id) {
			s.fn(v)
		}
	}
}

// Len returns the number of registered callbacks.
func (l *Listeners[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.subs)
}

func (l *Listeners[T]) active(id int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

func (l *Listeners[T]) remove(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, s := range l.subs {
		if s.id == id {
			l.subs = append(l.subs[:i], l.subs[i+1:]...)
			return
		}
	}
}
