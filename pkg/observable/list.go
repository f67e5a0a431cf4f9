package observable

import "slices"

// List is an ordered, index-addressable collection that notifies its
// subscribers about structural changes and about changes of observable
// elements. Every mutating call emits at most one event.
type List[T comparable] struct {
	Base
	items  []T
	unsubs []func()
	guard  func(T) bool
}

// ListOption configures a List.
type ListOption[T comparable] func(*List[T])

// WithGuard installs a predicate that every inserted element must satisfy.
// Rejected elements are silently dropped.
func WithGuard[T comparable](accept func(T) bool) ListOption[T] {
	return func(l *List[T]) { l.guard = accept }
}

// NewList creates an empty list.
func NewList[T comparable](opts ...ListOption[T]) *List[T] {
	l := &List[T]{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *List[T]) changed() {
	l.Emit(Event{Source: l, Origin: l})
}

func (l *List[T]) accepts(v T) bool {
	return l.guard == nil || l.guard(v)
}

func (l *List[T]) watch(v T) func() {
	o, ok := any(v).(Observable)
	if !ok || isNil(o) {
		return nil
	}
	return o.Subscribe(func(ev Event) {
		item := ev.Item
		if item == nil {
			item = v
		}
		l.Emit(Event{Source: l, Origin: ev.Origin, Item: item})
	})
}

func (l *List[T]) insert(i int, v T) {
	l.items = slices.Insert(l.items, i, v)
	l.unsubs = slices.Insert(l.unsubs, i, l.watch(v))
}

func (l *List[T]) drop(i int) T {
	v := l.items[i]
	if u := l.unsubs[i]; u != nil {
		u()
	}
	l.items = slices.Delete(l.items, i, i+1)
	l.unsubs = slices.Delete(l.unsubs, i, i+1)
	return v
}

// Add appends v. It reports whether v passed the guard.
func (l *List[T]) Add(v T) bool {
	return l.Insert(len(l.items), v)
}

// Insert places v at index i. It reports whether v passed the guard.
func (l *List[T]) Insert(i int, v T) bool {
	if !l.accepts(v) {
		return false
	}
	l.insert(i, v)
	l.changed()
	return true
}

// AddAll appends every element that passes the guard, checking each
// against the list as extended by the ones before it. It returns the number
// of elements added and emits one event if that number is positive.
func (l *List[T]) AddAll(vs ...T) int {
	n := 0
	for _, v := range vs {
		if l.accepts(v) {
			l.insert(len(l.items), v)
			n++
		}
	}
	if n > 0 {
		l.changed()
	}
	return n
}

// Set replaces the element at index i. It reports whether v passed the
// guard.
func (l *List[T]) Set(i int, v T) bool {
	if l.items[i] == v {
		return true
	}
	if !l.accepts(v) {
		return false
	}
	l.drop(i)
	l.insert(i, v)
	l.changed()
	return true
}

// Remove deletes the first occurrence of v and reports whether it was
// present.
func (l *List[T]) Remove(v T) bool {
	i := l.IndexOf(v)
	if i < 0 {
		return false
	}
	l.RemoveAt(i)
	return true
}

// RemoveAt deletes and returns the element at index i.
func (l *List[T]) RemoveAt(i int) T {
	v := l.drop(i)
	l.changed()
	return v
}

// RemoveFunc deletes every element for which del returns true and returns
// the number removed.
func (l *List[T]) RemoveFunc(del func(T) bool) int {
	n := 0
	for i := len(l.items) - 1; i >= 0; i-- {
		if del(l.items[i]) {
			l.drop(i)
			n++
		}
	}
	if n > 0 {
		l.changed()
	}
	return n
}

// Clear removes every element.
func (l *List[T]) Clear() {
	if len(l.items) == 0 {
		return
	}
	for i := len(l.items) - 1; i >= 0; i-- {
		l.drop(i)
	}
	l.changed()
}

// Len returns the number of elements.
func (l *List[T]) Len() int { return len(l.items) }

// At returns the element at index i.
func (l *List[T]) At(i int) T { return l.items[i] }

// Items returns a copy of the elements in order.
func (l *List[T]) Items() []T { return slices.Clone(l.items) }

// IndexOf returns the index of the first occurrence of v, or -1.
func (l *List[T]) IndexOf(v T) int { return slices.Index(l.items, v) }

// Contains reports whether v is in the list.
func (l *List[T]) Contains(v T) bool { return l.IndexOf(v) >= 0 }
