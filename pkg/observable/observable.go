package observable

// Event describes a change.
type Event struct {
	// Source is the notifier that delivered the event to the listener.
	Source any
	// Origin is the property or list whose state changed first.
	Origin any
	// Item is the list element the change came through, if any. It is set
	// by the innermost list the event passes.
	Item any
}

// Listener receives change events.
type Listener func(Event)

// Observable is anything that can be subscribed to.
type Observable interface {
	// Subscribe registers l and returns a function that removes it again.
	Subscribe(l Listener) (unsubscribe func())
}

type subscription struct {
	fn     Listener
	active bool
}

// Base is an embeddable notifier with reentrant suspension.
// The zero value is ready to use.
type Base struct {
	subs    []*subscription
	depth   int
	pending *Event
}

var _ Observable = (*Base)(nil)

// Subscribe registers l. The returned function is idempotent.
func (b *Base) Subscribe(l Listener) func() {
	s := &subscription{fn: l, active: true}
	b.subs = append(b.subs, s)
	return func() {
		if !s.active {
			return
		}
		s.active = false
		for i, cur := range b.subs {
			if cur == s {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				break
			}
		}
	}
}

// Emit delivers ev to every subscriber, or holds it back while suspended.
// Listeners added during delivery do not see the event; listeners removed
// during delivery do not receive it if they have not already.
func (b *Base) Emit(ev Event) {
	if b.depth > 0 {
		b.pending = &ev
		return
	}
	subs := make([]*subscription, len(b.subs))
	copy(subs, b.subs)
	for _, s := range subs {
		if s.active {
			s.fn(ev)
		}
	}
}

// Suspend holds back notifications until the matching Resume.
func (b *Base) Suspend() { b.depth++ }

// Resume ends one level of suspension. Leaving the outermost level emits
// the most recent held-back event, if any. Unbalanced calls are ignored.
func (b *Base) Resume() {
	if b.depth == 0 {
		return
	}
	b.depth--
	if b.depth == 0 && b.pending != nil {
		ev := *b.pending
		b.pending = nil
		b.Emit(ev)
	}
}

// Suspended reports whether notifications are currently held back.
func (b *Base) Suspended() bool { return b.depth > 0 }

// Subscribers returns the number of registered listeners.
func (b *Base) Subscribers() int { return len(b.subs) }

// Batch runs fn with notifications suspended and emits at most one event
// afterwards.
func (b *Base) Batch(fn func()) {
	b.Suspend()
	defer b.Resume()
	fn()
}
