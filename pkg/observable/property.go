package observable

import (
	"math"
	"reflect"
)

// Property is a mutable cell that notifies subscribers when its value
// changes. It remembers the value it was created with as its default.
type Property[T any] struct {
	Base
	value T
	def   T
	unsub func()
}

type finiter interface {
	IsFinite() bool
}

// NewProperty creates a property holding def.
func NewProperty[T any](def T) *Property[T] {
	p := &Property[T]{value: def, def: def}
	p.attach(def)
	return p
}

// Get returns the current value.
func (p *Property[T]) Get() T { return p.value }

// Default returns the value the property was created with.
func (p *Property[T]) Default() T { return p.def }

// Reset restores the default value.
func (p *Property[T]) Reset() bool { return p.Set(p.def) }

// Set stores v and notifies subscribers. It returns false and does nothing
// when v is non-finite (NaN or ±Inf for floats, or a value whose IsFinite
// method reports false) or equal to the current value.
func (p *Property[T]) Set(v T) bool {
	if !finite(v) || equal(p.value, v) {
		return false
	}
	if p.unsub != nil {
		p.unsub()
		p.unsub = nil
	}
	p.value = v
	p.attach(v)
	p.Emit(Event{Source: p, Origin: p})
	return true
}

// attach relays events of an observable value as changes of p.
func (p *Property[T]) attach(v T) {
	o, ok := any(v).(Observable)
	if !ok || isNil(o) {
		return
	}
	p.unsub = o.Subscribe(func(ev Event) {
		p.Emit(Event{Source: p, Origin: ev.Origin, Item: ev.Item})
	})
}

func finite(v any) bool {
	switch x := v.(type) {
	case float64:
		return !math.IsNaN(x) && !math.IsInf(x, 0)
	case float32:
		f := float64(x)
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	case finiter:
		return x.IsFinite()
	}
	return true
}

// equal compares by value for comparable types and by identity for
// pointers. Values of incomparable dynamic types never compare equal.
func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() || !vb.Comparable() {
		return false
	}
	return va.Equal(vb)
}

func isNil(o Observable) bool {
	v := reflect.ValueOf(o)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
