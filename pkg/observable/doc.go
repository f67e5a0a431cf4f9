// Package observable provides the change-notification fabric of the graph
// model.
//
// # Overview
//
// Every mutable field of a vertex, edge or caption is a [Property]. Entities
// embed [Base] and relay their properties' events, and a [List] relays the
// events of its elements, so a single subscription on a graph observes every
// change underneath it:
//
//	Property.Set -> Vertex -> List (vertices) -> Graph -> subscribers
//
// Each [Event] keeps the property or list that changed first (Origin) and
// the list element the change came through (Item), so subscribers can tell
// a moved vertex from a renamed edge without reflection.
//
// # Coalescing
//
// [Base.Suspend] and [Base.Resume] form a reentrant depth counter. While
// suspended, events are held back, and the outermost Resume emits at most
// one of them. Operations that perform several mutations (bulk list edits,
// cascading deletes, transforms) use this so observers never see a torn
// intermediate state.
//
// The package is not safe for concurrent use. The model is single-threaded
// and notifications are delivered synchronously on the mutating goroutine.
package observable
