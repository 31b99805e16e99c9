// Package items provides the ordered, indexable item sequences a panel virtualizes.
//
// A [Source] only needs a length and positional access. Sources that can
// change also implement [Observable] so that a panel can invalidate its
// realized containers when the sequence changes.
package items

import "slices"

// Source is an ordered, indexable sequence of items.
type Source interface {
	// Len returns the number of items.
	Len() int
	// At returns the item at index i. Valid for 0 <= i < Len().
	At(i int) any
}

// ChangeKind describes what happened to a sequence.
type ChangeKind int

const (
	// ChangeReset indicates the whole sequence was replaced.
	ChangeReset ChangeKind = iota
	// ChangeAdd indicates items were inserted.
	ChangeAdd
	// ChangeRemove indicates items were removed.
	ChangeRemove
	// ChangeReplace indicates items were overwritten in place.
	ChangeReplace
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeReset:
		return "reset"
	case ChangeAdd:
		return "add"
	case ChangeRemove:
		return "remove"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Change describes one structural change. Index and Count locate the
// affected items for add, remove and replace; both are zero for a reset.
type Change struct {
	Kind  ChangeKind
	Index int
	Count int
}

// Observable is a Source that reports changes to listeners.
type Observable interface {
	Source
	// AddListener registers a callback for changes and returns a function
	// that removes it.
	AddListener(listener func(Change)) func()
}

// Range is a read-only source of the integers [0, n).
type Range int

// Len returns n.
func (r Range) Len() int {
	if r < 0 {
		return 0
	}
	return int(r)
}

// At returns i itself.
func (r Range) At(i int) any {
	return i
}

// listeners is the listener registry shared by observable sources.
type listeners struct {
	byID   map[int]func(Change)
	nextID int
}

func (l *listeners) add(listener func(Change)) func() {
	if listener == nil {
		return func() {}
	}
	if l.byID == nil {
		l.byID = make(map[int]func(Change))
	}
	id := l.nextID
	l.nextID++
	l.byID[id] = listener
	return func() {
		delete(l.byID, id)
	}
}

func (l *listeners) notify(change Change) {
	ids := make([]int, 0, len(l.byID))
	for id := range l.byID {
		ids = append(ids, id)
	}
	// Registration order, so listeners observe changes deterministically.
	slices.Sort(ids)
	for _, id := range ids {
		if listener, ok := l.byID[id]; ok {
			listener(change)
		}
	}
}

// List is a mutable, observable slice-backed source.
//
// List is not safe for concurrent use; like the panels that consume it, it
// is driven from the single UI goroutine.
type List[T any] struct {
	values    []T
	listeners listeners
}

// NewList returns a list holding a copy of values.
func NewList[T any](values ...T) *List[T] {
	return &List[T]{values: slices.Clone(values)}
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.values)
}

// At returns the item at index i.
func (l *List[T]) At(i int) any {
	return l.values[i]
}

// Get returns the typed item at index i.
func (l *List[T]) Get(i int) T {
	return l.values[i]
}

// Values returns a copy of the items.
func (l *List[T]) Values() []T {
	return slices.Clone(l.values)
}

// AddListener registers a change callback.
func (l *List[T]) AddListener(listener func(Change)) func() {
	return l.listeners.add(listener)
}

// Reset replaces the contents.
func (l *List[T]) Reset(values ...T) {
	l.values = slices.Clone(values)
	l.listeners.notify(Change{Kind: ChangeReset})
}

// Append adds values at the end.
func (l *List[T]) Append(values ...T) {
	if len(values) == 0 {
		return
	}
	index := len(l.values)
	l.values = append(l.values, values...)
	l.listeners.notify(Change{Kind: ChangeAdd, Index: index, Count: len(values)})
}

// Insert inserts values before index i. Indexes beyond the end append.
func (l *List[T]) Insert(i int, values ...T) {
	if len(values) == 0 {
		return
	}
	i = min(max(i, 0), len(l.values))
	l.values = slices.Insert(l.values, i, values...)
	l.listeners.notify(Change{Kind: ChangeAdd, Index: i, Count: len(values)})
}

// Remove deletes count items starting at index i; out-of-range parts are ignored.
func (l *List[T]) Remove(i, count int) {
	i = max(i, 0)
	end := min(i+count, len(l.values))
	if i >= end {
		return
	}
	l.values = slices.Delete(l.values, i, end)
	l.listeners.notify(Change{Kind: ChangeRemove, Index: i, Count: end - i})
}

// Set overwrites the item at index i.
func (l *List[T]) Set(i int, value T) {
	l.values[i] = value
	l.listeners.notify(Change{Kind: ChangeReplace, Index: i, Count: 1})
}

// Clear removes every item.
func (l *List[T]) Clear() {
	l.values = nil
	l.listeners.notify(Change{Kind: ChangeReset})
}
