package ast

// Arena is an append-only store with 1-based indices; index 0 is the
// "no value" sentinel shared by all ID types.
type Arena[T any] struct {
	items []T
}

// NewArena preallocates storage for capHint items; zero is allowed.
func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{items: make([]T, 0, capHint)}
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.items = append(a.items, value)
	return uint32(len(a.items))
}

// Get returns the item at a 1-based index, nil for 0 or out of range.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || index > uint32(len(a.items)) {
		return nil
	}
	return &a.items[index-1]
}

// Slice exposes the backing storage; callers must not mutate it.
func (a *Arena[T]) Slice() []T { return a.items }

func (a *Arena[T]) Len() uint32 { return uint32(len(a.items)) }
