// Package queue defines a generic FIFO queue used by graph traversals.
package queue

// Queue is a FIFO queue. Zero value is an empty queue ready to use.
type Queue[T any] struct {
	items []T
	head  int
}

func New[T any](items ...T) *Queue[T] {
	return &Queue[T]{items: append([]T(nil), items...)}
}

func (q *Queue[T]) IsEmpty() bool {
	return q.head >= len(q.items)
}

func (q *Queue[T]) Len() int {
	return len(q.items) - q.head
}

// Items returns queued items from first to last.
func (q *Queue[T]) Items() []T {
	return append([]T(nil), q.items[q.head:]...)
}

func (q *Queue[T]) Append(items ...T) *Queue[T] {
	if q.head > 0 && q.head*2 >= len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	q.items = append(q.items, items...)
	return q
}

// First removes and returns the first item; ok is false if the queue is empty.
func (q *Queue[T]) First() (item T, ok bool) {
	if q.IsEmpty() {
		return item, false
	}

	var zero T
	item = q.items[q.head]
	q.items[q.head] = zero
	q.head++
	return item, true
}

// Peek returns the first item without removing it.
func (q *Queue[T]) Peek() (item T, ok bool) {
	if q.IsEmpty() {
		return item, false
	}
	return q.items[q.head], true
}
