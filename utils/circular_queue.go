package utils

import (
	"iter"

	"github.com/oomph-ac/locomotion/oerror"
)

// CircularQueue is a fixed-capacity ring buffer. Appending to a full queue drops the oldest element.
type CircularQueue[T any] struct {
	items []T
	head  int
	tail  int
	size  int
}

// NewCircularQueue returns an empty queue holding at most capacity items.
func NewCircularQueue[T any](capacity int) *CircularQueue[T] {
	return &CircularQueue[T]{items: make([]T, max(capacity, 0))}
}

// Last returns the newest element. The boolean ok is false if the queue is empty.
func (q *CircularQueue[T]) Last() (item T, ok bool) {
	if q.size == 0 {
		return item, false
	}
	return q.items[(q.head+q.size-1)%len(q.items)], true
}

// Iter iterates the elements from oldest to newest.
func (q *CircularQueue[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := range q.size {
			if !yield(q.items[(q.head+index)%len(q.items)]) {
				return
			}
		}
	}
}

// Len returns the number of items in the queue.
func (q *CircularQueue[T]) Len() int {
	return q.size
}

// Cap returns the maximum number of items the queue can hold.
func (q *CircularQueue[T]) Cap() int {
	return len(q.items)
}

// Append appends an item or returns an error if the queue has zero capacity.
func (q *CircularQueue[T]) Append(item T) error {
	if len(q.items) == 0 {
		return oerror.New("circularqueue: append on zero-capacity queue")
	}

	q.items[q.tail] = item
	if q.size == len(q.items) {
		// Full: the oldest element at head is overwritten.
		q.head = (q.head + 1) % len(q.items)
	} else {
		q.size++
	}
	q.tail = (q.tail + 1) % len(q.items)
	return nil
}
