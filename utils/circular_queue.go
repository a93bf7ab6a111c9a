package utils

import (
	"iter"

	"github.com/oomph-ac/strafebot/oerror"
)

// CircularQueue is a fixed-capacity FIFO queue that overwrites its oldest element when full.
type CircularQueue[T any] struct {
	items []T
	head  int
	tail  int
	len   int
}

// NewCircularQueue returns an empty queue holding at most capacity elements.
func NewCircularQueue[T any](capacity int) *CircularQueue[T] {
	return &CircularQueue[T]{items: make([]T, max(capacity, 0))}
}

// Get returns the element at logical position index (0 = oldest), or an error if out of range.
func (q *CircularQueue[T]) Get(index int) (T, error) {
	var zero T
	if index < 0 || index >= q.len {
		return zero, oerror.New("circularQueue: get %d out of range [0, %d)", index, q.len)
	}
	return q.items[(q.head+index)%len(q.items)], nil
}

// Last returns the newest element. The boolean ok is false if the queue is empty.
func (q *CircularQueue[T]) Last() (item T, ok bool) {
	if q.len == 0 {
		return item, false
	}
	return q.items[(q.tail-1+len(q.items))%len(q.items)], true
}

// Iter yields the elements from oldest to newest.
func (q *CircularQueue[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := range q.len {
			if !yield(q.items[(q.head+index)%len(q.items)]) {
				return
			}
		}
	}
}

// Len returns the number of elements in the queue.
func (q *CircularQueue[T]) Len() int {
	return q.len
}

// Cap returns the maximum number of elements the queue can hold.
func (q *CircularQueue[T]) Cap() int {
	return len(q.items)
}

// Pop removes and returns the oldest element. The boolean ok is false if the
// queue is empty.
func (q *CircularQueue[T]) Pop() (item T, ok bool) {
	if q.len == 0 {
		return item, false
	}
	item = q.items[q.head]
	var zero T
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.len--
	return item, true
}

// Append appends an item, dropping the oldest one if the queue is full. It returns an error if the queue
// has zero capacity.
func (q *CircularQueue[T]) Append(item T) error {
	if len(q.items) == 0 {
		return oerror.New("circularQueue: append on zero-capacity queue")
	}
	q.items[q.tail] = item
	if q.len == len(q.items) {
		q.head = (q.head + 1) % len(q.items)
	} else {
		q.len++
	}
	q.tail = (q.tail + 1) % len(q.items)
	return nil
}

// Clear removes every element.
func (q *CircularQueue[T]) Clear() {
	clear(q.items)
	q.head, q.tail, q.len = 0, 0, 0
}
