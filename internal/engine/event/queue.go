// Package event passes results from worker goroutines to the render loop.
package event

// Queue is a bounded MPSC queue.
// Push never blocks: when the queue is full the value is rejected and
// Push reports false. Drain runs on the single consumer.
type Queue[T any] struct {
	ch chan T
}

// NewQueue returns a queue holding at most size values.
func NewQueue[T any](size int) *Queue[T] {
	return &Queue[T]{ch: make(chan T, max(size, 1))}
}

// Push enqueues v unless the queue is full.
func (q *Queue[T]) Push(v T) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// Drain calls fn for every queued value in FIFO order and returns how many
// it handled. Values pushed while fn runs are handled in the same call.
func (q *Queue[T]) Drain(fn func(T)) int {
	n := 0
	for {
		select {
		case v := <-q.ch:
			fn(v)
			n++
		default:
			return n
		}
	}
}

// Len returns the number of queued values.
func (q *Queue[T]) Len() int { return len(q.ch) }
