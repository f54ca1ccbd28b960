package sequence

// Queue is an unbounded FIFO backed by a growable ring. The zero value is
// ready to use.
type Queue[T any] struct {
	buf   []T
	head  int
	count int
}

// NewQueue returns a queue with room for capacity items before it grows.
func NewQueue[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue[T]{buf: make([]T, capacity)}
}

func (q *Queue[T]) Push(value T) {
	if q.count == len(q.buf) {
		q.grow()
	}
	q.buf[(q.head+q.count)%len(q.buf)] = value
	q.count++
}

func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	value := q.buf[q.head]
	q.buf[q.head] = zero
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return value, true
}

func (q *Queue[T]) Len() int {
	return q.count
}

func (q *Queue[T]) IsEmpty() bool {
	return q.count == 0
}

// Reset drops every queued item and keeps the buffer.
func (q *Queue[T]) Reset() {
	clear(q.buf)
	q.head, q.count = 0, 0
}

func (q *Queue[T]) grow() {
	size := len(q.buf) * 2
	if size == 0 {
		size = 8
	}
	next := make([]T, size)
	for i := 0; i < q.count; i++ {
		next[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	q.buf = next
	q.head = 0
}
