package asyncbridge

// queue is a FIFO queue backed by two slices.
// Push appends to tail. Pop consumes head and, once head is drained, swaps
// head and tail so that both backing arrays are reused.
type queue[E any] struct {
	head []E
	i    int // index of the next element in head
	tail []E
}

func (q *queue[E]) Empty() bool {
	return q.i == len(q.head) && len(q.tail) == 0
}

func (q *queue[E]) Len() int {
	return len(q.head) - q.i + len(q.tail)
}

func (q *queue[E]) Push(v E) {
	q.tail = append(q.tail, v)
}

// Pop removes and returns the first element.
// Pop panics if q is empty.
func (q *queue[E]) Pop() (v E) {
	if q.i == len(q.head) {
		q.head, q.tail = q.tail, q.head[:0]
		q.i = 0
	}

	q.head[q.i], v = v, q.head[q.i]
	q.i++

	return v
}

// Clear drops every element.
func (q *queue[E]) Clear() {
	clear(q.head)
	clear(q.tail)
	q.head, q.tail = q.head[:0], q.tail[:0]
	q.i = 0
}
