package sequence

import "container/heap"

// PriorityItem is a queued value with its cost. Lower costs dequeue first.
type PriorityItem[T any] struct {
	Value T
	Cost  int
	order int
	index int
}

type priorityQueue[T any] struct {
	items []*PriorityItem[T]
	seq   int
}

func (pq *priorityQueue[T]) Len() int {
	return len(pq.items)
}

// Less breaks cost ties by insertion order so equal-cost items come out FIFO.
func (pq *priorityQueue[T]) Less(i, j int) bool {
	a, b := pq.items[i], pq.items[j]
	if a.Cost != b.Cost {
		return a.Cost < b.Cost
	}
	return a.order < b.order
}

func (pq *priorityQueue[T]) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.items[i].index = i
	pq.items[j].index = j
}

func (pq *priorityQueue[T]) Push(x any) {
	item := x.(*PriorityItem[T])
	item.index = len(pq.items)
	item.order = pq.seq
	pq.seq++
	pq.items = append(pq.items, item)
}

func (pq *priorityQueue[T]) Pop() any {
	old := pq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	pq.items = old[0 : n-1]
	return item
}

// PriorityQueue is a min-heap keyed by cost.
type PriorityQueue[T any] struct {
	pq priorityQueue[T]
}

func NewPriorityQueue[T any]() *PriorityQueue[T] {
	pq := &PriorityQueue[T]{}
	heap.Init(&pq.pq)
	return pq
}

func (pq *PriorityQueue[T]) Enqueue(value T, cost int) *PriorityItem[T] {
	item := &PriorityItem[T]{Value: value, Cost: cost}
	heap.Push(&pq.pq, item)
	return item
}

func (pq *PriorityQueue[T]) Dequeue() (T, bool) {
	if pq.pq.Len() == 0 {
		var zero T
		return zero, false
	}
	item := heap.Pop(&pq.pq).(*PriorityItem[T])
	return item.Value, true
}

func (pq *PriorityQueue[T]) Peek() (T, bool) {
	if pq.pq.Len() == 0 {
		var zero T
		return zero, false
	}
	return pq.pq.items[0].Value, true
}

func (pq *PriorityQueue[T]) Len() int {
	return pq.pq.Len()
}

func (pq *PriorityQueue[T]) IsEmpty() bool {
	return pq.pq.Len() == 0
}
