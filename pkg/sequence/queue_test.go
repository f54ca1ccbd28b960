package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueueFIFOAcrossGrowth(t *testing.T) {
	var q Queue[int]
	for i := 0; i < 20; i++ {
		q.Push(i)
		if i%3 == 0 {
			v, ok := q.Pop()
			assert.True(t, ok)
			assert.Equal(t, i/3, v)
		}
	}

	prev := -1
	for !q.IsEmpty() {
		v, ok := q.Pop()
		assert.True(t, ok)
		assert.Greater(t, v, prev)
		prev = v
	}
	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestPriorityQueueLowestCostFirst(t *testing.T) {
	pq := NewPriorityQueue[string]()
	pq.Enqueue("far", 9)
	pq.Enqueue("near", 1)
	pq.Enqueue("mid-a", 4)
	pq.Enqueue("mid-b", 4)

	peek, _ := pq.Peek()
	assert.Equal(t, "near", peek)

	var order []string
	for !pq.IsEmpty() {
		v, _ := pq.Dequeue()
		order = append(order, v)
	}
	assert.Equal(t, []string{"near", "mid-a", "mid-b", "far"}, order)
}

func TestQueueResetKeepsCapacity(t *testing.T) {
	q := NewQueue[int](4)
	for i := 0; i < 3; i++ {
		q.Push(i)
	}
	q.Reset()
	assert.True(t, q.IsEmpty())

	q.Push(9)
	v, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 9, v)
	assert.Len(t, q.buf, 4)
}
