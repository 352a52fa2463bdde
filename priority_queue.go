package osmalt

import (
	"container/heap"
)

// nodeQueue is an addressable min-heap over dense node identifiers.
// Position of every node inside the heap is tracked, so decrease-key is done
// with heap.Fix in O(log n) instead of remove-then-reinsert.
//
// Ties are broken by node identifier which gives a consistent total order.
type nodeQueue struct {
	items    []NodeID
	index    []int    // position in items; -1 when node is not in the heap
	priority []Weight // current priority by node
}

func newNodeQueue(nodesNum int) *nodeQueue {
	q := &nodeQueue{
		items:    make([]NodeID, 0, 64),
		index:    make([]int, nodesNum),
		priority: make([]Weight, nodesNum),
	}
	for i := range q.index {
		q.index[i] = -1
	}
	return q
}

// Implements heap.Interface
func (q *nodeQueue) Len() int { return len(q.items) }
func (q *nodeQueue) Less(i, j int) bool {
	a, b := q.items[i], q.items[j]
	if q.priority[a] != q.priority[b] {
		return q.priority[a] < q.priority[b]
	}
	return a < b
}
func (q *nodeQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.index[q.items[i]] = i
	q.index[q.items[j]] = j
}
func (q *nodeQueue) Push(x any) {
	id := x.(NodeID)
	q.index[id] = len(q.items)
	q.items = append(q.items, id)
}
func (q *nodeQueue) Pop() any {
	n := len(q.items)
	id := q.items[n-1]
	q.items = q.items[:n-1]
	q.index[id] = -1
	return id
}

// contains checks if node is currently in the heap
func (q *nodeQueue) contains(id NodeID) bool {
	return q.index[id] >= 0
}

// push inserts node or, when it is already in the heap, changes its priority
func (q *nodeQueue) push(id NodeID, priority Weight) {
	q.priority[id] = priority
	if q.contains(id) {
		heap.Fix(q, q.index[id])
		return
	}
	heap.Push(q, id)
}

// popMin extracts node with the smallest priority
func (q *nodeQueue) popMin() NodeID {
	return heap.Pop(q).(NodeID)
}
