package pathfinder

import "container/heap"

type queueItem struct {
	node int
	f    float64
	seq  uint64
}

// openSet orders items by f, then by insertion sequence.
type openSet []queueItem

func (q openSet) Len() int { return len(q) }

func (q openSet) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q openSet) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *openSet) Push(x any) { *q = append(*q, x.(queueItem)) }

func (q *openSet) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

type frontier struct {
	items openSet
	next  uint64
}

func (f *frontier) push(node int, score float64) {
	heap.Push(&f.items, queueItem{node: node, f: score, seq: f.next})
	f.next++
}

func (f *frontier) pop() (int, bool) {
	if f.items.Len() == 0 {
		return 0, false
	}
	item := heap.Pop(&f.items).(queueItem)
	return item.node, true
}
