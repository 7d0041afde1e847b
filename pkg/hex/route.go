package hex

import (
	"container/heap"

	"github.com/zyedidia/generic/mapset"
)

// Route computes a shortest path between two positions with A*.
// passable decides whether a position may be entered; start is always
// allowed. Returns the path including start and goal, or nil if no path
// exists. The caller bounds the search through passable.
func Route(start, goal Position, passable func(p Position) bool) []Position {
	if start == goal {
		return []Position{start}
	}
	if passable == nil || !passable(goal) {
		return nil
	}

	open := &nodePQ{}
	heap.Init(open)
	push := func(p Position, f int) { heap.Push(open, &pqNode{p: p, f: f}) }

	g := map[Position]int{start: 0}
	came := map[Position]Position{}
	closed := mapset.New[Position]()
	push(start, Distance(start, goal))

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pqNode).p
		if closed.Has(cur) {
			continue
		}
		closed.Put(cur)
		if cur == goal {
			path := []Position{goal}
			for k := goal; k != start; {
				k = came[k]
				path = append(path, k)
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}
		for _, nb := range Neighbors(cur) {
			if closed.Has(nb) || !passable(nb) {
				continue
			}
			tentative := g[cur] + 1
			old, ok := g[nb]
			if !ok || tentative < old {
				g[nb] = tentative
				came[nb] = cur
				push(nb, tentative+Distance(nb, goal))
			}
		}
	}
	return nil
}

type pqNode struct {
	p Position
	f int
}

type nodePQ []*pqNode

func (q nodePQ) Len() int           { return len(q) }
func (q nodePQ) Less(i, j int) bool { return q[i].f < q[j].f }
func (q nodePQ) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *nodePQ) Push(x any)        { *q = append(*q, x.(*pqNode)) }
func (q *nodePQ) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}
