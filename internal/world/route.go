package world

import "container/heap"

// ShortestRoute returns the cheapest path from src to dst, both endpoints
// included, using squared distance as edge cost. It returns [src] when
// src == dst and nil when dst is unreachable or either ID is unknown.
//
// Ties: frontier entries of equal cost are popped in the order they were
// pushed, neighbours are expanded in connection order, and a node's
// predecessor is only replaced by a strictly cheaper path. The result is
// therefore a pure function of the graph's insertion order.
func (g *Galaxy) ShortestRoute(src, dst LocationID) []LocationID {
	if g.Get(src) == nil || g.Get(dst) == nil {
		return nil
	}
	if src == dst {
		return []LocationID{src}
	}

	dist := map[LocationID]float64{src: 0}
	prev := make(map[LocationID]LocationID)
	done := make(map[LocationID]bool)

	var seq uint64
	pq := &routeQueue{{id: src, cost: 0, seq: seq}}
	heap.Init(pq)

	found := false
	for pq.Len() > 0 {
		item := heap.Pop(pq).(routeItem)
		if done[item.id] {
			continue
		}
		done[item.id] = true
		if item.id == dst {
			found = true
			break
		}

		from := g.Get(item.id)
		for _, next := range from.Connections {
			if done[next] {
				continue
			}
			nd := item.cost + from.Coord.SquareDistance(g.Get(next).Coord)
			if d, ok := dist[next]; !ok || nd < d {
				dist[next] = nd
				prev[next] = item.id
				seq++
				heap.Push(pq, routeItem{id: next, cost: nd, seq: seq})
			}
		}
	}
	if !found {
		return nil
	}

	var route []LocationID
	for at := dst; ; at = prev[at] {
		route = append(route, at)
		if at == src {
			break
		}
	}
	for i, j := 0, len(route)-1; i < j; i, j = i+1, j-1 {
		route[i], route[j] = route[j], route[i]
	}
	return route
}

// RouteCost sums the edge costs along a route. Routes of fewer than two
// locations cost nothing.
func (g *Galaxy) RouteCost(route []LocationID) float64 {
	cost := 0.0
	for i := 1; i < len(route); i++ {
		cost += g.EdgeCost(route[i-1], route[i])
	}
	return cost
}

// IsContiguous reports whether each consecutive pair of the route is linked.
func (g *Galaxy) IsContiguous(route []LocationID) bool {
	for i := 1; i < len(route); i++ {
		l := g.Get(route[i-1])
		if l == nil || !l.IsConnected(route[i]) {
			return false
		}
	}
	return true
}

// Priority queue for route search, ordered by cost then push order.
type routeItem struct {
	id   LocationID
	cost float64
	seq  uint64
}

type routeQueue []routeItem

func (pq routeQueue) Len() int { return len(pq) }
func (pq routeQueue) Less(i, j int) bool {
	if pq[i].cost != pq[j].cost {
		return pq[i].cost < pq[j].cost
	}
	return pq[i].seq < pq[j].seq
}
func (pq routeQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *routeQueue) Push(x interface{}) { *pq = append(*pq, x.(routeItem)) }
func (pq *routeQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
