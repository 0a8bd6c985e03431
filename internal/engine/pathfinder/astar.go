// Package pathfinder finds waterway paths over region graphs with A*.
package pathfinder

import (
	"math"
	"slices"

	"github.com/paulmach/orb"
	"go.trai.ch/fairway/internal/core/domain"
	"go.trai.ch/fairway/internal/core/geo"
)

// NearestNode returns the node closest to p. Ties keep the earliest node.
func NearestNode(g *domain.Graph, p orb.Point) (int, bool) {
	if g.Empty() {
		return 0, false
	}
	best, bestDist := 0, math.Inf(1)
	for _, n := range g.Nodes {
		if d := geo.HaversineMeters(p, n.Point); d < bestDist {
			best, bestDist = n.ID, d
		}
	}
	return best, true
}

// FindPath snaps start and end to their nearest nodes and runs A* between them.
// It returns the node coordinates of the cheapest path and its length in metres.
// Without penalties the cheapest path is the shortest one.
// ok is false when the graph is empty or the nodes are not connected.
func FindPath(g *domain.Graph, start, end orb.Point) (orb.LineString, float64, bool) {
	from, ok := NearestNode(g, start)
	if !ok {
		return nil, 0, false
	}
	to, _ := NearestNode(g, end)

	nodes, meters, ok := search(g, from, to)
	if !ok {
		return nil, 0, false
	}

	line := make(orb.LineString, len(nodes))
	for i, id := range nodes {
		line[i] = g.Node(id).Point
	}
	return line, meters, true
}

// search minimises edge cost; the heuristic is the straight-line distance to the goal,
// which never exceeds the remaining cost because every penalty is at least 1.
// The heap orders ties by insertion, so equal-cost paths resolve deterministically.
func search(g *domain.Graph, from, to int) ([]int, float64, bool) {
	n := g.NodeCount()
	goal := g.Node(to).Point

	cost := make([]float64, n)
	meters := make([]float64, n)
	prev := make([]int, n)
	closed := make([]bool, n)
	for i := range cost {
		cost[i] = math.Inf(1)
		prev[i] = -1
	}

	cost[from] = 0
	open := &frontier{}
	open.push(from, geo.HaversineMeters(g.Node(from).Point, goal))

	for {
		cur, ok := open.pop()
		if !ok {
			return nil, 0, false
		}
		if closed[cur] {
			continue
		}
		if cur == to {
			break
		}
		closed[cur] = true

		for e := range g.Neighbors(cur) {
			if closed[e.To] {
				continue
			}
			tentative := cost[cur] + e.Cost
			if tentative < cost[e.To] {
				cost[e.To] = tentative
				meters[e.To] = meters[cur] + e.WeightMeters
				prev[e.To] = cur
				open.push(e.To, tentative+geo.HaversineMeters(g.Node(e.To).Point, goal))
			}
		}
	}

	var path []int
	for at := to; at != -1; at = prev[at] {
		path = append(path, at)
	}
	slices.Reverse(path)
	return path, meters[to], true
}
