// Package domain contains the core domain models of the waterway routing engine.
package domain

import (
	"encoding/binary"
	"iter"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/paulmach/orb"
	"go.trai.ch/fairway/internal/core/geo"
)

// WaterwayKind is the OSM waterway tag of a way.
type WaterwayKind string

// Known waterway kinds.
const (
	WaterwayRiver        WaterwayKind = "river"
	WaterwayCanal        WaterwayKind = "canal"
	WaterwayFairway      WaterwayKind = "fairway"
	WaterwayStream       WaterwayKind = "stream"
	WaterwayTidalChannel WaterwayKind = "tidal_channel"
	WaterwayDitch        WaterwayKind = "ditch"
	WaterwayDrain        WaterwayKind = "drain"
	WaterwayFerry        WaterwayKind = "ferry"
	WaterwayUnknown      WaterwayKind = "unknown"
)

// Navigable reports whether boats can use a waterway of kind k.
func (k WaterwayKind) Navigable() bool {
	switch k {
	case WaterwayRiver, WaterwayCanal, WaterwayFairway,
		WaterwayStream, WaterwayTidalChannel,
		WaterwayDitch, WaterwayDrain, WaterwayFerry:
		return true
	default:
		return false
	}
}

// WaterwayPenalties multiplies edge lengths by kind to bias the search away from
// minor waterways. Kinds without an entry, and multipliers below 1, count as 1, so
// a nil table searches on length alone.
type WaterwayPenalties map[WaterwayKind]float64

// For returns the multiplier for kind.
func (p WaterwayPenalties) For(kind WaterwayKind) float64 {
	if v, ok := p[kind]; ok && v > 1 {
		return v
	}
	return 1
}

// SuggestedPenalties is an opt-in table preferring main waterways.
var SuggestedPenalties = WaterwayPenalties{
	WaterwayStream:       2.0,
	WaterwayTidalChannel: 2.0,
	WaterwayDitch:        10.0,
	WaterwayDrain:        10.0,
	WaterwayFerry:        1.5,
}

// OnewayDirection restricts traversal of a way.
type OnewayDirection int

const (
	// OnewayNo allows both directions.
	OnewayNo OnewayDirection = iota
	// OnewayForward allows travel in vertex order only.
	OnewayForward
	// OnewayBackward allows travel against vertex order only.
	OnewayBackward
)

// ParseOneway interprets an OSM oneway tag value.
func ParseOneway(v string) OnewayDirection {
	switch v {
	case "yes", "1", "true":
		return OnewayForward
	case "-1":
		return OnewayBackward
	default:
		return OnewayNo
	}
}

// Way is a waterway polyline returned by a geodata source.
type Way struct {
	ID     int64           `json:"id"`
	Kind   WaterwayKind    `json:"kind"`
	Name   string          `json:"name,omitempty"`
	Oneway OnewayDirection `json:"oneway,omitempty"`
	Points []orb.Point     `json:"points"`
}

// Node is a graph vertex. Its ID is its index in Graph.Nodes.
type Node struct {
	ID    int
	Point orb.Point
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From         int
	To           int
	WeightMeters float64
	Cost         float64
	Kind         WaterwayKind
}

// Graph is a directed weighted waterway graph for one region.
// Nodes are stored in first-seen order so every scan over them is deterministic.
type Graph struct {
	Nodes     []Node
	adjacency [][]Edge
	index     map[orb.Point]int
	edges     int
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		index: make(map[orb.Point]int),
	}
}

// BuildGraph creates a graph from ways. Vertices are deduplicated by coordinate
// identity; consecutive vertices are joined with haversine-weighted edges in both
// directions unless the way is one-way. Ways of non-navigable kinds are skipped.
// Edge cost equals edge length.
func BuildGraph(ways []Way) *Graph {
	return BuildGraphWith(ways, nil)
}

// BuildGraphWith is BuildGraph with edge costs scaled by penalties.
func BuildGraphWith(ways []Way, penalties WaterwayPenalties) *Graph {
	g := NewGraph()
	for _, w := range ways {
		if !w.Kind.Navigable() {
			continue
		}
		penalty := penalties.For(w.Kind)
		for i := 1; i < len(w.Points); i++ {
			a := g.AddNode(w.Points[i-1])
			b := g.AddNode(w.Points[i])
			if a == b {
				continue
			}
			dist := geo.HaversineMeters(w.Points[i-1], w.Points[i])
			if w.Oneway != OnewayBackward {
				g.AddEdge(Edge{From: a, To: b, WeightMeters: dist, Cost: dist * penalty, Kind: w.Kind})
			}
			if w.Oneway != OnewayForward {
				g.AddEdge(Edge{From: b, To: a, WeightMeters: dist, Cost: dist * penalty, Kind: w.Kind})
			}
		}
	}
	return g
}

// AddNode returns the id of the node at p, creating it if needed.
func (g *Graph) AddNode(p orb.Point) int {
	if id, ok := g.index[p]; ok {
		return id
	}
	id := len(g.Nodes)
	g.Nodes = append(g.Nodes, Node{ID: id, Point: p})
	g.adjacency = append(g.adjacency, nil)
	g.index[p] = id
	return id
}

// AddEdge appends a directed edge. Both endpoints must exist.
func (g *Graph) AddEdge(e Edge) {
	g.adjacency[e.From] = append(g.adjacency[e.From], e)
	g.edges++
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	if g == nil {
		return 0
	}
	return len(g.Nodes)
}

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int {
	if g == nil {
		return 0
	}
	return g.edges
}

// Empty reports whether the graph has no nodes.
func (g *Graph) Empty() bool {
	return g.NodeCount() == 0
}

// Node returns the node with the given id.
func (g *Graph) Node(id int) Node {
	return g.Nodes[id]
}

// Neighbors yields the outgoing edges of a node in insertion order.
func (g *Graph) Neighbors(id int) iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, e := range g.adjacency[id] {
			if !yield(e) {
				return
			}
		}
	}
}

// Fingerprint hashes nodes and edges in storage order.
// Graphs built from identical input have identical fingerprints.
func (g *Graph) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8]byte
	put := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
	for _, n := range g.Nodes {
		put(n.Point.Lon())
		put(n.Point.Lat())
		for _, e := range g.adjacency[n.ID] {
			binary.LittleEndian.PutUint64(buf[:], uint64(e.To))
			_, _ = h.Write(buf[:])
			put(e.Cost)
			_, _ = h.WriteString(string(e.Kind))
		}
	}
	return h.Sum64()
}
