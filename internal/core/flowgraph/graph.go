package flowgraph

import (
	"math"
	"math/bits"

	"paxflow/internal/domain"
)

// NodeID is a dense interned node identifier
type NodeID int

// Node is a region label with its interned id
type Node struct {
	ID    NodeID
	Label string
}

// Edge is an accumulated origin -> destination passenger flow
type Edge struct {
	From   NodeID
	To     NodeID
	Weight uint64
}

type edgeKey struct {
	from, to NodeID
}

// FlowGraph is a directed graph of passenger flow with at most one edge per
// ordered node pair. Labels are interned to dense ids on first use.
type FlowGraph struct {
	labels []string
	ids    map[string]NodeID

	edges     []Edge
	edgeIndex map[edgeKey]int

	// per-node edge indexes into edges
	out [][]int
	in  [][]int
}

// New creates an empty flow graph
func New() *FlowGraph {
	return &FlowGraph{
		ids:       make(map[string]NodeID),
		edgeIndex: make(map[edgeKey]int),
	}
}

// AddNode interns label and returns its id. Adding an existing label returns
// the id it already has.
func (g *FlowGraph) AddNode(label string) NodeID {
	if id, ok := g.ids[label]; ok {
		return id
	}
	id := NodeID(len(g.labels))
	g.labels = append(g.labels, label)
	g.ids[label] = id
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return id
}

// AddFlow adds weight to the from -> to edge, creating nodes and the edge as
// needed. A sum that would wrap returns *domain.CountOverflowError and leaves
// the edge unchanged.
func (g *FlowGraph) AddFlow(from, to string, weight uint64) error {
	fromID := g.AddNode(from)
	toID := g.AddNode(to)

	key := edgeKey{fromID, toID}
	if idx, ok := g.edgeIndex[key]; ok {
		sum, carry := bits.Add64(g.edges[idx].Weight, weight, 0)
		if carry != 0 {
			return &domain.CountOverflowError{Key: from + "->" + to, Total: g.edges[idx].Weight, Add: weight}
		}
		g.edges[idx].Weight = sum
		return nil
	}

	idx := len(g.edges)
	g.edges = append(g.edges, Edge{From: fromID, To: toID, Weight: weight})
	g.edgeIndex[key] = idx
	g.out[fromID] = append(g.out[fromID], idx)
	g.in[toID] = append(g.in[toID], idx)
	return nil
}

// NodeID looks up the id for label
func (g *FlowGraph) NodeID(label string) (NodeID, bool) {
	id, ok := g.ids[label]
	return id, ok
}

// Label returns the label for id
func (g *FlowGraph) Label(id NodeID) string {
	return g.labels[id]
}

// Weight returns the accumulated weight of the from -> to edge
func (g *FlowGraph) Weight(from, to string) (uint64, bool) {
	fromID, ok := g.ids[from]
	if !ok {
		return 0, false
	}
	toID, ok := g.ids[to]
	if !ok {
		return 0, false
	}
	idx, ok := g.edgeIndex[edgeKey{fromID, toID}]
	if !ok {
		return 0, false
	}
	return g.edges[idx].Weight, true
}

// Nodes returns all nodes in id order
func (g *FlowGraph) Nodes() []Node {
	nodes := make([]Node, len(g.labels))
	for i, label := range g.labels {
		nodes[i] = Node{ID: NodeID(i), Label: label}
	}
	return nodes
}

// Edges returns all edges in creation order
func (g *FlowGraph) Edges() []Edge {
	edges := make([]Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// NodeCount returns the number of distinct nodes
func (g *FlowGraph) NodeCount() int {
	return len(g.labels)
}

// EdgeCount returns the number of distinct ordered pairs
func (g *FlowGraph) EdgeCount() int {
	return len(g.edges)
}

// TotalWeight sums every edge weight, saturating at math.MaxUint64
func (g *FlowGraph) TotalWeight() uint64 {
	var total, carry uint64
	for _, e := range g.edges {
		total, carry = bits.Add64(total, e.Weight, 0)
		if carry != 0 {
			return math.MaxUint64
		}
	}
	return total
}

// incidentWeight sums incoming and outgoing weights for id. A self-loop
// appears in both lists and so counts twice. The sum is taken in float64,
// where it cannot wrap.
func (g *FlowGraph) incidentWeight(id NodeID) float64 {
	var total float64
	for _, idx := range g.out[id] {
		total += float64(g.edges[idx].Weight)
	}
	for _, idx := range g.in[id] {
		total += float64(g.edges[idx].Weight)
	}
	return total
}
