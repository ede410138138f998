package flowgraph

import (
	"sort"

	"paxflow/internal/domain"
)

// CentralityTable maps node label to flow-weighted degree centrality
type CentralityTable map[string]float64

// RankedNode is a node label with its centrality score
type RankedNode struct {
	Label string
	Score float64
}

// Score computes flow-weighted degree centrality for every node: the sum of
// incident edge weights divided by (node count - 1). Unlike topological degree
// centrality this counts passengers, not edges.
func Score(g *FlowGraph) (CentralityTable, error) {
	n := g.NodeCount()
	if n == 1 {
		return nil, &domain.UndefinedCentralityError{Nodes: n}
	}

	table := make(CentralityTable, n)
	if n == 0 {
		return table, nil
	}

	denom := float64(n - 1)
	for i := 0; i < n; i++ {
		id := NodeID(i)
		table[g.Label(id)] = g.incidentWeight(id) / denom
	}

	return table, nil
}

// Ranked returns entries sorted by score descending, label ascending on ties
func (t CentralityTable) Ranked() []RankedNode {
	ranked := make([]RankedNode, 0, len(t))
	for label, score := range t {
		ranked = append(ranked, RankedNode{Label: label, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Label < ranked[j].Label
	})

	return ranked
}
