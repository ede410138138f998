// Package flowgraph builds the passenger flow graph between the domestic
// anchor and geographic regions, and scores nodes by flow-weighted degree
// centrality.
package flowgraph

import (
	"fmt"
	"math/bits"

	"paxflow/internal/domain"
)

// DefaultAnchor is the domestic node every regional flow is measured against
const DefaultAnchor = "US"

// Builder classifies activity records into anchor/region flows
type Builder struct {
	Anchor string
}

// NewBuilder creates a builder for anchor, falling back to DefaultAnchor
func NewBuilder(anchor string) *Builder {
	if anchor == "" {
		anchor = DefaultAnchor
	}
	return &Builder{Anchor: anchor}
}

// BuildResult is a finished graph plus the number of records left out of it
type BuildResult struct {
	Graph   *FlowGraph
	Skipped int
}

// Build accumulates records into a new graph. Records of unknown activity
// type are skipped. The combined weight of all flows must fit in a uint64,
// otherwise Build returns *domain.CountOverflowError.
func (b *Builder) Build(records []domain.ActivityRecord) (*BuildResult, error) {
	g := New()
	skipped := 0
	var total, carry uint64

	for i, rec := range records {
		from, to, ok := b.classify(rec)
		if !ok {
			skipped++
			continue
		}
		if total, carry = bits.Add64(total, rec.PassengerCount, 0); carry != 0 {
			return nil, fmt.Errorf("record %d: %w", i, &domain.CountOverflowError{
				Key:   "flow graph",
				Total: g.TotalWeight(),
				Add:   rec.PassengerCount,
			})
		}
		if err := g.AddFlow(from, to, rec.PassengerCount); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	return &BuildResult{Graph: g, Skipped: skipped}, nil
}

func (b *Builder) classify(rec domain.ActivityRecord) (from, to string, ok bool) {
	switch rec.ActivityType {
	case domain.ActivityEnplaned:
		return b.Anchor, rec.GeoRegion, true
	case domain.ActivityDeplaned:
		return rec.GeoRegion, b.Anchor, true
	case domain.ActivityThruTransit:
		return b.Anchor, b.Anchor, true
	default:
		return "", "", false
	}
}
