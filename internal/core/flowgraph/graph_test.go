package flowgraph

import (
	"errors"
	"math"
	"testing"

	"paxflow/internal/domain"
)

func TestAddNodeIsIdempotent(t *testing.T) {
	g := New()

	first := g.AddNode("Asia")
	second := g.AddNode("Asia")

	if first != second {
		t.Errorf("expected same id, got %d and %d", first, second)
	}
	if g.NodeCount() != 1 {
		t.Errorf("expected 1 node, got %d", g.NodeCount())
	}
}

func TestAddFlowAccumulates(t *testing.T) {
	g := New()
	g.AddFlow("US", "Asia", 10)
	g.AddFlow("US", "Asia", 5)
	g.AddFlow("Asia", "US", 3)

	if g.EdgeCount() != 2 {
		t.Errorf("expected 2 edges, got %d", g.EdgeCount())
	}
	if w, _ := g.Weight("US", "Asia"); w != 15 {
		t.Errorf("expected 15, got %d", w)
	}
	if g.TotalWeight() != 18 {
		t.Errorf("expected total 18, got %d", g.TotalWeight())
	}
}

func TestWeightMissing(t *testing.T) {
	g := New()
	g.AddFlow("US", "Asia", 1)

	if _, ok := g.Weight("Asia", "US"); ok {
		t.Error("expected no reverse edge")
	}
	if _, ok := g.Weight("US", "Europe"); ok {
		t.Error("expected unknown label to miss")
	}
}

func TestEdgesReturnsCopy(t *testing.T) {
	g := New()
	g.AddFlow("US", "Asia", 1)

	edges := g.Edges()
	edges[0].Weight = 99

	if w, _ := g.Weight("US", "Asia"); w != 1 {
		t.Errorf("expected graph to be unaffected, got %d", w)
	}
}

func TestAddFlowRejectsOverflow(t *testing.T) {
	g := New()
	if err := g.AddFlow("US", "Asia", math.MaxUint64); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := g.AddFlow("US", "Asia", 2)
	var overflow *domain.CountOverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("expected CountOverflowError, got %v", err)
	}
	if overflow.Key != "US->Asia" || overflow.Total != math.MaxUint64 || overflow.Add != 2 {
		t.Errorf("unexpected overflow detail %+v", overflow)
	}
	if w, _ := g.Weight("US", "Asia"); w != math.MaxUint64 {
		t.Errorf("expected edge unchanged after overflow, got %d", w)
	}
}

func TestTotalWeightSaturates(t *testing.T) {
	g := New()
	g.AddFlow("US", "Asia", math.MaxUint64)
	g.AddFlow("Asia", "US", 1)

	if g.TotalWeight() != math.MaxUint64 {
		t.Errorf("expected saturated total, got %d", g.TotalWeight())
	}
}
