package core

import "testing"

func TestByteGridIndexAndCount(t *testing.T) {
	g := NewByteGrid(4, 3)
	if len(g.Cells()) != 12 {
		t.Fatalf("expected 12 cells, got %d", len(g.Cells()))
	}
	g.Cells()[g.Index(3, 2)] = 7
	g.Cells()[g.Index(0, 1)] = 7
	if g.At(3, 2) != 7 {
		t.Fatalf("expected value at (3,2), got %d", g.At(3, 2))
	}
	counts := g.Count()
	if counts[7] != 2 || counts[0] != 10 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestNewGridClampsDimensions(t *testing.T) {
	if s := NewByteGrid(0, -2).Size(); s.W != 1 || s.H != 1 {
		t.Fatalf("expected 1x1 byte grid, got %+v", s)
	}
	if s := NewFloatGrid(-1, 0).Size(); s.W != 1 || s.H != 1 {
		t.Fatalf("expected 1x1 float grid, got %+v", s)
	}
}

func TestFloatGridCloneIsIndependent(t *testing.T) {
	g := NewFloatGrid(2, 2)
	g.Set(1, 1, 0.5)
	c := g.Clone()
	c.Set(1, 1, -1)
	if g.At(1, 1) != 0.5 {
		t.Fatalf("clone mutation leaked into source: %f", g.At(1, 1))
	}
	if c.At(1, 1) != -1 {
		t.Fatalf("clone did not keep its own value: %f", c.At(1, 1))
	}
}
