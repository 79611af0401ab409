package sim

import "testing"

func TestSpatialGridInsertQuery(t *testing.T) {
	g := NewSpatialGrid(2048, 2048)
	a := &GameObject{ID: 1, Pos: Vector3{100, 100, 0}}
	b := &GameObject{ID: 2, Pos: Vector3{1900, 1900, 0}}
	g.Insert(a)
	g.Insert(b)

	got := g.QueryBuf(100, 100, 200, nil)
	if len(got) != 1 || got[0] != a {
		t.Fatalf("query near a returned %d results", len(got))
	}
	got = g.QueryBuf(1024, 1024, 2000, got[:0])
	if len(got) != 2 {
		t.Fatalf("wide query returned %d results, want 2", len(got))
	}
}

func TestSpatialGridClear(t *testing.T) {
	g := NewSpatialGrid(2048, 2048)
	g.Insert(&GameObject{ID: 1, Pos: Vector3{100, 100, 0}})
	g.Clear()
	if got := g.QueryBuf(100, 100, 500, nil); len(got) != 0 {
		t.Errorf("cleared grid returned %d results", len(got))
	}
}

func TestSpatialGridClampsOffMapPositions(t *testing.T) {
	g := NewSpatialGrid(2048, 2048)
	g.Insert(&GameObject{ID: 1, Pos: Vector3{-500, 5000, 0}})
	// Must not panic, and a border query should still find it.
	got := g.QueryBuf(0, 2047, 600, nil)
	if len(got) != 1 {
		t.Errorf("clamped object not found: %d results", len(got))
	}
}
