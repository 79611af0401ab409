package sim

import "testing"

func TestTerrainFlatHeight(t *testing.T) {
	terr := NewTerrain(8, 8, 50)
	if got := terr.Height(0, 0); got != 50 {
		t.Errorf("corner height = %d", got)
	}
	if got := terr.Height(500, 700); got != 50 {
		t.Errorf("interior height = %d", got)
	}
}

func TestTerrainBilinearSlope(t *testing.T) {
	terr := NewTerrain(8, 8, 0)
	// Raise the east edge of tile (0,0) to 128: height ramps with x.
	terr.SetVertexHeight(1, 0, 128)
	terr.SetVertexHeight(1, 1, 128)

	if got := terr.Height(0, 64); got != 0 {
		t.Errorf("west edge = %d, want 0", got)
	}
	if got := terr.Height(64, 64); got != 64 {
		t.Errorf("tile middle = %d, want 64", got)
	}
	if got := terr.Height(128, 64); got != 128 {
		t.Errorf("east edge = %d, want 128", got)
	}
}

func TestTerrainRaiseArea(t *testing.T) {
	terr := NewTerrain(8, 8, 10)
	terr.RaiseArea(2, 2, 4, 4, 200)
	if got := terr.Height(3*TileUnits, 3*TileUnits); got != 200 {
		t.Errorf("raised area height = %d, want 200", got)
	}
	if got := terr.Height(0, 0); got != 10 {
		t.Errorf("untouched height = %d, want 10", got)
	}
	// RaiseArea never lowers.
	terr.RaiseArea(2, 2, 4, 4, 50)
	if got := terr.Height(3*TileUnits, 3*TileUnits); got != 200 {
		t.Errorf("height after lower attempt = %d, want 200", got)
	}
}

func TestTerrainOnMap(t *testing.T) {
	terr := NewTerrain(8, 8, 0)
	if !terr.OnMap(0, 0) {
		t.Error("origin should be on map")
	}
	if !terr.OnMap(1023, 1023) {
		t.Error("last unit should be on map")
	}
	if terr.OnMap(1024, 0) || terr.OnMap(0, 1024) || terr.OnMap(-1, 0) {
		t.Error("out-of-range positions reported on map")
	}
}
