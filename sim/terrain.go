package sim

const (
	// TileUnits is the width of one heightmap tile in world units.
	TileUnits = 128

	// NoHit is returned by LineIntersect when the segment clears the terrain.
	NoHit = ^uint32(0)
)

// Terrain is the static heightmap the projectile core collides against.
// Heights are stored per tile vertex; queries interpolate between them.
type Terrain struct {
	width, height int // in tiles
	heights       []int32
}

// NewTerrain creates a flat terrain of the given tile dimensions.
func NewTerrain(tilesWide, tilesHigh int, groundHeight int32) *Terrain {
	t := &Terrain{
		width:   tilesWide,
		height:  tilesHigh,
		heights: make([]int32, (tilesWide+1)*(tilesHigh+1)),
	}
	for i := range t.heights {
		t.heights[i] = groundHeight
	}
	return t
}

// WorldWidth returns the map width in world units.
func (t *Terrain) WorldWidth() int32 {
	return int32(t.width) * TileUnits
}

// WorldHeight returns the map depth in world units.
func (t *Terrain) WorldHeight() int32 {
	return int32(t.height) * TileUnits
}

// OnMap reports whether the ground position lies within the playable area.
func (t *Terrain) OnMap(x, y int32) bool {
	return x >= 0 && x < t.WorldWidth() && y >= 0 && y < t.WorldHeight()
}

// SetVertexHeight sets the height of one tile corner.
func (t *Terrain) SetVertexHeight(tx, ty int, h int32) {
	if tx < 0 || tx > t.width || ty < 0 || ty > t.height {
		return
	}
	t.heights[ty*(t.width+1)+tx] = h
}

// RaiseArea sets every vertex in the tile rectangle to at least h.
func (t *Terrain) RaiseArea(tx0, ty0, tx1, ty1 int, h int32) {
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			if tx < 0 || tx > t.width || ty < 0 || ty > t.height {
				continue
			}
			i := ty*(t.width+1) + tx
			if t.heights[i] < h {
				t.heights[i] = h
			}
		}
	}
}

func (t *Terrain) vertex(tx, ty int) int32 {
	if tx < 0 {
		tx = 0
	} else if tx > t.width {
		tx = t.width
	}
	if ty < 0 {
		ty = 0
	} else if ty > t.height {
		ty = t.height
	}
	return t.heights[ty*(t.width+1)+tx]
}

// Height returns the interpolated terrain height at a world position.
// Positions outside the map clamp to the border.
func (t *Terrain) Height(x, y int32) int32 {
	tx := int(x / TileUnits)
	ty := int(y / TileUnits)
	fx := int64(x % TileUnits)
	fy := int64(y % TileUnits)
	if fx < 0 {
		fx += TileUnits
		tx--
	}
	if fy < 0 {
		fy += TileUnits
		ty--
	}

	h00 := int64(t.vertex(tx, ty))
	h10 := int64(t.vertex(tx+1, ty))
	h01 := int64(t.vertex(tx, ty+1))
	h11 := int64(t.vertex(tx+1, ty+1))

	top := h00*(TileUnits-fx) + h10*fx
	bottom := h01*(TileUnits-fx) + h11*fx
	return int32((top*(TileUnits-fy) + bottom*fy) / (TileUnits * TileUnits))
}

// LineIntersect finds the earliest point on the segment from->to that
// drops to or below the terrain surface, expressed as a time offset in
// [0, dt]. Returns NoHit when the whole segment stays clear.
func (t *Terrain) LineIntersect(from, to Vector3, dt uint32) uint32 {
	prevAbove := from.Z - t.Height(from.X, from.Y)
	if prevAbove <= 0 {
		return 0
	}

	delta := to.Sub(from)
	// Sample at roughly half-tile granularity along the ground track.
	steps := int32(Hypot(delta.X, delta.Y)/(TileUnits/2)) + 1
	for i := int32(1); i <= steps; i++ {
		pos := from.Add(delta.MulDiv(int64(i), int64(steps)))
		above := pos.Z - t.Height(pos.X, pos.Y)
		if above <= 0 {
			span := int64(prevAbove - above)
			// Fractional crossing inside this sample interval.
			num := int64(i-1)*span + int64(prevAbove)
			return uint32(int64(dt) * num / (int64(steps) * span))
		}
		prevAbove = above
	}
	return NoHit
}
