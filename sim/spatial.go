package sim

import "sort"

// SpatialCellSize is sized to a couple of the largest object footprints
// so that a neighbor query rarely touches more than nine cells.
const SpatialCellSize = TileUnits * 4

// SpatialGrid is a fixed-cell grid for broad-phase neighbor queries.
// Rebuilt from scratch at the start of every tick; queries during the
// tick see a read-only snapshot.
type SpatialGrid struct {
	cols, rows int
	cells      [][]*GameObject
}

// NewSpatialGrid creates a grid covering a world of the given size.
func NewSpatialGrid(worldW, worldH int32) *SpatialGrid {
	cols := int(worldW/SpatialCellSize) + 1
	rows := int(worldH/SpatialCellSize) + 1
	return &SpatialGrid{
		cols:  cols,
		rows:  rows,
		cells: make([][]*GameObject, cols*rows),
	}
}

// Clear resets all cells, keeping allocated capacity.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *SpatialGrid) clampCell(c, limit int) int {
	if c < 0 {
		return 0
	}
	if c >= limit {
		return limit - 1
	}
	return c
}

// Insert adds an object at its current position.
func (g *SpatialGrid) Insert(obj *GameObject) {
	cx := g.clampCell(int(obj.Pos.X/SpatialCellSize), g.cols)
	cy := g.clampCell(int(obj.Pos.Y/SpatialCellSize), g.rows)
	idx := cy*g.cols + cx
	g.cells[idx] = append(g.cells[idx], obj)
}

// QueryBuf appends every object in cells overlapping the query circle's
// bounding box to buf and returns the extended slice. Results are sorted
// by object ID so the order never depends on cell layout.
func (g *SpatialGrid) QueryBuf(x, y, radius int32, buf []*GameObject) []*GameObject {
	minCX := g.clampCell(int((x-radius)/SpatialCellSize), g.cols)
	maxCX := g.clampCell(int((x+radius)/SpatialCellSize), g.cols)
	minCY := g.clampCell(int((y-radius)/SpatialCellSize), g.rows)
	maxCY := g.clampCell(int((y+radius)/SpatialCellSize), g.rows)

	start := len(buf)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			buf = append(buf, g.cells[cy*g.cols+cx]...)
		}
	}
	added := buf[start:]
	sort.Slice(added, func(i, j int) bool { return added[i].ID < added[j].ID })
	return buf
}
