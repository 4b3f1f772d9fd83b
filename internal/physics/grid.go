package physics

// Grid is a uniform grid for broad-phase collision detection on a bounded
// screen. Items are inserted by rectangle and index and occupy every cell
// their rectangle touches, so items of any size are found by a query over
// the cells of the query rectangle.
//
// Positions outside the screen are clamped to the border cells.
type Grid struct {
	cellSize int
	cols     int
	rows     int
	cells    []gridCell

	// seen[index] == stamp marks an item already reported by the
	// current query.
	seen  []uint32
	stamp uint32
}

// gridCell stores the indices of items that touch a cell.
// The slice is reused between ticks (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewGrid creates a grid covering a screen of the given size.
func NewGrid(screenW, screenH, cellSize int) *Grid {
	if cellSize < 1 {
		cellSize = 1
	}
	cols := (screenW + cellSize - 1) / cellSize
	rows := (screenH + cellSize - 1) / cellSize
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &Grid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by a non-negative index) covering r.
func (g *Grid) Insert(r Rect, index int) {
	if index >= len(g.seen) {
		g.seen = append(g.seen, make([]uint32, index+1-len(g.seen))...)
	}
	c0, r0, c1, r1 := g.cellRange(r)
	for row := r0; row <= r1; row++ {
		rowOffset := row * g.cols
		for col := c0; col <= c1; col++ {
			cell := &g.cells[rowOffset+col]
			cell.items = append(cell.items, index)
		}
	}
}

// Query calls fn once for each item sharing a cell with r. Candidates are
// not tested for overlap. If fn returns true, iteration stops early.
func (g *Grid) Query(r Rect, fn func(index int) bool) {
	g.stamp++
	if g.stamp == 0 {
		clear(g.seen)
		g.stamp = 1
	}

	c0, r0, c1, r1 := g.cellRange(r)
	for row := r0; row <= r1; row++ {
		rowOffset := row * g.cols
		for col := c0; col <= c1; col++ {
			for _, index := range g.cells[rowOffset+col].items {
				if g.seen[index] == g.stamp {
					continue
				}
				g.seen[index] = g.stamp
				if fn(index) {
					return
				}
			}
		}
	}
}

// cellRange returns the inclusive cell box touched by r.
func (g *Grid) cellRange(r Rect) (c0, r0, c1, r1 int) {
	right, bottom := r.Right()-1, r.Bottom()-1
	if right < r.X {
		right = r.X
	}
	if bottom < r.Y {
		bottom = r.Y
	}
	c0, r0 = g.posToCell(r.X, r.Y)
	c1, r1 = g.posToCell(right, bottom)
	return c0, r0, c1, r1
}

// posToCell converts screen coordinates to grid cell coordinates,
// clamped to the valid range.
func (g *Grid) posToCell(x, y int) (col, row int) {
	col = x / g.cellSize
	if x < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = y / g.cellSize
	if y < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
