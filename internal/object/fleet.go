package object

import "github.com/tomz197/invasion/internal/settings"

// Enemy is one member of the fleet.
type Enemy struct {
	Entity
}

// Muzzle returns the bottom-center point where enemy shots spawn.
func (e *Enemy) Muzzle() (x, y int) {
	return e.Rect.CenterX(), e.Rect.Bottom()
}

// Fleet is the formation of enemies. Every member shares one horizontal
// direction and moves in lockstep.
type Fleet struct {
	Enemies   []*Enemy
	Direction int // 1 advances right, -1 advances left
}

// FleetGrid returns how many rows and columns of enemies fit on the screen.
// Enemies are spaced one enemy width apart horizontally and one enemy
// height apart vertically, with room left above the ship.
func FleetGrid(p *settings.Profile) (rows, cols int) {
	w, h := p.AlienWidth, p.AlienHeight
	availableX := p.ScreenWidth - 2*w
	availableY := p.ScreenHeight - 3*h - p.ShipHeight
	cols = floorDiv(availableX, 2*w)
	rows = floorDiv(availableY, 2*h)
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return rows, cols
}

// NewFleet lays out a full fleet for the profile. A screen too small for a
// single enemy yields an empty fleet.
func NewFleet(p *settings.Profile) *Fleet {
	rows, cols := FleetGrid(p)
	w, h := p.AlienWidth, p.AlienHeight

	f := &Fleet{
		Enemies:   make([]*Enemy, 0, rows*cols),
		Direction: p.FleetDirection,
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := w + 2*w*c
			y := h + 2*h*r
			f.Enemies = append(f.Enemies, &Enemy{Entity: NewEntity(float64(x), float64(y), w, h)})
		}
	}
	return f
}

// Len returns the number of live enemies.
func (f *Fleet) Len() int {
	return len(f.Enemies)
}

// Empty reports whether every enemy has been destroyed.
func (f *Fleet) Empty() bool {
	return len(f.Enemies) == 0
}

// AtEdge reports whether any enemy touches or passes the screen edge the
// fleet is advancing toward.
func (f *Fleet) AtEdge(screenWidth int) bool {
	for _, e := range f.Enemies {
		if f.Direction > 0 && e.Rect.Right() >= screenWidth {
			return true
		}
		if f.Direction < 0 && e.Rect.Left() <= 0 {
			return true
		}
	}
	return false
}

// Update runs one tick of the sweep. When the fleet is at an edge it first
// drops every enemy by dropSpeed and reverses direction, then all members
// move horizontally by speed.
func (f *Fleet) Update(speed float64, dropSpeed, screenWidth int) {
	if f.AtEdge(screenWidth) {
		for _, e := range f.Enemies {
			e.Move(0, float64(dropSpeed))
		}
		f.Direction = -f.Direction
	}
	dx := speed * float64(f.Direction)
	for _, e := range f.Enemies {
		e.Move(dx, 0)
	}
}

// ReachedBottom reports whether any enemy touches the bottom of the screen.
func (f *Fleet) ReachedBottom(screenHeight int) bool {
	for _, e := range f.Enemies {
		if e.Rect.Bottom() >= screenHeight {
			return true
		}
	}
	return false
}

// Compact drops destroyed enemies.
func (f *Fleet) Compact() {
	f.Enemies = Compact(f.Enemies)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
