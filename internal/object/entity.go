// Package object defines the simulated entities: the ship, projectiles,
// the enemy fleet and shields. Drawing is left to the frontends.
package object

import "github.com/tomz197/invasion/internal/physics"

// Destructible is implemented by entities that can be marked for removal.
type Destructible interface {
	// MarkDestroyed marks the entity for removal on the next compaction.
	MarkDestroyed()
	// IsDestroyed returns true if the entity is marked for removal.
	IsDestroyed() bool
}

// Entity is a rectangle driven by a fractional position accumulator.
// Rect is the truncated projection of X and Y and is the only value used
// for collision tests.
type Entity struct {
	Rect physics.Rect
	X, Y float64

	destroyed bool
}

// NewEntity creates an entity of size w x h with its top-left corner at (x, y).
func NewEntity(x, y float64, w, h int) Entity {
	e := Entity{Rect: physics.Rect{W: w, H: h}}
	e.SetPosition(x, y)
	return e
}

// SetPosition moves the top-left corner to (x, y).
func (e *Entity) SetPosition(x, y float64) {
	e.X = x
	e.Y = y
	e.sync()
}

// Move shifts the entity by (dx, dy).
func (e *Entity) Move(dx, dy float64) {
	e.X += dx
	e.Y += dy
	e.sync()
}

// sync truncates the accumulator toward zero into the rectangle.
func (e *Entity) sync() {
	e.Rect.X = int(e.X)
	e.Rect.Y = int(e.Y)
}

// Bounds returns the collision rectangle.
func (e *Entity) Bounds() physics.Rect {
	return e.Rect
}

// MarkDestroyed marks the entity for removal.
func (e *Entity) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the entity is marked for removal.
func (e *Entity) IsDestroyed() bool {
	return e.destroyed
}

// Compact removes destroyed entries in place, reusing the backing array.
func Compact[T Destructible](items []T) []T {
	kept := items[:0]
	for _, item := range items {
		if !item.IsDestroyed() {
			kept = append(kept, item)
		}
	}
	clear(items[len(kept):])
	return kept
}
