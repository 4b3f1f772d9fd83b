package loop

import (
	"github.com/tomz197/invasion/internal/draw"
	"github.com/tomz197/invasion/internal/game"
	"github.com/tomz197/invasion/internal/physics"
)

// DrawScene rasterizes the playfield of s onto c. Text is left to the
// frontend.
func DrawScene(c *draw.Canvas, s *game.Snapshot) {
	for _, r := range s.Shields {
		c.FillRect(r)
	}
	for _, r := range s.Enemies {
		c.FillPolygon(alienShape(r))
	}
	for _, r := range s.Shots {
		c.FillRect(r)
	}
	for _, r := range s.EnemyShots {
		c.FillRect(r)
	}
	c.FillPolygon(shipShape(s.Ship))

	for _, b := range s.Menu {
		c.DrawRect(b.Rect)
	}
}

// shipShape is a triangle pointing up inside r.
func shipShape(r physics.Rect) []draw.Point {
	x, y := float64(r.X), float64(r.Y)
	w, h := float64(r.W), float64(r.H)
	return []draw.Point{
		{X: x, Y: y + h},
		{X: x + w/2, Y: y},
		{X: x + w, Y: y + h},
	}
}

// alienShape is a flattened hexagon inside r.
func alienShape(r physics.Rect) []draw.Point {
	x, y := float64(r.X), float64(r.Y)
	w, h := float64(r.W), float64(r.H)
	return []draw.Point{
		{X: x + w*0.2, Y: y},
		{X: x + w*0.8, Y: y},
		{X: x + w, Y: y + h*0.5},
		{X: x + w*0.8, Y: y + h},
		{X: x + w*0.2, Y: y + h},
		{X: x, Y: y + h*0.5},
	}
}
