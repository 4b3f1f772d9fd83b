package game

import (
	"github.com/tomz197/invasion/internal/physics"
	"github.com/tomz197/invasion/internal/settings"
)

// Snapshot is everything a frontend needs to draw one frame.
type Snapshot struct {
	Width, Height int // Logical screen size

	State          State
	Stats          Stats
	Difficulty     settings.Difficulty
	PointerVisible bool

	Ship       physics.Rect
	Shots      []physics.Rect
	EnemyShots []physics.Rect
	Enemies    []physics.Rect
	Shields    []physics.Rect
	Blasts     []physics.Rect // Entities destroyed during the last tick

	Menu []MenuButton // Empty while a session is running
}

// Snapshot fills s with the current frame, reusing its slices.
func (g *Game) Snapshot(s *Snapshot) {
	p := g.profile

	s.Width = p.ScreenWidth
	s.Height = p.ScreenHeight
	s.State = g.state
	s.Stats = g.stats
	s.Difficulty = p.Difficulty
	s.PointerVisible = g.pointerVisible

	s.Ship = g.ship.Bounds()

	s.Shots = s.Shots[:0]
	for _, shot := range g.shots {
		s.Shots = append(s.Shots, shot.Bounds())
	}
	s.EnemyShots = s.EnemyShots[:0]
	for _, shot := range g.enemyShots {
		s.EnemyShots = append(s.EnemyShots, shot.Bounds())
	}
	s.Enemies = s.Enemies[:0]
	for _, e := range g.fleet.Enemies {
		s.Enemies = append(s.Enemies, e.Bounds())
	}
	s.Shields = s.Shields[:0]
	for _, sh := range g.shields {
		s.Shields = append(s.Shields, sh.Bounds())
	}
	s.Blasts = append(s.Blasts[:0], g.blasts...)

	s.Menu = s.Menu[:0]
	if g.state == StateInactive {
		s.Menu = append(s.Menu, Menu(p)...)
	}
}
