package object

import "github.com/tomz197/invasion/internal/settings"

// Ship is the player-controlled cannon at the bottom of the screen.
// It lives for the whole session and is recentered rather than recreated.
type Ship struct {
	Entity

	MovingLeft  bool
	MovingRight bool

	screenWidth  int
	screenHeight int
}

// NewShip creates a ship centered at the bottom of the screen.
func NewShip(p *settings.Profile) *Ship {
	s := &Ship{
		Entity:       NewEntity(0, 0, p.ShipWidth, p.ShipHeight),
		screenWidth:  p.ScreenWidth,
		screenHeight: p.ScreenHeight,
	}
	s.Center()
	return s
}

// Center places the ship at the bottom center of the screen. Movement
// intent is kept so a held key keeps steering after a respawn.
func (s *Ship) Center() {
	x := s.screenWidth/2 - s.Rect.W/2
	y := s.screenHeight - s.Rect.H
	s.SetPosition(float64(x), float64(y))
}

// Update moves the ship by speed in the direction of its intent flags,
// keeping it inside the screen.
func (s *Ship) Update(speed float64) {
	x := s.X
	if s.MovingRight && s.Rect.Right() < s.screenWidth {
		x += speed
	}
	if s.MovingLeft && s.Rect.Left() > 0 {
		x -= speed
	}

	maxX := float64(s.screenWidth - s.Rect.W)
	if x > maxX {
		x = maxX
	}
	if x < 0 {
		x = 0
	}
	s.SetPosition(x, s.Y)
}

// Muzzle returns the top-center point where player shots spawn.
func (s *Ship) Muzzle() (x, y int) {
	return s.Rect.CenterX(), s.Rect.Top()
}
