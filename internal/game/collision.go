package game

import (
	"github.com/tomz197/invasion/internal/object"
	"github.com/tomz197/invasion/internal/physics"
)

// resolveCollisions runs the per-tick collision pass in a fixed order:
// player shots against enemies, the level check, enemy shots against the
// ship, then shields against everything. Contact between the fleet and the
// ship, or the fleet reaching the bottom, also counts as a hit. At most
// one hit is resolved per tick, after the shields have been processed.
func (g *Game) resolveCollisions() {
	g.checkShotEnemyCollisions()

	if g.fleet.Empty() {
		g.advanceLevel()
	}

	hit := g.checkEnemyShotShipCollisions()

	rammed := g.checkShieldCollisions()

	// A shield can take the last enemy.
	if rammed && !hit && g.fleet.Empty() {
		g.advanceLevel()
	}

	if !hit {
		hit = g.checkFleetShipCollisions()
	}
	if hit {
		g.shipHit()
	}
}

// checkShotEnemyCollisions removes every overlapping player shot and
// enemy pair and credits the kills.
func (g *Game) checkShotEnemyCollisions() {
	if len(g.shots) == 0 {
		return
	}

	g.grid.Clear()
	for i, e := range g.fleet.Enemies {
		g.grid.Insert(e.Rect, i)
	}

	kills := 0
	for _, s := range g.shots {
		g.grid.Query(s.Rect, func(i int) bool {
			e := g.fleet.Enemies[i]
			if !e.IsDestroyed() && physics.Overlaps(s.Rect, e.Rect) {
				s.MarkDestroyed()
				e.MarkDestroyed()
				g.blasts = append(g.blasts, e.Rect)
				kills++
			}
			return false
		})
	}
	if kills == 0 {
		return
	}

	g.shots = object.Compact(g.shots)
	g.fleet.Compact()
	g.emit(SignalEnemyDestroyed)
	g.addScore(kills)
}

// checkEnemyShotShipCollisions reports whether an enemy shot reached the
// ship. Only the first overlapping shot is consumed.
func (g *Game) checkEnemyShotShipCollisions() bool {
	ship := g.ship.Bounds()
	for _, s := range g.enemyShots {
		if physics.Overlaps(s.Rect, ship) {
			s.MarkDestroyed()
			g.enemyShots = object.Compact(g.enemyShots)
			return true
		}
	}
	return false
}

// checkShieldCollisions consumes shields hit by shots of either side or
// touched by an enemy. Nothing is scored. It reports whether an enemy
// was destroyed.
func (g *Game) checkShieldCollisions() bool {
	if len(g.shields) == 0 {
		return false
	}

	// Movers share one index space: player shots, then enemy shots, then
	// enemies.
	nShots, nEnemyShots := len(g.shots), len(g.enemyShots)
	g.grid.Clear()
	for i, s := range g.shots {
		g.grid.Insert(s.Rect, i)
	}
	for i, s := range g.enemyShots {
		g.grid.Insert(s.Rect, nShots+i)
	}
	for i, e := range g.fleet.Enemies {
		g.grid.Insert(e.Rect, nShots+nEnemyShots+i)
	}

	hits, rammed := 0, false
	for _, sh := range g.shields {
		g.grid.Query(sh.Rect, func(i int) bool {
			var (
				mover *object.Entity
				enemy bool
			)
			switch {
			case i < nShots:
				mover = &g.shots[i].Entity
			case i < nShots+nEnemyShots:
				mover = &g.enemyShots[i-nShots].Entity
			default:
				mover = &g.fleet.Enemies[i-nShots-nEnemyShots].Entity
				enemy = true
			}
			if mover.IsDestroyed() || !physics.Overlaps(mover.Rect, sh.Rect) {
				return false
			}
			mover.MarkDestroyed()
			sh.MarkDestroyed()
			hits++
			if enemy {
				g.blasts = append(g.blasts, mover.Rect)
				rammed = true
			}
			return false
		})
	}
	if hits == 0 {
		return false
	}

	g.shots = object.Compact(g.shots)
	g.enemyShots = object.Compact(g.enemyShots)
	g.fleet.Compact()
	g.shields = object.Compact(g.shields)
	g.emit(SignalShieldHit)
	return rammed
}

// checkFleetShipCollisions reports whether an enemy rammed the ship or
// the fleet reached the bottom of the screen.
func (g *Game) checkFleetShipCollisions() bool {
	ship := g.ship.Bounds()
	for _, e := range g.fleet.Enemies {
		if physics.Overlaps(e.Rect, ship) {
			return true
		}
	}
	return g.fleet.ReachedBottom(g.profile.ScreenHeight)
}
