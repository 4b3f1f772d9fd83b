// Package game implements the session state machine and the collision
// engine. A Game is driven one tick at a time with the input collected
// since the previous tick and reports what happened as signals.
package game

import (
	"math/rand"
	"time"

	"github.com/tomz197/invasion/internal/object"
	"github.com/tomz197/invasion/internal/physics"
	"github.com/tomz197/invasion/internal/settings"
)

// fireSentinel is the draw that makes an enemy fire.
const fireSentinel = 1

// State is the session phase.
type State int

const (
	StateInactive State = iota // Menu shown, simulation frozen
	StateActive                // Simulation running
	StatePaused                // Short freeze after losing a ship
)

func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActive:
		return "active"
	case StatePaused:
		return "paused"
	}
	return "unknown"
}

// Stats is the scoreboard.
type Stats struct {
	Lives     int
	Score     int
	Level     int
	HighScore int
}

// Random is the source for enemy fire draws. *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
}

// Game owns every entity group and the active profile.
// It is not safe for concurrent use.
type Game struct {
	profile *settings.Profile
	rng     Random

	state State
	stats Stats
	pause time.Duration // Remaining freeze while paused

	ship       *object.Ship
	shots      []*object.Projectile // Player-owned
	enemyShots []*object.Projectile
	fleet      *object.Fleet
	shields    []*object.Shield

	pointerVisible bool
	quit           bool

	signals []Signal
	blasts  []physics.Rect // Destroyed entity bounds this tick
	grid    *physics.Grid  // Broad phase, rebuilt for every collision check
}

// New creates an inactive game. The profile is owned by the game from
// here on. A nil rng draws from a time-seeded source.
func New(p *settings.Profile, highScore int, rng Random) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if highScore < 0 {
		highScore = 0
	}
	g := &Game{
		profile:        p,
		rng:            rng,
		state:          StateInactive,
		pointerVisible: true,
		ship:           object.NewShip(p),
		grid:           physics.NewGrid(p.ScreenWidth, p.ScreenHeight, gridCellSize(p)),
	}
	g.resetStats()
	g.stats.HighScore = highScore
	g.fleet = object.NewFleet(p)
	g.shields = object.NewShields(p)
	return g
}

// gridCellSize fits about two enemies per cell.
func gridCellSize(p *settings.Profile) int {
	return 2 * max(p.AlienWidth, p.AlienHeight, p.ShieldWidth, p.ShieldHeight)
}

// Tick applies events and then advances the simulation one step when the
// session is active. The returned slice is reused by the next call.
func (g *Game) Tick(dt time.Duration, events []Event) []Signal {
	g.signals = g.signals[:0]
	g.blasts = g.blasts[:0]

	for _, ev := range events {
		g.handle(ev)
		if g.quit {
			return g.signals
		}
	}

	switch g.state {
	case StatePaused:
		g.pause -= dt
		if g.pause <= 0 {
			g.pause = 0
			g.state = StateActive
		}
	case StateActive:
		g.step()
	}
	return g.signals
}

// handle applies one input event.
func (g *Game) handle(ev Event) {
	switch ev.Kind {
	case EventQuit:
		g.requestQuit()
	case EventKeyDown:
		g.keyDown(ev.Key)
	case EventKeyUp:
		switch ev.Key {
		case KeyLeft:
			g.ship.MovingLeft = false
		case KeyRight:
			g.ship.MovingRight = false
		}
	case EventPointerDown:
		g.click(ev.X, ev.Y)
	}
}

func (g *Game) keyDown(k Key) {
	switch k {
	case KeyLeft:
		g.ship.MovingLeft = true
	case KeyRight:
		g.ship.MovingRight = true
	case KeyQuit:
		g.requestQuit()
	case KeyFire:
		if g.state == StateActive {
			g.fire()
		}
	case KeyStart:
		g.Start()
	case KeyEasy:
		g.SelectDifficulty(settings.Easy)
	case KeyMedium:
		g.SelectDifficulty(settings.Medium)
	case KeyHard:
		g.SelectDifficulty(settings.Hard)
	}
}

// click dispatches a pointer press to the menu. Clicks do nothing while
// a session is running.
func (g *Game) click(x, y int) {
	if g.state != StateInactive {
		return
	}
	for _, b := range HitTest(Menu(g.profile), x, y) {
		if d, ok := b.Difficulty(); ok {
			g.SelectDifficulty(d)
			continue
		}
		g.Start()
	}
}

func (g *Game) requestQuit() {
	if !g.quit {
		g.quit = true
		g.emit(SignalQuit)
	}
}

// Start begins a new session. It returns false if one is already running.
func (g *Game) Start() bool {
	if g.state != StateInactive {
		return false
	}
	g.resetStats()
	g.clearProjectiles()
	g.regenerate()
	g.ship.Center()
	g.state = StateActive
	g.pointerVisible = false
	g.emit(SignalStarted)
	g.emit(SignalPointerHidden)
	return true
}

// SelectDifficulty replaces the profile's dynamic parameters with the
// preset for d. The request is ignored while a session is running.
func (g *Game) SelectDifficulty(d settings.Difficulty) bool {
	if g.state != StateInactive {
		return false
	}
	g.profile.Apply(d)
	g.emit(SignalDifficulty)
	return true
}

// step runs one simulation tick.
func (g *Game) step() {
	p := g.profile

	g.ship.Update(p.ShipSpeed)
	g.shots = object.AdvanceProjectiles(g.shots, p.ScreenHeight)
	g.enemyShots = object.AdvanceProjectiles(g.enemyShots, p.ScreenHeight)
	g.enemyFire()
	g.fleet.Update(p.AlienSpeed, p.FleetDropSpeed, p.ScreenWidth)

	g.resolveCollisions()
}

// fire spawns a player shot at the ship's muzzle unless the cap is reached.
func (g *Game) fire() bool {
	p := g.profile
	if len(g.shots) >= p.BulletsAllowed {
		return false
	}
	x, y := g.ship.Muzzle()
	g.shots = append(g.shots, object.NewPlayerProjectile(x, y, p.BulletWidth, p.BulletHeight, p.BulletSpeed))
	g.emit(SignalFired)
	return true
}

// enemyFire gives every enemy an independent chance to shoot this tick.
func (g *Game) enemyFire() {
	p := g.profile
	rate := max(p.AlienFireRate, 0)
	fired := false
	for _, e := range g.fleet.Enemies {
		if g.rng.Intn(rate+1) != fireSentinel {
			continue
		}
		x, y := e.Muzzle()
		g.enemyShots = append(g.enemyShots, object.NewEnemyProjectile(x, y, p.BulletWidth, p.BulletHeight, p.AlienBulletSpeed))
		fired = true
	}
	if fired {
		g.emit(SignalEnemyFired)
	}
}

// advanceLevel replaces a destroyed fleet and escalates the profile.
func (g *Game) advanceLevel() {
	g.clearProjectiles()
	g.regenerate()
	g.profile.IncreaseSpeed()
	g.stats.Level++
	g.emit(SignalLevelCleared)
}

// shipHit costs a life. Losing the last one ends the session; otherwise
// the field is rebuilt and the game freezes briefly.
func (g *Game) shipHit() {
	if g.stats.Lives > 0 {
		g.stats.Lives--
	}
	g.blasts = append(g.blasts, g.ship.Bounds())
	g.emit(SignalShipHit)

	if g.stats.Lives == 0 {
		g.state = StateInactive
		g.profile.Reset()
		g.pointerVisible = true
		g.emit(SignalGameOver)
		g.emit(SignalPointerVisible)
		return
	}

	g.clearProjectiles()
	g.regenerate()
	g.ship.Center()
	if g.profile.HitPause > 0 {
		g.state = StatePaused
		g.pause = g.profile.HitPause
	}
}

// addScore credits destroyed enemies and raises the high score.
func (g *Game) addScore(kills int) {
	g.stats.Score += kills * g.profile.AlienPoints
	if g.stats.Score > g.stats.HighScore {
		g.stats.HighScore = g.stats.Score
		g.emit(SignalHighScore)
	}
}

func (g *Game) resetStats() {
	g.stats.Lives = g.profile.ShipLimit
	g.stats.Score = 0
	g.stats.Level = 1
}

func (g *Game) clearProjectiles() {
	clear(g.shots)
	clear(g.enemyShots)
	g.shots = g.shots[:0]
	g.enemyShots = g.enemyShots[:0]
}

// regenerate lays out a fresh fleet and shield rows.
func (g *Game) regenerate() {
	g.fleet = object.NewFleet(g.profile)
	g.shields = object.NewShields(g.profile)
}

func (g *Game) emit(s Signal) {
	g.signals = append(g.signals, s)
}

// State returns the session phase.
func (g *Game) State() State {
	return g.state
}

// Active reports whether a session is running, including the hit pause.
func (g *Game) Active() bool {
	return g.state != StateInactive
}

// Stats returns the scoreboard.
func (g *Game) Stats() Stats {
	return g.stats
}

// QuitRequested reports whether quit was requested.
func (g *Game) QuitRequested() bool {
	return g.quit
}

// PointerVisible reports whether the frontend should show the pointer.
func (g *Game) PointerVisible() bool {
	return g.pointerVisible
}

// Profile returns the active profile.
func (g *Game) Profile() *settings.Profile {
	return g.profile
}
