package game

import (
	"testing"
	"time"

	"github.com/tomz197/invasion/internal/object"
	"github.com/tomz197/invasion/internal/settings"
)

const tick = time.Second / 120

// fixedRandom always draws the same value.
type fixedRandom int

func (r fixedRandom) Intn(n int) int {
	if int(r) >= n {
		return n - 1
	}
	return int(r)
}

// recordingRandom remembers the bounds it was asked for.
type recordingRandom struct {
	bounds []int
}

func (r *recordingRandom) Intn(n int) int {
	r.bounds = append(r.bounds, n)
	return 0
}

const (
	neverFire  = fixedRandom(0)
	alwaysFire = fixedRandom(fireSentinel)
)

func newStartedGame(t *testing.T, highScore int) *Game {
	t.Helper()
	g := New(settings.Default(), highScore, neverFire)
	if !g.Start() {
		t.Fatal("Start on a fresh game should succeed")
	}
	return g
}

func singleEnemyFleet(x, y float64) *object.Fleet {
	return &object.Fleet{
		Enemies:   []*object.Enemy{{Entity: object.NewEntity(x, y, 60, 58)}},
		Direction: 1,
	}
}

func TestNewGameIsInactive(t *testing.T) {
	g := New(settings.Default(), 42, neverFire)

	if g.State() != StateInactive {
		t.Errorf("new game state = %v, want inactive", g.State())
	}
	if !g.PointerVisible() {
		t.Error("pointer should be visible on the menu")
	}
	want := Stats{Lives: 3, Score: 0, Level: 1, HighScore: 42}
	if g.Stats() != want {
		t.Errorf("stats = %+v, want %+v", g.Stats(), want)
	}
	if g.fleet.Len() != 36 || len(g.shields) != 3 {
		t.Errorf("expected 36 enemies and 3 shields behind the menu, got %d and %d", g.fleet.Len(), len(g.shields))
	}
}

func TestInactiveGameDoesNotSimulate(t *testing.T) {
	g := New(settings.Default(), 0, alwaysFire)
	x := g.fleet.Enemies[0].X

	g.Tick(tick, []Event{KeyDown(KeyFire)})

	if g.fleet.Enemies[0].X != x {
		t.Error("fleet moved while inactive")
	}
	if len(g.shots) != 0 || len(g.enemyShots) != 0 {
		t.Error("no shots should spawn while inactive")
	}
}

func TestStartResetsSession(t *testing.T) {
	g := newStartedGame(t, 10)
	g.stats = Stats{Lives: 1, Score: 500, Level: 4, HighScore: 500}
	g.shots = append(g.shots, object.NewPlayerProjectile(10, 10, 3, 15, 1.5))
	g.state = StateInactive

	signals := g.Tick(tick, []Event{KeyDown(KeyStart)})

	want := Stats{Lives: 3, Score: 0, Level: 1, HighScore: 500}
	if g.Stats() != want {
		t.Errorf("stats after start = %+v, want %+v", g.Stats(), want)
	}
	if len(g.shots) != 0 {
		t.Errorf("start should clear projectiles, %d left", len(g.shots))
	}
	if g.PointerVisible() {
		t.Error("pointer should be hidden once a session starts")
	}
	if !Has(signals, SignalStarted) || !Has(signals, SignalPointerHidden) {
		t.Errorf("missing start signals: %v", signals)
	}
	if g.Start() {
		t.Error("Start while active should be refused")
	}
}

func TestLastEnemyAdvancesLevel(t *testing.T) {
	g := newStartedGame(t, 0)
	g.fleet = singleEnemyFleet(500, 100)
	g.shots = append(g.shots, object.NewPlayerProjectile(530, 120, 3, 15, 1.5))
	g.enemyShots = append(g.enemyShots, object.NewEnemyProjectile(100, 300, 3, 15, 0.3))

	signals := g.Tick(tick, nil)

	stats := g.Stats()
	if stats.Level != 2 {
		t.Errorf("level = %d, want 2", stats.Level)
	}
	if stats.Score != 50 || stats.HighScore != 50 {
		t.Errorf("score/high = %d/%d, want 50/50", stats.Score, stats.HighScore)
	}
	if g.profile.AlienPoints != 75 {
		t.Errorf("alien points = %d, want 75", g.profile.AlienPoints)
	}
	if g.fleet.Len() != 36 {
		t.Errorf("new fleet has %d enemies, want 36", g.fleet.Len())
	}
	if len(g.shields) != 3 {
		t.Errorf("new shield layout has %d shields, want 3", len(g.shields))
	}
	if len(g.shots) != 0 || len(g.enemyShots) != 0 {
		t.Errorf("projectiles should be cleared, got %d player and %d enemy", len(g.shots), len(g.enemyShots))
	}
	if g.profile.AlienSpeed <= 0.6 {
		t.Errorf("alien speed should escalate, got %v", g.profile.AlienSpeed)
	}
	for _, s := range []Signal{SignalEnemyDestroyed, SignalLevelCleared, SignalHighScore} {
		if !Has(signals, s) {
			t.Errorf("missing %v in %v", s, signals)
		}
	}
}

func TestDegenerateFleetAdvancesEveryTick(t *testing.T) {
	p := settings.Default()
	p.AlienWidth = 700
	g := New(p, 0, neverFire)
	g.Start()

	if !g.fleet.Empty() {
		t.Fatalf("oversized aliens should give an empty fleet, got %d", g.fleet.Len())
	}
	for want := 2; want <= 4; want++ {
		g.Tick(tick, nil)
		if g.Stats().Level != want {
			t.Fatalf("level = %d, want %d", g.Stats().Level, want)
		}
	}
}

func TestShipHitOnLastLifeEndsSession(t *testing.T) {
	g := New(settings.Default(), 0, neverFire)
	g.SelectDifficulty(settings.Easy)
	g.Start()
	g.stats.Lives = 1
	g.enemyShots = append(g.enemyShots, object.NewEnemyProjectile(600, 760, 3, 15, 0.3))

	signals := g.Tick(tick, nil)

	if g.Stats().Lives != 0 {
		t.Errorf("lives = %d, want 0", g.Stats().Lives)
	}
	if g.State() != StateInactive {
		t.Errorf("state = %v, want inactive", g.State())
	}
	if g.profile.Difficulty != settings.Medium || g.profile.AlienSpeed != 0.6 {
		t.Errorf("profile should reset to medium, got %v speed %v", g.profile.Difficulty, g.profile.AlienSpeed)
	}
	if !g.PointerVisible() || !Has(signals, SignalPointerVisible) || !Has(signals, SignalGameOver) {
		t.Errorf("expected game over and pointer signals, got %v", signals)
	}
}

func TestShipHitWithLivesLeftPauses(t *testing.T) {
	g := newStartedGame(t, 0)
	g.ship.MovingLeft = true
	g.Tick(tick, nil)
	g.shots = append(g.shots, object.NewPlayerProjectile(100, 400, 3, 15, 1.5))
	g.enemyShots = append(g.enemyShots,
		object.NewEnemyProjectile(600, 760, 3, 15, 0.3),
		object.NewEnemyProjectile(590, 770, 3, 15, 0.3),
	)

	signals := g.Tick(tick, nil)

	if g.Stats().Lives != 2 {
		t.Fatalf("two overlapping shots should cost one life, lives = %d", g.Stats().Lives)
	}
	if !Has(signals, SignalShipHit) {
		t.Errorf("missing ship hit signal in %v", signals)
	}
	if g.State() != StatePaused {
		t.Fatalf("state = %v, want paused", g.State())
	}
	if len(g.shots) != 0 || len(g.enemyShots) != 0 {
		t.Error("a hit should clear every projectile")
	}
	if g.fleet.Len() != 36 {
		t.Errorf("fleet should be regenerated, has %d", g.fleet.Len())
	}
	if g.ship.Rect.CenterX() != 600 {
		t.Errorf("ship should be recentered, center = %d", g.ship.Rect.CenterX())
	}

	// Frozen: nothing moves and fire is dropped.
	x := g.fleet.Enemies[0].X
	g.Tick(200*time.Millisecond, []Event{KeyDown(KeyFire)})
	if g.fleet.Enemies[0].X != x || len(g.shots) != 0 {
		t.Error("simulation should not advance during the pause")
	}
	if g.State() != StatePaused {
		t.Fatalf("pause ended early, state = %v", g.State())
	}

	g.Tick(300*time.Millisecond, nil)
	if g.State() != StateActive {
		t.Fatalf("pause should end after 500ms, state = %v", g.State())
	}
	g.Tick(tick, nil)
	if g.fleet.Enemies[0].X == x {
		t.Error("fleet should move once the pause is over")
	}
}

func TestQuitHonoredDuringPause(t *testing.T) {
	g := newStartedGame(t, 0)
	g.state = StatePaused
	g.pause = time.Second

	signals := g.Tick(tick, []Event{Quit()})
	if !g.QuitRequested() || !Has(signals, SignalQuit) {
		t.Error("quit should be honored while paused")
	}
}

func TestQuitStopsEventProcessing(t *testing.T) {
	g := New(settings.Default(), 0, neverFire)

	signals := g.Tick(tick, []Event{KeyDown(KeyQuit), KeyDown(KeyStart)})

	if !g.QuitRequested() {
		t.Fatal("quit key should request quit")
	}
	if g.State() != StateInactive {
		t.Error("events after quit should be dropped")
	}
	if len(signals) != 1 || signals[0] != SignalQuit {
		t.Errorf("signals = %v, want [quit]", signals)
	}
}

func TestEnemyRammingShipCostsLife(t *testing.T) {
	g := newStartedGame(t, 0)
	g.fleet = singleEnemyFleet(570, 700)
	g.fleet.Enemies = append(g.fleet.Enemies, &object.Enemy{Entity: object.NewEntity(0, 50, 60, 58)})

	g.Tick(tick, nil)

	if g.Stats().Lives != 2 {
		t.Errorf("ramming should cost a life, lives = %d", g.Stats().Lives)
	}
}

func TestFleetReachingBottomCostsLife(t *testing.T) {
	g := newStartedGame(t, 0)
	g.fleet = singleEnemyFleet(100, 742)

	g.Tick(tick, nil)

	if g.Stats().Lives != 2 {
		t.Errorf("fleet at the bottom should cost a life, lives = %d", g.Stats().Lives)
	}
}

func TestShieldsAbsorbShots(t *testing.T) {
	g := newStartedGame(t, 0)
	g.enemyShots = append(g.enemyShots, object.NewEnemyProjectile(450, 700, 3, 15, 0.3))
	g.shots = append(g.shots, object.NewPlayerProjectile(850, 720, 3, 15, 1.5))

	signals := g.Tick(tick, nil)

	if len(g.shields) != 1 {
		t.Errorf("two shields should be consumed, %d left", len(g.shields))
	}
	if len(g.shots) != 0 || len(g.enemyShots) != 0 {
		t.Error("shots hitting shields should be removed")
	}
	if g.Stats().Score != 0 {
		t.Errorf("shield hits score nothing, score = %d", g.Stats().Score)
	}
	if g.Stats().Lives != 3 {
		t.Errorf("absorbed shot should not cost a life, lives = %d", g.Stats().Lives)
	}
	if !Has(signals, SignalShieldHit) {
		t.Errorf("missing shield signal in %v", signals)
	}
}

func TestShieldPassKeepsDistantShots(t *testing.T) {
	g := newStartedGame(t, 0)
	for x := 0; x < 1200; x += 12 {
		g.enemyShots = append(g.enemyShots, object.NewEnemyProjectile(x, 100, 3, 15, 0.3))
	}
	far := len(g.enemyShots)
	g.enemyShots = append(g.enemyShots, object.NewEnemyProjectile(450, 700, 3, 15, 0.3))

	g.Tick(tick, nil)

	if len(g.enemyShots) != far {
		t.Errorf("only the shot over a shield should go, %d of %d left", len(g.enemyShots), far)
	}
	if len(g.shields) != 2 {
		t.Errorf("one shield should be consumed, %d left", len(g.shields))
	}
}

func TestShotHitsEnemyAcrossGridCells(t *testing.T) {
	g := newStartedGame(t, 0)
	g.fleet = singleEnemyFleet(345, 190)
	g.fleet.Enemies = append(g.fleet.Enemies, &object.Enemy{Entity: object.NewEntity(0, 50, 60, 58)})
	g.shots = append(g.shots, object.NewPlayerProjectile(402, 230, 3, 15, 1.5))

	g.Tick(tick, nil)

	if g.fleet.Len() != 1 || g.fleet.Enemies[0].Rect.Y != 50 {
		t.Errorf("enemy straddling cells should be destroyed, fleet = %d", g.fleet.Len())
	}
	if len(g.shots) != 0 {
		t.Errorf("shot should be consumed, %d left", len(g.shots))
	}
}

func TestEnemyDestroyedByShield(t *testing.T) {
	g := newStartedGame(t, 0)
	g.fleet = singleEnemyFleet(420, 690)
	g.fleet.Enemies = append(g.fleet.Enemies, &object.Enemy{Entity: object.NewEntity(0, 50, 60, 58)})

	g.Tick(tick, nil)

	if g.fleet.Len() != 1 || len(g.shields) != 2 {
		t.Errorf("enemy and shield should both go, fleet=%d shields=%d", g.fleet.Len(), len(g.shields))
	}
	if g.Stats().Score != 0 {
		t.Errorf("shield kills score nothing, score = %d", g.Stats().Score)
	}
}

func TestFireRespectsCap(t *testing.T) {
	g := newStartedGame(t, 0)
	fire := KeyDown(KeyFire)

	signals := g.Tick(tick, []Event{fire, fire, fire, fire, fire})

	if len(g.shots) != 3 {
		t.Errorf("shots = %d, want cap of 3", len(g.shots))
	}
	if !Has(signals, SignalFired) {
		t.Errorf("missing fired signal in %v", signals)
	}
	for _, s := range g.shots {
		if s.Rect.CenterX() != 600 {
			t.Errorf("shot should spawn at the ship's center, got %d", s.Rect.CenterX())
		}
	}
}

func TestEnemyFireUsesSentinelDraw(t *testing.T) {
	rng := &recordingRandom{}
	g := New(settings.Default(), 0, rng)
	g.Start()

	g.Tick(tick, nil)

	if len(rng.bounds) != 36 {
		t.Fatalf("expected one draw per enemy, got %d", len(rng.bounds))
	}
	for _, n := range rng.bounds {
		if n != 20001 {
			t.Fatalf("draw bound = %d, want alien_fire_rate+1 = 20001", n)
		}
	}
	if len(g.enemyShots) != 0 {
		t.Error("a draw of 0 should not fire")
	}

	g = New(settings.Default(), 0, alwaysFire)
	g.Start()
	signals := g.Tick(tick, nil)
	if len(g.enemyShots) != 36 {
		t.Errorf("sentinel draw should make every enemy fire, got %d shots", len(g.enemyShots))
	}
	if !Has(signals, SignalEnemyFired) {
		t.Errorf("missing enemy fire signal in %v", signals)
	}
}

func TestEnemyFireToleratesNegativeRate(t *testing.T) {
	rng := &recordingRandom{}
	g := New(settings.Default(), 0, rng)
	g.Start()
	g.profile.AlienFireRate = -20000

	g.Tick(tick, nil)

	for _, n := range rng.bounds {
		if n < 1 {
			t.Fatalf("draw bound = %d, want at least 1", n)
		}
	}
}

func TestHighScoreFollowsScore(t *testing.T) {
	g := newStartedGame(t, 100)
	g.shots = append(g.shots, object.NewPlayerProjectile(90, 80, 3, 15, 1.5))

	g.Tick(tick, nil)
	if s := g.Stats(); s.Score != 50 || s.HighScore != 100 {
		t.Fatalf("score/high = %d/%d, want 50/100", s.Score, s.HighScore)
	}

	g.stats.Score = 100
	g.shots = append(g.shots, object.NewPlayerProjectile(210, 80, 3, 15, 1.5))
	signals := g.Tick(tick, nil)
	if s := g.Stats(); s.Score != 150 || s.HighScore != 150 {
		t.Errorf("score/high = %d/%d, want 150/150", s.Score, s.HighScore)
	}
	if !Has(signals, SignalHighScore) {
		t.Errorf("missing high score signal in %v", signals)
	}
}

func TestDifficultyLockedWhileActive(t *testing.T) {
	g := newStartedGame(t, 0)

	if g.SelectDifficulty(settings.Hard) {
		t.Error("difficulty change should be refused while active")
	}
	g.Tick(tick, []Event{KeyDown(KeyEasy), PointerDown(1100, 540)})
	if g.profile.Difficulty != settings.Medium || g.profile.AlienSpeed != 0.6 {
		t.Errorf("profile changed during a session: %v", g.profile.Difficulty)
	}

	g.state = StatePaused
	if g.SelectDifficulty(settings.Easy) {
		t.Error("difficulty change should be refused while paused")
	}
}

func TestMenuPointer(t *testing.T) {
	g := New(settings.Default(), 0, neverFire)

	signals := g.Tick(tick, []Event{PointerDown(100, 545)})
	if g.profile.Difficulty != settings.Easy || !Has(signals, SignalDifficulty) {
		t.Fatalf("clicking Easy should select it, got %v", g.profile.Difficulty)
	}
	if g.profile.ShieldRows != 2 {
		t.Errorf("easy preset not applied, shield rows = %d", g.profile.ShieldRows)
	}

	g.Tick(tick, []Event{PointerDown(10, 10)})
	if g.Active() {
		t.Fatal("click outside every button should do nothing")
	}

	g.Tick(tick, []Event{PointerDown(600, 400)})
	if g.State() != StateActive {
		t.Fatalf("clicking Play should start, state = %v", g.State())
	}
	if len(g.shields) != 6 {
		t.Errorf("easy session should have 6 shields, got %d", len(g.shields))
	}
}

func TestMovementIntent(t *testing.T) {
	g := newStartedGame(t, 0)

	g.Tick(tick, []Event{KeyDown(KeyRight)})
	if g.ship.X != 571.5 {
		t.Errorf("ship x = %v, want 571.5", g.ship.X)
	}

	g.Tick(tick, []Event{KeyUp(KeyRight)})
	if g.ship.X != 571.5 {
		t.Errorf("ship should stop after release, x = %v", g.ship.X)
	}

	g.Tick(tick, []Event{KeyDown(KeyLeft), KeyDown(KeyRight)})
	if g.ship.X != 571.5 {
		t.Errorf("opposite keys should cancel, x = %v", g.ship.X)
	}
}

func TestMenuLayout(t *testing.T) {
	buttons := Menu(settings.Default())
	if len(buttons) != 4 {
		t.Fatalf("expected 4 buttons, got %d", len(buttons))
	}

	want := map[Button][2]int{
		ButtonPlay:   {500, 375},
		ButtonEasy:   {0, 520},
		ButtonMedium: {500, 520},
		ButtonHard:   {1000, 520},
	}
	for _, b := range buttons {
		pos := want[b.Button]
		if b.Rect.X != pos[0] || b.Rect.Y != pos[1] {
			t.Errorf("%s at (%d,%d), want (%d,%d)", b.Label, b.Rect.X, b.Rect.Y, pos[0], pos[1])
		}
		if b.Selected != (b.Button == ButtonMedium) {
			t.Errorf("%s selected = %v", b.Label, b.Selected)
		}
	}
}

func TestSnapshot(t *testing.T) {
	g := New(settings.Default(), 7, neverFire)

	var s Snapshot
	g.Snapshot(&s)
	if len(s.Menu) != 4 || !s.PointerVisible || s.State != StateInactive {
		t.Errorf("inactive snapshot should carry the menu: %+v", s.Menu)
	}
	if len(s.Enemies) != 36 || len(s.Shields) != 3 || s.Stats.HighScore != 7 {
		t.Errorf("unexpected snapshot contents: %d enemies, %d shields, high %d", len(s.Enemies), len(s.Shields), s.Stats.HighScore)
	}

	g.Start()
	g.Tick(tick, []Event{KeyDown(KeyFire)})
	g.Snapshot(&s)
	if len(s.Menu) != 0 {
		t.Error("menu should be hidden during a session")
	}
	if len(s.Shots) != 1 || s.Ship != g.ship.Bounds() {
		t.Errorf("snapshot shots = %d, ship = %v", len(s.Shots), s.Ship)
	}
	if s.Width != 1200 || s.Height != 800 {
		t.Errorf("snapshot size = %dx%d", s.Width, s.Height)
	}
}
