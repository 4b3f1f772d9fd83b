// Package loop runs one game session: it polls a frontend for input,
// advances the game at a fixed rate, renders every tick and persists the
// high score when the session ends.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invasion/internal/game"
	"github.com/tomz197/invasion/internal/highscore"
	"github.com/tomz197/invasion/internal/settings"
)

// ErrInputClosed is returned by a frontend whose input source is gone.
// The session ends normally.
var ErrInputClosed = errors.New("input closed")

// NoticeKind is an overlay drawn on top of the game.
type NoticeKind int

const (
	NoticeNone     NoticeKind = iota
	NoticeIdle                // Disconnect after inactivity
	NoticeShutdown            // Server is going away
)

// Notice is the overlay for the current frame.
type Notice struct {
	Kind      NoticeKind
	Remaining time.Duration // Until disconnect
}

// Frame is what a frontend draws for one tick.
type Frame struct {
	Snapshot game.Snapshot
	Signals  []game.Signal // Outcomes of this tick
	Notice   Notice
	Delta    time.Duration // Time since the previous tick
}

// Frontend is the input and rendering side of a session.
type Frontend interface {
	Open() error
	// Events returns the input collected since the previous call.
	Events(now time.Time) ([]game.Event, error)
	Render(f *Frame) error
	Close() error
}

// SignalSink consumes tick outcomes, e.g. to play sounds.
type SignalSink interface {
	Handle(signals []game.Signal)
}

// Options configures a session.
type Options struct {
	Profile  *settings.Profile // Nil uses settings.Default()
	Store    *highscore.Store  // Nil disables persistence
	TickRate int               // Ticks per second
	Rand     game.Random       // Nil uses a time-seeded source
	Logger   *log.Logger       // Nil discards

	IdleWarn    time.Duration // Zero disables the warning
	IdleTimeout time.Duration // Zero disables the disconnect

	Sound SignalSink

	// Shutdown, once closed, shows a notice and ends the session after
	// ShutdownNotice.
	Shutdown       <-chan struct{}
	ShutdownNotice time.Duration
}

func (o Options) withDefaults() Options {
	if o.Profile == nil {
		o.Profile = settings.Default()
	}
	if o.TickRate <= 0 {
		o.TickRate = DefaultTickRate
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.ShutdownNotice <= 0 {
		o.ShutdownNotice = ShutdownNotice
	}
	return o
}

// Play runs a session until the player quits, the input closes, the
// context is cancelled, the idle timeout passes or a shutdown completes.
// The high score is recorded on every one of those paths.
func Play(ctx context.Context, fe Frontend, opts Options) (stats game.Stats, err error) {
	opts = opts.withDefaults()
	logger := opts.Logger

	high := 0
	if opts.Store != nil {
		high, err = opts.Store.Load()
		if err != nil {
			logger.Warn("high score unavailable", "path", opts.Store.Path(), "err", err)
			high, err = 0, nil
		}
	}

	g := game.New(opts.Profile, high, opts.Rand)
	if err := fe.Open(); err != nil {
		return g.Stats(), fmt.Errorf("open frontend: %w", err)
	}

	defer func() {
		if cerr := fe.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close frontend: %w", cerr)
		}
		stats = g.Stats()
		record(opts.Store, logger, stats.HighScore)
	}()

	err = run(ctx, fe, g, opts)
	return g.Stats(), err
}

// run is the tick loop.
func run(ctx context.Context, fe Frontend, g *game.Game, opts Options) error {
	logger := opts.Logger
	frameTime := time.Second / time.Duration(opts.TickRate)

	var (
		frame      Frame
		shutdownAt time.Time
	)
	last := time.Now()
	lastInput := last

	for {
		select {
		case <-ctx.Done():
			logger.Info("session cancelled")
			return nil
		default:
		}

		frameStart := time.Now()
		dt := frameStart.Sub(last)
		last = frameStart

		// ===== INPUT PHASE =====
		events, err := fe.Events(frameStart)
		if errors.Is(err, ErrInputClosed) {
			logger.Info("input closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if len(events) > 0 {
			lastInput = frameStart
		}

		if opts.Shutdown != nil && shutdownAt.IsZero() {
			select {
			case <-opts.Shutdown:
				shutdownAt = frameStart.Add(opts.ShutdownNotice)
				logger.Info("shutdown notice", "in", opts.ShutdownNotice)
			default:
			}
		}

		// ===== UPDATE PHASE =====
		signals := g.Tick(dt, events)
		logSignals(logger, g, signals)
		if opts.Sound != nil {
			opts.Sound.Handle(signals)
		}
		if g.QuitRequested() {
			return nil
		}

		notice := Notice{}
		idle := frameStart.Sub(lastInput)
		if opts.IdleTimeout > 0 && idle >= opts.IdleTimeout {
			logger.Info("idle disconnect", "idle", idle.Round(time.Second))
			return nil
		}
		if opts.IdleWarn > 0 && idle >= opts.IdleWarn {
			notice = Notice{Kind: NoticeIdle, Remaining: opts.IdleTimeout - idle}
		}
		if !shutdownAt.IsZero() {
			remaining := shutdownAt.Sub(frameStart)
			if remaining <= 0 {
				return nil
			}
			notice = Notice{Kind: NoticeShutdown, Remaining: remaining}
		}

		// ===== DRAW PHASE =====
		g.Snapshot(&frame.Snapshot)
		frame.Signals = signals
		frame.Notice = notice
		frame.Delta = dt
		if err := fe.Render(&frame); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}
}

func logSignals(logger *log.Logger, g *game.Game, signals []game.Signal) {
	for _, s := range signals {
		switch s {
		case game.SignalStarted:
			logger.Info("session started", "difficulty", g.Profile().Difficulty)
		case game.SignalDifficulty:
			logger.Debug("difficulty selected", "difficulty", g.Profile().Difficulty)
		case game.SignalLevelCleared:
			logger.Info("level cleared", "level", g.Stats().Level, "score", g.Stats().Score)
		case game.SignalShipHit:
			logger.Debug("ship hit", "lives", g.Stats().Lives)
		case game.SignalGameOver:
			logger.Info("game over", "score", g.Stats().Score, "level", g.Stats().Level)
		case game.SignalQuit:
			logger.Info("quit requested")
		}
	}
}

func record(store *highscore.Store, logger *log.Logger, score int) {
	if store == nil {
		return
	}
	kept, err := store.Record(score)
	if errors.Is(err, highscore.ErrCorrupt) {
		logger.Warn("replaced corrupt high score file", "path", store.Path(), "err", err)
		err = nil
	}
	if err != nil {
		logger.Error("failed to persist high score", "path", store.Path(), "err", err)
		return
	}
	logger.Info("high score persisted", "score", kept)
}
