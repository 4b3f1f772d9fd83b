package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/tomz197/invasion/internal/audio"
	"github.com/tomz197/invasion/internal/config"
	"github.com/tomz197/invasion/internal/game"
	"github.com/tomz197/invasion/internal/highscore"
	"github.com/tomz197/invasion/internal/loop"
	"github.com/tomz197/invasion/internal/settings"
	"github.com/tomz197/invasion/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ansi := flag.Bool("ansi", false, "render with plain ANSI escapes instead of tcell")
	sound := flag.Bool("sound", false, "play sound effects")
	profilePath := flag.String("profile", config.GetEnv("INVASION_PROFILE", ""), "TOML file overriding the gameplay profile")
	dumpProfile := flag.Bool("dump-profile", false, "print the default profile as TOML and exit")
	seed := flag.Int64("seed", 0, "seed for enemy fire; 0 picks one from the clock")
	flag.Parse()

	if *dumpProfile {
		return settings.Write(os.Stdout, settings.Default())
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	profile := settings.Default()
	if *profilePath != "" {
		if profile, err = settings.LoadFile(*profilePath); err != nil {
			return err
		}
	}

	tickRate, err := config.GetEnvInt("INVASION_TICK_RATE", loop.DefaultTickRate)
	if err != nil {
		return err
	}
	if *seed == 0 {
		envSeed, err := config.GetEnvInt("INVASION_SEED", 0)
		if err != nil {
			return err
		}
		*seed = int64(envSeed)
	}
	var rng game.Random
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}

	store := highscore.NewStore(config.GetEnv("INVASION_HIGHSCORE", highscore.DefaultPath))

	opts := loop.Options{
		Profile:  profile,
		Store:    store,
		TickRate: tickRate,
		Rand:     rng,
		Logger:   logger,
	}

	if *sound {
		sm := audio.NewSoundManager(0.6)
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio unavailable", "err", err)
		} else {
			defer sm.Cleanup()
			opts.Sound = sm
		}
	}

	var fe loop.Frontend
	if *ansi {
		fd := int(os.Stdin.Fd())
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enable raw mode: %w", err)
		}
		defer func() {
			_ = term.Restore(fd, oldState)
		}()
		fe = loop.NewTerminal(os.Stdin, os.Stdout, loop.TerminalOptions{Seed: *seed})
	} else {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		fe = tui.New(screen, tui.Options{Seed: *seed})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "profile", *profilePath, "highscore", store.Path(), "tick_rate", tickRate)
	stats, err := loop.Play(ctx, fe, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Score: %d  Level: %d  High score: %d\r\n", stats.Score, stats.Level, stats.HighScore)
	return nil
}

// newLogger logs to the file named by INVASION_LOG. Without it the log is
// discarded because the terminal belongs to the game.
func newLogger() (*log.Logger, func(), error) {
	path := config.GetEnv("INVASION_LOG", "")
	if path == "" {
		logger, err := config.NewLogger(io.Discard, "invasion")
		return logger, func() {}, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger, err := config.NewLogger(f, "invasion")
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, func() { f.Close() }, nil
}
