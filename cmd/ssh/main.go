package main

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/invasion/internal/config"
	"github.com/tomz197/invasion/internal/draw"
	"github.com/tomz197/invasion/internal/game"
	"github.com/tomz197/invasion/internal/highscore"
	"github.com/tomz197/invasion/internal/loop"
	"github.com/tomz197/invasion/internal/settings"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

// server holds what every SSH session shares.
type server struct {
	hub      *loop.Hub
	store    *highscore.Store
	profile  *settings.Profile // Template cloned per session
	tickRate int
	logger   *log.Logger
}

func main() {
	logger, err := config.NewLogger(os.Stderr, "ssh")
	if err != nil {
		logger.Warn("using default log level", "err", err)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("ssh config", "host", host, "port", port, "host_key", hostKeyPath, "working_dir", workingDir)

	profile := settings.Default()
	if path := config.GetEnv("INVASION_PROFILE", ""); path != "" {
		if profile, err = settings.LoadFile(path); err != nil {
			logger.Fatal("failed to load profile", "err", err)
		}
	}
	tickRate, err := config.GetEnvInt("INVASION_TICK_RATE", loop.DefaultTickRate)
	if err != nil {
		logger.Fatal("invalid tick rate", "err", err)
	}

	srv := &server{
		hub:      loop.NewHub(),
		store:    highscore.NewStore(config.GetEnv("INVASION_HIGHSCORE", highscore.DefaultPath)),
		profile:  profile,
		tickRate: tickRate,
		logger:   logger,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	// Notify players and wait for their sessions to save and disconnect
	logger.Info("notifying connected players", "sessions", srv.hub.Len())
	if !srv.hub.Shutdown(loop.ShutdownNotice + 5*time.Second) {
		logger.Warn("sessions still open after shutdown notice", "sessions", srv.hub.Len())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameMiddleware handles SSH sessions and runs one game per session.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			wish.Println(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := srv.logger.With("user", sess.User())
		logger.Info("new game session", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		handle := srv.hub.Register(sess.User())
		defer srv.hub.Unregister(handle.ID)

		fe := loop.NewTerminal(sess, sess, loop.TerminalOptions{
			TermSizeFunc: sizeTracker.getSize,
		})
		stats, err := loop.Play(sess.Context(), fe, loop.Options{
			Profile:     srv.profile.Clone(),
			Store:       srv.store,
			TickRate:    srv.tickRate,
			Rand:        newSessionRand(),
			Logger:      logger,
			IdleWarn:    loop.InactivityWarnUser,
			IdleTimeout: loop.InactivityDisconnectUser,
			Shutdown:    handle.Shutdown(),
		})
		if err != nil {
			logger.Error("game error", "err", err)
		}

		logger.Info("session ended", "score", stats.Score, "level", stats.Level, "duration", time.Since(handle.Started).Round(time.Second))
		next(sess)
	}
}

// newSessionRand returns an enemy fire source owned by one session.
func newSessionRand() game.Random {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
