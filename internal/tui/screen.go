// Package tui is a full-screen tcell frontend for a game session.
package tui

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/invasion/internal/draw"
	"github.com/tomz197/invasion/internal/game"
	"github.com/tomz197/invasion/internal/input"
	"github.com/tomz197/invasion/internal/loop"
)

var (
	fieldStyle    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	borderStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	selectedStyle = textStyle.Reverse(true)
	noticeStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Options configures the frontend.
type Options struct {
	HoldDuration time.Duration // Steering key hold, see input.NewTracker
	MaxWidth     int           // Zero uses loop.MaxTermWidth
	MaxHeight    int           // Zero uses loop.MaxTermHeight
	Seed         int64         // Particle randomness
}

// Screen is a loop.Frontend backed by a tcell screen.
type Screen struct {
	screen    tcell.Screen
	events    chan tcell.Event
	done      chan struct{}
	closed    bool
	tracker   *input.Tracker
	buttons   tcell.ButtonMask
	canvas    *draw.Canvas
	particles *draw.Particles
	maxWidth  int
	maxHeight int
}

var _ loop.Frontend = (*Screen)(nil)

// New wraps screen. The screen is initialized by Open.
func New(screen tcell.Screen, opts Options) *Screen {
	maxW, maxH := opts.MaxWidth, opts.MaxHeight
	if maxW <= 0 {
		maxW = loop.MaxTermWidth
	}
	if maxH <= 0 {
		maxH = loop.MaxTermHeight
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Screen{
		screen:    screen,
		events:    make(chan tcell.Event, 64),
		done:      make(chan struct{}),
		tracker:   input.NewTracker(opts.HoldDuration),
		particles: draw.NewParticles(seed),
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	s.tracker.MapPointer = s.mapPointer
	return s
}

// Open initializes the screen and starts polling its events.
func (s *Screen) Open() error {
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	s.screen.SetStyle(tcell.StyleDefault)
	s.screen.EnableMouse()
	s.screen.HideCursor()
	s.screen.Clear()

	go s.poll()
	return nil
}

// poll forwards screen events until the screen is finalized.
func (s *Screen) poll() {
	defer close(s.events)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// Close finalizes the screen.
func (s *Screen) Close() error {
	select {
	case <-s.done:
	default:
		close(s.done)
		s.screen.Fini()
	}
	return nil
}

// Events returns the input received since the last call.
func (s *Screen) Events(now time.Time) ([]game.Event, error) {
drain:
	for !s.closed {
		select {
		case ev, ok := <-s.events:
			if !ok {
				s.closed = true
				break drain
			}
			s.handle(ev, now)
		default:
			break drain
		}
	}

	events := s.tracker.Flush(now)
	if s.closed && len(events) == 0 {
		return nil, loop.ErrInputClosed
	}
	return events, nil
}

func (s *Screen) handle(ev tcell.Event, now time.Time) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if k := keyFor(ev); k != game.KeyNone {
			s.tracker.Press(k, now)
		}
	case *tcell.EventMouse:
		// Only the press edge counts as a click.
		buttons := ev.Buttons()
		if buttons&tcell.Button1 != 0 && s.buttons&tcell.Button1 == 0 {
			x, y := ev.Position()
			s.tracker.Click(x, y)
		}
		s.buttons = buttons
	case *tcell.EventResize:
		s.screen.Sync()
	}
}

// mapPointer converts a clicked cell to logical coordinates.
func (s *Screen) mapPointer(col, row int) (int, int) {
	if s.canvas == nil {
		return col, row
	}
	return s.canvas.TerminalToLogical(col, row)
}

// Render draws one frame.
func (s *Screen) Render(f *loop.Frame) error {
	snap := &f.Snapshot
	s.fit(snap)

	if game.Has(f.Signals, game.SignalStarted) {
		s.particles.Reset()
	}
	for _, r := range snap.Blasts {
		s.particles.Explode(r, loop.BlastParticles, loop.BlastSpeed, loop.BlastLifetime)
	}
	s.particles.Update(f.Delta)

	c := s.canvas
	c.Clear()
	loop.DrawScene(c, snap)
	s.particles.Draw(c)

	s.screen.Clear()
	offCol, offRow := c.OffsetCol(), c.OffsetRow()
	for row := 0; row < c.TerminalHeight(); row++ {
		for col := 0; col < c.TerminalWidth(); col++ {
			if r := c.Cell(col, row); r != draw.BlockEmpty {
				s.screen.SetContent(offCol+col, offRow+row, r, nil, fieldStyle)
			}
		}
	}
	s.drawBorder()
	s.drawUI(f)

	s.screen.Show()
	return nil
}

// fit sizes the canvas to the screen.
func (s *Screen) fit(snap *game.Snapshot) {
	termW, termH := s.screen.Size()
	w, h, offCol, offRow := draw.FitTerminal(termW, termH, s.maxWidth, s.maxHeight)
	if s.canvas == nil {
		s.canvas = draw.NewScaledCanvas(w, h, float64(snap.Width), float64(snap.Height))
	} else {
		s.canvas.Resize(w, h)
	}
	s.canvas.SetOffset(offCol, offRow)
}

func (s *Screen) drawBorder() {
	c := s.canvas
	left, top := c.OffsetCol()-1, c.OffsetRow()-1
	if left < 0 || top < 0 {
		return
	}
	right := left + c.TerminalWidth() + 1
	bottom := top + c.TerminalHeight() + 1
	for x := left + 1; x < right; x++ {
		s.screen.SetContent(x, top, tcell.RuneHLine, nil, borderStyle)
		s.screen.SetContent(x, bottom, tcell.RuneHLine, nil, borderStyle)
	}
	for y := top + 1; y < bottom; y++ {
		s.screen.SetContent(left, y, tcell.RuneVLine, nil, borderStyle)
		s.screen.SetContent(right, y, tcell.RuneVLine, nil, borderStyle)
	}
	s.screen.SetContent(left, top, tcell.RuneULCorner, nil, borderStyle)
	s.screen.SetContent(right, top, tcell.RuneURCorner, nil, borderStyle)
	s.screen.SetContent(left, bottom, tcell.RuneLLCorner, nil, borderStyle)
	s.screen.SetContent(right, bottom, tcell.RuneLRCorner, nil, borderStyle)
}

// text writes str starting at a zero-based canvas cell.
func (s *Screen) text(col, row int, str string, style tcell.Style) {
	col += s.canvas.OffsetCol()
	row += s.canvas.OffsetRow()
	for i, r := range []rune(str) {
		s.screen.SetContent(col+i, row, r, nil, style)
	}
}

// centered writes str centered on the canvas row.
func (s *Screen) centered(row int, str string, style tcell.Style) {
	s.text((s.canvas.TerminalWidth()-len(str))/2, row, str, style)
}

func (s *Screen) drawUI(f *loop.Frame) {
	c := s.canvas
	centerY := c.TerminalHeight() / 2

	switch f.Notice.Kind {
	case loop.NoticeShutdown:
		s.centered(centerY-3, "SERVER SHUTTING DOWN", noticeStyle)
		s.centered(centerY-1, "The server is restarting for maintenance.", textStyle)
		s.centered(centerY+1, fmt.Sprintf("Disconnecting in %d seconds...", seconds(f.Notice)), textStyle)
		return
	case loop.NoticeIdle:
		s.centered(centerY-2, "INACTIVITY WARNING", noticeStyle)
		s.centered(centerY, fmt.Sprintf("You will be disconnected in %d seconds.", seconds(f.Notice)), textStyle)
		s.centered(centerY+2, "Press any control key to continue", textStyle)
		return
	}

	snap := &f.Snapshot
	st := snap.Stats
	s.text(1, 0, fmt.Sprintf("Score: %d", st.Score), textStyle)
	s.centered(0, fmt.Sprintf("High: %d", st.HighScore), textStyle)
	right := fmt.Sprintf("Level: %d  Ships: %d", st.Level, st.Lives)
	s.text(c.TerminalWidth()-len(right)-1, 0, right, textStyle)

	switch snap.State {
	case game.StateInactive:
		_, titleRow := c.LogicalToTerminal(0, float64(snap.Height)/5)
		s.centered(titleRow-1, loop.Title, noticeStyle)
		for _, b := range snap.Menu {
			style := textStyle
			if b.Selected {
				style = selectedStyle
			}
			cx := float64(b.Rect.X) + float64(b.Rect.W)/2
			cy := float64(b.Rect.Y) + float64(b.Rect.H)/2
			col, row := c.LogicalToTerminal(cx, cy)
			s.text(col-1-len(b.Label)/2, row-1, b.Label, style)
		}
		s.centered(c.TerminalHeight()-1, loop.Controls, textStyle)
	case game.StatePaused:
		s.centered(centerY, fmt.Sprintf("SHIP LOST - %d left", st.Lives), noticeStyle)
	}
}

func seconds(n loop.Notice) int {
	return int(math.Ceil(n.Remaining.Seconds()))
}
