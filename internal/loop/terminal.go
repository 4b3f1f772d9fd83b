package loop

import (
	"io"
	"time"

	"github.com/tomz197/invasion/internal/draw"
	"github.com/tomz197/invasion/internal/game"
	"github.com/tomz197/invasion/internal/input"
)

// TerminalOptions configures the ANSI frontend.
type TerminalOptions struct {
	TermSizeFunc draw.TermSizeFunc // Nil reads os.Stdout
	HoldDuration time.Duration     // Steering key hold, see input.NewTracker
	MaxWidth     int               // Zero uses MaxTermWidth
	MaxHeight    int               // Zero uses MaxTermHeight
	Seed         int64             // Particle randomness
}

// Terminal is a Frontend that speaks raw ANSI over any reader and writer
// pair, e.g. a local raw-mode TTY or an SSH channel.
type Terminal struct {
	writer    io.Writer
	cw        *draw.ChunkWriter
	stream    *input.Stream
	tracker   *input.Tracker
	canvas    *draw.Canvas
	particles *draw.Particles
	termSize  draw.TermSizeFunc
	maxWidth  int
	maxHeight int
	buf       []byte

	drawn      bool
	lastWidth  int
	lastHeight int
	prevState  game.State
	prevNotice NoticeKind
}

var _ Frontend = (*Terminal)(nil)

// NewTerminal creates an ANSI frontend. Reading from r starts
// immediately.
func NewTerminal(r io.Reader, w io.Writer, opts TerminalOptions) *Terminal {
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	maxW, maxH := opts.MaxWidth, opts.MaxHeight
	if maxW <= 0 {
		maxW = MaxTermWidth
	}
	if maxH <= 0 {
		maxH = MaxTermHeight
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	t := &Terminal{
		writer:    w,
		cw:        draw.NewChunkWriter(w, 0, 0),
		stream:    input.StartStream(r),
		tracker:   input.NewTracker(opts.HoldDuration),
		particles: draw.NewParticles(seed),
		termSize:  termSize,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	t.tracker.MapPointer = t.mapPointer
	return t
}

// Open hides the cursor, enables mouse reporting and clears the screen.
func (t *Terminal) Open() error {
	draw.HideCursor(t.cw)
	draw.EnableMouse(t.cw)
	draw.ClearScreen(t.cw)
	return t.cw.Flush()
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	draw.DisableMouse(t.cw)
	draw.ClearScreen(t.cw)
	draw.ShowCursor(t.cw)
	return t.cw.Flush()
}

// Events decodes the bytes received since the last call.
func (t *Terminal) Events(now time.Time) ([]game.Event, error) {
	var ok bool
	t.buf, ok = t.stream.Drain(t.buf[:0])
	events := t.tracker.Feed(t.buf, now)
	if !ok && len(events) == 0 {
		return nil, ErrInputClosed
	}
	return events, nil
}

// mapPointer converts a clicked cell to logical coordinates.
func (t *Terminal) mapPointer(col, row int) (int, int) {
	if t.canvas == nil {
		return col, row
	}
	return t.canvas.TerminalToLogical(col, row)
}

// Render draws one frame.
func (t *Terminal) Render(f *Frame) error {
	s := &f.Snapshot
	t.updateScreen(s)

	// On resize, state or notice transitions, do a full terminal clear so
	// text from the previous screen does not persist.
	if !t.drawn || s.State != t.prevState || f.Notice.Kind != t.prevNotice {
		t.cw.WriteString("\033[H\033[2J")
		t.canvas.ForceRedraw()
		t.drawn = true
		t.prevState = s.State
		t.prevNotice = f.Notice.Kind
	}

	if game.Has(f.Signals, game.SignalStarted) {
		t.particles.Reset()
	}
	for _, r := range s.Blasts {
		t.particles.Explode(r, BlastParticles, BlastSpeed, BlastLifetime)
	}
	t.particles.Update(f.Delta)

	t.canvas.Clear()
	DrawScene(t.canvas, s)
	t.particles.Draw(t.canvas)
	t.canvas.Render(t.cw)
	t.canvas.RenderBorder(t.cw)

	t.drawUI(f)

	return t.cw.Flush()
}

// updateScreen fits the canvas to the terminal.
func (t *Terminal) updateScreen(s *game.Snapshot) {
	termW, termH, err := t.termSize()
	if err != nil {
		if t.canvas != nil {
			return
		}
		termW, termH = 80, 24
	}
	if termW != t.lastWidth || termH != t.lastHeight {
		t.lastWidth, t.lastHeight = termW, termH
		t.drawn = false
	}
	w, h, offCol, offRow := draw.FitTerminal(termW, termH, t.maxWidth, t.maxHeight)
	if t.canvas == nil {
		t.canvas = draw.NewScaledCanvas(w, h, float64(s.Width), float64(s.Height))
	} else {
		t.canvas.Resize(w, h)
	}
	t.canvas.SetOffset(offCol, offRow)
	t.cw.SetOffset(offCol, offRow)
}
