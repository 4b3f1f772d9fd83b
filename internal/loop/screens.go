package loop

import (
	"fmt"
	"math"

	"github.com/tomz197/invasion/internal/game"
)

// Menu text shared by the frontends.
const (
	Title    = "A L I E N   I N V A S I O N"
	Controls = "Arrows or A/D move, SPACE fire, P play, 1-3 difficulty, Q quit"
)

// drawUI draws the text overlay for the frame.
func (t *Terminal) drawUI(f *Frame) {
	termWidth := t.canvas.TerminalWidth()
	termHeight := t.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	switch f.Notice.Kind {
	case NoticeShutdown:
		t.drawShutdownScreen(centerX, centerY, f.Notice)
		return
	case NoticeIdle:
		t.drawInactivityScreen(centerX, centerY, f.Notice)
		return
	}

	s := &f.Snapshot
	t.drawHUD(termWidth, s.Stats)
	switch s.State {
	case game.StateInactive:
		t.drawMenu(centerX, termHeight, s)
	case game.StatePaused:
		msg := fmt.Sprintf("SHIP LOST - %d left", s.Stats.Lives)
		t.cw.WriteAt(centerX-len(msg)/2+1, centerY, msg)
	}
}

// drawHUD draws score, high score, level and remaining ships.
func (t *Terminal) drawHUD(termWidth int, st game.Stats) {
	cw := t.cw
	cw.WriteAt(2, 1, fmt.Sprintf("Score: %d", st.Score))

	high := fmt.Sprintf("High: %d", st.HighScore)
	cw.WriteAt(termWidth/2-len(high)/2+1, 1, high)

	right := fmt.Sprintf("Level: %d  Ships: %d", st.Level, st.Lives)
	cw.WriteAt(termWidth-len(right), 1, right)
}

// drawMenu labels the menu buttons drawn by DrawScene.
func (t *Terminal) drawMenu(centerX, termHeight int, s *game.Snapshot) {
	cw := t.cw
	_, titleRow := t.canvas.LogicalToTerminal(0, float64(s.Height)/5)
	cw.WriteAt(centerX-len(Title)/2+1, titleRow, Title)

	for _, b := range s.Menu {
		label := b.Label
		if b.Selected {
			label = "[" + label + "]"
		}
		cx := float64(b.Rect.X) + float64(b.Rect.W)/2
		cy := float64(b.Rect.Y) + float64(b.Rect.H)/2
		col, row := t.canvas.LogicalToTerminal(cx, cy)
		cw.WriteAt(col-len(label)/2, row, label)
	}

	cw.WriteAt(centerX-len(Controls)/2+1, termHeight, Controls)
}

// drawInactivityScreen warns about the idle disconnect.
func (t *Terminal) drawInactivityScreen(centerX, centerY int, n Notice) {
	cw := t.cw
	heading := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(heading)/2, centerY-2, heading)

	msg := fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds. ", seconds(n))
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any control key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawShutdownScreen draws the server shutdown notification.
func (t *Terminal) drawShutdownScreen(centerX, centerY int, n Notice) {
	cw := t.cw
	heading := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(heading)/2, centerY-3, heading)

	msg1 := "The server is restarting for maintenance."
	cw.WriteAt(centerX-len(msg1)/2, centerY-1, msg1)

	msg2 := "Your high score will be saved."
	cw.WriteAt(centerX-len(msg2)/2, centerY, msg2)

	countdown := fmt.Sprintf("Disconnecting in %d seconds... ", seconds(n))
	cw.WriteAt(centerX-len(countdown)/2, centerY+2, countdown)

	hint := "Press Q to disconnect now"
	cw.WriteAt(centerX-len(hint)/2, centerY+4, hint)
}

func seconds(n Notice) int {
	return int(math.Ceil(n.Remaining.Seconds()))
}
