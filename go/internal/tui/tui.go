package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mcdev12/clicker/go/internal/audio"
	"github.com/mcdev12/clicker/go/internal/events"
	"github.com/mcdev12/clicker/go/internal/round"
	"github.com/rs/zerolog/log"
)

const (
	boardCols  = 40
	boardRows  = 20
	originX    = 2
	originY    = 2
	panelGap   = 4
	redrawRate = 50 * time.Millisecond
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	targetStyle = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Controller is the command and observation surface the UI drives
type Controller interface {
	Start()
	Click() bool
	Snapshot() round.Snapshot
}

// UI renders controller snapshots on a terminal and forwards input to the controller
type UI struct {
	screen  tcell.Screen
	ctrl    Controller
	updates <-chan events.Envelope
	sound   *audio.Player

	pressed bool
}

// New creates a UI over an initialized screen. updates may be nil.
func New(screen tcell.Screen, ctrl Controller, updates <-chan events.Envelope, sound *audio.Player) *UI {
	return &UI{
		screen:  screen,
		ctrl:    ctrl,
		updates: updates,
		sound:   sound,
	}
}

// Run processes input and redraws until the player quits or ctx is done
func (u *UI) Run(ctx context.Context) error {
	u.screen.EnableMouse()
	u.screen.HideCursor()

	eventCh := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				// Screen finalized
				close(eventCh)
				return
			}
			eventCh <- ev
		}
	}()

	ticker := time.NewTicker(redrawRate)
	defer ticker.Stop()

	u.draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-eventCh:
			if !ok {
				return nil
			}
			if !u.handleEvent(ev) {
				log.Info().Msg("player quit")
				return nil
			}
			u.draw()
		case env := <-u.updates:
			u.handleUpdate(env)
			u.draw()
		case <-ticker.C:
			u.draw()
		}
	}
}

// handleEvent applies one input event and reports whether the UI should keep running
func (u *UI) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			u.ctrl.Start()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 's', 'S', ' ':
				u.ctrl.Start()
			}
		}

	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		// Only the press edge counts; drags and releases are ignored
		if down && !u.pressed {
			x, y := ev.Position()
			u.click(x, y)
		}
		u.pressed = down

	case *tcell.EventResize:
		u.screen.Sync()
	}
	return true
}

func (u *UI) click(x, y int) {
	s := u.ctrl.Snapshot()
	p, ok := u.toBoard(x, y, s)
	if !ok || !s.Hit(p) {
		return
	}
	u.ctrl.Click()
}

func (u *UI) handleUpdate(env events.Envelope) {
	if env.EventType == events.EventTypeTargetHit {
		u.sound.Hit()
	}
	log.Debug().Str("event_type", string(env.EventType)).Msg("ui update")
}

// toBoard maps a screen cell to the board point at the center of that cell
func (u *UI) toBoard(x, y int, s round.Snapshot) (round.Point, bool) {
	cx := x - originX - 1
	cy := y - originY - 1
	if cx < 0 || cx >= boardCols || cy < 0 || cy >= boardRows {
		return round.Point{}, false
	}
	return round.Point{
		X: (float64(cx) + 0.5) * s.BoardSize / boardCols,
		Y: (float64(cy) + 0.5) * s.BoardSize / boardRows,
	}, true
}

func (u *UI) draw() {
	s := u.ctrl.Snapshot()
	u.screen.Clear()

	drawText(u.screen, originX, 0, titleStyle, "osu! Clicker")
	u.drawBoard(s)

	panelX := originX + boardCols + 2 + panelGap
	for i, line := range infoLines(s) {
		style := textStyle
		if i == 0 {
			style = titleStyle
		}
		drawText(u.screen, panelX, originY+i, style, line)
	}

	u.screen.Show()
}

func (u *UI) drawBoard(s round.Snapshot) {
	right := originX + boardCols + 1
	bottom := originY + boardRows + 1

	for x := originX; x <= right; x++ {
		u.screen.SetContent(x, originY, '─', nil, borderStyle)
		u.screen.SetContent(x, bottom, '─', nil, borderStyle)
	}
	for y := originY; y <= bottom; y++ {
		u.screen.SetContent(originX, y, '│', nil, borderStyle)
		u.screen.SetContent(right, y, '│', nil, borderStyle)
	}
	u.screen.SetContent(originX, originY, '┌', nil, borderStyle)
	u.screen.SetContent(right, originY, '┐', nil, borderStyle)
	u.screen.SetContent(originX, bottom, '└', nil, borderStyle)
	u.screen.SetContent(right, bottom, '┘', nil, borderStyle)

	if s.Phase != round.PhaseRunning {
		msg := statusMessage(s)
		drawText(u.screen, originX+1+(boardCols-len(msg))/2, originY+1+boardRows/2, textStyle, msg)
		return
	}

	// A cell belongs to the target when its center does, which keeps drawing and hit testing in agreement
	for cy := 0; cy < boardRows; cy++ {
		for cx := 0; cx < boardCols; cx++ {
			x, y := originX+1+cx, originY+1+cy
			if p, ok := u.toBoard(x, y, s); ok && s.Hit(p) {
				u.screen.SetContent(x, y, '█', nil, targetStyle)
			}
		}
	}
}

func statusMessage(s round.Snapshot) string {
	if s.Phase == round.PhaseFinished {
		return fmt.Sprintf("Your score: %d. Press S to play again", s.Score)
	}
	return "Press S to start"
}

// infoLines is the side panel text: timer, score and top scores
func infoLines(s round.Snapshot) []string {
	lines := []string{
		fmt.Sprintf("Time: %.1fs", s.TimeRemaining.Seconds()),
		fmt.Sprintf("Score: %d", s.Score),
		fmt.Sprintf("Mode: %s", s.Policy),
		"",
		"Top 5",
	}
	for i, score := range s.Leaderboard {
		lines = append(lines, fmt.Sprintf("%d. %d", i+1, score))
	}
	return lines
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
