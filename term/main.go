// Command term plays a session locally in the terminal. It is the
// rendering, keyboard-input and audio collaborator for the engine:
// arrow keys feed SetDirection, the board is drawn from per-tick
// snapshots, and the terminal bell marks start, food and collision.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/mod/nitro-snake/game"
)

type app struct {
	screen  tcell.Screen
	session *game.Session
	loop    *game.Loop
	log     zerolog.Logger
}

func main() {
	log := zerolog.Nop()
	if path := os.Getenv("NITRO_SNAKE_TERM_LOG"); path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			log = zerolog.New(f).With().Timestamp().Logger()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "problem creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "screen init problem: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	a := &app{
		screen:  screen,
		session: game.NewSession(game.DefaultConfig()),
		log:     log,
	}
	a.draw(a.session.Snapshot())
	a.startLoop()
	a.eventLoop()
}

// startLoop launches a fresh tick driver unless one is still running.
func (a *app) startLoop() {
	if a.loop != nil {
		select {
		case <-a.loop.Done():
		default:
			return
		}
	}
	l := game.NewLoop(a.session, a.log)
	l.OnStart = func() { a.screen.Beep() }
	l.OnFood = func() { a.screen.Beep() }
	l.OnGameOver = func() { a.screen.Beep() }
	l.OnTick = func(res game.TickResult) { a.draw(res.State) }
	a.loop = l
	go l.Run()
}

// eventLoop polls keyboard events on the main goroutine, mirroring
// the draw-from-ticker / poll-from-main split.
func (a *app) eventLoop() {
	directions := map[tcell.Key]game.Direction{
		tcell.KeyUp:    game.Up,
		tcell.KeyDown:  game.Down,
		tcell.KeyLeft:  game.Left,
		tcell.KeyRight: game.Right,
	}
	for {
		ev := a.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
				a.loop.Stop()
				return
			case ev.Rune() == 'r':
				a.loop.Stop()
				<-a.loop.Done()
				a.session.Reset()
				a.startLoop()
			default:
				if d, ok := directions[ev.Key()]; ok {
					a.session.SetDirection(d)
				}
			}
		}
	}
}

// draw renders one snapshot: border box, body, head, food and the
// score line. Runs on the loop goroutine (the poller never draws).
func (a *app) draw(snap game.Snapshot) {
	cfg := a.session.Config()
	s := a.screen
	s.Clear()

	border := tcell.StyleDefault.Foreground(tcell.ColorGray)
	drawBox(s, 0, 0, cfg.Cols+1, cfg.Rows+1, border)

	// Board cells are offset by (1,1) to sit inside the border.
	s.SetContent(snap.Food.Col+1, snap.Food.Row+1, '*', nil,
		tcell.StyleDefault.Foreground(tcell.ColorRed))
	bodyStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	for i, c := range snap.Body {
		r := 'o'
		if i == len(snap.Body)-1 {
			r = '@'
		}
		s.SetContent(c.Col+1, c.Row+1, r, nil, bodyStyle)
	}

	status := fmt.Sprintf("score %d  ticks %d  [arrows] steer  [r] restart  [q] quit", snap.Score, snap.Ticks)
	drawText(s, 0, cfg.Rows+2, status, tcell.StyleDefault)
	if snap.Phase == game.GameOver {
		drawText(s, 2, cfg.Rows/2+1, " GAME OVER — press r ", tcell.StyleDefault.
			Foreground(tcell.ColorYellow).Bold(true))
	}
	s.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		s.SetContent(col, y, r, nil, style)
		col++
	}
}

func drawBox(s tcell.Screen, x1, y1, x2, y2 int, style tcell.Style) {
	for col := x1; col <= x2; col++ {
		s.SetContent(col, y1, tcell.RuneHLine, nil, style)
		s.SetContent(col, y2, tcell.RuneHLine, nil, style)
	}
	for row := y1 + 1; row < y2; row++ {
		s.SetContent(x1, row, tcell.RuneVLine, nil, style)
		s.SetContent(x2, row, tcell.RuneVLine, nil, style)
	}
	s.SetContent(x1, y1, tcell.RuneULCorner, nil, style)
	s.SetContent(x2, y1, tcell.RuneURCorner, nil, style)
	s.SetContent(x1, y2, tcell.RuneLLCorner, nil, style)
	s.SetContent(x2, y2, tcell.RuneLRCorner, nil, style)
}
