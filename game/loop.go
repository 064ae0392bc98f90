package game

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Loop drives a session at the configured fixed interval. Exactly one
// tick executes at a time, off a single time.Ticker; Stop (or a
// collision) deterministically cancels all future ticks. A Loop is
// one-shot: create a new one to play again.
//
// The hook fields let collaborators react without polling: OnTick for
// renderers and wire encoders, OnStart/OnFood/OnGameOver for audio
// cues. Hooks run on the loop goroutine and must not block.
type Loop struct {
	session  *Session
	interval time.Duration
	log      zerolog.Logger

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	OnStart    func()
	OnTick     func(TickResult)
	OnFood     func()
	OnGameOver func()
}

// NewLoop creates a driver for s ticking at s.Config().TickInterval.
// Pass zerolog.Nop() to keep the loop silent.
func NewLoop(s *Session, log zerolog.Logger) *Loop {
	return &Loop{
		session:  s,
		interval: s.Config().TickInterval,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run starts the session and blocks, ticking until the game ends or
// Stop is called. Callers normally run it on its own goroutine.
func (l *Loop) Run() {
	defer close(l.done)

	l.session.Start()
	if l.OnStart != nil {
		l.OnStart()
	}
	l.log.Info().Dur("interval", l.interval).Msg("tick loop started")

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			l.session.Stop()
			l.log.Info().Msg("tick loop stopped")
			return
		case <-ticker.C:
		}

		res := l.session.Tick()
		if l.OnTick != nil {
			l.OnTick(res)
		}
		if res.FoodConsumed && l.OnFood != nil {
			l.OnFood()
		}
		if res.Collided {
			if l.OnGameOver != nil {
				l.OnGameOver()
			}
			l.log.Info().
				Int("score", res.State.Score).
				Int("ticks", res.State.Ticks).
				Msg("game over")
			return
		}
	}
}

// Stop cancels the loop. Safe to call multiple times and after the
// loop already ended.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Done is closed when Run has returned, whether by Stop or game over.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
