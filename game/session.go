package game

import (
	"math/rand"
	"sync"
	"time"
)

// Phase is the lifecycle state of a play session.
type Phase uint8

const (
	Idle Phase = iota
	Running
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case GameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Snapshot is a copied view of session state for collaborators
// (renderers, audio cues, wire encoders). It never aliases live
// engine state.
type Snapshot struct {
	Body  []Cell // tail first, head last
	Food  Cell
	Score int
	Phase Phase
	Dir   Direction
	Ticks int
}

// Head returns the head cell of the snapshot body.
func (s Snapshot) Head() Cell {
	return s.Body[len(s.Body)-1]
}

// TickResult reports what a single tick did.
type TickResult struct {
	Moved        bool // the snake advanced one cell
	FoodConsumed bool
	Collided     bool // wall or self collision; session is now GameOver
	State        Snapshot
}

// Session owns all mutable simulation state: snake body and
// occupied-set, current direction, food cell, score, phase and the
// elapsed-tick counter. Nothing outside the session mutates any of
// it; collaborators read snapshots and feed direction changes in.
// All methods are safe for concurrent use; ticks themselves are
// serialized by the caller (see Loop).
type Session struct {
	mu    sync.Mutex
	cfg   Config
	grid  Grid
	snake *Snake
	dir   Direction
	food  Cell
	score int
	phase Phase
	ticks int
	rng   *rand.Rand
}

// NewSession creates a session in the Idle phase with a fresh
// default-placed snake and food.
func NewSession(cfg Config) *Session {
	cfg = cfg.withDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		cfg:  cfg,
		grid: Grid{Rows: cfg.Rows, Cols: cfg.Cols},
		rng:  rand.New(rand.NewSource(seed)),
	}
	s.resetLocked()
	return s
}

// Config returns the session configuration (defaults applied).
func (s *Session) Config() Config {
	return s.cfg
}

// resetLocked reinitializes snake, direction, food, score and phase.
// Caller must hold s.mu (or own the session exclusively).
func (s *Session) resetLocked() {
	head := Cell{Row: 0, Col: s.cfg.InitialLength - 1}
	s.snake = newStraightSnake(s.grid, head, s.cfg.InitialLength, Right)
	s.dir = Right
	s.score = 0
	s.ticks = 0
	s.phase = Idle
	s.food = placeFood(s.rng, s.grid, s.snake.occupied)
}

// Reset forces the session back to Idle with fresh state. Available
// in any phase; it does not start the tick driver.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// Start transitions to Running. Starting from GameOver performs a
// full reset first, so a finished session restarts cleanly.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == GameOver {
		s.resetLocked()
	}
	s.phase = Running
}

// Stop halts play without ending the game: the phase returns to Idle
// (stopped-but-not-over, distinct from GameOver) and the elapsed-tick
// counter resets to 0. Snake, food and score are left in place.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == Running {
		s.phase = Idle
	}
	s.ticks = 0
}

// SetDirection commits a direction change for the next tick. A
// request for the exact opposite of the current direction is silently
// ignored, so the head can never fold back onto its own neck.
// Between ticks the latest committed value wins; nothing is queued.
func (s *Session) SetDirection(d Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d == s.dir.Opposite() {
		return
	}
	s.dir = d
}

// Direction returns the currently committed direction.
func (s *Session) Direction() Direction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir
}

// Tick advances the simulation one step. Outside the Running phase it
// mutates nothing and reports Moved=false.
//
// Order within a tick: read direction, compute the candidate head,
// check it against the board bounds and the post-shift body (old tail
// excluded — that cell is vacated this very tick), then either
// transition to GameOver or commit the move. Food consumption is
// detected on the candidate head cell before it is appended; growth
// re-inserts the old tail, food is re-placed against the updated
// occupied-set, and the score rises by FoodBonus.
func (s *Session) Tick() TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != Running {
		return TickResult{State: s.snapshotLocked()}
	}
	s.ticks++

	candidate := s.snake.Head().Step(s.dir)
	if !s.grid.InBounds(candidate) || s.snake.hitsBody(candidate) {
		s.phase = GameOver
		return TickResult{Collided: true, State: s.snapshotLocked()}
	}

	ate := candidate == s.food
	s.snake.commit(candidate, ate)
	if ate {
		s.score += FoodBonus
		s.food = placeFood(s.rng, s.grid, s.snake.occupied)
	}
	return TickResult{Moved: true, FoodConsumed: ate, State: s.snapshotLocked()}
}

// Snapshot returns a copied view of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Score returns the current score.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Ticks returns the elapsed-tick counter.
func (s *Session) Ticks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Body:  s.snake.Body(),
		Food:  s.food,
		Score: s.score,
		Phase: s.phase,
		Dir:   s.dir,
		Ticks: s.ticks,
	}
}
