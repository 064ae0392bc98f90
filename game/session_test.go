package game

import (
	"math/rand"
	"testing"
)

func newTestSession(seed int64) *Session {
	cfg := DefaultConfig()
	cfg.Seed = seed
	return NewSession(cfg)
}

func TestInitialState(t *testing.T) {
	s := newTestSession(1)
	snap := s.Snapshot()

	if snap.Phase != Idle {
		t.Errorf("Phase = %v, want idle", snap.Phase)
	}
	if snap.Dir != Right {
		t.Errorf("Dir = %v, want right", snap.Dir)
	}
	if snap.Score != 0 {
		t.Errorf("Score = %d, want 0", snap.Score)
	}
	if len(snap.Body) != DefaultInitialLength {
		t.Fatalf("body length = %d, want %d", len(snap.Body), DefaultInitialLength)
	}
	for i, c := range snap.Body {
		if c != (Cell{Row: 0, Col: i}) {
			t.Errorf("body[%d] = %v, want (0,%d)", i, c, i)
		}
	}
	for _, c := range snap.Body {
		if c == snap.Food {
			t.Errorf("food %v placed on the snake body", snap.Food)
		}
	}
}

func TestOppositeDirectionRejected(t *testing.T) {
	s := newTestSession(1)

	// Current direction is Right; Left is a 180-degree reversal.
	s.SetDirection(Left)
	if got := s.Direction(); got != Right {
		t.Errorf("Direction after rejected reversal = %v, want right", got)
	}

	s.SetDirection(Up)
	if got := s.Direction(); got != Up {
		t.Errorf("Direction = %v, want up", got)
	}
	s.SetDirection(Down) // now the reversal of Up
	if got := s.Direction(); got != Up {
		t.Errorf("Direction after rejected reversal = %v, want up", got)
	}
}

func TestLatestDirectionWins(t *testing.T) {
	s := newTestSession(1)

	// Two changes between ticks: only the last committed value counts.
	s.SetDirection(Up)
	s.SetDirection(Down) // rejected: opposite of current (Up)
	s.SetDirection(Left) // not opposite of Up, commits
	if got := s.Direction(); got != Left {
		t.Errorf("Direction = %v, want left", got)
	}
}

func TestTickOutsideRunningIsNoop(t *testing.T) {
	s := newTestSession(1)
	before := s.Snapshot()

	res := s.Tick()
	if res.Moved || res.FoodConsumed || res.Collided {
		t.Errorf("idle tick reported activity: %+v", res)
	}
	after := s.Snapshot()
	if !snapshotsEqual(before, after) {
		t.Errorf("idle tick mutated state:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestTickAfterGameOverIsNoop(t *testing.T) {
	s := runIntoWall(t)
	before := s.Snapshot()

	res := s.Tick()
	if res.Moved || res.Collided {
		t.Errorf("game-over tick reported activity: %+v", res)
	}
	after := s.Snapshot()
	if !snapshotsEqual(before, after) {
		t.Errorf("game-over tick mutated state:\nbefore %+v\nafter  %+v", before, after)
	}
}

// TestConsumptionEndToEnd is the 48x48 scenario: initial body on row 0
// cols 0..9 heading Right, food directly ahead at (0,10). One tick
// consumes it: length 11, score 10, food relocated off the body.
func TestConsumptionEndToEnd(t *testing.T) {
	s := newTestSession(1)
	s.Start()
	s.food = Cell{Row: 0, Col: 10}

	res := s.Tick()

	if !res.Moved || !res.FoodConsumed || res.Collided {
		t.Fatalf("TickResult = %+v, want moved and food consumed", res)
	}
	if len(res.State.Body) != 11 {
		t.Errorf("body length = %d, want 11", len(res.State.Body))
	}
	if res.State.Score != FoodBonus {
		t.Errorf("score = %d, want %d", res.State.Score, FoodBonus)
	}
	if res.State.Head() != (Cell{0, 10}) {
		t.Errorf("head = %v, want (0,10)", res.State.Head())
	}
	if res.State.Food == (Cell{0, 10}) {
		t.Error("food was not re-placed after consumption")
	}
	for _, c := range res.State.Body {
		if c == res.State.Food {
			t.Errorf("new food %v placed on the body", res.State.Food)
		}
	}
}

func TestNonGrowthDropsTail(t *testing.T) {
	s := newTestSession(1)
	s.Start()
	s.food = Cell{Row: 20, Col: 20} // well off the path

	oldTail := s.Snapshot().Body[0]
	res := s.Tick()

	if !res.Moved || res.FoodConsumed {
		t.Fatalf("TickResult = %+v, want plain move", res)
	}
	if len(res.State.Body) != DefaultInitialLength {
		t.Errorf("body length = %d, want %d", len(res.State.Body), DefaultInitialLength)
	}
	if res.State.Score != 0 {
		t.Errorf("score = %d, want 0", res.State.Score)
	}
	for _, c := range res.State.Body {
		if c == oldTail {
			t.Errorf("old tail %v still in body after move", oldTail)
		}
	}
}

// runIntoWall drives a 5x5 single-cell snake off the right edge and
// returns the session in GameOver.
func runIntoWall(t *testing.T) *Session {
	t.Helper()
	s := NewSession(Config{Rows: 5, Cols: 5, InitialLength: 1, Seed: 3})
	s.Start()
	s.food = Cell{Row: 4, Col: 4} // off the head's path

	for i := 0; i < 4; i++ {
		res := s.Tick()
		if !res.Moved {
			t.Fatalf("tick %d did not move: %+v", i, res)
		}
	}
	// Head is at (0,4); the next step exits the board.
	res := s.Tick()
	if !res.Collided {
		t.Fatalf("expected wall collision, got %+v", res)
	}
	if s.Phase() != GameOver {
		t.Fatalf("Phase = %v, want gameover", s.Phase())
	}
	return s
}

func TestWallCollisionEndsGame(t *testing.T) {
	runIntoWall(t)
}

func TestSelfCollisionEndsGame(t *testing.T) {
	s := newTestSession(1)
	// Hook configuration: heading Left from (2,2) lands on the
	// mid-body segment at (2,1).
	s.snake = snakeWithBody(t, s.grid, []Cell{{3, 1}, {2, 1}, {1, 1}, {1, 2}, {2, 2}})
	s.dir = Left
	s.phase = Running
	s.food = Cell{Row: 40, Col: 40}

	res := s.Tick()
	if !res.Collided {
		t.Fatalf("expected self collision, got %+v", res)
	}
	if s.Phase() != GameOver {
		t.Errorf("Phase = %v, want gameover", s.Phase())
	}
}

func TestSteppingOntoVacatedTailIsLegal(t *testing.T) {
	s := newTestSession(1)
	// Same hook minus the extra tail segment: (2,1) is the tail and
	// vacates this tick, so the move is legal.
	s.snake = snakeWithBody(t, s.grid, []Cell{{2, 1}, {1, 1}, {1, 2}, {2, 2}})
	s.dir = Left
	s.phase = Running
	s.food = Cell{Row: 40, Col: 40}

	res := s.Tick()
	if res.Collided {
		t.Fatalf("move onto vacated tail cell collided: %+v", res)
	}
	if res.State.Head() != (Cell{2, 1}) {
		t.Errorf("head = %v, want (2,1)", res.State.Head())
	}
	if len(res.State.Body) != 4 {
		t.Errorf("body length = %d, want 4", len(res.State.Body))
	}
}

func TestStopReturnsToIdleAndResetsTicks(t *testing.T) {
	s := newTestSession(1)
	s.Start()
	s.food = Cell{Row: 20, Col: 20}
	for i := 0; i < 3; i++ {
		s.Tick()
	}
	if got := s.Ticks(); got != 3 {
		t.Fatalf("Ticks = %d, want 3", got)
	}

	s.Stop()
	if s.Phase() != Idle {
		t.Errorf("Phase after Stop = %v, want idle", s.Phase())
	}
	if got := s.Ticks(); got != 0 {
		t.Errorf("Ticks after Stop = %d, want 0", got)
	}
	// A stopped session keeps its board state but does not tick.
	before := s.Snapshot()
	s.Tick()
	if !snapshotsEqual(before, s.Snapshot()) {
		t.Error("stopped session mutated state on Tick")
	}
}

func TestStartAfterGameOverResets(t *testing.T) {
	s := runIntoWall(t)

	s.Start()
	snap := s.Snapshot()
	if snap.Phase != Running {
		t.Errorf("Phase = %v, want running", snap.Phase)
	}
	if snap.Score != 0 || snap.Ticks != 0 {
		t.Errorf("score/ticks = %d/%d, want 0/0", snap.Score, snap.Ticks)
	}
	if len(snap.Body) != 1 {
		t.Errorf("body length = %d, want initial length 1", len(snap.Body))
	}
	if snap.Dir != Right {
		t.Errorf("Dir = %v, want right", snap.Dir)
	}
}

func TestResetAvailableAnytime(t *testing.T) {
	s := newTestSession(1)
	s.Start()
	s.food = Cell{Row: 20, Col: 20}
	s.SetDirection(Down)
	s.Tick()
	s.Tick()

	s.Reset()
	snap := s.Snapshot()
	if snap.Phase != Idle {
		t.Errorf("Phase = %v, want idle", snap.Phase)
	}
	if snap.Dir != Right {
		t.Errorf("Dir = %v, want right", snap.Dir)
	}
	if snap.Score != 0 || snap.Ticks != 0 {
		t.Errorf("score/ticks = %d/%d, want 0/0", snap.Score, snap.Ticks)
	}
	for i, c := range snap.Body {
		if c != (Cell{Row: 0, Col: i}) {
			t.Errorf("body[%d] = %v, want (0,%d)", i, c, i)
		}
	}
}

func TestSnapshotDoesNotAliasState(t *testing.T) {
	s := newTestSession(1)
	snap := s.Snapshot()
	snap.Body[0] = Cell{Row: 99, Col: 99}

	if got := s.Snapshot().Body[0]; got != (Cell{0, 0}) {
		t.Errorf("mutating a snapshot leaked into the session: body[0] = %v", got)
	}
}

// TestInvariantsUnderRandomPlay drives a seeded session with random
// direction changes and checks the reachable-state invariants after
// every tick: body in bounds, no duplicate cells, consecutive cells
// orthogonally adjacent, occupied-set identical to the body set.
func TestInvariantsUnderRandomPlay(t *testing.T) {
	s := NewSession(Config{Rows: 12, Cols: 12, InitialLength: 3, Seed: 99})
	s.Start()
	dirs := []Direction{Up, Down, Left, Right}
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 2000; i++ {
		if rng.Intn(3) == 0 {
			s.SetDirection(dirs[rng.Intn(len(dirs))])
		}
		res := s.Tick()
		checkBodyInvariants(t, s.grid, res.State.Body)
		assertOccupiedConsistent(t, s.snake)
		if res.Collided {
			return // GameOver is a legal end to the run
		}
	}
}

func checkBodyInvariants(t *testing.T, grid Grid, body []Cell) {
	t.Helper()
	seen := map[Cell]struct{}{}
	for i, c := range body {
		if !grid.InBounds(c) {
			t.Fatalf("body[%d] = %v is out of bounds", i, c)
		}
		if _, dup := seen[c]; dup {
			t.Fatalf("duplicate body cell %v", c)
		}
		seen[c] = struct{}{}
		if i > 0 {
			prev := body[i-1]
			dr, dc := c.Row-prev.Row, c.Col-prev.Col
			if dr*dr+dc*dc != 1 {
				t.Fatalf("body[%d]=%v not adjacent to body[%d]=%v", i, c, i-1, prev)
			}
		}
	}
}

func snapshotsEqual(a, b Snapshot) bool {
	if a.Food != b.Food || a.Score != b.Score || a.Phase != b.Phase ||
		a.Dir != b.Dir || a.Ticks != b.Ticks || len(a.Body) != len(b.Body) {
		return false
	}
	for i := range a.Body {
		if a.Body[i] != b.Body[i] {
			return false
		}
	}
	return true
}
