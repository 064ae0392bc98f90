package game

// Snake is the ordered body of the snake: index 0 is the tail, the
// last index is the head. Alongside the body it maintains the
// occupied-set, a Grid.Key-indexed set of every body cell, used for
// O(1) collision membership tests. The two are rebuilt together on
// every mutation and must never diverge.
type Snake struct {
	grid     Grid
	body     []Cell
	occupied map[int]struct{}
}

// newStraightSnake builds a straight-line snake of the given length
// ending at head, laid out backwards opposite to facing. The default
// session snake is head (0, length-1) facing Right, i.e. row 0,
// cols 0..length-1.
func newStraightSnake(grid Grid, head Cell, length int, facing Direction) *Snake {
	back := facing.Opposite()
	body := make([]Cell, length)
	c := head
	for i := length - 1; i >= 0; i-- {
		body[i] = c
		c = c.Step(back)
	}
	s := &Snake{grid: grid, body: body}
	s.rebuildOccupied()
	return s
}

// Head returns the leading cell.
func (s *Snake) Head() Cell {
	return s.body[len(s.body)-1]
}

// Tail returns the trailing cell.
func (s *Snake) Tail() Cell {
	return s.body[0]
}

// Len returns the body length.
func (s *Snake) Len() int {
	return len(s.body)
}

// Body returns a copy of the body, tail first.
func (s *Snake) Body() []Cell {
	out := make([]Cell, len(s.body))
	copy(out, s.body)
	return out
}

// Occupies reports whether c is covered by any body segment.
func (s *Snake) Occupies(c Cell) bool {
	_, ok := s.occupied[s.grid.Key(c)]
	return ok
}

// hitsBody reports whether a candidate head cell lands on the body as
// it will exist after this tick's shift: every segment except the old
// tail, which has already moved away. Stepping into the vacated tail
// cell is legal.
func (s *Snake) hitsBody(candidate Cell) bool {
	if !s.Occupies(candidate) {
		return false
	}
	return candidate != s.Tail()
}

// commit applies one tick of movement: newHead becomes the head, and
// unless grew is set the old tail is dropped. Growth re-inserts the
// old tail at the front, so the body gains one net cell.
func (s *Snake) commit(newHead Cell, grew bool) {
	if grew {
		s.body = append(s.body, newHead)
	} else {
		n := len(s.body)
		copy(s.body, s.body[1:])
		s.body[n-1] = newHead
	}
	s.rebuildOccupied()
}

// rebuildOccupied recomputes the occupied-set from the body.
func (s *Snake) rebuildOccupied() {
	s.occupied = make(map[int]struct{}, len(s.body))
	for _, c := range s.body {
		s.occupied[s.grid.Key(c)] = struct{}{}
	}
}
