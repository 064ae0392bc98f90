package game

import (
	"math/rand"
	"testing"
)

func TestPlaceFoodReturnsOnlyFreeCell(t *testing.T) {
	grid := Grid{Rows: 3, Cols: 3}
	free := Cell{Row: 1, Col: 2}

	occupied := map[int]struct{}{}
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			c := Cell{Row: row, Col: col}
			if c != free {
				occupied[grid.Key(c)] = struct{}{}
			}
		}
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		if got := placeFood(rng, grid, occupied); got != free {
			t.Fatalf("placeFood returned occupied cell %v, want %v", got, free)
		}
	}
}

func TestPlaceFoodStaysInBoundsAndOffSnake(t *testing.T) {
	grid := Grid{Rows: 10, Cols: 10}
	s := newStraightSnake(grid, Cell{Row: 4, Col: 6}, 7, Right)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		c := placeFood(rng, grid, s.occupied)
		if !grid.InBounds(c) {
			t.Fatalf("food placed out of bounds at %v", c)
		}
		if s.Occupies(c) {
			t.Fatalf("food placed on snake at %v", c)
		}
	}
}

func TestPlaceFoodDeterministicWithSeed(t *testing.T) {
	grid := Grid{Rows: 10, Cols: 10}
	occupied := map[int]struct{}{}

	a := placeFood(rand.New(rand.NewSource(7)), grid, occupied)
	b := placeFood(rand.New(rand.NewSource(7)), grid, occupied)
	if a != b {
		t.Errorf("same seed placed food at %v and %v", a, b)
	}
}
