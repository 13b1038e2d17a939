package maze

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEndpoint = errors.New("invalid maze endpoint")
)

// AssignEndpoints picks two distinct cells uniformly at random as start and
// end. Nothing bounds their distance, so adjacent pairs are possible.
func AssignEndpoints(m *Maze, rng Source) error {
	if m.Grid.Size() < 2 {
		return ErrDegenerateGrid
	}

	m.Start = randomPosition(m.Grid, rng)
	m.End = randomOther(m.Grid, m.Start, rng)
	return nil
}

// AssignFarthestEndpoints uses start as the entry and the cell farthest from
// it along open passages as the exit.
func AssignFarthestEndpoints(m *Maze, start Position) error {
	if m.Grid.Size() < 2 {
		return ErrDegenerateGrid
	}
	if !m.Grid.Contains(start) {
		return fmt.Errorf("%w: start %s is outside the maze", ErrInvalidEndpoint, start)
	}

	end, _ := m.Grid.Farthest(start)
	if end == start {
		return fmt.Errorf("%w: no cell is reachable from %s", ErrInvalidEndpoint, start)
	}

	m.Start, m.End = start, end
	return nil
}

// PlaceEndpoints sets explicit endpoints after checking they are in bounds
// and distinct.
func PlaceEndpoints(m *Maze, start, end Position) error {
	if m.Grid.Size() < 2 {
		return ErrDegenerateGrid
	}
	if err := checkEndpoints(m.Grid, start, end); err != nil {
		return err
	}

	m.Start, m.End = start, end
	return nil
}

func checkEndpoints(g *Grid, start, end Position) error {
	if !g.Contains(start) {
		return fmt.Errorf("%w: start %s is outside the maze", ErrInvalidEndpoint, start)
	}
	if !g.Contains(end) {
		return fmt.Errorf("%w: end %s is outside the maze", ErrInvalidEndpoint, end)
	}
	if start == end {
		return fmt.Errorf("%w: start and end are both %s", ErrInvalidEndpoint, start)
	}
	return nil
}

// randomOther resamples until it draws a cell different from p.
// The grid must hold at least two cells.
func randomOther(g *Grid, p Position, rng Source) Position {
	for {
		other := randomPosition(g, rng)
		if other != p {
			return other
		}
	}
}
