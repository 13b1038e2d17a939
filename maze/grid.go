package maze

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimension = errors.New("invalid maze dimension")
	ErrNotAdjacent      = errors.New("cells are not adjacent")
)

// Grid is a fixed width x height arrangement of cells stored row by row.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates a fully walled grid of the given dimensions.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}

	cells := make([]Cell, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cells[y*width+x] = Cell{Position: Position{X: x, Y: y}}
		}
	}

	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Size returns the number of cells.
func (g *Grid) Size() int {
	return len(g.cells)
}

// Contains reports whether p lies inside the grid.
func (g *Grid) Contains(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Cell returns a copy of the cell at p. It panics if p is outside the grid.
func (g *Grid) Cell(p Position) Cell {
	return g.cells[g.index(p)]
}

// Cells returns a copy of every cell in row-major order.
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return cells
}

// IsOpen reports whether the cell at p has a passage toward d.
// Positions outside the grid are always walled.
func (g *Grid) IsOpen(p Position, d Direction) bool {
	if !g.Contains(p) {
		return false
	}
	return g.cells[g.index(p)].Directions[d]
}

// Neighbor returns the cell position adjacent to p in direction d.
// The boolean is false when the neighbor would fall outside the grid.
func (g *Grid) Neighbor(p Position, d Direction) (Position, bool) {
	n := p.Step(d)
	if !g.Contains(n) {
		return Position{}, false
	}
	return n, true
}

// neighbors returns every in-bounds neighbor of p in direction order.
func (g *Grid) neighbors(p Position) []Position {
	result := make([]Position, 0, len(Directions))
	for _, d := range Directions {
		if n, ok := g.Neighbor(p, d); ok {
			result = append(result, n)
		}
	}
	return result
}

// Adjacent returns the direction leading from a to b when both are in the
// grid and share an edge.
func (g *Grid) Adjacent(a, b Position) (Direction, bool) {
	if !g.Contains(a) || !g.Contains(b) {
		return 0, false
	}
	for _, d := range Directions {
		if a.Step(d) == b {
			return d, true
		}
	}
	return 0, false
}

// Connect opens the passage between two adjacent cells. Both reciprocal
// flags are written together after validation, so a failed call leaves the
// grid untouched.
func (g *Grid) Connect(a, b Position) error {
	d, ok := g.Adjacent(a, b)
	if !ok {
		return fmt.Errorf("%w: %s and %s", ErrNotAdjacent, a, b)
	}

	g.cells[g.index(a)].Directions[d] = true
	g.cells[g.index(b)].Directions[d.Opposite()] = true
	return nil
}

// Passages counts open passages between pairs of adjacent cells.
func (g *Grid) Passages() int {
	count := 0
	for _, c := range g.cells {
		if c.Directions[East] {
			count++
		}
		if c.Directions[South] {
			count++
		}
	}
	return count
}

// Farthest returns the cell with the greatest passage distance from p,
// found by breadth-first search over open passages, and that distance.
func (g *Grid) Farthest(from Position) (Position, int) {
	dist := make([]int, len(g.cells))
	for i := range dist {
		dist[i] = -1
	}

	farthest, maxDist := from, 0
	queue := []Position{from}
	dist[g.index(from)] = 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		d := dist[g.index(cur)]
		if d > maxDist {
			farthest, maxDist = cur, d
		}
		for _, dir := range Directions {
			if !g.IsOpen(cur, dir) {
				continue
			}
			next, ok := g.Neighbor(cur, dir)
			if !ok || dist[g.index(next)] >= 0 {
				continue
			}
			dist[g.index(next)] = d + 1
			queue = append(queue, next)
		}
	}

	return farthest, maxDist
}

func (g *Grid) index(p Position) int {
	return p.Y*g.width + p.X
}
