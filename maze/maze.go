/*
Package maze provides tools for creating rectangular mazes.

It defines the `Grid` of `Cell` values, each carrying one passage flag per
cardinal direction, and the `Maze` that adds a start and an end cell.

Mazes are carved with an iterative randomized depth-first backtracker,
which yields a perfect maze (a spanning tree over the grid). A difficulty
in [0, 1] then removes extra walls: the lower the difficulty, the more
loops the maze gets. Randomness comes from a seedable `Source`, so a seed
always reproduces the same maze.
*/
package maze

import (
	"errors"
	"math"
	"strings"
)

// LoopFactor is the wall removal probability applied at difficulty 0.
// At difficulty d every wall left by the carve is removed with
// probability (1-d)*LoopFactor.
const LoopFactor = 0.25

var (
	ErrDegenerateGrid = errors.New("single-cell grid cannot hold distinct start and end")
)

// Maze is a carved grid together with its start and end cells.
// A Maze returned by Generate is not modified afterwards.
type Maze struct {
	Grid       *Grid    // Grid holds the cells and their passages.
	Start      Position // Start is the entry cell.
	End        Position // End is the exit cell.
	Difficulty float64  // Difficulty is the clamped value the maze was perturbed with.
}

// Width returns the number of columns of the maze.
func (m *Maze) Width() int {
	return m.Grid.Width()
}

// Height returns the number of rows of the maze.
func (m *Maze) Height() int {
	return m.Grid.Height()
}

// Generate builds a width x height maze: a fully walled grid is carved into
// a spanning tree, perturbed according to difficulty and given two distinct
// random endpoints. A 1x1 request fails with ErrDegenerateGrid.
func Generate(width, height int, difficulty float64, rng Source) (*Maze, error) {
	m, err := build(width, height, difficulty, rng)
	if err != nil {
		return nil, err
	}

	if err := AssignEndpoints(m, rng); err != nil {
		return nil, err
	}
	return m, nil
}

// build runs every generation phase except endpoint assignment.
func build(width, height int, difficulty float64, rng Source) (*Maze, error) {
	grid, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	if grid.Size() == 1 {
		return nil, ErrDegenerateGrid
	}

	if err := Carve(grid, rng); err != nil {
		return nil, err
	}

	difficulty = ClampDifficulty(difficulty)
	if err := Perturb(grid, difficulty, rng); err != nil {
		return nil, err
	}

	return &Maze{Grid: grid, Difficulty: difficulty}, nil
}

// Carve turns a fully walled grid into a perfect maze using randomized
// depth-first backtracking with an explicit stack.
func Carve(g *Grid, rng Source) error {
	visited := make([]bool, g.Size())
	start := randomPosition(g, rng)
	visited[g.index(start)] = true
	stack := []Position{start}

	candidates := make([]Position, 0, len(Directions))
	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		candidates = candidates[:0]
		for _, n := range g.neighbors(cur) {
			if !visited[g.index(n)] {
				candidates = append(candidates, n)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[rng.Intn(len(candidates))]
		if err := g.Connect(cur, next); err != nil {
			return err
		}
		visited[g.index(next)] = true
		stack = append(stack, next)
	}

	return nil
}

// Perturb opens each remaining wall between adjacent cells with an
// independent probability of (1-difficulty)*LoopFactor. It only adds
// passages, so a connected grid stays connected.
func Perturb(g *Grid, difficulty float64, rng Source) error {
	p := (1 - ClampDifficulty(difficulty)) * LoopFactor
	if p <= 0 {
		return nil
	}

	for _, c := range g.cells {
		for _, d := range [...]Direction{East, South} {
			n, ok := g.Neighbor(c.Position, d)
			if !ok || g.IsOpen(c.Position, d) {
				continue
			}
			if rng.Float64() < p {
				if err := g.Connect(c.Position, n); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// ClampDifficulty limits d to [0, 1]. NaN is treated as the hardest setting.
func ClampDifficulty(d float64) float64 {
	if math.IsNaN(d) {
		return 1
	}
	return math.Min(math.Max(d, 0), 1)
}

// String provides a textual representation of the maze with S and E
// marking the endpoints.
func (m *Maze) String() string {
	var output strings.Builder
	g := m.Grid

	// Top boundary
	output.WriteString("+" + strings.Repeat("---+", g.width) + "\n")

	for y := 0; y < g.height; y++ {
		cellRow := "|"
		wallRow := "+"
		for x := 0; x < g.width; x++ {
			p := Position{X: x, Y: y}
			cell := g.cells[g.index(p)]

			switch p {
			case m.Start:
				cellRow += " S "
			case m.End:
				cellRow += " E "
			default:
				cellRow += "   "
			}

			if cell.HasEastWall() {
				cellRow += "|"
			} else {
				cellRow += " "
			}

			if cell.HasSouthWall() {
				wallRow += "---+"
			} else {
				wallRow += "   +"
			}
		}
		output.WriteString(cellRow + "\n")
		output.WriteString(wallRow + "\n")
	}

	return output.String()
}
