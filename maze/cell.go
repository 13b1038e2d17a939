package maze

import (
	"fmt"
	"strconv"
	"strings"
)

// Direction is one of the four cardinal directions a cell can open toward.
type Direction int

// Directions in exchange order. The numeric value indexes Cell.Directions.
const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in North, East, South, West order.
var Directions = [4]Direction{North, East, South, West}

// deltas maps a direction to the position offset of its neighbor.
var deltas = [4]Position{
	North: {X: 0, Y: -1},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: 1},
	West:  {X: -1, Y: 0},
}

// Opposite returns the direction pointing back toward the origin cell.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Position is a zero-based cell coordinate: X is the column, Y is the row.
type Position struct {
	X int // X is the column index.
	Y int // Y is the row index.
}

// Step returns the position one cell away in direction d.
func (p Position) Step(d Direction) Position {
	delta := deltas[d]
	return Position{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// String formats the position as "(x,y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// ParsePosition parses the "x,y" form used by flags and requests.
func ParsePosition(s string) (Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("invalid position %q: want x,y", s)
	}

	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Position{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Position{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	return Position{X: x, Y: y}, nil
}

// Cell represents a single cell in a maze grid.
// Directions holds one passage flag per direction; true means there is no wall.
type Cell struct {
	Position   Position // Position of the cell in the grid.
	Directions [4]bool  // Directions indexed by Direction; true is an open passage.
}

// IsOpen reports whether the cell has a passage toward d.
func (c *Cell) IsOpen(d Direction) bool {
	return c.Directions[d]
}

// HasWall reports whether the cell is walled toward d.
func (c *Cell) HasWall(d Direction) bool {
	return !c.Directions[d]
}

// HasNorthWall returns true if there is a wall on the north side of the cell.
func (c *Cell) HasNorthWall() bool {
	return c.HasWall(North)
}

// HasEastWall returns true if there is a wall on the east side of the cell.
func (c *Cell) HasEastWall() bool {
	return c.HasWall(East)
}

// HasSouthWall returns true if there is a wall on the south side of the cell.
func (c *Cell) HasSouthWall() bool {
	return c.HasWall(South)
}

// HasWestWall returns true if there is a wall on the west side of the cell.
func (c *Cell) HasWestWall() bool {
	return c.HasWall(West)
}
