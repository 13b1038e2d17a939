// Package encoder converts mazes to and from the JSON exchange document.
package encoder

import (
	"bytes"
	"fmt"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// Document is the JSON exchange form of a maze.
type Document struct {
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Cells      []CellDocument `json:"cells"`
	Start      [2]int         `json:"start"`
	End        [2]int         `json:"end"`
	Difficulty *float64       `json:"difficulty,omitempty"`
}

// CellDocument is one cell entry: its [x, y] position and its passage flags
// in North, East, South, West order.
type CellDocument struct {
	Position   [2]int  `json:"position"`
	Directions [4]Flag `json:"directions"`
}

// Flag is a passage flag. It encodes as 0 or 1 and decodes from 0, 1,
// true or false.
type Flag bool

// MarshalJSON encodes the flag as a JSON number.
func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// UnmarshalJSON accepts 0, 1, true or false.
func (f *Flag) UnmarshalJSON(b []byte) error {
	v, ok := parseFlag(b)
	if !ok {
		return fmt.Errorf("invalid passage flag %s", b)
	}
	*f = Flag(v)
	return nil
}

func parseFlag(b []byte) (bool, bool) {
	switch string(bytes.TrimSpace(b)) {
	case "1", "true":
		return true, true
	case "0", "false":
		return false, true
	default:
		return false, false
	}
}

// NewDocument builds the exchange document for m. Cells are listed row by row.
func NewDocument(m *maze.Maze) *Document {
	cells := m.Grid.Cells()
	doc := &Document{
		Width:  m.Width(),
		Height: m.Height(),
		Cells:  make([]CellDocument, len(cells)),
		Start:  [2]int{m.Start.X, m.Start.Y},
		End:    [2]int{m.End.X, m.End.Y},
	}

	difficulty := m.Difficulty
	doc.Difficulty = &difficulty

	for i, c := range cells {
		doc.Cells[i].Position = [2]int{c.Position.X, c.Position.Y}
		for _, d := range maze.Directions {
			doc.Cells[i].Directions[d] = Flag(c.IsOpen(d))
		}
	}
	return doc
}
