package encoder

import (
	"errors"
	"fmt"
	"math"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/goccy/go-json"
)

var (
	ErrMalformedMazeDocument = errors.New("malformed maze document")
)

// rawDocument defers decoding of every field so validation can name the
// first field that is wrong.
type rawDocument struct {
	Width      json.RawMessage `json:"width"`
	Height     json.RawMessage `json:"height"`
	Cells      json.RawMessage `json:"cells"`
	Start      json.RawMessage `json:"start"`
	End        json.RawMessage `json:"end"`
	Difficulty json.RawMessage `json:"difficulty"`
}

type rawCell struct {
	Position   json.RawMessage `json:"position"`
	Directions json.RawMessage `json:"directions"`
}

// ToJSON encodes m as the JSON exchange document.
func ToJSON(m *maze.Maze) ([]byte, error) {
	return json.Marshal(NewDocument(m))
}

// FromJSON decodes and validates an exchange document. Any violation is
// reported as ErrMalformedMazeDocument naming the first failed constraint.
// A valid single-cell document also matches maze.ErrDegenerateGrid.
func FromJSON(data []byte) (*maze.Maze, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, malformed("document: %v", err)
	}

	width, err := positiveInt(raw.Width, "width")
	if err != nil {
		return nil, err
	}
	height, err := positiveInt(raw.Height, "height")
	if err != nil {
		return nil, err
	}

	if isNull(raw.Cells) {
		return nil, malformed("cells: missing")
	}
	var rawCells []rawCell
	if err := json.Unmarshal(raw.Cells, &rawCells); err != nil {
		return nil, malformed("cells: must be an array of cell objects")
	}
	if len(rawCells) != width*height {
		return nil, malformed("cells: expected %d entries for a %dx%d grid, got %d",
			width*height, width, height, len(rawCells))
	}

	doc := &Document{
		Width:  width,
		Height: height,
		Cells:  make([]CellDocument, len(rawCells)),
	}

	seen := make(map[[2]int]int, len(rawCells))
	for i, rc := range rawCells {
		field := fmt.Sprintf("cells[%d].position", i)
		pos, err := position(rc.Position, field, width, height)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[pos]; dup {
			return nil, malformed("%s: [%d, %d] already used by cells[%d]", field, pos[0], pos[1], prev)
		}
		seen[pos] = i

		flags, err := directions(rc.Directions, fmt.Sprintf("cells[%d].directions", i))
		if err != nil {
			return nil, err
		}
		doc.Cells[i] = CellDocument{Position: pos, Directions: flags}
	}

	if doc.Start, err = position(raw.Start, "start", width, height); err != nil {
		return nil, err
	}
	if doc.End, err = position(raw.End, "end", width, height); err != nil {
		return nil, err
	}

	if !isNull(raw.Difficulty) {
		var d float64
		if err := json.Unmarshal(raw.Difficulty, &d); err != nil {
			return nil, malformed("difficulty: must be a number")
		}
		doc.Difficulty = &d
	}

	return doc.Maze()
}

// Maze rebuilds the maze described by a structurally valid document,
// checking that passages are mirrored and stay inside the grid.
func (doc *Document) Maze() (*maze.Maze, error) {
	grid, err := maze.NewGrid(doc.Width, doc.Height)
	if err != nil {
		return nil, malformed("dimensions: %v", err)
	}

	flags := make(map[maze.Position][4]Flag, len(doc.Cells))
	for _, c := range doc.Cells {
		flags[maze.Position{X: c.Position[0], Y: c.Position[1]}] = c.Directions
	}
	if len(flags) != grid.Size() {
		return nil, malformed("cells: expected %d distinct positions, got %d", grid.Size(), len(flags))
	}

	for i, c := range doc.Cells {
		p := maze.Position{X: c.Position[0], Y: c.Position[1]}
		for _, d := range maze.Directions {
			if !c.Directions[d] {
				continue
			}
			n, ok := grid.Neighbor(p, d)
			if !ok {
				return nil, malformed("cells[%d].directions: %s passage leaves the grid at %s", i, d, p)
			}
			if !flags[n][d.Opposite()] {
				return nil, malformed("cells[%d].directions: %s passage from %s is not mirrored by %s", i, d, p, n)
			}
			if err := grid.Connect(p, n); err != nil {
				return nil, err
			}
		}
	}

	m := &maze.Maze{Grid: grid, Difficulty: 1}
	if doc.Difficulty != nil {
		m.Difficulty = *doc.Difficulty
	}

	start := maze.Position{X: doc.Start[0], Y: doc.Start[1]}
	end := maze.Position{X: doc.End[0], Y: doc.End[1]}
	if err := maze.PlaceEndpoints(m, start, end); err != nil {
		if errors.Is(err, maze.ErrDegenerateGrid) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedMazeDocument, err)
		}
		return nil, malformed("endpoints: %v", err)
	}

	return m, nil
}

func positiveInt(raw json.RawMessage, field string) (int, error) {
	if isNull(raw) {
		return 0, malformed("%s: missing", field)
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil || v < 1 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, malformed("%s: must be a positive integer, got %s", field, raw)
	}
	return int(v), nil
}

func position(raw json.RawMessage, field string, width, height int) ([2]int, error) {
	if isNull(raw) {
		return [2]int{}, malformed("%s: missing", field)
	}
	var xy []int
	if err := json.Unmarshal(raw, &xy); err != nil || len(xy) != 2 {
		return [2]int{}, malformed("%s: must be [x, y] integers, got %s", field, raw)
	}
	if xy[0] < 0 || xy[0] >= width || xy[1] < 0 || xy[1] >= height {
		return [2]int{}, malformed("%s: [%d, %d] is outside the %dx%d grid", field, xy[0], xy[1], width, height)
	}
	return [2]int{xy[0], xy[1]}, nil
}

func directions(raw json.RawMessage, field string) ([4]Flag, error) {
	var flags [4]Flag
	if isNull(raw) {
		return flags, malformed("%s: missing", field)
	}
	var values []json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return flags, malformed("%s: must be an array", field)
	}
	if len(values) != 4 {
		return flags, malformed("%s: expected 4 values, got %d", field, len(values))
	}
	for i, v := range values {
		open, ok := parseFlag(v)
		if !ok {
			return flags, malformed("%s[%d]: %s is not 0, 1, true or false", field, i, v)
		}
		flags[i] = Flag(open)
	}
	return flags, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedMazeDocument, fmt.Sprintf(format, args...))
}
