package encoder

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/beka-birhanu/vinom-maze/maze"
)

// ToCompactJSON encodes m as the exchange document laid out with one cell
// per line. The output is valid JSON and decodes with FromJSON.
func ToCompactJSON(m *maze.Maze) []byte {
	doc := NewDocument(m)

	var buf bytes.Buffer
	buf.WriteString("{\n")
	fmt.Fprintf(&buf, "  \"width\": %d,\n", doc.Width)
	fmt.Fprintf(&buf, "  \"height\": %d,\n", doc.Height)
	fmt.Fprintf(&buf, "  \"start\": [%d, %d],\n", doc.Start[0], doc.Start[1])
	fmt.Fprintf(&buf, "  \"end\": [%d, %d],\n", doc.End[0], doc.End[1])
	if doc.Difficulty != nil {
		fmt.Fprintf(&buf, "  \"difficulty\": %s,\n", strconv.FormatFloat(*doc.Difficulty, 'g', -1, 64))
	}
	buf.WriteString("  \"cells\": [\n")

	for i, c := range doc.Cells {
		fmt.Fprintf(&buf, "    { \"position\": [%d, %d], \"directions\": [%s, %s, %s, %s] }",
			c.Position[0], c.Position[1],
			flagDigit(c.Directions[maze.North]), flagDigit(c.Directions[maze.East]),
			flagDigit(c.Directions[maze.South]), flagDigit(c.Directions[maze.West]))
		if i < len(doc.Cells)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}

	buf.WriteString("  ]\n")
	buf.WriteString("}\n")
	return buf.Bytes()
}

func flagDigit(f Flag) string {
	if f {
		return "1"
	}
	return "0"
}
