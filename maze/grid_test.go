package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	t.Run("Rejects non-positive dimensions", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {0, 0}} {
			g, err := NewGrid(dims[0], dims[1])
			assert.ErrorIs(t, err, ErrInvalidDimension, "dims %v", dims)
			assert.Nil(t, g)
		}
	})

	t.Run("Creates a fully walled grid", func(t *testing.T) {
		g, err := NewGrid(4, 3)
		require.NoError(t, err)
		assert.Equal(t, 4, g.Width())
		assert.Equal(t, 3, g.Height())
		assert.Equal(t, 12, g.Size())
		assert.Zero(t, g.Passages())

		for i, c := range g.Cells() {
			assert.Equal(t, Position{X: i % 4, Y: i / 4}, c.Position)
			assert.Equal(t, [4]bool{}, c.Directions)
		}
	})
}

func TestGridNeighbor(t *testing.T) {
	g, err := NewGrid(3, 2)
	require.NoError(t, err)

	tests := []struct {
		name string
		from Position
		dir  Direction
		want Position
		ok   bool
	}{
		{"north edge", Position{1, 0}, North, Position{}, false},
		{"west edge", Position{0, 1}, West, Position{}, false},
		{"east edge", Position{2, 0}, East, Position{}, false},
		{"south edge", Position{2, 1}, South, Position{}, false},
		{"east inside", Position{0, 0}, East, Position{1, 0}, true},
		{"south inside", Position{1, 0}, South, Position{1, 1}, true},
		{"north inside", Position{2, 1}, North, Position{2, 0}, true},
		{"west inside", Position{2, 1}, West, Position{1, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.Neighbor(tt.from, tt.dir)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGridConnect(t *testing.T) {
	t.Run("Sets both reciprocal flags", func(t *testing.T) {
		g, err := NewGrid(2, 2)
		require.NoError(t, err)

		require.NoError(t, g.Connect(Position{0, 0}, Position{1, 0}))
		require.NoError(t, g.Connect(Position{1, 1}, Position{1, 0}))

		assert.True(t, g.IsOpen(Position{0, 0}, East))
		assert.True(t, g.IsOpen(Position{1, 0}, West))
		assert.True(t, g.IsOpen(Position{1, 1}, North))
		assert.True(t, g.IsOpen(Position{1, 0}, South))
		assert.Equal(t, 2, g.Passages())
		assertSymmetric(t, g)
	})

	t.Run("Rejects cells that are not adjacent", func(t *testing.T) {
		g, err := NewGrid(3, 3)
		require.NoError(t, err)

		pairs := [][2]Position{
			{{0, 0}, {1, 1}},  // diagonal
			{{0, 0}, {2, 0}},  // two apart
			{{1, 1}, {1, 1}},  // same cell
			{{0, 0}, {-1, 0}}, // outside
			{{2, 2}, {3, 2}},  // outside
		}
		for _, pair := range pairs {
			err := g.Connect(pair[0], pair[1])
			assert.ErrorIs(t, err, ErrNotAdjacent, "pair %v", pair)
		}
		assert.Zero(t, g.Passages())
	})
}

func TestGridFarthest(t *testing.T) {
	g, err := NewGrid(3, 1)
	require.NoError(t, err)
	require.NoError(t, g.Connect(Position{0, 0}, Position{1, 0}))
	require.NoError(t, g.Connect(Position{1, 0}, Position{2, 0}))

	far, dist := g.Farthest(Position{0, 0})
	assert.Equal(t, Position{2, 0}, far)
	assert.Equal(t, 2, dist)

	far, dist = g.Farthest(Position{1, 0})
	assert.Equal(t, 1, dist)
	assert.Contains(t, []Position{{0, 0}, {2, 0}}, far)
}

func TestParsePosition(t *testing.T) {
	p, err := ParsePosition(" 3, 7")
	require.NoError(t, err)
	assert.Equal(t, Position{X: 3, Y: 7}, p)

	for _, bad := range []string{"", "3", "3,4,5", "a,1", "1,b"} {
		_, err := ParsePosition(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

// assertSymmetric checks that every passage flag is mirrored by the
// neighbor and that no passage leaves the grid.
func assertSymmetric(t *testing.T, g *Grid) {
	t.Helper()
	for _, c := range g.Cells() {
		for _, d := range Directions {
			n, ok := g.Neighbor(c.Position, d)
			if !ok {
				assert.False(t, c.IsOpen(d), "cell %s opens %s off the grid", c.Position, d)
				continue
			}
			assert.Equal(t, c.IsOpen(d), g.IsOpen(n, d.Opposite()),
				"asymmetric flags between %s and %s", c.Position, n)
		}
	}
}

// reachable counts the cells reachable from p along open passages.
func reachable(g *Grid, p Position) int {
	seen := map[Position]bool{p: true}
	queue := []Position{p}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
			if !g.IsOpen(cur, d) {
				continue
			}
			n, _ := g.Neighbor(cur, d)
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(seen)
}
