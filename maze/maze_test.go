package maze

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceSource replays fixed Intn results, wrapping modulo n.
type sequenceSource struct {
	ints []int
	next int
}

func (s *sequenceSource) Intn(n int) int {
	v := s.ints[s.next%len(s.ints)]
	s.next++
	return v % n
}

func (s *sequenceSource) Float64() float64 {
	return 0.99
}

func TestCarve(t *testing.T) {
	sizes := [][2]int{{1, 2}, {2, 1}, {1, 10}, {10, 1}, {2, 2}, {5, 7}, {30, 30}}

	for _, size := range sizes {
		w, h := size[0], size[1]
		g, err := NewGrid(w, h)
		require.NoError(t, err)

		require.NoError(t, Carve(g, rand.New(rand.NewSource(int64(w*100+h)))))

		assert.Equal(t, w*h-1, g.Passages(), "spanning tree on %dx%d", w, h)
		assert.Equal(t, w*h, reachable(g, Position{}), "connectivity on %dx%d", w, h)
		assertSymmetric(t, g)
	}
}

func TestPerturb(t *testing.T) {
	carved := func(t *testing.T, seed int64) *Grid {
		g, err := NewGrid(10, 10)
		require.NoError(t, err)
		require.NoError(t, Carve(g, rand.New(rand.NewSource(seed))))
		return g
	}

	t.Run("Difficulty one keeps the perfect maze", func(t *testing.T) {
		g := carved(t, 7)
		require.NoError(t, Perturb(g, 1, rand.New(rand.NewSource(7))))
		assert.Equal(t, 99, g.Passages())
	})

	t.Run("Difficulty zero adds loops", func(t *testing.T) {
		g := carved(t, 7)
		require.NoError(t, Perturb(g, 0, rand.New(rand.NewSource(7))))
		assert.Greater(t, g.Passages(), 99)
		assert.Equal(t, 100, reachable(g, Position{}))
		assertSymmetric(t, g)
	})

	t.Run("Out of range difficulty is clamped", func(t *testing.T) {
		g := carved(t, 3)
		require.NoError(t, Perturb(g, 4.5, rand.New(rand.NewSource(3))))
		assert.Equal(t, 99, g.Passages())

		g = carved(t, 3)
		require.NoError(t, Perturb(g, -2, rand.New(rand.NewSource(3))))
		assert.Greater(t, g.Passages(), 99)
	})
}

func TestClampDifficulty(t *testing.T) {
	assert.Equal(t, 0.0, ClampDifficulty(-0.5))
	assert.Equal(t, 0.3, ClampDifficulty(0.3))
	assert.Equal(t, 1.0, ClampDifficulty(7))
	assert.Equal(t, 1.0, ClampDifficulty(math.NaN()))
}

func TestGenerate(t *testing.T) {
	t.Run("Two by two perfect maze", func(t *testing.T) {
		corners := []Position{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
		for seed := int64(1); seed <= 20; seed++ {
			m, err := Generate(2, 2, 1.0, rand.New(rand.NewSource(seed)))
			require.NoError(t, err)

			assert.Equal(t, 3, m.Grid.Passages())
			assert.Contains(t, corners, m.Start)
			assert.Contains(t, corners, m.End)
			assert.NotEqual(t, m.Start, m.End)
		}
	})

	t.Run("Every cell reachable from start at any difficulty", func(t *testing.T) {
		for _, d := range []float64{-1, 0, 0.25, 0.5, 0.75, 1, 2} {
			m, err := Generate(12, 9, d, rand.New(rand.NewSource(42)))
			require.NoError(t, err)

			assert.Equal(t, 108, reachable(m.Grid, m.Start), "difficulty %v", d)
			assert.NotEqual(t, m.Start, m.End)
			assert.GreaterOrEqual(t, m.Grid.Passages(), 107)
			assert.Equal(t, ClampDifficulty(d), m.Difficulty)
			assertSymmetric(t, m.Grid)
		}
	})

	t.Run("Single row and column", func(t *testing.T) {
		for _, size := range [][2]int{{1, 2}, {2, 1}, {1, 25}, {25, 1}} {
			m, err := Generate(size[0], size[1], 0, rand.New(rand.NewSource(9)))
			require.NoError(t, err)
			assert.Equal(t, size[0]*size[1]-1, m.Grid.Passages())
			assert.NotEqual(t, m.Start, m.End)
		}
	})

	t.Run("Single cell is degenerate", func(t *testing.T) {
		m, err := Generate(1, 1, 0.5, rand.New(rand.NewSource(1)))
		assert.ErrorIs(t, err, ErrDegenerateGrid)
		assert.Nil(t, m)
	})

	t.Run("Invalid dimension", func(t *testing.T) {
		_, err := Generate(0, 4, 0.5, rand.New(rand.NewSource(1)))
		assert.ErrorIs(t, err, ErrInvalidDimension)
	})

	t.Run("Same seed reproduces the maze", func(t *testing.T) {
		a, err := Generate(15, 15, 0.4, NewSource(1234))
		require.NoError(t, err)
		b, err := Generate(15, 15, 0.4, NewSource(1234))
		require.NoError(t, err)

		assert.Equal(t, a.Grid.Cells(), b.Grid.Cells())
		assert.Equal(t, a.Start, b.Start)
		assert.Equal(t, a.End, b.End)
	})
}

func TestAssignEndpoints(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)
	m := &Maze{Grid: g}

	// Start (1,1); the first end draw collides, the second lands on (2,0).
	rng := &sequenceSource{ints: []int{1, 1, 1, 1, 2, 0}}
	require.NoError(t, AssignEndpoints(m, rng))
	assert.Equal(t, Position{1, 1}, m.Start)
	assert.Equal(t, Position{2, 0}, m.End)

	single, err := NewGrid(1, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, AssignEndpoints(&Maze{Grid: single}, rng), ErrDegenerateGrid)
}

func TestPlaceEndpoints(t *testing.T) {
	g, err := NewGrid(3, 2)
	require.NoError(t, err)
	m := &Maze{Grid: g}

	require.NoError(t, PlaceEndpoints(m, Position{0, 0}, Position{2, 1}))
	assert.Equal(t, Position{0, 0}, m.Start)
	assert.Equal(t, Position{2, 1}, m.End)

	assert.ErrorIs(t, PlaceEndpoints(m, Position{0, 0}, Position{0, 0}), ErrInvalidEndpoint)
	assert.ErrorIs(t, PlaceEndpoints(m, Position{3, 0}, Position{0, 0}), ErrInvalidEndpoint)
	assert.ErrorIs(t, PlaceEndpoints(m, Position{0, 0}, Position{0, 2}), ErrInvalidEndpoint)
}

func TestGenerator(t *testing.T) {
	t.Run("Farthest policy starts at the origin", func(t *testing.T) {
		gen := NewGenerator(&Options{Difficulty: 1, Seed: 5, Endpoints: EndpointsFarthest})
		m, err := gen.Generate(8, 6)
		require.NoError(t, err)

		assert.Equal(t, Position{0, 0}, m.Start)
		far, dist := m.Grid.Farthest(m.Start)
		assert.Equal(t, far, m.End)
		assert.Positive(t, dist)
	})

	t.Run("Farthest policy from a fixed end", func(t *testing.T) {
		end := Position{X: 3, Y: 3}
		gen := NewGenerator(&Options{Difficulty: 1, Seed: 5, Endpoints: EndpointsFarthest, End: &end})
		m, err := gen.Generate(8, 6)
		require.NoError(t, err)

		assert.Equal(t, end, m.End)
		far, _ := m.Grid.Farthest(end)
		assert.Equal(t, far, m.Start)
	})

	t.Run("Explicit endpoints", func(t *testing.T) {
		start, end := Position{X: 1, Y: 1}, Position{X: 4, Y: 2}
		gen := NewGenerator(&Options{Difficulty: 0.5, Seed: 11, Start: &start, End: &end})
		m, err := gen.Generate(5, 3)
		require.NoError(t, err)
		assert.Equal(t, start, m.Start)
		assert.Equal(t, end, m.End)
	})

	t.Run("Only a start is fixed", func(t *testing.T) {
		start := Position{X: 2, Y: 0}
		gen := NewGenerator(&Options{Seed: 11, Start: &start})
		m, err := gen.Generate(4, 4)
		require.NoError(t, err)
		assert.Equal(t, start, m.Start)
		assert.NotEqual(t, start, m.End)
	})

	t.Run("Out of bounds endpoint", func(t *testing.T) {
		end := Position{X: 9, Y: 0}
		gen := NewGenerator(&Options{Seed: 11, End: &end})
		_, err := gen.Generate(4, 4)
		assert.ErrorIs(t, err, ErrInvalidEndpoint)
	})

	t.Run("Seed is kept and reproduces output", func(t *testing.T) {
		a, err := NewGenerator(&Options{Seed: 77, Difficulty: 0.2}).Generate(9, 9)
		require.NoError(t, err)
		b, err := NewGenerator(&Options{Seed: 77, Difficulty: 0.2}).Generate(9, 9)
		require.NoError(t, err)
		assert.Equal(t, a.Grid.Cells(), b.Grid.Cells())

		assert.Equal(t, int64(77), NewGenerator(&Options{Seed: 77}).Seed())
		assert.NotZero(t, NewGenerator(nil).Seed())
	})
}

func TestParseEndpointPolicy(t *testing.T) {
	p, err := ParseEndpointPolicy("")
	require.NoError(t, err)
	assert.Equal(t, EndpointsRandom, p)

	p, err = ParseEndpointPolicy("Farthest")
	require.NoError(t, err)
	assert.Equal(t, EndpointsFarthest, p)
	assert.Equal(t, "farthest", p.String())

	_, err = ParseEndpointPolicy("nearest")
	assert.Error(t, err)
}

func TestMazeString(t *testing.T) {
	g, err := NewGrid(2, 1)
	require.NoError(t, err)
	require.NoError(t, g.Connect(Position{0, 0}, Position{1, 0}))
	m := &Maze{Grid: g, Start: Position{0, 0}, End: Position{1, 0}}

	want := "+---+---+\n" +
		"| S   E |\n" +
		"+---+---+\n"
	assert.Equal(t, want, m.String())
}
