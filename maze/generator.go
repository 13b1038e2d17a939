package maze

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// EndpointPolicy selects how a Generator places start and end.
type EndpointPolicy int

const (
	// EndpointsRandom picks two distinct uniformly random cells.
	EndpointsRandom EndpointPolicy = iota
	// EndpointsFarthest starts at Options.Start, or (0,0), and ends at the
	// cell farthest from it.
	EndpointsFarthest
)

// String returns the policy name used in requests and flags.
func (p EndpointPolicy) String() string {
	switch p {
	case EndpointsRandom:
		return "random"
	case EndpointsFarthest:
		return "farthest"
	default:
		return fmt.Sprintf("EndpointPolicy(%d)", int(p))
	}
}

// ParseEndpointPolicy converts "random" or "farthest" into a policy. An empty
// string means EndpointsRandom.
func ParseEndpointPolicy(s string) (EndpointPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "random":
		return EndpointsRandom, nil
	case "farthest":
		return EndpointsFarthest, nil
	default:
		return 0, fmt.Errorf("unknown endpoint policy %q", s)
	}
}

// Options configures maze generation.
type Options struct {
	Difficulty float64        // Difficulty in [0, 1]; values outside are clamped.
	Seed       int64          // Seed for reproducible mazes (0 = random)
	Endpoints  EndpointPolicy // Endpoints chooses the placement policy.
	Start      *Position      // Start overrides the policy's start when set.
	End        *Position      // End overrides the policy's end when set.
}

// DefaultOptions returns hardest-difficulty options with random endpoints.
func DefaultOptions() *Options {
	return &Options{
		Difficulty: 1,
		Seed:       0,
		Endpoints:  EndpointsRandom,
	}
}

// Generator creates mazes from a fixed set of options.
type Generator struct {
	options *Options
	seed    int64
	rng     Source
	mu      sync.Mutex
}

// NewGenerator creates a maze generator with the given options.
func NewGenerator(options *Options) *Generator {
	if options == nil {
		options = DefaultOptions()
	}

	seed := options.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Generator{
		options: options,
		seed:    seed,
		rng:     NewSource(seed),
	}
}

// Seed returns the seed the generator's source was created from.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate creates a new width x height maze. Calls on one Generator are
// serialized because they share its random source.
func (g *Generator) Generate(width, height int) (*Maze, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	m, err := build(width, height, g.options.Difficulty, g.rng)
	if err != nil {
		return nil, err
	}

	if err := g.placeEndpoints(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (g *Generator) placeEndpoints(m *Maze) error {
	o := g.options

	switch {
	case o.Start != nil && o.End != nil:
		return PlaceEndpoints(m, *o.Start, *o.End)

	case o.Endpoints == EndpointsFarthest && o.End != nil:
		// The farthest cell from a fixed end becomes the start.
		if err := AssignFarthestEndpoints(m, *o.End); err != nil {
			return err
		}
		m.Start, m.End = m.End, m.Start
		return nil

	case o.Endpoints == EndpointsFarthest:
		start := Position{}
		if o.Start != nil {
			start = *o.Start
		}
		return AssignFarthestEndpoints(m, start)

	case o.Start != nil:
		if !m.Grid.Contains(*o.Start) {
			return fmt.Errorf("%w: start %s is outside the maze", ErrInvalidEndpoint, *o.Start)
		}
		m.Start = *o.Start
		m.End = randomOther(m.Grid, m.Start, g.rng)
		return nil

	case o.End != nil:
		if !m.Grid.Contains(*o.End) {
			return fmt.Errorf("%w: end %s is outside the maze", ErrInvalidEndpoint, *o.End)
		}
		m.End = *o.End
		m.Start = randomOther(m.Grid, m.End, g.rng)
		return nil

	default:
		return AssignEndpoints(m, g.rng)
	}
}
