package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/encoder"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxDimension = 200

	// seededKeyFmt identifies a seeded request; equal requests map to one document.
	seededKeyFmt = "maze:%dx%d:difficulty_%g:seed_%d:endpoints_%s:start_%s:end_%s"
)

var (
	ErrDimensionTooLarge = errors.New("maze dimension too large")

	// seededNamespace derives stable document IDs for seeded requests.
	seededNamespace = uuid.MustParse("3f0c8a52-7d1e-4b8f-9a36-5c2d9e41b7a0")
)

// Options configures a Maze service.
type Options struct {
	Store        i.MazeStore
	Locker       i.Locker // Locker is optional; without it seeded requests are not deduplicated across callers.
	Logger       logrus.FieldLogger
	MaxDimension int
}

// Maze generates mazes and keeps their exchange documents.
type Maze struct {
	store        i.MazeStore
	locker       i.Locker
	logger       logrus.FieldLogger
	maxDimension int
	now          func() time.Time
}

var _ i.MazeService = &Maze{}

// NewMazeService creates a maze service backed by opts.Store.
func NewMazeService(opts *Options) (*Maze, error) {
	if opts == nil || opts.Store == nil {
		return nil, errors.New("maze service requires a store")
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	maxDimension := opts.MaxDimension
	if maxDimension <= 0 {
		maxDimension = defaultMaxDimension
	}

	return &Maze{
		store:        opts.Store,
		locker:       opts.Locker,
		logger:       logger,
		maxDimension: maxDimension,
		now:          time.Now,
	}, nil
}

// Generate builds the requested maze and stores its document. A seeded
// request is stored under an ID derived from its parameters, so repeating it
// returns the stored document instead of generating again.
func (s *Maze) Generate(ctx context.Context, req i.GenerateRequest) (*i.GeneratedMaze, error) {
	if req.Width > s.maxDimension || req.Height > s.maxDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrDimensionTooLarge, req.Width, req.Height, s.maxDimension)
	}

	req.Difficulty = maze.ClampDifficulty(req.Difficulty)
	if req.Seed == 0 {
		return s.generate(ctx, uuid.New(), req)
	}

	key := seededKey(req)
	id := uuid.NewSHA1(seededNamespace, []byte(key))

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("locking %s: %w", key, err)
		}
		defer unlock()
	}

	stored, err := s.store.ByID(ctx, id)
	switch {
	case err == nil:
		m, err := encoder.FromJSON(stored.Document)
		if err != nil {
			return nil, fmt.Errorf("stored document %s: %w", id, err)
		}
		s.logger.WithField("id", id).Debug("seeded maze served from store")
		return &i.GeneratedMaze{ID: id, Seed: req.Seed, Maze: m, Document: stored.Document}, nil
	case errors.Is(err, i.ErrMazeNotFound):
		return s.generate(ctx, id, req)
	default:
		return nil, err
	}
}

func (s *Maze) generate(ctx context.Context, id uuid.UUID, req i.GenerateRequest) (*i.GeneratedMaze, error) {
	gen := maze.NewGenerator(&maze.Options{
		Difficulty: req.Difficulty,
		Seed:       req.Seed,
		Endpoints:  req.Endpoints,
		Start:      req.Start,
		End:        req.End,
	})

	started := s.now()
	m, err := gen.Generate(req.Width, req.Height)
	if err != nil {
		return nil, err
	}

	doc, err := encoder.ToJSON(m)
	if err != nil {
		return nil, fmt.Errorf("encoding maze: %w", err)
	}

	if err := s.store.Save(ctx, &i.StoredMaze{ID: id, Document: doc, CreatedAt: s.now()}); err != nil {
		return nil, fmt.Errorf("saving maze %s: %w", id, err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":         id,
		"width":      req.Width,
		"height":     req.Height,
		"difficulty": req.Difficulty,
		"seed":       gen.Seed(),
		"passages":   m.Grid.Passages(),
		"took":       s.now().Sub(started),
	}).Info("maze generated")

	return &i.GeneratedMaze{ID: id, Seed: gen.Seed(), Maze: m, Document: doc}, nil
}

// Document returns the stored document for id.
func (s *Maze) Document(ctx context.Context, id uuid.UUID) ([]byte, error) {
	stored, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return stored.Document, nil
}

// Delete drops the stored document for id.
func (s *Maze) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithField("id", id).Info("maze deleted")
	return nil
}

// Validate decodes doc and returns the maze it describes.
func (s *Maze) Validate(doc []byte) (*maze.Maze, error) {
	return encoder.FromJSON(doc)
}

func seededKey(req i.GenerateRequest) string {
	pos := func(p *maze.Position) string {
		if p == nil {
			return "auto"
		}
		return fmt.Sprintf("%d,%d", p.X, p.Y)
	}
	return fmt.Sprintf(seededKeyFmt, req.Width, req.Height, req.Difficulty, req.Seed, req.Endpoints, pos(req.Start), pos(req.End))
}
