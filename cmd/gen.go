package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/encoder"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type genFlags struct {
	width      int
	height     int
	difficulty float64
	seed       int64
	start      string
	end        string
	farthest   bool
	outDir     string
	compact    bool
	stdout     bool
	logLevel   string
}

var gen genFlags

func init() {
	genCmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate a maze document",
		Long: `Generate one maze and write it as a JSON document.

Examples:
  mazegen gen -w 20 -H 10
  mazegen gen -w 30 -H 30 -d 0.4 -s 42 -o ./mazes
  mazegen gen -w 12 -H 8 --farthest --start 0,7 --compact`,
		RunE: runGen,
	}

	genCmd.Flags().IntVarP(&gen.width, "width", "w", 10, "Maze width in cells")
	genCmd.Flags().IntVarP(&gen.height, "height", "H", 10, "Maze height in cells")
	genCmd.Flags().Float64VarP(&gen.difficulty, "difficulty", "d", 1, "Difficulty in [0, 1]; lower values open more loops")
	genCmd.Flags().Int64VarP(&gen.seed, "seed", "s", 0, "Seed for a reproducible maze (0 = random)")
	genCmd.Flags().StringVar(&gen.start, "start", "", "Start cell as x,y")
	genCmd.Flags().StringVar(&gen.end, "end", "", "End cell as x,y")
	genCmd.Flags().BoolVar(&gen.farthest, "farthest", false, "Place the end on the cell farthest from the start")
	genCmd.Flags().StringVarP(&gen.outDir, "outdir", "o", ".", "Directory for the generated file")
	genCmd.Flags().BoolVar(&gen.compact, "compact", false, "Write one cell per line")
	genCmd.Flags().BoolVar(&gen.stdout, "stdout", false, "Print the document instead of writing a file")
	genCmd.Flags().StringVar(&gen.logLevel, "log-level", "info", "Log level")

	rootCmd.AddCommand(genCmd)
}

// options converts the flags into generator options.
func (f genFlags) options() (*maze.Options, error) {
	opts := maze.DefaultOptions()
	opts.Difficulty = f.difficulty
	opts.Seed = f.seed
	if f.farthest {
		opts.Endpoints = maze.EndpointsFarthest
	}

	if f.start != "" {
		p, err := maze.ParsePosition(f.start)
		if err != nil {
			return nil, fmt.Errorf("--start: %w", err)
		}
		opts.Start = &p
	}
	if f.end != "" {
		p, err := maze.ParsePosition(f.end)
		if err != nil {
			return nil, fmt.Errorf("--end: %w", err)
		}
		opts.End = &p
	}
	return opts, nil
}

// outputName names a generated file after its size, a short id and the time
// it was written.
func outputName(m *maze.Maze, id uuid.UUID, at time.Time) string {
	return fmt.Sprintf("matrix_%dx%d_%s_%d.json", m.Width(), m.Height(), id.String()[:8], at.Unix())
}

func encode(m *maze.Maze, compact bool) ([]byte, error) {
	if compact {
		return encoder.ToCompactJSON(m), nil
	}
	return encoder.ToJSON(m)
}

func runGen(cmd *cobra.Command, args []string) error {
	logger := config.NewLogger(config.LogCLI, gen.logLevel, cmd.ErrOrStderr())

	opts, err := gen.options()
	if err != nil {
		return err
	}

	generator := maze.NewGenerator(opts)
	started := time.Now()
	m, err := generator.Generate(gen.width, gen.height)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	data, err := encode(m, gen.compact)
	if err != nil {
		return fmt.Errorf("encoding maze: %w", err)
	}

	entry := logger.WithFields(logrus.Fields{
		"width":      m.Width(),
		"height":     m.Height(),
		"difficulty": m.Difficulty,
		"seed":       generator.Seed(),
		"start":      m.Start.String(),
		"end":        m.End.String(),
		"passages":   m.Grid.Passages(),
		"took":       time.Since(started),
	})

	if gen.stdout {
		_, err := cmd.OutOrStdout().Write(append(data, '\n'))
		entry.Debug("maze printed")
		return err
	}

	if err := os.MkdirAll(gen.outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", gen.outDir, err)
	}
	filename := filepath.Join(gen.outDir, outputName(m, uuid.New(), time.Now()))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	entry.WithField("file", filename).Info("maze written")
	fmt.Fprintln(cmd.OutOrStdout(), filename)
	return nil
}
