package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// GenerateRequest describes the maze a caller asks for.
type GenerateRequest struct {
	Width      int
	Height     int
	Difficulty float64
	Seed       int64 // Seed makes the request reproducible; 0 picks a random one.
	Endpoints  maze.EndpointPolicy
	Start      *maze.Position
	End        *maze.Position
}

// GeneratedMaze is the outcome of a generation request.
type GeneratedMaze struct {
	ID       uuid.UUID
	Seed     int64
	Maze     *maze.Maze
	Document []byte
}

// MazeService generates, keeps and validates maze documents.
type MazeService interface {
	// Generate builds a maze and stores its document.
	Generate(ctx context.Context, req GenerateRequest) (*GeneratedMaze, error)

	// Document returns the stored document for id.
	Document(ctx context.Context, id uuid.UUID) ([]byte, error)

	// Delete drops the stored document for id.
	Delete(ctx context.Context, id uuid.UUID) error

	// Validate decodes a document and reports the first violation, if any.
	Validate(doc []byte) (*maze.Maze, error)
}
