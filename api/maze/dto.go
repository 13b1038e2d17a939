// Package mazeapi exposes maze generation over HTTP.
package mazeapi

import (
	"github.com/goccy/go-json"
)

// GenerateRequest represents a request to generate a new maze.
type GenerateRequest struct {
	Width      int      `json:"width" binding:"required"`
	Height     int      `json:"height" binding:"required"`
	Difficulty *float64 `json:"difficulty"` // defaults to 1, the perfect maze
	Seed       int64    `json:"seed"`
	Endpoints  string   `json:"endpoints"` // "random" or "farthest"
	Start      *[2]int  `json:"start"`
	End        *[2]int  `json:"end"`
}

// GenerateResponse carries the ID a generated maze is stored under and its document.
type GenerateResponse struct {
	ID   string          `json:"id"`
	Seed int64           `json:"seed"`
	Maze json.RawMessage `json:"maze"`
}

// ValidateResponse summarizes a maze document that passed validation.
type ValidateResponse struct {
	Valid    bool   `json:"valid"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Passages int    `json:"passages"`
	Start    [2]int `json:"start"`
	End      [2]int `json:"end"`
}
