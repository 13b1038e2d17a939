package mazeapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-maze/encoder"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	generateTimeout = 5 * time.Second
	storeTimeout    = time.Second
)

// MazeController serves maze generation and stored documents.
type MazeController struct {
	mazeService i.MazeService
}

// NewMazeController initializes a MazeController.
func NewMazeController(ms i.MazeService) *MazeController {
	return &MazeController{
		mazeService: ms,
	}
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("", mc.generate)
		mazes.POST("/validate", mc.validate)
		mazes.GET("/:ID", mc.document)
	}
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.DELETE("/:ID", mc.delete)
	}
}

// generate handles maze generation requests.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := request.toServiceRequest()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()
	generated, err := mc.mazeService.Generate(timeoutCtx, req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, &GenerateResponse{
		ID:   generated.ID.String(),
		Seed: generated.Seed,
		Maze: generated.Document,
	})
}

// document returns a stored maze document.
func (mc *MazeController) document(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	doc, err := mc.mazeService.Document(timeoutCtx, ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "application/json; charset=utf-8", doc)
}

// validate checks a maze document sent as the request body.
func (mc *MazeController) validate(ctx *gin.Context) {
	body, err := ctx.GetRawData()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := mc.mazeService.Validate(body)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, &ValidateResponse{
		Valid:    true,
		Width:    m.Width(),
		Height:   m.Height(),
		Passages: m.Grid.Passages(),
		Start:    [2]int{m.Start.X, m.Start.Y},
		End:      [2]int{m.End.X, m.End.Y},
	})
}

// delete removes a stored maze document.
func (mc *MazeController) delete(ctx *gin.Context) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid maze id"})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := mc.mazeService.Delete(timeoutCtx, ID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (r *GenerateRequest) toServiceRequest() (i.GenerateRequest, error) {
	policy, err := maze.ParseEndpointPolicy(r.Endpoints)
	if err != nil {
		return i.GenerateRequest{}, err
	}

	req := i.GenerateRequest{
		Width:      r.Width,
		Height:     r.Height,
		Difficulty: 1,
		Seed:       r.Seed,
		Endpoints:  policy,
	}
	if r.Difficulty != nil {
		req.Difficulty = *r.Difficulty
	}
	if r.Start != nil {
		req.Start = &maze.Position{X: r.Start[0], Y: r.Start[1]}
	}
	if r.End != nil {
		req.End = &maze.Position{X: r.End[0], Y: r.End[1]}
	}
	return req, nil
}

// respondError maps service errors to HTTP statuses.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, i.ErrMazeNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDimensionTooLarge),
		errors.Is(err, maze.ErrInvalidDimension),
		errors.Is(err, maze.ErrDegenerateGrid),
		errors.Is(err, maze.ErrInvalidEndpoint),
		errors.Is(err, encoder.ErrMalformedMazeDocument):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while handling maze request"})
	}
}
