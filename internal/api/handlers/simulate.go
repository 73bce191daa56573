package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/mgrabovsky/electric-waltz/internal/api/models"
	"github.com/mgrabovsky/electric-waltz/internal/data"
	"github.com/mgrabovsky/electric-waltz/internal/sim"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SimulateHandler handles simulation requests and keeps finished results in
// memory so ledgers can be fetched separately.
type SimulateHandler struct {
	datasetDir string

	mu      sync.Mutex
	results map[string]*sim.Result
}

// NewSimulateHandler creates a new simulation handler
func NewSimulateHandler() *SimulateHandler {
	return &SimulateHandler{
		datasetDir: datasetDir(),
		results:    make(map[string]*sim.Result),
	}
}

func datasetDir() string {
	if dir := os.Getenv("DATASET_DIR"); dir != "" {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "./examples/datasets"
	}
	return filepath.Join(wd, "examples", "datasets")
}

// RunSimulation handles POST /api/v1/simulate
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	if req.Config == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "config is required",
			},
		})
		return
	}
	if err := req.Config.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	world, err := h.resolveWorld(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_WORLD",
				Message: err.Error(),
			},
		})
		return
	}

	if req.Options.Year != 0 {
		world, err = world.FilterYear(req.Options.Year)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INVALID_WORLD",
					Message: err.Error(),
				},
			})
			return
		}
	}
	if req.Options.LimitSteps > 0 {
		world = world.Limit(req.Options.LimitSteps)
	}

	result, err := sim.New().Run(req.Config, world)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	id := uuid.NewString()
	h.mu.Lock()
	h.results[id] = result
	h.mu.Unlock()

	response := models.SimulateResponse{
		ID:        id,
		Status:    "completed",
		Summary:   result.Summary,
		ElapsedMS: float64(result.Elapsed.Microseconds()) / 1000,
	}
	if req.Options.IncludeLedger {
		response.Ledger = result.Ledger
	}
	c.JSON(http.StatusOK, response)
}

// GetLedger handles GET /api/v1/simulations/:id/ledger
func (h *SimulateHandler) GetLedger(c *gin.Context) {
	id := c.Param("id")

	h.mu.Lock()
	result, ok := h.results[id]
	h.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: fmt.Sprintf("no simulation with id %q", id),
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "ledger": result.Ledger})
}

func (h *SimulateHandler) resolveWorld(req *models.SimulateRequest) (*data.World, error) {
	switch {
	case req.World != nil:
		if len(req.World.Load) == 0 {
			return nil, fmt.Errorf("inline world has no load series")
		}
		return req.World, nil
	case req.Dataset != "":
		// Dataset names are bare identifiers; strip any path component.
		name := filepath.Base(req.Dataset)
		return data.LoadWorldCSV(filepath.Join(h.datasetDir, name+".csv"))
	default:
		return nil, fmt.Errorf("either dataset or world is required")
	}
}
