package handlers

import (
	"net/http"

	"github.com/mgrabovsky/electric-waltz/internal/api/models"
	"github.com/mgrabovsky/electric-waltz/internal/data"

	"github.com/gin-gonic/gin"
)

// DatasetsHandler lists the world-state files available on the server.
type DatasetsHandler struct {
	datasetDir string
}

// NewDatasetsHandler creates a new datasets handler
func NewDatasetsHandler() *DatasetsHandler {
	return &DatasetsHandler{datasetDir: datasetDir()}
}

// ListDatasets handles GET /api/v1/datasets
func (h *DatasetsHandler) ListDatasets(c *gin.Context) {
	datasets, err := data.ListDatasets(h.datasetDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "DATASET_DIR_ERROR",
				Message: err.Error(),
			},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"datasets": datasets})
}
