package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgrabovsky/electric-waltz/internal/api/models"
	"github.com/mgrabovsky/electric-waltz/internal/config"

	"github.com/gin-gonic/gin"
)

// ScenariosHandler lists the scenario presets shipped with the server.
type ScenariosHandler struct {
	scenarioDir string
}

// NewScenariosHandler creates a new scenarios handler
func NewScenariosHandler() *ScenariosHandler {
	dir := os.Getenv("SCENARIO_DIR")
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			dir = "./examples/scenarios"
		} else {
			dir = filepath.Join(wd, "examples", "scenarios")
		}
	}
	return &ScenariosHandler{scenarioDir: dir}
}

// ListScenarios handles GET /api/v1/scenarios
func (h *ScenariosHandler) ListScenarios(c *gin.Context) {
	scenarios := []models.ScenarioInfo{}

	entries, err := os.ReadDir(h.scenarioDir)
	if err != nil {
		// An absent preset directory is not an error; the list is just empty.
		c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
		return
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		path := filepath.Join(h.scenarioDir, name)
		cfg, err := config.Load(path)
		if err != nil {
			continue
		}
		id := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
		scenarios = append(scenarios, models.ScenarioInfo{
			ID:           id,
			Name:         cfg.Name,
			File:         path,
			Baseload:     len(cfg.Baseload),
			Intermittent: len(cfg.Intermittent),
			Flexible:     len(cfg.Flexible),
			Storage:      len(cfg.Storage),
			CrossBorder:  cfg.CrossBorder != nil,
		})
	}

	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}
