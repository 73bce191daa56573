package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mgrabovsky/electric-waltz/internal/api/models"
	"github.com/mgrabovsky/electric-waltz/internal/config"
	"github.com/mgrabovsky/electric-waltz/internal/data"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(h *SimulateHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/simulate", h.RunSimulation)
	router.GET("/api/v1/simulations/:id/ledger", h.GetLedger)
	return router
}

func postSimulate(t *testing.T, router *gin.Engine, req models.SimulateRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/simulate", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	return w
}

func validRequest() models.SimulateRequest {
	return models.SimulateRequest{
		Config: &config.Config{
			Name:     "test grid",
			Baseload: []config.SourceConfig{{Name: "nuclear", NominalMW: 1000}},
			Flexible: []config.FlexibleConfig{{SourceConfig: config.SourceConfig{Name: "gas", NominalMW: 500}}},
		},
		World:   &data.World{Load: []float64{900, 1200, 1600}},
		Options: models.SimulateOptions{IncludeLedger: true},
	}
}

func TestRunSimulation(t *testing.T) {
	handler := NewSimulateHandler()
	router := newTestRouter(handler)

	w := postSimulate(t, router, validRequest())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "completed", resp.Status)
	require.Len(t, resp.Ledger, 3)

	// Nuclear covers the first step with 100 MW to spare; the last step
	// saturates the gas plant and leaves 100 MW unmet.
	assert.InDelta(t, -100, resp.Ledger[0].Shortage, 1e-9)
	assert.InDelta(t, 500, resp.Ledger[2].Sources["gas"], 1e-9)
	assert.InDelta(t, 100, resp.Ledger[2].Shortage, 1e-9)

	assert.InDelta(t, 3700, resp.Summary.NetConsumptionMWh, 1e-9)
	assert.InDelta(t, 3700, resp.Summary.TotalGenerationMWh, 1e-9)
	assert.InDelta(t, 100, resp.Summary.DumpMWh, 1e-9)
	assert.InDelta(t, 100, resp.Summary.ShortageMWh, 1e-9)
}

func TestRunSimulationWithoutLedger(t *testing.T) {
	handler := NewSimulateHandler()
	router := newTestRouter(handler)

	req := validRequest()
	req.Options.IncludeLedger = false
	w := postSimulate(t, router, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Ledger)
}

func TestRunSimulationRejectsBadRequests(t *testing.T) {
	handler := NewSimulateHandler()
	router := newTestRouter(handler)

	tests := []struct {
		name   string
		mutate func(*models.SimulateRequest)
		code   string
	}{
		{
			name:   "missing config",
			mutate: func(r *models.SimulateRequest) { r.Config = nil },
			code:   "INVALID_REQUEST",
		},
		{
			name: "invalid config",
			mutate: func(r *models.SimulateRequest) {
				r.Config.Baseload[0].NominalMW = -1
			},
			code: "INVALID_CONFIG",
		},
		{
			name:   "missing world",
			mutate: func(r *models.SimulateRequest) { r.World = nil },
			code:   "INVALID_WORLD",
		},
		{
			name: "year without year column",
			mutate: func(r *models.SimulateRequest) {
				r.Options.Year = 2030
			},
			code: "INVALID_WORLD",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			w := postSimulate(t, router, req)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestRunSimulationLimitSteps(t *testing.T) {
	handler := NewSimulateHandler()
	router := newTestRouter(handler)

	req := validRequest()
	req.Options.LimitSteps = 2
	w := postSimulate(t, router, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Ledger, 2)
	assert.Equal(t, 2, resp.Summary.Steps)
}

func TestGetLedger(t *testing.T) {
	handler := NewSimulateHandler()
	router := newTestRouter(handler)

	w := postSimulate(t, router, validRequest())
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	w = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/simulations/"+resp.ID+"/ledger", nil)
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var ledger struct {
		ID     string           `json:"id"`
		Ledger []map[string]any `json:"ledger"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ledger))
	assert.Equal(t, resp.ID, ledger.ID)
	assert.Len(t, ledger.Ledger, 3)
}

func TestGetLedgerUnknownID(t *testing.T) {
	handler := NewSimulateHandler()
	router := newTestRouter(handler)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/simulations/nope/ledger", nil)
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
