package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mgrabovsky/electric-waltz/internal/api/handlers"
	"github.com/mgrabovsky/electric-waltz/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	simulateHandler := handlers.NewSimulateHandler()
	datasetsHandler := handlers.NewDatasetsHandler()
	scenariosHandler := handlers.NewScenariosHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.RunSimulation)
		api.GET("/simulations/:id/ledger", simulateHandler.GetLedger)

		api.GET("/datasets", datasetsHandler.ListDatasets)
		api.GET("/scenarios", scenariosHandler.ListScenarios)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
