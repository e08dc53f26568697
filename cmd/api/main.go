package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/ans-dados/ans-dados/internal/config"
	"github.com/ans-dados/ans-dados/internal/search"
	"github.com/ans-dados/ans-dados/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}
	cfg := config.New()

	index := search.LoadService(cfg.CadopCSVPath)

	searchService := server.NewSearchService(index)
	analyticsService := server.NewAnalyticsService(cfg.OutNormalized)
	mux := server.SetupRoutes(searchService, analyticsService)

	log.Printf("Starting API server on port %s", cfg.APIPort)
	if err := http.ListenAndServe(":"+cfg.APIPort, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
