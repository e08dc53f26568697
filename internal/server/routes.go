package server

import (
	"net/http"
)

func SetupRoutes(searchService *SearchService, analyticsService *AnalyticsService) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", HealthCheck)
	mux.HandleFunc("/search", searchService.Search)
	mux.HandleFunc("/analytics/top-10", analyticsService.Top10)

	return mux
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
