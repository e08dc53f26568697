package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ans-dados/ans-dados/internal/search"
)

const (
	defaultSearchLimit = 50
	maxSearchLimit     = 200
)

// Searcher is the read side of the operator search index.
type Searcher interface {
	Search(query string, limit int) []search.Hit
}

type SearchService struct {
	Index Searcher
}

func NewSearchService(index Searcher) *SearchService {
	return &SearchService{Index: index}
}

type searchResponse struct {
	Query   string       `json:"query"`
	Count   int          `json:"count"`
	Results []search.Hit `json:"results"`
}

// Search handles GET /search?query=...&limit=N. The query is required; the
// limit defaults to 50 and is rejected outside 1..200.
func (h *SearchService) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		http.Error(w, "Query parameter 'query' is required", http.StatusBadRequest)
		return
	}

	limit := defaultSearchLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > maxSearchLimit {
			http.Error(w, "Parameter 'limit' must be an integer between 1 and 200", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	results := h.Index.Search(query, limit)
	if results == nil {
		results = []search.Hit{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(searchResponse{
		Query:   query,
		Count:   len(results),
		Results: results,
	}); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
