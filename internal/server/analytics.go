package server

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ans-dados/ans-dados/internal/analytics"
	"github.com/ans-dados/ans-dados/internal/models"
	"github.com/ans-dados/ans-dados/internal/parser"
)

// AnalyticsService answers the top-10 claims-expense ranking. It re-reads
// the normalized consolidated dataset on every request; the file is
// regenerated by the batch pipeline and must never be served stale.
type AnalyticsService struct {
	NormalizedCSVPath string
}

func NewAnalyticsService(normalizedCSVPath string) *AnalyticsService {
	return &AnalyticsService{NormalizedCSVPath: normalizedCSVPath}
}

// Top10 handles GET /analytics/top-10. A missing or unreadable dataset
// degrades to an empty list with a diagnostic rather than an error status;
// the pipeline may simply not have run yet.
func (h *AnalyticsService) Top10(w http.ResponseWriter, r *http.Request) {
	entries := h.compute()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *AnalyticsService) compute() []models.RankingEntry {
	if _, err := os.Stat(h.NormalizedCSVPath); err != nil {
		log.Printf("WARN: Normalized dataset not found: %s", h.NormalizedCSVPath)
		return []models.RankingEntry{}
	}

	table, _, err := parser.ReadDelimited(h.NormalizedCSVPath)
	if err != nil {
		log.Printf("ERROR: Failed to read normalized dataset: %v", err)
		return []models.RankingEntry{}
	}

	headers := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		headers[i] = strings.ToUpper(strings.TrimSpace(c))
	}

	ansCol := findColumn(headers, "REG_ANS", "REGISTRO")
	descCol := findColumn(headers, "DESCRICAO_NORM", "RAZAO", "NOME", "SOCIAL")
	valueCol := findColumn(headers, "VL_SALDO_FINAL_NUM", "VALOR_REAL", "SALDO")
	if ansCol < 0 || descCol < 0 || valueCol < 0 {
		log.Printf("WARN: Normalized dataset is missing expected columns (headers: %v)", headers)
		return []models.RankingEntry{}
	}

	byReg := map[string]int{}
	var entries []models.RankingEntry
	for _, row := range table.Rows {
		if ansCol >= len(row) || descCol >= len(row) || valueCol >= len(row) {
			continue
		}
		descricao := row[descCol]
		if !analytics.ClaimsExpenseFilter(descricao) {
			continue
		}

		reg := row[ansCol]
		value, err := strconv.ParseFloat(strings.TrimSpace(row[valueCol]), 64)
		if err != nil {
			value = analytics.CleanNumeric(row[valueCol])
		}

		i, ok := byReg[reg]
		if !ok {
			i = len(entries)
			byReg[reg] = i
			entries = append(entries, models.RankingEntry{RegANS: reg, RazaoSocial: descricao})
		}
		entries[i].ValorReal += value
	}

	top := topTen(entries)
	if top == nil {
		top = []models.RankingEntry{}
	}
	return top
}

func topTen(entries []models.RankingEntry) []models.RankingEntry {
	sorted := make([]models.RankingEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ValorReal > sorted[j].ValorReal })
	if len(sorted) > 10 {
		sorted = sorted[:10]
	}
	return sorted
}

// findColumn returns the index of the first header containing any keyword,
// keyword priority first.
func findColumn(headers []string, keywords ...string) int {
	for _, kw := range keywords {
		for i, h := range headers {
			if strings.Contains(h, kw) {
				return i
			}
		}
	}
	return -1
}
