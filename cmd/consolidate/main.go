package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ans-dados/ans-dados/internal/analytics"
	"github.com/ans-dados/ans-dados/internal/config"
	"github.com/ans-dados/ans-dados/internal/consolidate"
	"github.com/ans-dados/ans-dados/internal/models"
	"github.com/ans-dados/ans-dados/internal/registry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}
	startTime := time.Now()
	cfg := config.New()

	log.Println("=== Demonstrações contábeis: extract + consolidate ===")

	extracted, err := consolidate.ExtractAll(cfg)
	if err != nil {
		log.Fatalf("Error extracting archives: %v", err)
	}
	if len(extracted) == 0 {
		log.Println("Nothing to process. Download the quarterly archives first.")
		return
	}

	result := consolidate.Consolidate(extracted)
	log.Printf("Consolidated: %d records from %d files", len(result.Records), len(result.Audit))

	if err := consolidate.WriteConsolidated(result.Records, cfg.OutConsolidated); err != nil {
		log.Fatalf("Error writing consolidated dataset: %v", err)
	}
	log.Printf("Consolidated dataset written to: %s", cfg.OutConsolidated)

	if err := consolidate.WriteValidation(result.Audit, cfg.OutValidation); err != nil {
		log.Fatalf("Error writing validation report: %v", err)
	}
	log.Printf("Validation report written to: %s", cfg.OutValidation)

	if err := analytics.WriteNormalized(result.Records, cfg.OutNormalized); err != nil {
		log.Fatalf("Error writing normalized dataset: %v", err)
	}
	log.Printf("Normalized dataset written to: %s", cfg.OutNormalized)

	reportRankings(cfg, result.Records)

	log.Printf("Execution time: %s", time.Since(startTime))
}

// reportRankings prints the claims-expense leaderboards for the most recent
// quarter and the trailing four quarters, with registry names attached when
// the CADOP file is available.
func reportRankings(cfg *config.Config, records []models.CanonicalRecord) {
	var claims []models.CanonicalRecord
	for _, rec := range records {
		if analytics.ClaimsExpenseFilter(rec.DescricaoConta) {
			claims = append(claims, rec)
		}
	}
	if len(claims) == 0 {
		log.Println("WARN: No claims-expense accounts found in the consolidated data.")
		return
	}

	rows := analytics.Deaccumulate(analytics.BuildDerivedRows(claims))

	topQuarter, latest := analytics.TopByQuarter(rows)
	topYear := analytics.TopTrailingYear(rows)

	operators, err := registry.Load(cfg.CadopCSVPath)
	if err != nil {
		log.Printf("WARN: Proceeding without registry names: %v", err)
	} else {
		topQuarter = analytics.AttachNames(topQuarter, operators)
		topYear = analytics.AttachNames(topYear, operators)
	}

	printRanking(fmt.Sprintf("TOP 10 OPERADORAS - GASTO REAL NO %s", latest), topQuarter)
	printRanking("TOP 10 OPERADORAS - GASTO ACUMULADO (ÚLTIMOS 4 TRI)", topYear)
}

func printRanking(title string, entries []models.RankingEntry) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 70))
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", 70))
	for _, e := range entries {
		fmt.Printf("%-8s %-50s %18.2f\n", e.RegANS, e.RazaoSocial, e.ValorReal)
	}
}
