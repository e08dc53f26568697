package analytics

import (
	"sort"

	"github.com/ans-dados/ans-dados/internal/models"
)

// Deaccumulate converts cumulative quarterly closing balances into discrete
// per-period values. Rows are sorted by (entity, year, quarter); quarter 1
// keeps its cumulative balance (a fresh accumulation), quarters 2-4 subtract
// the previous balance of the same entity and year. When no prior balance
// exists in the group (a missing Q1, say) the cumulative value is kept
// unchanged rather than dropped. This can overstate the period when Q1 is
// genuinely absent; the source data cannot tell the two cases apart.
func Deaccumulate(rows []models.DerivedRow) []models.DerivedRow {
	out := make([]models.DerivedRow, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RegANS != out[j].RegANS {
			return out[i].RegANS < out[j].RegANS
		}
		if out[i].Ano != out[j].Ano {
			return out[i].Ano < out[j].Ano
		}
		return out[i].Trimestre < out[j].Trimestre
	})

	for i := range out {
		out[i].ValorReal = out[i].SaldoFinalNum
		if out[i].Trimestre <= 1 || i == 0 {
			continue
		}
		prev := out[i-1]
		if prev.RegANS == out[i].RegANS && prev.Ano == out[i].Ano {
			out[i].ValorReal = out[i].SaldoFinalNum - prev.SaldoFinalNum
		}
	}

	return out
}
