package analytics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ans-dados/ans-dados/internal/models"
)

// ClaimsExpenseFilter keeps the rows of the known claims expense account
// family (medical-hospital care events).
func ClaimsExpenseFilter(descricao string) bool {
	d := strings.ToUpper(strings.TrimSpace(descricao))
	return strings.Contains(d, "SINISTROS CONHECIDOS") && strings.Contains(d, "HOSPITALAR")
}

// BuildDerivedRows converts canonical records into rows ready for
// de-accumulation: parsed closing balance, padded registration id, and
// integer period fields. Records whose period fields do not parse fall back
// to 4T2024, the base period of the download set.
func BuildDerivedRows(records []models.CanonicalRecord) []models.DerivedRow {
	rows := make([]models.DerivedRow, 0, len(records))
	for _, rec := range records {
		ano, err := strconv.Atoi(strings.TrimSpace(rec.Ano))
		if err != nil {
			ano = 2024
		}
		trimestre, err := strconv.Atoi(strings.TrimSpace(rec.Trimestre))
		if err != nil {
			trimestre = 4
		}

		rows = append(rows, models.DerivedRow{
			RegANS:         PadRegANS(rec.RegANS),
			Ano:            ano,
			Trimestre:      trimestre,
			DescricaoConta: rec.DescricaoConta,
			SaldoFinalNum:  CleanNumeric(rec.VlSaldoFinal),
		})
	}
	return rows
}

// periodKey orders (year, quarter) pairs.
type periodKey struct {
	Ano       int
	Trimestre int
}

// RecentPeriods returns the distinct (year, quarter) pairs present in rows,
// most recent first.
func RecentPeriods(rows []models.DerivedRow) []models.Period {
	seen := map[periodKey]struct{}{}
	var keys []periodKey
	for _, r := range rows {
		k := periodKey{r.Ano, r.Trimestre}
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Ano != keys[j].Ano {
			return keys[i].Ano > keys[j].Ano
		}
		return keys[i].Trimestre > keys[j].Trimestre
	})

	periods := make([]models.Period, len(keys))
	for i, k := range keys {
		periods[i] = models.Period{Ano: k.Ano, Trimestre: k.Trimestre}
	}
	return periods
}

// sumByEntity groups rows by registration id summing the period value,
// preserving first-appearance order so ties stay stable.
func sumByEntity(rows []models.DerivedRow) []models.RankingEntry {
	byReg := map[string]int{}
	var entries []models.RankingEntry
	for _, r := range rows {
		i, ok := byReg[r.RegANS]
		if !ok {
			i = len(entries)
			byReg[r.RegANS] = i
			entries = append(entries, models.RankingEntry{RegANS: r.RegANS})
		}
		entries[i].ValorReal += r.ValorReal
	}
	return entries
}

func topN(entries []models.RankingEntry, n int) []models.RankingEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ValorReal > entries[j].ValorReal
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// TopByQuarter ranks the 10 entities with the highest summed period value in
// the single most recent (year, quarter) present in rows.
func TopByQuarter(rows []models.DerivedRow) ([]models.RankingEntry, models.Period) {
	periods := RecentPeriods(rows)
	if len(periods) == 0 {
		return nil, models.Period{}
	}
	latest := periods[0]

	var subset []models.DerivedRow
	for _, r := range rows {
		if r.Ano == latest.Ano && r.Trimestre == latest.Trimestre {
			subset = append(subset, r)
		}
	}

	return topN(sumByEntity(subset), 10), latest
}

// TopTrailingYear ranks the 10 entities with the highest summed period value
// over the four most recent distinct (year, quarter) pairs, whether or not
// an entity appears in all four.
func TopTrailingYear(rows []models.DerivedRow) []models.RankingEntry {
	periods := RecentPeriods(rows)
	if len(periods) > 4 {
		periods = periods[:4]
	}
	if len(periods) == 0 {
		return nil
	}

	keep := map[periodKey]struct{}{}
	for _, p := range periods {
		keep[periodKey{p.Ano, p.Trimestre}] = struct{}{}
	}

	var subset []models.DerivedRow
	for _, r := range rows {
		if _, ok := keep[periodKey{r.Ano, r.Trimestre}]; ok {
			subset = append(subset, r)
		}
	}

	return topN(sumByEntity(subset), 10)
}

// AttachNames joins ranking entries against the registry by the zero-padded
// registration id. Unmatched entities keep an empty name; they are never
// dropped from the ranking.
func AttachNames(entries []models.RankingEntry, operators []models.Operator) []models.RankingEntry {
	names := make(map[string]string, len(operators))
	for _, op := range operators {
		key := PadRegANS(op.RegistroANS)
		if _, ok := names[key]; !ok {
			names[key] = op.RazaoSocial
		}
	}

	out := make([]models.RankingEntry, len(entries))
	for i, e := range entries {
		e.RazaoSocial = names[e.RegANS]
		out[i] = e
	}
	return out
}
