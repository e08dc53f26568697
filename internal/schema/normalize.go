package schema

import (
	"strconv"
	"strings"

	"github.com/ans-dados/ans-dados/internal/models"
)

// sentinel values that mean "no value" in source cells.
func isNullSentinel(s string) bool {
	return s == "" || s == "nan" || s == "None"
}

func cleanCell(s string) string {
	s = strings.TrimSpace(s)
	if isNullSentinel(s) {
		return ""
	}
	return s
}

// Normalize projects a raw table onto the canonical 7-column schema for the
// given period. It declines (nil, false) when the account-code or description
// column cannot be resolved: such a file is presumed to be a different
// artifact bundled in the same archive (a data dictionary, typically), not an
// error. Pure function; no I/O.
func Normalize(table *models.RawTable, period models.Period) ([]models.CanonicalRecord, bool) {
	if table == nil || len(table.Rows) == 0 {
		return nil, false
	}

	cdContaCol, cdOK := PickColumn(RoleCdContaContabil, table.Columns)
	descCol, descOK := PickColumn(RoleDescricaoConta, table.Columns)
	if !cdOK || !descOK {
		return nil, false
	}

	regANSCol, _ := PickColumn(RoleRegANS, table.Columns)
	saldoIniCol, _ := PickColumn(RoleVlSaldoInicial, table.Columns)
	saldoFimCol, _ := PickColumn(RoleVlSaldoFinal, table.Columns)

	// First occurrence wins when a header name repeats.
	idx := make(map[string]int, len(table.Columns))
	for i, c := range table.Columns {
		if _, seen := idx[c]; !seen {
			idx[c] = i
		}
	}

	cell := func(row []string, col string) string {
		if col == "" {
			return ""
		}
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return cleanCell(row[i])
	}

	ano := strconv.Itoa(period.Ano)
	trimestre := strconv.Itoa(period.Trimestre)

	records := make([]models.CanonicalRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, models.CanonicalRecord{
			Ano:             ano,
			Trimestre:       trimestre,
			RegANS:          cell(row, regANSCol),
			CdContaContabil: cell(row, cdContaCol),
			DescricaoConta:  cell(row, descCol),
			VlSaldoInicial:  cell(row, saldoIniCol),
			VlSaldoFinal:    cell(row, saldoFimCol),
		})
	}

	return records, true
}
