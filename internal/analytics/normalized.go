package analytics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ans-dados/ans-dados/internal/models"
)

// NormalizedColumns is the header of the enriched dataset the analytics
// endpoint re-reads: the canonical columns plus the parsed closing balance
// and the normalized description used for category filtering.
var NormalizedColumns = append(append([]string{}, models.CanonicalColumns...),
	"vl_saldo_final_num", "descricao_norm")

// WriteNormalized persists the enriched consolidated dataset: reg_ans
// zero-padded to the 6-digit join key, closing balance parsed to a float,
// description uppercased for the category filter.
func WriteNormalized(records []models.CanonicalRecord, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM to %s: %w", path, err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(NormalizedColumns); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}

	for _, rec := range records {
		row := []string{
			rec.Ano,
			rec.Trimestre,
			PadRegANS(rec.RegANS),
			rec.CdContaContabil,
			rec.DescricaoConta,
			rec.VlSaldoInicial,
			rec.VlSaldoFinal,
			strconv.FormatFloat(CleanNumeric(rec.VlSaldoFinal), 'f', -1, 64),
			strings.ToUpper(strings.TrimSpace(rec.DescricaoConta)),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}

	w.Flush()
	return w.Error()
}
