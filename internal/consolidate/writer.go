package consolidate

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ans-dados/ans-dados/internal/models"
)

// writeCSVWithBOM writes rows as comma-separated UTF-8 with signature, the
// way downstream spreadsheet users expect government data to open.
func writeCSVWithBOM(path string, header []string, rows [][]string) error {
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
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}

	w.Flush()
	return w.Error()
}

// WriteConsolidated persists the canonical dataset. The header is written
// even when there are no records; an empty dataset still carries its shape.
func WriteConsolidated(records []models.CanonicalRecord, path string) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Fields())
	}
	return writeCSVWithBOM(path, models.CanonicalColumns, rows)
}

var validationColumns = []string{
	"arquivo", "ano", "trimestre", "status", "encoding",
	"linhas_raw", "colunas_raw", "linhas_normalizadas",
	"det_reg_ans_col", "det_cd_conta_contabil_col", "det_descricao_conta_col",
	"det_vl_saldo_inicial_col", "det_vl_saldo_final_col",
}

// WriteValidation persists the audit trail, one row per file examined.
func WriteValidation(audit []models.AuditEntry, path string) error {
	rows := make([][]string, 0, len(audit))
	for _, e := range audit {
		rows = append(rows, []string{
			e.Arquivo,
			strconv.Itoa(e.Ano),
			strconv.Itoa(e.Trimestre),
			e.Status,
			e.Encoding,
			intOrEmpty(e.LinhasRaw),
			intOrEmpty(e.ColunasRaw),
			intOrEmpty(e.LinhasNormalizadas),
			e.Detected.RegANS,
			e.Detected.CdContaContabil,
			e.Detected.DescricaoConta,
			e.Detected.VlSaldoInicial,
			e.Detected.VlSaldoFinal,
		})
	}
	return writeCSVWithBOM(path, validationColumns, rows)
}

func intOrEmpty(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
