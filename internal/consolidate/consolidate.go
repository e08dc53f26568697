package consolidate

import (
	"io/fs"
	"log"
	"path/filepath"
	"sort"

	"github.com/ans-dados/ans-dados/internal/models"
	"github.com/ans-dados/ans-dados/internal/parser"
	"github.com/ans-dados/ans-dados/internal/schema"
	"github.com/ans-dados/ans-dados/pkg/checksum"
)

// Result pairs the consolidated dataset with its audit trail. The two are
// siblings: the audit log is produced even when the dataset ends up empty.
type Result struct {
	Records []models.CanonicalRecord
	Audit   []models.AuditEntry
}

// Consolidate runs every file of every extracted archive through the record
// reader and the schema normalizer, collecting canonical records and one
// audit entry per file. Per-file failures never abort the run: an unreadable
// file becomes a read_error entry, a file whose layout does not carry the
// required columns becomes skipped_not_matching_schema, and processing
// continues. Exact duplicate rows are removed at the end.
func Consolidate(extractions []Extraction) *Result {
	result := &Result{}

	for _, ext := range extractions {
		files, err := listFiles(ext.Dir)
		if err != nil {
			log.Printf("ERROR: Failed to list files in %s: %v", ext.Dir, err)
			continue
		}
		if len(files) == 0 {
			log.Printf("No files found in %s", ext.Dir)
			continue
		}

		for _, path := range files {
			result.consumeFile(path, ext.Period)
		}
	}

	result.Records = dedup(result.Records)
	return result
}

func (r *Result) consumeFile(path string, period models.Period) {
	table, encoding, err := parser.ReadDelimited(path)
	if err != nil {
		log.Printf("WARN: Failed to read file (encoding/delimiter): %s: %v", path, err)
		r.Audit = append(r.Audit, models.AuditEntry{
			Arquivo:   path,
			Ano:       period.Ano,
			Trimestre: period.Trimestre,
			Status:    models.StatusReadError,
		})
		return
	}

	detected := schema.DetectColumns(table.Columns)
	rawRows := len(table.Rows)
	rawCols := len(table.Columns)

	records, ok := schema.Normalize(table, period)
	if !ok {
		// Probably not a statements file: archives bundle data
		// dictionaries and the like alongside the real data.
		r.Audit = append(r.Audit, models.AuditEntry{
			Arquivo:    path,
			Ano:        period.Ano,
			Trimestre:  period.Trimestre,
			Status:     models.StatusSkippedSchema,
			Encoding:   encoding,
			LinhasRaw:  &rawRows,
			ColunasRaw: &rawCols,
			Detected:   detected,
		})
		return
	}

	normalized := len(records)
	log.Printf("OK: %s -> %d rows (%s)", filepath.Base(path), normalized, encoding)

	r.Records = append(r.Records, records...)
	r.Audit = append(r.Audit, models.AuditEntry{
		Arquivo:            path,
		Ano:                period.Ano,
		Trimestre:          period.Trimestre,
		Status:             models.StatusOK,
		Encoding:           encoding,
		LinhasRaw:          &rawRows,
		ColunasRaw:         &rawCols,
		LinhasNormalizadas: &normalized,
		Detected:           detected,
	})
}

// listFiles enumerates every regular file under dir, lexicographically, so
// re-runs visit files in a deterministic order.
func listFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// dedup removes exact duplicate rows, keeping first occurrence.
func dedup(records []models.CanonicalRecord) []models.CanonicalRecord {
	seen := make(map[string]struct{}, len(records))
	out := records[:0]
	for _, rec := range records {
		key := checksum.CalculateHash(rec.Fields())
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out
}
