// Package consolidate discovers quarterly financial-statement archives,
// extracts them, normalizes every contained file onto the canonical schema
// and merges the results into one deduplicated dataset with an audit trail.
package consolidate

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ans-dados/ans-dados/internal/config"
	"github.com/ans-dados/ans-dados/internal/models"
)

// Archive names seen on the ANS FTP: 1T2024.zip, 4T2024.zip, 2T2025.zip.
var periodPattern = regexp.MustCompile(`(?i)([1-4])T(20\d{2})`)

// ParsePeriod derives the (year, quarter) identity from an archive's file
// name. Names without a recognizable period return false; the caller skips
// the archive, it is never defaulted.
func ParsePeriod(name string) (models.Period, bool) {
	m := periodPattern.FindStringSubmatch(name)
	if m == nil {
		return models.Period{}, false
	}

	trimestre, _ := strconv.Atoi(m[1])
	ano, _ := strconv.Atoi(m[2])
	return models.Period{Ano: ano, Trimestre: trimestre}, true
}

// Extraction is one unpacked archive: the directory its files landed in and
// the period its name carried.
type Extraction struct {
	Dir    string
	Period models.Period
}

// ExtractAll unpacks every recognizable ZIP under cfg.ZipsRoot into
// cfg.ExtractedRoot/<year>/<quarter>T. Archives whose name carries no period
// are logged and skipped. An empty return means there is nothing to
// consolidate; the caller decides whether that halts the run.
func ExtractAll(cfg *config.Config) ([]Extraction, error) {
	if _, err := os.Stat(cfg.ZipsRoot); err != nil {
		log.Printf("Archive folder not found: %s", cfg.ZipsRoot)
		return nil, nil
	}

	var zipPaths []string
	err := filepath.WalkDir(cfg.ZipsRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".zip") {
			zipPaths = append(zipPaths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", cfg.ZipsRoot, err)
	}
	sort.Strings(zipPaths)

	if len(zipPaths) == 0 {
		log.Printf("No ZIP archives found in: %s", cfg.ZipsRoot)
		return nil, nil
	}

	var extracted []Extraction
	for _, zipPath := range zipPaths {
		period, ok := ParsePeriod(filepath.Base(zipPath))
		if !ok {
			log.Printf("WARN: Skipping archive (no period in name): %s", filepath.Base(zipPath))
			continue
		}

		outDir := filepath.Join(cfg.ExtractedRoot, strconv.Itoa(period.Ano), fmt.Sprintf("%dT", period.Trimestre))
		log.Printf("Extracting %s -> %s", zipPath, outDir)
		if err := unzip(zipPath, outDir); err != nil {
			return nil, fmt.Errorf("failed to extract %s: %w", zipPath, err)
		}

		extracted = append(extracted, Extraction{Dir: outDir, Period: period})
	}

	return extracted, nil
}

func unzip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return err
	}

	for _, f := range r.File {
		target := filepath.Join(destDir, filepath.Clean(f.Name))
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes destination: %s", f.Name)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}

	return nil
}

func extractFile(f *zip.File, target string) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
