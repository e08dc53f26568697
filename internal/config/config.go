package config

import (
	"os"
	"path/filepath"
)

// Config carries every path and knob the pipeline and the API need. All
// fields have working defaults under DataDir so tests can redirect the whole
// run by pointing at a temp directory; nothing reads module-level globals.
type Config struct {
	// DataDir is the root for raw inputs and interim outputs.
	DataDir string

	// ZipsRoot holds the downloaded financial-statement archives.
	ZipsRoot string
	// ExtractedRoot receives the unpacked archive contents, one
	// subdirectory per (year, quarter).
	ExtractedRoot string

	// CadopCSVPath is the CADOP registry of active operators.
	CadopCSVPath string

	// OutConsolidated is the canonical 7-column consolidated dataset.
	OutConsolidated string
	// OutValidation is the per-file audit trail.
	OutValidation string
	// OutNormalized is the enriched dataset the analytics endpoint reads.
	OutNormalized string

	// APIPort is the listen port for the read API.
	APIPort string
}

// New builds a Config from the environment with documented defaults.
func New() *Config {
	dataDir := getEnv("ANS_DATA_DIR", "data")
	rawDir := filepath.Join(dataDir, "raw")
	interimDir := filepath.Join(dataDir, "interim")

	return &Config{
		DataDir:         dataDir,
		ZipsRoot:        getEnv("ANS_ZIPS_ROOT", filepath.Join(rawDir, "demonstracoes_contabeis")),
		ExtractedRoot:   getEnv("ANS_EXTRACTED_ROOT", filepath.Join(rawDir, "demonstracoes_contabeis_extracted")),
		CadopCSVPath:    getEnv("CADOP_CSV_PATH", filepath.Join(rawDir, "operadoras_ativas", "relatorio_cadop.csv")),
		OutConsolidated: getEnv("ANS_OUT_CONSOLIDATED", filepath.Join(interimDir, "demonstracoes_contabeis_consolidado.csv")),
		OutValidation:   getEnv("ANS_OUT_VALIDATION", filepath.Join(interimDir, "validacao_demonstracoes_contabeis.csv")),
		OutNormalized:   getEnv("ANS_OUT_NORMALIZED", filepath.Join(interimDir, "demo_consolidado_normalized.csv")),
		APIPort:         getEnv("API_PORT", "8080"),
	}
}

// NewAt builds a Config rooted at dir, with no environment lookups. Intended
// for tests that redirect all I/O.
func NewAt(dir string) *Config {
	rawDir := filepath.Join(dir, "raw")
	interimDir := filepath.Join(dir, "interim")

	return &Config{
		DataDir:         dir,
		ZipsRoot:        filepath.Join(rawDir, "demonstracoes_contabeis"),
		ExtractedRoot:   filepath.Join(rawDir, "demonstracoes_contabeis_extracted"),
		CadopCSVPath:    filepath.Join(rawDir, "operadoras_ativas", "relatorio_cadop.csv"),
		OutConsolidated: filepath.Join(interimDir, "demonstracoes_contabeis_consolidado.csv"),
		OutValidation:   filepath.Join(interimDir, "validacao_demonstracoes_contabeis.csv"),
		OutNormalized:   filepath.Join(interimDir, "demo_consolidado_normalized.csv"),
		APIPort:         "8080",
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
