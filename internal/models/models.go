package models

import "fmt"

// Period identifies the quarter a financial-statement archive refers to.
// It is derived from the archive's file name and never defaulted.
type Period struct {
	Ano       int
	Trimestre int
}

func (p Period) String() string {
	return fmt.Sprintf("%dT%d", p.Trimestre, p.Ano)
}

// RawTable is one source file as parsed: column names exactly as found
// (case, accents and whitespace untouched) and string-typed cells. It only
// lives while a single file is being processed.
type RawTable struct {
	Columns []string
	Rows    [][]string
}

// CanonicalColumns is the exact header of the consolidated dataset.
var CanonicalColumns = []string{
	"ano",
	"trimestre",
	"reg_ans",
	"cd_conta_contabil",
	"descricao_conta",
	"vl_saldo_inicial",
	"vl_saldo_final",
}

// CanonicalRecord is one normalized row of the consolidated dataset.
// Nullable fields use the empty string as null; a record only exists when
// both CdContaContabil and DescricaoConta resolved in the source file.
type CanonicalRecord struct {
	Ano             string
	Trimestre       string
	RegANS          string
	CdContaContabil string
	DescricaoConta  string
	VlSaldoInicial  string
	VlSaldoFinal    string
}

// Fields returns the record's values in CanonicalColumns order.
func (r CanonicalRecord) Fields() []string {
	return []string{r.Ano, r.Trimestre, r.RegANS, r.CdContaContabil, r.DescricaoConta, r.VlSaldoInicial, r.VlSaldoFinal}
}

// Audit statuses, one per source file examined.
const (
	StatusOK            = "ok"
	StatusReadError     = "read_error"
	StatusSkippedSchema = "skipped_not_matching_schema"
)

// DetectedColumns records which original column name resolved for each of the
// five target roles, for audit visibility. Empty string means unresolved.
type DetectedColumns struct {
	RegANS          string
	CdContaContabil string
	DescricaoConta  string
	VlSaldoInicial  string
	VlSaldoFinal    string
}

// AuditEntry is the immutable per-file audit record produced during
// consolidation. Count fields are nil when the file could not be read
// (or, for LinhasNormalizadas, when the schema did not match).
type AuditEntry struct {
	Arquivo            string
	Ano                int
	Trimestre          int
	Status             string
	Encoding           string
	LinhasRaw          *int
	ColunasRaw         *int
	LinhasNormalizadas *int
	Detected           DetectedColumns
}

// DerivedRow extends a CanonicalRecord with the parsed closing balance and
// the de-accumulated per-period value. Computed downstream, never persisted
// as part of the canonical dataset.
type DerivedRow struct {
	RegANS         string
	Ano            int
	Trimestre      int
	DescricaoConta string
	SaldoFinalNum  float64
	ValorReal      float64
}

// Operator is one row of the CADOP registry of active health-plan operators.
type Operator struct {
	RegistroANS  string `json:"registro_ans"`
	CNPJ         string `json:"cnpj"`
	RazaoSocial  string `json:"razao_social"`
	NomeFantasia string `json:"nome_fantasia"`
	Modalidade   string `json:"modalidade"`
}

// RankingEntry is one leaderboard line: an operator's summed period value,
// with the registry name attached when the join resolved it.
type RankingEntry struct {
	RegANS      string  `json:"reg_ans"`
	RazaoSocial string  `json:"razao_social"`
	ValorReal   float64 `json:"valor_real"`
}
