// Package schema maps the inconsistent column layouts of quarterly
// financial-statement files onto the canonical consolidated schema.
package schema

import (
	"strings"

	"github.com/ans-dados/ans-dados/internal/models"
	"github.com/ans-dados/ans-dados/internal/textnorm"
)

// Role names one of the five semantic columns of the target schema.
type Role string

const (
	RoleRegANS          Role = "reg_ans"
	RoleCdContaContabil Role = "cd_conta_contabil"
	RoleDescricaoConta  Role = "descricao_conta"
	RoleVlSaldoInicial  Role = "vl_saldo_inicial"
	RoleVlSaldoFinal    Role = "vl_saldo_final"
)

// roleCandidates lists, per role, the normalized substrings a column name
// may contain. Source layouts rename the same logical field repeatedly
// ("CD_CONTA", "codigo conta", "conta contábil"), so matching is substring
// based on purpose. Candidate order is the tie-breaker.
var roleCandidates = map[Role][]string{
	RoleRegANS:          {"registro ans", "reg ans", "registroans", "cod operadora", "codigo operadora", "operadora", "regans"},
	RoleCdContaContabil: {"cd conta", "codigo conta", "conta contabil", "cod conta", "cdconta"},
	RoleDescricaoConta:  {"descricao conta", "descricao", "ds conta", "nome conta"},
	RoleVlSaldoInicial:  {"saldo inicial", "vl saldo inicial", "valor saldo inicial", "vlsaldoinicial"},
	RoleVlSaldoFinal:    {"saldo final", "vl saldo final", "valor saldo final", "vlsaldofinal"},
}

// PickColumn resolves a role against the raw column names of a source file.
// It returns the original (unnormalized) name of the first column whose
// normalized name contains one of the role's candidate substrings; candidate
// list order outranks column order. Returns ("", false) when nothing
// matches; a missing column is never fabricated.
func PickColumn(role Role, columns []string) (string, bool) {
	normalized := make([]string, len(columns))
	for i, c := range columns {
		normalized[i] = textnorm.ColumnName(c)
	}

	for _, cand := range roleCandidates[role] {
		for i, norm := range normalized {
			if strings.Contains(norm, cand) {
				return columns[i], true
			}
		}
	}
	return "", false
}

// DetectColumns resolves all five roles against a table's columns, for the
// audit trail. Unresolved roles come back as empty strings.
func DetectColumns(columns []string) models.DetectedColumns {
	pick := func(role Role) string {
		name, _ := PickColumn(role, columns)
		return name
	}
	return models.DetectedColumns{
		RegANS:          pick(RoleRegANS),
		CdContaContabil: pick(RoleCdContaContabil),
		DescricaoConta:  pick(RoleDescricaoConta),
		VlSaldoInicial:  pick(RoleVlSaldoInicial),
		VlSaldoFinal:    pick(RoleVlSaldoFinal),
	}
}
