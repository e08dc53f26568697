// Package registry loads the CADOP registry of active health-plan
// operators. The published file is rough: a title line before the header,
// Latin-1 text, inconsistent delimiters and stray double quotes.
package registry

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/ans-dados/ans-dados/internal/models"
	"github.com/ans-dados/ans-dados/internal/parser"
)

// Load reads the registry file at path. The first line is discarded as a
// title row, the delimiter is sniffed, headers are trimmed, uppercased and
// stripped of stray quotes, and the semantic columns are resolved by
// substring. Registration number and corporate name are required; the other
// columns stay empty when absent.
func Load(path string) ([]models.Operator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file %s: %w", path, err)
	}

	text, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode registry file %s: %w", path, err)
	}

	// Drop the title row before the header.
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = parser.SniffDelimiter(text)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse registry file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("registry file %s has no header row", path)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToUpper(cleanField(h))
	}

	regCol := findColumn(headers, "REGISTRO", "ANS")
	razaoCol := findColumn(headers, "RAZ", "SOCIAL")
	if regCol < 0 || razaoCol < 0 {
		return nil, fmt.Errorf("registry file %s is missing required columns (headers: %v)", path, headers)
	}

	cnpjCol := findColumn(headers, "CNPJ")
	fantasiaCol := findColumn(headers, "FANTASIA")
	modalidadeCol := findColumn(headers, "MODALIDADE")

	operators := make([]models.Operator, 0, len(rows)-1)
	for _, row := range rows[1:] {
		get := func(col int) string {
			if col < 0 || col >= len(row) {
				return ""
			}
			return cleanField(row[col])
		}

		op := models.Operator{
			RegistroANS:  get(regCol),
			CNPJ:         get(cnpjCol),
			RazaoSocial:  get(razaoCol),
			NomeFantasia: get(fantasiaCol),
			Modalidade:   get(modalidadeCol),
		}
		if op.RegistroANS == "" && op.RazaoSocial == "" {
			continue
		}
		operators = append(operators, op)
	}

	return operators, nil
}

// decode prefers UTF-8 when the bytes are valid, otherwise falls back to
// Latin-1, the encoding the registry has historically shipped in.
func decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return strings.TrimPrefix(string(data), "\ufeff"), nil
	}
	return charmap.ISO8859_1.NewDecoder().String(string(data))
}

// cleanField drops the stray double quotes malformed exports leave behind.
func cleanField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}

// findColumn returns the index of the first header containing every needle,
// or -1.
func findColumn(headers []string, needles ...string) int {
	for i, h := range headers {
		all := true
		for _, n := range needles {
			if !strings.Contains(h, n) {
				all = false
				break
			}
		}
		if all {
			return i
		}
	}
	return -1
}
