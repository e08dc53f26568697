package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"golang.org/x/text/encoding/charmap"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestSniffDelimiter(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		expected rune
	}{
		{"semicolon", "REG_ANS;CD_CONTA;DESCRICAO\n1;2;3\n", ';'},
		{"comma", "a,b,c\n1,2,3\n", ','},
		{"tab", "a\tb\tc\n", '\t'},
		{"pipe", "a|b|c\n", '|'},
		{"no delimiter falls back to comma", "singlecolumn\nvalue\n", ','},
		{"leading blank line ignored", "\n\na;b;c\n", ';'},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SniffDelimiter(tc.text))
		})
	}
}

func TestReadDelimited_UTF8WithBOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("REG_ANS;DESCRIÇÃO\n123456;Saúde\n")...)
	path := writeTempFile(t, "bom.csv", content)

	table, encoding, err := ReadDelimited(path)
	assert.NoError(t, err)
	assert.Equal(t, "utf-8-sig", encoding)
	assert.Equal(t, []string{"REG_ANS", "DESCRIÇÃO"}, table.Columns)
	assert.Equal(t, [][]string{{"123456", "Saúde"}}, table.Rows)
}

func TestReadDelimited_Latin1Fallback(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("CÓDIGO;DESCRIÇÃO\n1;Assistência\n")
	assert.NoError(t, err)
	path := writeTempFile(t, "latin1.csv", []byte(encoded))

	table, encoding, err := ReadDelimited(path)
	assert.NoError(t, err)
	assert.Equal(t, "latin1", encoding)
	assert.Equal(t, []string{"CÓDIGO", "DESCRIÇÃO"}, table.Columns)
	assert.Equal(t, "Assistência", table.Rows[0][1])
}

func TestReadDelimited_PlainUTF8ReportsSigStrategy(t *testing.T) {
	// utf-8-sig is tried first and accepts BOM-less UTF-8 as well.
	path := writeTempFile(t, "plain.csv", []byte("a,b\n1,2\n"))

	table, encoding, err := ReadDelimited(path)
	assert.NoError(t, err)
	assert.Equal(t, "utf-8-sig", encoding)
	assert.Len(t, table.Rows, 1)
}

func TestReadDelimited_UnparseableFile(t *testing.T) {
	// Ragged rows fail the CSV parse under every encoding.
	path := writeTempFile(t, "ragged.csv", []byte("a;b;c\n1;2\n1;2;3;4;5\n\"unterminated\n"))

	_, _, err := ReadDelimited(path)
	assert.Error(t, err)
}

func TestReadDelimited_MissingFile(t *testing.T) {
	_, _, err := ReadDelimited(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestReadDelimited_HeaderOnly(t *testing.T) {
	path := writeTempFile(t, "header.csv", []byte("a;b;c\n"))

	table, _, err := ReadDelimited(path)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, table.Columns)
	assert.Empty(t, table.Rows)
}
