package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/ans-dados/ans-dados/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// encodingStrategy is one attempt at decoding a source file's bytes into
// text. Strategies are tried in a fixed priority order; the first one whose
// decode and CSV parse both succeed wins.
type encodingStrategy struct {
	name   string
	decode func([]byte) (string, error)
}

// Priority order observed in ANS open-data publications: files arrive both
// BOM-prefixed and plain UTF-8, and older quarters in Latin-1.
var encodingStrategies = []encodingStrategy{
	{name: "utf-8-sig", decode: decodeUTF8Sig},
	{name: "utf-8", decode: decodeUTF8},
	{name: "latin1", decode: decodeLatin1},
}

func decodeUTF8Sig(data []byte) (string, error) {
	return decodeUTF8(bytes.TrimPrefix(data, utf8BOM))
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("invalid UTF-8 byte sequence")
	}
	return string(data), nil
}

func decodeLatin1(data []byte) (string, error) {
	return charmap.ISO8859_1.NewDecoder().String(string(data))
}

// SniffDelimiter picks the field delimiter by counting candidate characters
// on the first non-empty line. Semicolon, comma, tab and pipe all occur in
// the wild; comma is the fallback when nothing else appears.
func SniffDelimiter(text string) rune {
	line := ""
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			line = l
			break
		}
	}

	best := ','
	bestCount := 0
	for _, cand := range []rune{';', ',', '\t', '|'} {
		if n := strings.Count(line, string(cand)); n > bestCount {
			best = cand
			bestCount = n
		}
	}
	return best
}

// ReadDelimited loads one raw tabular file, trying each encoding strategy in
// order and auto-detecting the delimiter. Every cell stays an opaque string;
// no type coercion happens at this layer. Returns the parsed table and the
// name of the encoding that succeeded, or an error when every attempt fails.
func ReadDelimited(path string) (*models.RawTable, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var lastErr error
	for _, strat := range encodingStrategies {
		text, err := strat.decode(data)
		if err != nil {
			lastErr = err
			continue
		}

		table, err := parseDelimited(text)
		if err != nil {
			lastErr = err
			continue
		}

		return table, strat.name, nil
	}

	return nil, "", fmt.Errorf("failed to parse %s with any encoding: %w", path, lastErr)
}

func parseDelimited(text string) (*models.RawTable, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = SniffDelimiter(text)
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no rows")
	}

	return &models.RawTable{Columns: rows[0], Rows: rows[1:]}, nil
}
