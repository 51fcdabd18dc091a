// Package importer resolves character sets for atlas generation. A
// charset comes from a builtin name, a plain text file, or a CSV/Excel
// token list with automatic delimiter detection.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of a charset import operation.
type ImportResult struct {
	Runes    []rune
	Errors   []string
	Warnings []string
}

// Ok reports whether the import produced a usable charset.
func (r ImportResult) Ok() bool {
	return len(r.Errors) == 0 && len(r.Runes) > 0
}

// Builtin returns a named builtin charset, or nil if the name is
// unknown.
func Builtin(name string) []rune {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ascii":
		return runeRange(0x20, 0x7E)
	case "latin-1", "latin1":
		return append(runeRange(0x20, 0x7E), runeRange(0xA0, 0xFF)...)
	case "digits":
		return runeRange('0', '9')
	default:
		return nil
	}
}

// BuiltinNames lists the builtin charset names accepted by Builtin.
func BuiltinNames() []string {
	return []string{"ascii", "latin-1", "digits"}
}

// Resolve turns a charset setting into a rune list. Builtin names are
// tried first; anything else is treated as a file path and dispatched
// on extension (.csv, .xlsx/.xls, or plain text).
func Resolve(charset string) ImportResult {
	if runes := Builtin(charset); runes != nil {
		return ImportResult{Runes: runes}
	}

	switch strings.ToLower(filepath.Ext(charset)) {
	case ".csv":
		return ImportCSV(charset)
	case ".xlsx", ".xls":
		return ImportExcel(charset)
	default:
		return ImportText(charset)
	}
}

// ParseToken converts one charset token to a rune span. Accepted forms:
// a literal character, "U+XXXX", "0xNN", a decimal codepoint, or a
// range of any of those joined with "-" (e.g. "U+0020-U+007E").
func ParseToken(token string) ([]rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}

	// A lone "-" is the hyphen character, not an empty range.
	if utf8.RuneCountInString(token) == 1 {
		r, _ := utf8.DecodeRuneInString(token)
		return []rune{r}, nil
	}

	if lo, hi, ok := splitRange(token); ok {
		start, err := parseCodepoint(lo)
		if err != nil {
			return nil, fmt.Errorf("range start %q: %w", lo, err)
		}
		end, err := parseCodepoint(hi)
		if err != nil {
			return nil, fmt.Errorf("range end %q: %w", hi, err)
		}
		if end < start {
			return nil, fmt.Errorf("range %q is reversed", token)
		}
		return runeRange(start, end), nil
	}

	r, err := parseCodepoint(token)
	if err != nil {
		return nil, err
	}
	return []rune{r}, nil
}

// splitRange splits "A-B" on the separating hyphen. Both sides must be
// valid endpoints, so "U+2010-U+2015" splits between the codepoints and
// not inside one.
func splitRange(token string) (lo, hi string, ok bool) {
	for i := 1; i < len(token)-1; i++ {
		if token[i] != '-' {
			continue
		}
		left, right := token[:i], token[i+1:]
		if isRangeEndpoint(left) && isRangeEndpoint(right) {
			return left, right, true
		}
	}
	return "", "", false
}

// isRangeEndpoint accepts a codepoint spelling or a single literal
// character, so both "U+0041-U+005A" and "a-z" are ranges.
func isRangeEndpoint(s string) bool {
	return isCodepointToken(s) || utf8.RuneCountInString(s) == 1
}

// isCodepointToken reports whether s looks like a numeric codepoint
// spelling rather than a literal character.
func isCodepointToken(s string) bool {
	s = strings.ToLower(s)
	if strings.HasPrefix(s, "u+") || strings.HasPrefix(s, "0x") {
		return len(s) > 2
	}
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// parseCodepoint parses a single codepoint token: "U+XXXX", "0xNN", a
// decimal number, or a literal character.
func parseCodepoint(s string) (rune, error) {
	lower := strings.ToLower(s)
	var (
		v   uint64
		err error
	)
	switch {
	case strings.HasPrefix(lower, "u+"):
		v, err = strconv.ParseUint(lower[2:], 16, 32)
	case strings.HasPrefix(lower, "0x"):
		v, err = strconv.ParseUint(lower[2:], 16, 32)
	case isCodepointToken(s):
		v, err = strconv.ParseUint(s, 10, 32)
	default:
		if utf8.RuneCountInString(s) == 1 {
			r, _ := utf8.DecodeRuneInString(s)
			return r, nil
		}
		return 0, fmt.Errorf("not a codepoint")
	}
	if err != nil {
		return 0, fmt.Errorf("not a codepoint")
	}
	if v > 0x10FFFF {
		return 0, fmt.Errorf("codepoint out of range")
	}
	return rune(v), nil
}

// DetectCSVDelimiter reads the file content and determines the most
// likely CSV delimiter. It tries comma, semicolon, tab, and pipe; the
// delimiter producing the most consistent multi-column rows wins, with
// comma as the fallback for single-column token lists.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// ImportCSV imports charset tokens from a CSV file. Every cell is one
// token; the delimiter is detected automatically.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	return importCSVData(bytes.NewReader(data), delimiter, result.Warnings)
}

// ImportCSVFromReader imports charset tokens from a CSV reader with a
// known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	return importCSVData(reader, delimiter, nil)
}

func importCSVData(reader io.Reader, delimiter rune, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportExcel imports charset tokens from an Excel (.xlsx, .xls) file.
// Every cell of the first sheet is one token.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// ImportText imports a charset from a plain text file: every rune in
// the file except line breaks becomes part of the charset.
func ImportText(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	var runes []rune
	for _, r := range string(data) {
		if r == '\n' || r == '\r' {
			continue
		}
		if r == utf8.RuneError {
			result.Errors = append(result.Errors, "File is not valid UTF-8")
			return result
		}
		runes = append(runes, r)
	}

	if len(runes) == 0 {
		result.Errors = append(result.Errors, "File contains no characters")
		return result
	}

	result.Runes = Dedup(runes)
	return result
}

// importFromRows is the shared token parsing for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	var runes []rune
	for i, row := range rows {
		for _, cell := range row {
			token := strings.TrimSpace(cell)
			if token == "" {
				continue
			}
			span, err := ParseToken(token)
			if err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s %d: Skipped token %q: %v", rowPrefix, i+1, token, err))
				continue
			}
			runes = append(runes, span...)
		}
	}

	if len(runes) == 0 {
		result.Errors = append(result.Errors, "No charset tokens found")
		return result
	}

	result.Runes = Dedup(runes)
	return result
}

// Dedup sorts the runes and removes duplicates.
func Dedup(runes []rune) []rune {
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	out := runes[:0]
	var prev rune = -1
	for _, r := range runes {
		if r != prev {
			out = append(out, r)
			prev = r
		}
	}
	return out
}

func runeRange(lo, hi rune) []rune {
	runes := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		runes = append(runes, r)
	}
	return runes
}
