// Package escape implements the escape room stages: a formatting fix, a
// number printer and a CSV to JSON converter, plus rendering of the saved run.
package escape

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rpggio/courtroom/internal/parseint"
)

const (
	// RawSnippet is the badly formatted snippet shown in the format stage.
	RawSnippet = "Const myVAR =   5 ;\nconsole . log ( myVAR )"
	// FixedSnippet is the snippet after the format stage.
	FixedSnippet = "const myVar = 5;\nconsole.log(myVar)"

	// DefaultLimit is used when the number stage input is not a non-negative integer.
	DefaultLimit = 1000
	// MaxLimit is the largest n the number stage prints.
	MaxLimit = 100000
)

// ErrLimitTooLarge indicates a number stage input above MaxLimit.
var ErrLimitTooLarge = errors.New("limit too large")

// FormatFix returns the fixed snippet.
func FormatFix() string {
	return FixedSnippet
}

// PrintNumbers renders 0..n separated by spaces, where n is the integer prefix
// of input. Invalid or negative input falls back to DefaultLimit. It returns
// the output and the limit used, or ErrLimitTooLarge above MaxLimit.
func PrintNumbers(input string) (string, int, error) {
	limit, ok := parseint.Leading(input)
	if !ok || limit < 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		return "", 0, fmt.Errorf("%w: %d exceeds %d", ErrLimitTooLarge, limit, MaxLimit)
	}

	var b strings.Builder
	for i := 0; i <= limit; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(i))
	}
	return b.String(), limit, nil
}

var lineBreak = regexp.MustCompile(`\r?\n`)

// CSVToJSON converts a header line plus rows of comma separated values into
// an indented JSON array of objects. Cells are trimmed and missing cells are
// empty strings. Fewer than two non-empty lines yield an empty array.
func CSVToJSON(text string) (string, int, error) {
	var lines []string
	for _, line := range lineBreak.Split(text, -1) {
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return "[]", 0, nil
	}

	headers := splitTrim(lines[0])
	rows := make([]orderedRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		vals := splitTrim(line)
		row := orderedRow{keys: headers, values: make(map[string]string, len(headers))}
		for i, h := range headers {
			if i < len(vals) {
				row.values[h] = vals[i]
			} else {
				row.values[h] = ""
			}
		}
		rows = append(rows, row)
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "[]", 0, err
	}
	return string(data), len(rows), nil
}

func splitTrim(line string) []string {
	parts := strings.Split(line, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// orderedRow marshals as a JSON object keeping header order.
type orderedRow struct {
	keys   []string
	values map[string]string
}

func (r orderedRow) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	seen := make(map[string]bool, len(r.keys))
	first := true
	for _, k := range r.keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		if !first {
			b.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}
