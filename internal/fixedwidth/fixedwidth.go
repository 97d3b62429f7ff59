package fixedwidth

import (
	"strconv"
	"strings"
)

// Kind declares the type a field of a fixed-width record has to convert to
type Kind int

const (
	// KindString declares a plain string field
	KindString Kind = iota
	// KindInt declares a field that has to parse as a base-10 integer
	KindInt
	// KindFloat declares a field that has to parse as a floating point number
	KindFloat
)

// Field describes a single column-sliced field of a fixed-width record.
// Start and End span a half-open [Start, End) interval of 0-based character columns.
type Field struct {
	Name     string
	Start    int
	End      int
	Kind     Kind
	Required bool
}

// Layout describes the full column layout of a fixed-width feed
type Layout []Field

// Row represents a single successfully decoded record.
// All values are whitespace-trimmed; fields declared as KindInt or KindFloat
// are guaranteed to convert via the Int and Float accessors.
type Row map[string]string

// String returns the trimmed raw value of a field
func (row Row) String(name string) string {
	return row[name]
}

// Int returns the integer value of a field declared as KindInt
func (row Row) Int(name string) int {
	val, _ := strconv.Atoi(row[name])
	return val
}

// Float returns the floating point value of a field declared as KindFloat
func (row Row) Float(name string) float64 {
	val, _ := strconv.ParseFloat(row[name], 64)
	return val
}

// Parse decodes every non-blank line of the given text into a Row.
// Decoding is fail-soft on the row level: a line whose fields do not satisfy the
// layout (unparsable number, missing required value) is dropped without aborting
// the whole parse. The amount of dropped lines is returned alongside the rows.
func (layout Layout) Parse(text string) ([]Row, int) {
	lines := strings.Split(text, "\n")
	rows := make([]Row, 0, len(lines))
	skipped := 0

	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		row, ok := layout.parseLine(line)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	return rows, skipped
}

func (layout Layout) parseLine(line string) (Row, bool) {
	row := make(Row, len(layout))
	for _, field := range layout {
		row[field.Name] = strings.TrimSpace(slice(line, field.Start, field.End))
	}

	for _, field := range layout {
		val := row[field.Name]
		switch field.Kind {
		case KindInt:
			if _, err := strconv.Atoi(val); err != nil {
				return nil, false
			}
		case KindFloat:
			if _, err := strconv.ParseFloat(val, 64); err != nil {
				return nil, false
			}
		default:
			if field.Required && val == "" {
				return nil, false
			}
		}
	}
	return row, true
}

// slice extracts [start, end) of a line, tolerating lines shorter than the layout
func slice(line string, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return line[start:end]
}
