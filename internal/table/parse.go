package table

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const maxLineLength = 1 << 20

// Parse reads a whitespace-delimited numeric table. Blank lines and lines
// starting with '#' are skipped. Every row must have the same number of fields.
func Parse(reader io.Reader) (Table, error) {

	var rows [][]float64
	width := 0
	lineNo := 0

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		// strip trailing comments
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		// the first data row defines the width of the table
		if width == 0 {
			width = len(fields)
		}

		row, err := parseDataLine(fields, width)
		if err != nil {
			return Table{}, &ParseError{Line: lineNo, Err: err}
		}

		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return Table{}, &ParseError{Line: lineNo, Err: err}
	}

	if len(rows) == 0 {
		return Table{}, &ParseError{Err: ErrEmpty}
	}

	t := Table{Columns: transpose(rows, width)}
	t.Peaks = make([]int, width)
	for c, column := range t.Columns {
		t.Peaks[c] = argmax(column)
	}

	return t, nil
}

func parseDataLine(fields []string, cols int) ([]float64, error) {
	if len(fields) != cols {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrFormat, cols, len(fields))
	}

	row := make([]float64, cols)
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field %d: %q is not a number", ErrFormat, i+1, field)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: field %d: %q is not finite", ErrFormat, i+1, field)
		}
		row[i] = f
	}

	return row, nil
}

func transpose(rows [][]float64, width int) [][]float64 {
	columns := make([][]float64, width)
	for c := range columns {
		columns[c] = make([]float64, len(rows))
		for r, row := range rows {
			columns[c][r] = row[c]
		}
	}
	return columns
}
