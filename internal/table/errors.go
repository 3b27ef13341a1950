package table

import (
	"errors"
	"fmt"
)

// ErrEmpty is returned when a table has no data rows
var ErrEmpty = errors.New("table has no data rows")

// ErrFormat is returned when a table can't be parsed as a numeric matrix
var ErrFormat = errors.New("malformed numeric table")

// ParseError describes where reading a table failed
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
