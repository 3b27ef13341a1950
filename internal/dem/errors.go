package dem

import (
	"errors"
	"fmt"
)

// ErrFormat is returned for grids that don't follow the ESRI ASCII layout
var ErrFormat = errors.New("malformed ESRI ASCII grid")

// ParseError tells which file and line of a grid couldn't be read
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	path := e.Path
	if path == "" {
		path = "<dem>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
