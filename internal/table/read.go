package table

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Read a table from given path. Files ending in .gz are decompressed on the fly.
func Read(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, &ParseError{Path: path, Err: err}
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return Table{}, &ParseError{Path: path, Err: err}
		}
		defer gz.Close()
		reader = gz
	}

	t, err := Parse(reader)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return Table{}, err
	}

	return t, nil
}

// Load reads the table at path and takes its first two columns as a series.
// An empty name is replaced by the file name without extensions.
func Load(path string, name string) (Series, error) {
	t, err := Read(path)
	if err != nil {
		return Series{}, err
	}

	if len(t.Columns) < 2 {
		return Series{}, &ParseError{
			Path: path,
			Err:  fmt.Errorf("%w: need at least 2 columns, got %d", ErrFormat, len(t.Columns)),
		}
	}

	if name == "" {
		name = NameFromPath(path)
	}

	return Series{
		Name: name,
		X:    t.Columns[0],
		Y:    t.Columns[1],
		Peak: t.Peaks[1],
	}, nil
}

// LoadAll loads every path concurrently. The result keeps the order of paths.
// name is called with the index and path of each file.
func LoadAll(ctx context.Context, paths []string, name func(i int, path string) string) ([]Series, error) {
	series := make([]Series, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := Load(path, name(i, path))
			if err != nil {
				return err
			}
			series[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return series, nil
}
