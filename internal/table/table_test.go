package table

import (
	"compress/gzip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestParseTransposes(t *testing.T) {
	tbl, err := Parse(strings.NewReader("1 10 100\n2 20 200\n4 15 150\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := [][]float64{{1, 2, 4}, {10, 20, 15}, {100, 200, 150}}
	if !reflect.DeepEqual(tbl.Columns, want) {
		t.Errorf("expected columns %v, got %v", want, tbl.Columns)
	}
	for c, column := range tbl.Columns {
		if len(column) != 3 {
			t.Errorf("column %d: expected 3 rows, got %d", c, len(column))
		}
	}
}

func TestParseSkipsBlankAndComments(t *testing.T) {
	input := "# elevation coverage\n\n1\t10\n  2   20  # inline\n\n"
	tbl, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !reflect.DeepEqual(tbl.Columns, [][]float64{{1, 2}, {10, 20}}) {
		t.Errorf("unexpected columns %v", tbl.Columns)
	}
}

func TestParsePeak(t *testing.T) {
	tests := []struct {
		input string
		peak  int
	}{
		{"5\n", 0},
		{"1\n3\n2\n", 1},
		{"1\n3\n3\n2\n", 1},
		{"7\n7\n7\n", 0},
		{"-3\n-1\n-2\n", 1},
		{"1 99\n2 0\n", 1},
		{"2 99\n1 0\n", 0},
	}

	for _, tt := range tests {
		tbl, err := Parse(strings.NewReader(tt.input))
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.input, err)
		}
		peak := tbl.Peaks[0]
		if peak != tt.peak {
			t.Errorf("Parse(%q): expected peak %d, got %d", tt.input, tt.peak, peak)
		}

		// no row may exceed the peak and no earlier row may equal it
		col := tbl.Columns[0]
		for i, v := range col {
			if v > col[peak] || (i < peak && v == col[peak]) {
				t.Errorf("Parse(%q): row %d contradicts peak %d", tt.input, i, peak)
			}
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		line  int
	}{
		{"empty", "", ErrEmpty, 0},
		{"only comments", "# nothing\n\n", ErrEmpty, 0},
		{"not numeric", "1 2\n3 abc\n", ErrFormat, 2},
		{"ragged", "1 2\n3\n", ErrFormat, 2},
		{"too wide", "1 2\n3 4 5\n", ErrFormat, 2},
		{"nan", "1 nan\n2 5\n", ErrFormat, 1},
		{"inf", "1 2\n2 5\n3 -Inf\n", ErrFormat, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if perr.Line != tt.line {
				t.Errorf("expected line %d, got %d", tt.line, perr.Line)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "data.txt", "1 10\n2 20\n4 15")

	s, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.Name != "data" {
		t.Errorf("expected name 'data', got %q", s.Name)
	}
	if !reflect.DeepEqual(s.X, []float64{1, 2, 4}) {
		t.Errorf("unexpected x %v", s.X)
	}
	if !reflect.DeepEqual(s.Y, []float64{10, 20, 15}) {
		t.Errorf("unexpected y %v", s.Y)
	}
	if s.Peak != 1 {
		t.Errorf("expected peak at row 1 (value 20), got %d", s.Peak)
	}

	b := s.Bound()
	if b.Min[0] != 1 || b.Max[0] != 4 || b.Min[1] != 10 || b.Max[1] != 20 {
		t.Errorf("unexpected bound %v", b)
	}
}

func TestLoadPeakTies(t *testing.T) {
	path := writeFile(t, "data.txt", "1 5\n2 9\n3 9\n4 1")

	s, err := Load(path, "x")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Peak != 1 {
		t.Errorf("expected first of the tied rows, got %d", s.Peak)
	}
	if s.Name != "x" {
		t.Errorf("expected name 'x', got %q", s.Name)
	}
}

func TestLoadGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grad.txt.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	gz.Write([]byte("1 2\n3 4\n"))
	gz.Close()
	f.Close()

	s, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Name != "grad" || !reflect.DeepEqual(s.Y, []float64{2, 4}) {
		t.Errorf("unexpected series %+v", s)
	}
}

func TestLoadFailures(t *testing.T) {
	single := writeFile(t, "single.txt", "1\n2\n")
	if _, err := Load(single, ""); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat for single column, got %v", err)
	}

	empty := writeFile(t, "empty.txt", "")
	_, err := Load(empty, "")
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), empty) {
		t.Errorf("expected error to name %s, got %v", empty, err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt"), ""); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadAllKeepsOrder(t *testing.T) {
	var paths []string
	for i := 0; i < 8; i++ {
		v := strconv.Itoa(i)
		paths = append(paths, writeFile(t, "s"+v+".txt", "1 "+v+"\n2 "+v+"\n"))
	}

	series, err := LoadAll(context.Background(), paths, func(i int, _ string) string {
		return strconv.Itoa(i + 1)
	})
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	for i, s := range series {
		if s.Name != strconv.Itoa(i+1) {
			t.Errorf("series %d: expected name %d, got %q", i, i+1, s.Name)
		}
		if s.Y[0] != float64(i) {
			t.Errorf("series %d: expected y %d, got %v", i, i, s.Y[0])
		}
	}
}

func TestLoadAllFails(t *testing.T) {
	good := writeFile(t, "good.txt", "1 2\n")
	bad := writeFile(t, "bad.txt", "1 x\n")

	_, err := LoadAll(context.Background(), []string{good, bad}, func(int, string) string { return "" })
	if !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestNameFromPath(t *testing.T) {
	tests := map[string]string{
		"grad.txt":          "grad",
		"/a/b/elev.hist.gz": "elev",
		"plain":             "plain",
	}
	for in, want := range tests {
		if got := NameFromPath(in); got != want {
			t.Errorf("NameFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}
