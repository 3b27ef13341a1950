package elevhist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gruppe-adler/meh-plots/internal/table"
)

func TestCoverage(t *testing.T) {
	s := table.Series{Name: "1", X: []float64{1, 2}, Y: []float64{2e6, 5e5}}

	got := Coverage(s)
	if got.Name != "1" || got.Y[0] != 2 || got.Y[1] != 0.5 {
		t.Errorf("unexpected coverage %+v", got)
	}
	if s.Y[0] != 2e6 {
		t.Error("Coverage must not modify the series")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	var inputs []string
	for i, content := range []string{
		"1.5e+00 1000000\n3e+00 4000000\n6e+00 2000000\n",
		"2e+00 500000\n4e+00 0\n8e+00 250000\n",
	} {
		path := filepath.Join(dir, []string{"a.txt", "b.txt"}[i])
		os.WriteFile(path, []byte(content), 0o644)
		inputs = append(inputs, path)
	}

	output := filepath.Join(dir, "elevhist.svg")
	err := Run(context.Background(), Options{Output: output, Inputs: inputs, Labels: []string{"Altis"}, Simplify: 0.01})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if info, err := os.Stat(output); err != nil || info.Size() == 0 {
		t.Errorf("expected %s to be written: %v", output, err)
	}
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := Run(context.Background(), Options{
		Output: filepath.Join(dir, "out.png"),
		Inputs: []string{filepath.Join(dir, "missing.txt")},
	})
	if err == nil {
		t.Error("expected error for missing input")
	}
}
