package grad

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gruppe-adler/meh-plots/internal/fit"
	"github.com/gruppe-adler/meh-plots/internal/table"
)

func writeTripled(t *testing.T, dir string) string {
	t.Helper()
	var b strings.Builder
	for x := 1; x <= 100; x++ {
		fmt.Fprintf(&b, "%d %d\n", x, 3*x)
	}
	path := filepath.Join(dir, "tripled.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFitTripled(t *testing.T) {
	series, err := table.Load(writeTripled(t, t.TempDir()), "")
	if err != nil {
		t.Fatal(err)
	}

	models, err := Fit(series, Options{})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if len(models) != 3 {
		t.Fatalf("expected 3 models, got %d", len(models))
	}

	ratio, ok := models[0].(*fit.Ratio)
	if !ok {
		t.Fatalf("expected the ratio model first, got %T", models[0])
	}
	if math.Abs(ratio.A-1.0/3) > 1e-9 {
		t.Errorf("expected a = 1/3, got %g", ratio.A)
	}

	residual := 0.0
	for i := range series.X {
		residual += math.Abs(ratio.Eval(series.X[i]) - series.Y[i])
	}
	if residual > 1e-9 {
		t.Errorf("expected near-zero residual, got %g", residual)
	}

	names := []string{"Pure exp", "Model 1", "Model 2"}
	for i, m := range models {
		if m.Name() != names[i] {
			t.Errorf("model %d: expected %q, got %q", i, names[i], m.Name())
		}
	}
}

func TestFitWithPolynomial(t *testing.T) {
	series, err := table.Load(writeTripled(t, t.TempDir()), "")
	if err != nil {
		t.Fatal(err)
	}

	models, err := Fit(series, Options{PolyDegree: 1})
	if err != nil {
		t.Fatalf("Fit failed: %v", err)
	}
	if len(models) != 4 {
		t.Fatalf("expected 4 models, got %d", len(models))
	}
	if v := models[3].Eval(50); math.Abs(v-150) > 1e-6 {
		t.Errorf("expected polynomial to pass through (50, 150), got %g", v)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := writeTripled(t, dir)
	output := filepath.Join(dir, "grad.png")

	if err := Run(context.Background(), Options{Input: input, Output: output, Preview: true}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, path := range []string{output, filepath.Join(dir, "grad_128.png")} {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Errorf("expected %s to be written: %v", path, err)
		}
	}
}

func TestRunBadInput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "grad.svg")

	for name, content := range map[string]string{"empty": "", "text": "elevation gradient\nlow steep\n"} {
		input := filepath.Join(dir, name+".txt")
		os.WriteFile(input, []byte(content), 0o644)

		err := Run(context.Background(), Options{Input: input, Output: output})

		var perr *table.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("%s: expected a parse error, got %v", name, err)
		}
	}

	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Errorf("expected no plot to be written, got %v", err)
	}
}

func TestRunBadOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeTripled(t, dir)

	if err := Run(context.Background(), Options{Input: input, Output: filepath.Join(dir, "grad.bmp")}); err == nil {
		t.Error("expected error for unsupported format")
	}
	if err := Run(context.Background(), Options{Input: input, Output: filepath.Join(dir, "grad.svg"), Preview: true}); err == nil {
		t.Error("expected error for previews of an SVG")
	}
}
