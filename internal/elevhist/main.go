package elevhist

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gruppe-adler/meh-plots/internal/preview"
	"github.com/gruppe-adler/meh-plots/internal/render"
	"github.com/gruppe-adler/meh-plots/internal/table"
	"github.com/gruppe-adler/meh-plots/internal/validate"
	"github.com/spf13/cobra"
)

// squareMetersPerSquareKilometer converts the coverage column to km²/m
const squareMetersPerSquareKilometer = 1e6

// Options of an elevation histogram run
type Options struct {
	Output string
	Inputs []string

	// Labels name the inputs in order. Unnamed inputs are numbered from 1.
	Labels   []string
	Simplify float64
	Preview  bool
}

// Command builds the elevhist subcommand
func Command() *cobra.Command {
	opts := Options{}

	cmd := &cobra.Command{
		Use:   "elevhist OUTPUT INPUT [INPUT...]",
		Short: "Plot elevation histograms (coverage per elevation).",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Output = args[0]
			opts.Inputs = args[1:]
			return Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Labels, "label", nil, "Legend labels of the inputs, in order")
	cmd.Flags().Float64Var(&opts.Simplify, "simplify", 0, "Douglas-Peucker tolerance as a fraction of the plot extent (0 keeps all points)")
	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "Also write downscaled copies of a PNG plot")

	return cmd
}

// Run is the elevhist subcommand's entrypoint
func Run(ctx context.Context, opts Options) error {
	var timer time.Time
	start := time.Now()

	if err := validate.Output(opts.Output); err != nil {
		return err
	}
	if opts.Preview {
		if err := validate.Preview(opts.Output); err != nil {
			return err
		}
	}
	if err := validate.Inputs(opts.Inputs); err != nil {
		return err
	}
	fmt.Println("✔️  Validated input and output paths")

	// load histograms
	timer = time.Now()
	fmt.Println("▶️  Loading histograms")
	series, err := table.LoadAll(ctx, opts.Inputs, func(i int, _ string) string {
		if i < len(opts.Labels) {
			return opts.Labels[i]
		}
		return strconv.Itoa(i + 1)
	})
	if err != nil {
		return err
	}
	fmt.Println("✔️  Loaded", len(series), "histograms in", time.Since(timer).String())

	// plot
	timer = time.Now()
	fmt.Println("▶️  Plotting histograms")
	canvas := render.New(Config(opts.Simplify))
	for _, s := range series {
		b := s.Bound()
		fmt.Printf("    ℹ️  %s: %d bins from %g m to %g m, peak at %g m\n", s.Name, s.Len(), b.Min[0], b.Max[0], s.X[s.Peak])
		if err := canvas.Draw(Coverage(s)); err != nil {
			return err
		}
	}

	if err := canvas.Save(opts.Output); err != nil {
		return err
	}
	fmt.Println("✔️  Wrote", canvas.Items(), "series to", opts.Output, "in", time.Since(timer).String())

	if opts.Preview {
		if _, err := preview.Build(ctx, opts.Output, filepath.Dir(opts.Output), preview.DefaultSizes); err != nil {
			return err
		}
		fmt.Println("✔️  Built previews")
	}

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())

	return nil
}

// Config is the figure layout of an elevation histogram
func Config(simplify float64) render.Config {
	cfg := render.DefaultConfig()
	cfg.X = render.Axis{Label: "Elevation / m", Scale: render.Log2}
	cfg.Y = render.Axis{Label: "Coverage / (km²/m)", Scale: render.Log2}
	cfg.Simplify = simplify
	return cfg
}

// Coverage converts a histogram from m²/m to km²/m
func Coverage(s table.Series) render.Series {
	y := make([]float64, len(s.Y))
	for i, v := range s.Y {
		y[i] = v / squareMetersPerSquareKilometer
	}
	return render.Series{Name: s.Name, X: s.X, Y: y, Style: render.Line}
}
