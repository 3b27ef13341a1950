package slopedir

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gruppe-adler/meh-plots/internal/preview"
	"github.com/gruppe-adler/meh-plots/internal/render"
	"github.com/gruppe-adler/meh-plots/internal/table"
	"github.com/gruppe-adler/meh-plots/internal/validate"
	"github.com/spf13/cobra"
)

// Transform maps the steepness column before plotting
type Transform string

const (
	// Identity plots the steepness as loaded
	Identity Transform = "none"
	// TanArcsin turns the sine of the slope angle into its tangent
	TanArcsin Transform = "tan-arcsin"
)

// Apply transforms v
func (t Transform) Apply(v float64) (float64, error) {
	switch t {
	case Identity, "":
		return v, nil
	case TanArcsin:
		return math.Tan(math.Asin(v)), nil
	}
	return 0, fmt.Errorf("unknown transform %q (must be %s or %s)", string(t), Identity, TanArcsin)
}

// Options of a slope direction run
type Options struct {
	Output string
	Inputs []string

	// Labels name the inputs in order. Unnamed inputs are numbered from 1.
	Labels    []string
	Transform Transform
	Simplify  float64
	Preview   bool
}

// Command builds the slopedir subcommand
func Command() *cobra.Command {
	opts := Options{}
	var transform string

	cmd := &cobra.Command{
		Use:   "slopedir OUTPUT INPUT [INPUT...]",
		Short: "Plot steepness against slope direction.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Transform = Transform(transform)
			opts.Output = args[0]
			opts.Inputs = args[1:]
			return Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Labels, "label", nil, "Legend labels of the inputs, in order")
	cmd.Flags().StringVar(&transform, "transform", string(Identity), "Steepness transform: none or tan-arcsin")
	cmd.Flags().Float64Var(&opts.Simplify, "simplify", 0, "Douglas-Peucker tolerance as a fraction of the plot extent (0 keeps all points)")
	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "Also write downscaled copies of a PNG plot")

	return cmd
}

// Run is the slopedir subcommand's entrypoint
func Run(ctx context.Context, opts Options) error {
	var timer time.Time
	start := time.Now()

	if _, err := opts.Transform.Apply(0); err != nil {
		return err
	}
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

	// load slope directions
	timer = time.Now()
	fmt.Println("▶️  Loading slope directions")
	series, err := table.LoadAll(ctx, opts.Inputs, func(i int, _ string) string {
		if i < len(opts.Labels) {
			return opts.Labels[i]
		}
		return strconv.Itoa(i + 1)
	})
	if err != nil {
		return err
	}
	fmt.Println("✔️  Loaded", len(series), "series in", time.Since(timer).String())

	// plot
	timer = time.Now()
	fmt.Println("▶️  Plotting slope directions")
	canvas := render.New(Config(opts.Simplify))
	for _, s := range series {
		item, err := Steepness(s, opts.Transform)
		if err != nil {
			return err
		}
		if err := canvas.Draw(item); err != nil {
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

// Config is the figure layout of a slope direction plot. Direction runs
// clockwise from north over [0, 1].
func Config(simplify float64) render.Config {
	cfg := render.DefaultConfig()
	cfg.X = render.Axis{
		Label: "Direction",
		Min:   0,
		Max:   1,
		Ticks: render.CompassTicks(),
		Grid:  true,
	}
	cfg.Y = render.Axis{Label: "Steepness", Scale: render.Log2}
	cfg.Simplify = simplify
	return cfg
}

// Steepness applies t to the steepness column of s
func Steepness(s table.Series, t Transform) (render.Series, error) {
	y := make([]float64, len(s.Y))
	for i, v := range s.Y {
		out, err := t.Apply(v)
		if err != nil {
			return render.Series{}, err
		}
		y[i] = out
	}
	return render.Series{Name: s.Name, X: s.X, Y: y, Style: render.Line}, nil
}
