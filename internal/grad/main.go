package grad

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gruppe-adler/meh-plots/internal/fit"
	"github.com/gruppe-adler/meh-plots/internal/preview"
	"github.com/gruppe-adler/meh-plots/internal/render"
	"github.com/gruppe-adler/meh-plots/internal/table"
	"github.com/gruppe-adler/meh-plots/internal/validate"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Options of a gradient plot run
type Options struct {
	Input  string
	Output string

	// PolyDegree adds a polynomial fit of that degree if > 0
	PolyDegree int
	Fit        fit.Settings
	Preview    bool
}

// Command builds the grad subcommand
func Command() *cobra.Command {
	opts := Options{}
	var method string

	cmd := &cobra.Command{
		Use:   "grad INPUT OUTPUT",
		Short: "Plot gradient magnitude against elevation and fit models to it.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := fit.ParseMethod(method)
			if err != nil {
				return err
			}
			opts.Fit.Method = m
			opts.Input = args[0]
			opts.Output = args[1]
			return Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.PolyDegree, "poly", 0, "Also fit a polynomial of this degree (0 disables)")
	cmd.Flags().StringVar(&method, "method", fit.LevenbergMarquardt.String(), "Nonlinear solver: lm or nelder-mead")
	cmd.Flags().IntVar(&opts.Fit.MaxEvaluations, "max-evaluations", fit.DefaultMaxEvaluations, "Function evaluations a nonlinear fit may use")
	cmd.Flags().BoolVar(&opts.Preview, "preview", false, "Also write downscaled copies of a PNG plot")

	return cmd
}

// Run is the grad subcommand's entrypoint
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
	if err := validate.Inputs([]string{opts.Input}); err != nil {
		return err
	}
	fmt.Println("✔️  Validated input and output paths")

	// load data points
	timer = time.Now()
	fmt.Println("▶️  Loading gradient data")
	series, err := table.Load(opts.Input, "")
	if err != nil {
		return err
	}
	fmt.Println("✔️  Loaded", series.Len(), "data points in", time.Since(timer).String())
	b := series.Bound()
	fmt.Printf("ℹ️  Elevation %g m to %g m, gradient %g to %g\n", b.Min[0], b.Max[0], b.Min[1], b.Max[1])

	// fit models
	timer = time.Now()
	fmt.Println("▶️  Fitting models")
	models, err := Fit(series, opts)
	if err != nil {
		return err
	}
	fmt.Println("✔️  Fitted", len(models), "models in", time.Since(timer).String())

	// plot
	timer = time.Now()
	fmt.Println("▶️  Plotting")
	canvas := render.New(Config())

	err = canvas.Draw(render.Series{Name: "Data points", X: series.X, Y: series.Y, Style: render.Scatter})
	if err != nil {
		return err
	}
	for _, m := range models {
		if err := canvas.Draw(render.Curve{Model: m}); err != nil {
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

// Fit fits the ratio, power law and saturation models to s, plus a
// polynomial if opts.PolyDegree > 0. Models are returned in drawing order.
func Fit(s table.Series, opts Options) ([]fit.Model, error) {
	var models []fit.Model

	ratio, err := fit.FitRatio(s.X, s.Y)
	if err != nil {
		return nil, err
	}
	models = append(models, ratio)

	fitOpts := fit.Options{Settings: opts.Fit}

	power, err := fit.FitPowerLaw(s.X, s.Y, fitOpts)
	if err != nil {
		return nil, err
	}
	models = append(models, power)

	saturation, err := fit.FitSaturation(s.X, s.Y, fitOpts)
	if err != nil {
		return nil, err
	}
	models = append(models, saturation)

	if opts.PolyDegree > 0 {
		poly, err := fit.FitPoly(s.X, s.Y, opts.PolyDegree)
		if err != nil {
			return nil, err
		}
		models = append(models, poly)
	}

	for _, m := range models {
		logParams(m)
	}

	return models, nil
}

func logParams(m fit.Model) {
	fields := logrus.Fields{}
	for _, p := range m.Params() {
		fields[p.Name] = p.Value
	}
	r := m.Range()
	fields["x_min"] = r.XMin
	fields["x_max"] = r.XMax

	logrus.WithFields(fields).Info(m.Name())
}

// Config is the figure layout of a gradient plot
func Config() render.Config {
	cfg := render.DefaultConfig()
	cfg.X = render.Axis{Label: "Elevation / m", Scale: render.Log2}
	cfg.Y = render.Axis{Label: "Gradient magnitude", Scale: render.Log2}
	return cfg
}
