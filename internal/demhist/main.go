package demhist

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gruppe-adler/meh-plots/internal/dem"
	"github.com/gruppe-adler/meh-plots/internal/render"
	"github.com/gruppe-adler/meh-plots/internal/utils"
	"github.com/gruppe-adler/meh-plots/internal/validate"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Options of a DEM histogram run
type Options struct {
	Output string
	Inputs []string
}

// Command builds the demhist subcommand
func Command() *cobra.Command {
	opts := Options{}

	return &cobra.Command{
		Use:   "demhist OUTPUT DEM [DEM...]",
		Short: "Build an elevation histogram from ESRI ASCII grids, as input for elevhist.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Output = args[0]
			opts.Inputs = args[1:]
			return Run(cmd.Context(), opts)
		},
	}
}

// Run is the demhist subcommand's entrypoint
func Run(ctx context.Context, opts Options) error {
	var timer time.Time
	start := time.Now()

	dir := filepath.Dir(opts.Output)
	if !utils.IsDirectory(dir) {
		return &render.WriteError{Path: opts.Output, Err: fmt.Errorf("output directory %s does not exist", dir)}
	}
	if err := validate.Inputs(opts.Inputs); err != nil {
		return err
	}
	fmt.Println("✔️  Validated input and output paths")

	// read DEMs
	timer = time.Now()
	fmt.Println("▶️  Loading DEMs")
	rasters, err := readAll(ctx, opts.Inputs)
	if err != nil {
		return err
	}
	fmt.Println("✔️  Loaded", len(rasters), "DEMs in", time.Since(timer).String())

	// bucket elevations
	timer = time.Now()
	fmt.Println("▶️  Bucketing elevations")
	hist := dem.NewHistogram()
	for i, raster := range rasters {
		logrus.Debugf("%s: %dx%d cells of %g m", opts.Inputs[i], raster.Ncols, raster.Nrows, raster.CellSize)
		hist.Add(raster)
	}
	fmt.Printf("    ℹ️  %d buckets covering %g km²\n", len(hist.Area), hist.Total()/1e6)

	if err := write(opts.Output, hist); err != nil {
		return err
	}
	fmt.Println("✔️  Wrote histogram to", opts.Output, "in", time.Since(timer).String())

	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())

	return nil
}

func readAll(ctx context.Context, paths []string) ([]dem.EsriASCIIRaster, error) {
	rasters := make([]dem.EsriASCIIRaster, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raster, err := dem.Read(path)
			if err != nil {
				return err
			}
			rasters[i] = raster
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rasters, nil
}

// write stores the histogram as text, gzipped if path ends in .gz
func write(path string, hist *dem.Histogram) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return &render.WriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = &render.WriteError{Path: path, Err: cerr}
		}
	}()

	buf := bufio.NewWriter(file)
	var w io.Writer = buf
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(buf)
		w = gz
	}

	if _, err := hist.WriteTo(w); err != nil {
		return &render.WriteError{Path: path, Err: err}
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return &render.WriteError{Path: path, Err: err}
		}
	}
	if err := buf.Flush(); err != nil {
		return &render.WriteError{Path: path, Err: err}
	}

	return nil
}
