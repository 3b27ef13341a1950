package preview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/gruppe-adler/meh-plots/internal/utils"
	"github.com/nfnt/resize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultSizes are the preview heights in pixels
var DefaultSizes = []uint{128, 256, 512, 1024}

var sem = semaphore.NewWeighted(int64(runtime.NumCPU()))

// Command builds the preview subcommand
func Command() *cobra.Command {
	var (
		input  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Build downscaled preview images of a rendered plot.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context(), input, output)
		},
	}

	cmd.Flags().StringVar(&input, "in", "", "Path to rendered PNG plot")
	cmd.Flags().StringVar(&output, "out", "", "Path to output directory")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")

	return cmd
}

// Run is the preview subcommand's entrypoint
func Run(ctx context.Context, input string, output string) error {
	start := time.Now()

	// make sure given output directory is a valid directory
	if !utils.IsDirectory(output) {
		return errors.New("output directory doesn't exist")
	}
	if !utils.IsFile(input) {
		return fmt.Errorf("%s does not exist or is no file", input)
	}

	paths, err := Build(ctx, input, output, DefaultSizes)
	if err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Println("    ✔️  Wrote", p)
	}
	fmt.Printf("\n    🎉  Finished in %s\n", time.Since(start).String())

	return nil
}

// Build writes a copy of the PNG at input for every height in sizes into
// outputDirectory, keeping the aspect ratio. It returns the written paths.
func Build(ctx context.Context, input string, outputDirectory string, sizes []uint) ([]string, error) {
	img, err := loadImage(input)
	if err != nil {
		return nil, err
	}

	previewHeight := img.Bounds().Dy()
	previewWidth := img.Bounds().Dx()
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	paths := make([]string, len(sizes))
	g, ctx := errgroup.WithContext(ctx)

	for i, size := range sizes {
		i, size := i, size
		paths[i] = filepath.Join(outputDirectory, fmt.Sprintf("%s_%d.png", base, size))

		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			factor := float64(size) / float64(previewHeight)
			w := uint(float64(previewWidth) * factor)

			resized := resize.Resize(w, size, img, resize.MitchellNetravali)
			return saveImage(paths[i], resized)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return paths, nil
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return img, nil
}

func saveImage(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	return out.Close()
}
