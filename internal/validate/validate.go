package validate

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gruppe-adler/meh-plots/internal/render"
	"github.com/gruppe-adler/meh-plots/internal/utils"
)

// Formats lists the image formats a plot can be written as, by extension
var Formats = []string{"png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff"}

// Inputs validates that every given path is an existing file
func Inputs(paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no input files given")
	}

	for _, p := range paths {
		if !utils.IsFile(p) {
			return fmt.Errorf("%s does not exist or is no file", p)
		}
	}

	return nil
}

// Output validates that a plot can be written to given path: the directory
// must exist and the extension must name a supported format. Rejections are
// *render.WriteError, like failures while saving.
func Output(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if !utils.IsDirectory(dir) {
		return &render.WriteError{Path: outputPath, Err: fmt.Errorf("output directory %s does not exist", dir)}
	}

	if utils.IsDirectory(outputPath) {
		return &render.WriteError{Path: outputPath, Err: fmt.Errorf("%s is a directory", outputPath)}
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(outputPath), "."))
	if !contains(Formats, ext) {
		return &render.WriteError{
			Path: outputPath,
			Err:  fmt.Errorf("unsupported output format %q (must be one of %s)", ext, strings.Join(Formats, ", ")),
		}
	}

	return nil
}

// Preview validates that previews can be built from the plot at given path
func Preview(outputPath string) error {
	if strings.ToLower(filepath.Ext(outputPath)) != ".png" {
		return fmt.Errorf("previews need a PNG plot, got %s", outputPath)
	}
	return nil
}

// contains checks whether an array contains a string
func contains(array []string, element string) bool {
	for _, curElement := range array {
		if curElement == element {
			return true
		}
	}
	return false
}
