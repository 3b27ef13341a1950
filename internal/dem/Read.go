package dem

import (
	"compress/gzip"
	"errors"
	"io"
	"os"
	"strings"
)

// Read digital elevation model from given path. Paths ending in .gz are
// decompressed on the fly.
func Read(path string) (EsriASCIIRaster, error) {
	file, err := os.Open(path)
	if err != nil {
		return EsriASCIIRaster{}, &ParseError{Path: path, Err: err}
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return EsriASCIIRaster{}, &ParseError{Path: path, Err: err}
		}
		defer gz.Close()
		reader = gz
	}

	raster, err := ParseEsriASCIIRaster(reader)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return EsriASCIIRaster{}, err
	}

	return raster, nil
}
