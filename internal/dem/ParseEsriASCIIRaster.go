package dem

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const maxLineLength = 1 << 24

// ParseEsriASCIIRaster reads an ESRI ASCII grid. NCOLS, NROWS, CELLSIZE and
// one of the center or corner coordinate pairs are mandatory, NODATA_VALUE is
// optional. Exactly NROWS data rows of NCOLS values must follow the header.
func ParseEsriASCIIRaster(reader io.Reader) (EsriASCIIRaster, error) {

	raster := EsriASCIIRaster{}
	remainingHeaders := []string{"NCOLS", "NROWS", "XLLCENTER", "XLLCORNER", "YLLCENTER", "YLLCORNER", "CELLSIZE", "NODATA_VALUE"}
	stillIsHeader := true
	rowIndex := uint(0)
	lineNo := 0

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())

		// blank lines carry nothing
		if len(fields) == 0 {
			continue
		}

		// first field as upper case
		keyword := strings.ToUpper(fields[0])

		if stillIsHeader && contains(remainingHeaders, keyword) {
			remainingHeaders = remove(remainingHeaders, keyword)

			// there can either be corner or center not both
			if keyword == "XLLCENTER" || keyword == "YLLCENTER" {
				remainingHeaders = remove(remainingHeaders, "XLLCORNER")
				remainingHeaders = remove(remainingHeaders, "YLLCORNER")
			}
			if keyword == "XLLCORNER" || keyword == "YLLCORNER" {
				remainingHeaders = remove(remainingHeaders, "XLLCENTER")
				remainingHeaders = remove(remainingHeaders, "YLLCENTER")
			}

			if err := parseHeaderLine(fields, &raster); err != nil {
				return raster, &ParseError{Line: lineNo, Err: err}
			}
			continue
		}

		if stillIsHeader { // this is the first data line, if stillIsHeader is true
			// NODATA_VALUE is optional
			remainingHeaders = remove(remainingHeaders, "NODATA_VALUE")

			if len(remainingHeaders) > 0 {
				return raster, &ParseError{
					Line: lineNo,
					Err:  fmt.Errorf("%w: missing headers %s", ErrFormat, strings.Join(remainingHeaders, ", ")),
				}
			}

			stillIsHeader = false
			raster.Data = make([][]float64, raster.Nrows)
		}

		if rowIndex >= raster.Nrows {
			return raster, &ParseError{Line: lineNo, Err: fmt.Errorf("%w: more than %d data rows", ErrFormat, raster.Nrows)}
		}

		row, err := parseDataLine(fields, raster.Ncols)
		if err != nil {
			return raster, &ParseError{Line: lineNo, Err: err}
		}

		raster.Data[rowIndex] = row
		rowIndex++
	}

	if err := scanner.Err(); err != nil {
		return raster, &ParseError{Line: lineNo, Err: err}
	}

	if stillIsHeader || rowIndex < raster.Nrows {
		return raster, &ParseError{Err: fmt.Errorf("%w: got %d of %d data rows", ErrFormat, rowIndex, raster.Nrows)}
	}

	return raster, nil
}

func parseHeaderLine(fields []string, grid *EsriASCIIRaster) error {
	if len(fields) != 2 {
		return fmt.Errorf("%w: header line must have exactly two fields", ErrFormat)
	}

	keyword := strings.ToUpper(fields[0])

	switch keyword {
	case "NCOLS", "NROWS":
		i, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil || i == 0 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q", ErrFormat, keyword, fields[1])
		}
		if keyword == "NCOLS" {
			grid.Ncols = uint(i)
		} else {
			grid.Nrows = uint(i)
		}
		return nil
	}

	f, err := parseFinite(fields[1])
	if err != nil {
		return fmt.Errorf("%s: %w", keyword, err)
	}

	switch keyword {
	case "XLLCENTER":
		grid.Xcenter = &f
	case "XLLCORNER":
		grid.Xcorner = &f
	case "YLLCENTER":
		grid.Ycenter = &f
	case "YLLCORNER":
		grid.Ycorner = &f
	case "CELLSIZE":
		if f <= 0.0 {
			return fmt.Errorf("%w: CELLSIZE must be greater than 0", ErrFormat)
		}
		grid.CellSize = f
	case "NODATA_VALUE":
		grid.NoDataValue = f
		grid.HasNoData = true
	default:
		return fmt.Errorf("%w: unknown header keyword %s", ErrFormat, fields[0])
	}

	return nil
}

func parseDataLine(fields []string, cols uint) ([]float64, error) {
	if uint(len(fields)) != cols {
		return nil, fmt.Errorf("%w: expected %d values in data row, got %d", ErrFormat, cols, len(fields))
	}

	row := make([]float64, cols)
	for i := uint(0); i < cols; i++ {
		f, err := parseFinite(fields[i])
		if err != nil {
			return nil, err
		}
		row[i] = f
	}

	return row, nil
}

func parseFinite(field string) (float64, error) {
	f, err := strconv.ParseFloat(field, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrFormat, field)
	}
	return f, nil
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

// remove removes a string from an array
func remove(arr []string, element string) []string {
	var remaining []string

	for i := 0; i < len(arr); i++ {
		if element != arr[i] {
			remaining = append(remaining, arr[i])
		}
	}

	return remaining
}
