package dem

// EsriASCIIRaster represents a ESRI ASCII Grid
type EsriASCIIRaster struct {
	Ncols, Nrows     uint
	Xcenter, Ycenter *float64
	Xcorner, Ycorner *float64
	CellSize         float64

	// NoDataValue marks missing cells if HasNoData is set
	NoDataValue float64
	HasNoData   bool

	Data [][]float64
}

// Z returns the elevation of the cell at (c, r).
// It will panic if c or r are out of bounds for the grid.
func (raster EsriASCIIRaster) Z(c, r uint) float64 {
	return raster.Data[r][c]
}

// Valid tells whether the cell at (c, r) holds an elevation
func (raster EsriASCIIRaster) Valid(c, r uint) bool {
	return !raster.HasNoData || raster.Data[r][c] != raster.NoDataValue
}

// CellArea returns the area of one cell in square map units
func (raster EsriASCIIRaster) CellArea() float64 {
	return raster.CellSize * raster.CellSize
}
