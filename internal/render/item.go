package render

import (
	"github.com/gruppe-adler/meh-plots/internal/fit"
)

// Item is something the canvas can draw: a Series or a Curve
type Item interface {
	isItem()
}

// Style of a raw data series
type Style int

const (
	// Line joins the observations in order
	Line Style = iota
	// Scatter draws every observation as a small, translucent dot
	Scatter
)

// Series is raw data drawn as is
type Series struct {
	Name  string
	X     []float64
	Y     []float64
	Style Style
}

// Curve is a fitted model, sampled over its padded range
type Curve struct {
	Model fit.Model
}

func (Series) isItem() {}
func (Curve) isItem()  {}
