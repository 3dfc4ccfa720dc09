// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package flicker

// Nominal terminal cell size in pixels, used to scale the pixel
// geometry (bar width, bar height, margin) onto a character grid.
const (
	CellWidthPixels  = 8
	CellHeightPixels = 16
)

// MarkerBars are the bars under which a position marker is drawn. The
// TAN generator has matching marks over its first and last sensor.
var MarkerBars = [...]int{ClockBar, Bars - 1}

// Layout is the cell geometry of the five bars.
type Layout struct {
	BarCells    int // Width of one bar.
	GapCells    int // Gap between adjacent bars.
	HeightCells int
}

// NewLayout scales pixel geometry to cells, rounding to the nearest
// cell. Every dimension is at least one cell.
func NewLayout(barWidth, barHeight, margin int) Layout {
	return Layout{
		BarCells:    scaleToCells(barWidth, CellWidthPixels),
		GapCells:    scaleToCells(margin, CellWidthPixels),
		HeightCells: scaleToCells(barHeight, CellHeightPixels),
	}
}

func scaleToCells(pixels, cellSize int) int {
	cells := (pixels + cellSize/2) / cellSize
	if cells < 1 {
		return 1
	}
	return cells
}

// Width is the total width of the bar block in cells.
func (layout Layout) Width() int {
	return Bars*layout.BarCells + (Bars-1)*layout.GapCells
}

// BarOffset is the column of the first cell of bar, relative to the
// left edge of the block.
func (layout Layout) BarOffset(bar int) int {
	return bar * (layout.BarCells + layout.GapCells)
}

// BarAt returns the bar covering column (relative to the block), or
// -1 when the column falls in a gap or outside the block.
func (layout Layout) BarAt(column int) int {
	if column < 0 || column >= layout.Width() {
		return -1
	}
	stride := layout.BarCells + layout.GapCells
	if column%stride >= layout.BarCells {
		return -1
	}
	return column / stride
}

// MarkerColumn is the column of the marker drawn over bar: the middle
// cell of the bar.
func (layout Layout) MarkerColumn(bar int) int {
	return layout.BarOffset(bar) + layout.BarCells/2
}

// Origin is the left column at which a block of this layout starts
// when centred in a area of the given width. It is never negative.
func (layout Layout) Origin(areaWidth int) int {
	origin := (areaWidth - layout.Width()) / 2
	if origin < 0 {
		return 0
	}
	return origin
}
