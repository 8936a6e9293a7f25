// Package parser reads the sheets and charts of xlsx workbooks.
package parser

// EMUPerPixel is the number of EMUs (English Metric Units) per pixel at 96 DPI.
// 914400 EMU make one inch, which is 96 pixels.
const EMUPerPixel = 9525

// EMUPerCentimetre is the number of EMUs in one centimetre.
const EMUPerCentimetre = 360000

// EMUToPixels converts EMU to pixels at 96 DPI.
func EMUToPixels(emu int64) int {
	return int(emu / EMUPerPixel)
}

// EMUToCentimetres converts EMU to centimetres.
func EMUToCentimetres(emu int64) float64 {
	return float64(emu) / EMUPerCentimetre
}

// PixelsToCentimetres converts pixels at 96 DPI to centimetres.
func PixelsToCentimetres(px int) float64 {
	return float64(px) / 96 * 2.54
}
