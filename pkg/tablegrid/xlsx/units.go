package xlsx

import "math"

// MaxDigitWidth is the pixel width of the widest digit of the default
// font (Calibri 11) at 96 DPI. Excel column widths count such digits.
const MaxDigitWidth = 7

// ColWidthToPixels converts an Excel column width in characters to pixels.
func ColWidthToPixels(width float64) int {
	return int(math.Trunc((256*width + math.Trunc(128.0/MaxDigitWidth)) / 256 * MaxDigitWidth))
}

// PixelsToColWidth converts a pixel width to an Excel column width in
// characters, rounded to two decimals.
func PixelsToColWidth(px int) float64 {
	return math.Trunc(float64(px)/MaxDigitWidth*100+0.5) / 100
}
