package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderImage draws img as ANSI half blocks, fitting inside maxWidth
// columns by maxHeight rows while preserving aspect ratio. Each cell
// shows two vertically stacked pixels: the upper half block rune takes
// the foreground color, the cell background takes the lower pixel.
func RenderImage(img image.Image, maxWidth, maxHeight int) string {
	if img == nil || maxWidth < 1 || maxHeight < 1 {
		return ""
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return ""
	}

	cols, rows := fitGrid(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)
	cell := lipgloss.NewStyle()

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := sampleAt(img, x, 2*y, cols, 2*rows)
			bottom := sampleAt(img, x, 2*y+1, cols, 2*rows)
			b.WriteString(cell.
				Foreground(lipgloss.Color(hexColor(top))).
				Background(lipgloss.Color(hexColor(bottom))).
				Render("▀"))
		}
		if y < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Center places s in the middle of a width by height box.
func Center(s string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}

// fitGrid sizes the cell grid for an imgW by imgH image. A terminal
// cell covers one pixel horizontally and two vertically, which keeps
// sampled pixels roughly square in common fonts.
func fitGrid(imgW, imgH, maxCols, maxRows int) (cols, rows int) {
	cols = maxCols
	rows = imgH * cols / (imgW * 2)
	if rows > maxRows {
		rows = maxRows
		cols = imgW * 2 * rows / imgH
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// sampleAt maps a grid coordinate back onto the source image.
func sampleAt(img image.Image, x, y, gridW, gridH int) color.Color {
	bounds := img.Bounds()
	sx := bounds.Min.X + x*bounds.Dx()/gridW
	sy := bounds.Min.Y + y*bounds.Dy()/gridH
	return img.At(sx, sy)
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
