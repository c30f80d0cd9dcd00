package render

import (
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"
)

// PaletteIndex selects one of the 16 classic palette entries.
type PaletteIndex int

const (
	Black PaletteIndex = iota
	DarkBlue
	DarkGreen
	DarkCyan
	DarkRed
	DarkMagenta
	Brown
	Gray
	DarkGray
	LightBlue
	LightGreen
	LightCyan
	LightRed
	LightMagenta
	Yellow
	White

	PaletteSize
)

// Palette maps indices to colors. Entries without an exact CSS name are
// spelled out.
var Palette = [PaletteSize]color.RGBA{
	Black:        colornames.Black,
	DarkBlue:     colornames.Darkblue,
	DarkGreen:    {0, 139, 0, 255},
	DarkCyan:     colornames.Darkcyan,
	DarkRed:      colornames.Darkred,
	DarkMagenta:  colornames.Darkmagenta,
	Brown:        colornames.Saddlebrown,
	Gray:         colornames.Gray,
	DarkGray:     colornames.Dimgray,
	LightBlue:    colornames.Royalblue,
	LightGreen:   colornames.Lightgreen,
	LightCyan:    {63, 255, 255, 255},
	LightRed:     {255, 128, 128, 255},
	LightMagenta: {255, 128, 255, 255},
	Yellow:       colornames.Yellow,
	White:        colornames.White,
}

// RGBA returns the palette color. Out-of-range indices panic.
func (p PaletteIndex) RGBA() color.RGBA {
	if p < 0 || p >= PaletteSize {
		panic(fmt.Sprintf("render: palette index %d out of range", int(p)))
	}
	return Palette[p]
}

// Valid reports whether p names a palette entry.
func (p PaletteIndex) Valid() bool {
	return p >= 0 && p < PaletteSize
}
