package types

import "fmt"

// Color - 24-битный RGB-цвет в формате 0xRRGGBB.
type Color uint32

const maskColor = 0xFFFFFF

// Палитра, которой пользуются шаблоны сущностей.
const (
	ColorBlack     Color = 0x000000
	ColorWhite     Color = 0xFFFFFF
	ColorYellow    Color = 0xFFFF00
	ColorRed       Color = 0xFF0000
	ColorGreen     Color = 0x00FF00
	ColorCyan      Color = 0x00FFFF
	ColorMagenta   Color = 0xFF00FF
	ColorOrange    Color = 0xFFA500
	ColorPink      Color = 0xFFC0CB
	ColorChocolate Color = 0xD2691E
	ColorGray      Color = 0x808080
	ColorDarkGray  Color = 0x3F3F3F
	ColorBrown     Color = 0x8B4513
)

// RGB собирает цвет из компонент.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) R() uint8 { return uint8((c >> 16) & 0xFF) }
func (c Color) G() uint8 { return uint8((c >> 8) & 0xFF) }
func (c Color) B() uint8 { return uint8(c & 0xFF) }

// Scale затемняет цвет (factor 0..1). Используется для тайлов,
// которые помнятся, но сейчас не видны.
func (c Color) Scale(factor float64) Color {
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	return RGB(
		uint8(float64(c.R())*factor),
		uint8(float64(c.G())*factor),
		uint8(float64(c.B())*factor),
	)
}

// Hex возвращает строку вида "#FFA500".
func (c Color) Hex() string {
	return fmt.Sprintf("#%06X", uint32(c)&maskColor)
}

func (c Color) String() string {
	return c.Hex()
}
