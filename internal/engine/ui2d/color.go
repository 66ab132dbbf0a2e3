package ui2d

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Panel theme.
var (
	ColorTransparent = Color{0, 0, 0, 0}

	ColorPanelBg      = RGBA(24, 26, 31, 235)
	ColorPanelBorder  = RGB(70, 76, 89)
	ColorButtonNormal = RGB(42, 46, 56)
	ColorButtonHover  = RGB(60, 66, 80)
	ColorButtonActive = RGB(34, 92, 140)
	ColorInputBg      = RGB(16, 17, 21)
	ColorText         = RGB(228, 230, 235)
	ColorTextDim      = RGB(130, 136, 150)
	ColorHighlight    = RGB(64, 156, 230)
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 255)
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Lighten moves the color towards white by factor.
func (c Color) Lighten(factor float32) Color {
	return Color{
		R: c.R + (1-c.R)*factor,
		G: c.G + (1-c.G)*factor,
		B: c.B + (1-c.B)*factor,
		A: c.A,
	}
}
