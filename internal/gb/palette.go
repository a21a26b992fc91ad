package gb

// Color is an RGB triple with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Palette maps the four 2-bit shades to host colors, lightest first.
type Palette [4]Color

// PixelSink receives rendered pixels from the PPU. The host provides
// one; coordinates satisfy 0 <= x < 160, 0 <= y < 144.
type PixelSink interface {
	SetPixel(x, y int, c Color)
}

var (
	// PaletteGray is a plain grayscale ramp.
	PaletteGray = Palette{
		{R: 1.00, G: 1.00, B: 1.00},
		{R: 0.66, G: 0.66, B: 0.66},
		{R: 0.33, G: 0.33, B: 0.33},
		{R: 0.00, G: 0.00, B: 0.00},
	}

	// PaletteGreen approximates the original DMG screen.
	PaletteGreen = Palette{
		{R: 0.61, G: 0.74, B: 0.06},
		{R: 0.55, G: 0.67, B: 0.06},
		{R: 0.19, G: 0.38, B: 0.19},
		{R: 0.06, G: 0.22, B: 0.06},
	}
)
