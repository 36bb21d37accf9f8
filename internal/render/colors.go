package render

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
)

// ParseHexColor converts "#rrggbb" or "#rrggbbaa" to color.NRGBA. Anything
// else comes back opaque black.
func ParseHexColor(s string) color.NRGBA {
	c := color.NRGBA{0, 0, 0, 255}
	switch len(s) {
	case 7:
		fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	}
	return c
}

func rgba(r, g, b uint8, a float64) color.NRGBA {
	return color.NRGBA{r, g, b, uint8(a*255 + 0.5)}
}

// drawShadow draws the flat ground ellipse under a fighter.
func drawShadow(dc *gg.Context, x, y, rx, ry float64) {
	dc.SetColor(rgba(0, 0, 0, 0.35))
	dc.DrawEllipse(x, y, rx, ry)
	dc.Fill()
}
