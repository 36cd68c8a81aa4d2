// Package colour provides named RGB colours and scalar colour maps.
//
// Colours are [3]float32 in [0,1], the form the mesh builder stores.
package colour

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	Black     = [3]float32{0, 0, 0}
	White     = [3]float32{1, 1, 1}
	Red       = [3]float32{1, 0, 0}
	Green     = [3]float32{0, 1, 0}
	Blue      = [3]float32{0, 0, 1}
	Crimson   = [3]float32{0.863, 0.078, 0.235}
	RoyalBlue = [3]float32{0.255, 0.412, 0.882}
	Goldenrod = [3]float32{0.855, 0.647, 0.125}
)

// Grey returns a grey of the given lightness.
func Grey(v float32) [3]float32 {
	return [3]float32{v, v, v}
}

// FromHex parses "#rrggbb".
func FromHex(s string) ([3]float32, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Black, fmt.Errorf("colour %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// ToHex formats a colour as "#rrggbb".
func ToHex(c [3]float32) string {
	return toColorful(c).Clamped().Hex()
}

func fromColorful(c colorful.Color) [3]float32 {
	c = c.Clamped()
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

func toColorful(c [3]float32) colorful.Color {
	return colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}
}
