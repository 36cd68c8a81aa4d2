package colour

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
)

// MapType selects the colour map.
type MapType int

const (
	Jet MapType = iota
	Greyscale
	Viridis
	Monochrome
)

func (t MapType) String() string {
	switch t {
	case Jet:
		return "jet"
	case Greyscale:
		return "greyscale"
	case Viridis:
		return "viridis"
	case Monochrome:
		return "monochrome"
	default:
		return fmt.Sprintf("MapType(%d)", int(t))
	}
}

// ParseMapType parses a map name as written in config files.
func ParseMapType(s string) (MapType, error) {
	for t := Jet; t <= Monochrome; t++ {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return Jet, fmt.Errorf("unknown colour map %q", s)
}

// viridisStops are sampled from the matplotlib map and blended in HCL.
var viridisStops = []string{"#440154", "#3b528b", "#21918c", "#5ec962", "#fde725"}

// Map converts scalars in [0,1] to colours.
type Map struct {
	Type MapType
	// Hue in degrees, used by Monochrome.
	Hue float32

	stops []colorful.Color
}

// NewMap returns a map of the given type.
func NewMap(t MapType) *Map {
	m := &Map{Type: t}
	if t == Viridis {
		for _, h := range viridisStops {
			c, _ := colorful.Hex(h)
			m.stops = append(m.stops, c)
		}
	}
	return m
}

// Convert maps v to a colour. v is clamped to [0,1].
func (m *Map) Convert(v float32) [3]float32 {
	v = clamp01(v)
	switch m.Type {
	case Greyscale:
		return Grey(v)
	case Viridis:
		return m.blend(v)
	case Monochrome:
		return fromColorful(colorful.Hsv(float64(m.Hue), float64(v), 1))
	default:
		return jet(v)
	}
}

func (m *Map) blend(v float32) [3]float32 {
	segments := float32(len(m.stops) - 1)
	pos := v * segments
	i := int(math32.Floor(pos))
	if i >= len(m.stops)-1 {
		return fromColorful(m.stops[len(m.stops)-1])
	}
	t := float64(pos - float32(i))
	return fromColorful(m.stops[i].BlendHcl(m.stops[i+1], t))
}

// jet is the piecewise-linear blue-cyan-yellow-red map.
func jet(v float32) [3]float32 {
	c := [3]float32{
		clamp01(1.5 - math32.Abs(4*v-3)),
		clamp01(1.5 - math32.Abs(4*v-2)),
		clamp01(1.5 - math32.Abs(4*v-1)),
	}
	return c
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Autoscale linearly maps data onto [0,1]. Constant data maps to zeros.
func Autoscale(data []float32) []float32 {
	out := make([]float32, len(data))
	if len(data) == 0 {
		return out
	}
	lo, hi := data[0], data[0]
	for _, d := range data[1:] {
		lo = math32.Min(lo, d)
		hi = math32.Max(hi, d)
	}
	span := hi - lo
	if span == 0 {
		return out
	}
	for i, d := range data {
		out[i] = (d - lo) / span
	}
	return out
}
