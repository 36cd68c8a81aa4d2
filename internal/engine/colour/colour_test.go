package colour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertColour(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 0.01, "channel %d of %v", i, got)
	}
}

func TestFromHex(t *testing.T) {
	c, err := FromHex("#ff8000")
	require.NoError(t, err)
	assertColour(t, [3]float32{1, 0.502, 0}, c)
	assert.Equal(t, "#ff8000", ToHex(c))

	_, err = FromHex("nope")
	assert.Error(t, err)
}

func TestJetEnds(t *testing.T) {
	m := NewMap(Jet)
	assertColour(t, [3]float32{0, 0, 0.5}, m.Convert(0))
	assertColour(t, [3]float32{0.5, 0, 0}, m.Convert(1))
	assertColour(t, [3]float32{0.5, 1, 0.5}, m.Convert(0.5))
}

func TestConvertClamps(t *testing.T) {
	for _, mt := range []MapType{Jet, Greyscale, Viridis, Monochrome} {
		m := NewMap(mt)
		assert.Equal(t, m.Convert(0), m.Convert(-3), mt.String())
		assert.Equal(t, m.Convert(1), m.Convert(7), mt.String())
	}
}

func TestGreyscaleIsIdentity(t *testing.T) {
	m := NewMap(Greyscale)
	assert.Equal(t, Grey(0.25), m.Convert(0.25))
}

func TestViridisHitsStops(t *testing.T) {
	m := NewMap(Viridis)
	first, _ := FromHex(viridisStops[0])
	last, _ := FromHex(viridisStops[len(viridisStops)-1])
	mid, _ := FromHex(viridisStops[2])
	assertColour(t, first, m.Convert(0))
	assertColour(t, mid, m.Convert(0.5))
	assertColour(t, last, m.Convert(1))
}

func TestMonochromeSaturation(t *testing.T) {
	m := NewMap(Monochrome)
	m.Hue = 0
	assertColour(t, White, m.Convert(0))
	assertColour(t, Red, m.Convert(1))
}

func TestParseMapType(t *testing.T) {
	mt, err := ParseMapType("Viridis")
	require.NoError(t, err)
	assert.Equal(t, Viridis, mt)

	_, err = ParseMapType("rainbow")
	assert.Error(t, err)
}

func TestAutoscale(t *testing.T) {
	assert.Equal(t, []float32{0, 0.5, 1}, Autoscale([]float32{2, 4, 6}))
	assert.Equal(t, []float32{0, 0}, Autoscale([]float32{3, 3}))
	assert.Empty(t, Autoscale(nil))
}
