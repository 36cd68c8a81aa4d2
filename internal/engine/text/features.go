// Package text rasterises strings with x/image fonts and renders them as
// textured quads attached to visual models.
package text

import (
	"fmt"
	"strings"

	"github.com/Faultbox/sciviz/internal/engine/colour"
)

// Font selects a typeface.
type Font int

const (
	GoRegular Font = iota
	GoMono
	Basic
)

func (f Font) String() string {
	switch f {
	case GoRegular:
		return "goregular"
	case GoMono:
		return "gomono"
	case Basic:
		return "basic"
	default:
		return fmt.Sprintf("Font(%d)", int(f))
	}
}

// ParseFont parses a font name as written in config files.
func ParseFont(s string) (Font, error) {
	for f := GoRegular; f <= Basic; f++ {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return GoRegular, fmt.Errorf("unknown font %q", s)
}

// Features describe how a label is drawn.
type Features struct {
	// FontSize is the em height in model units.
	FontSize float32
	// FontRes is the em height in pixels of the rasterised glyphs.
	FontRes int
	// CentreHorz centres the label horizontally on its offset.
	CentreHorz bool
	Colour     [3]float32
	Font       Font
}

// DefaultFeatures returns small black GoRegular text.
func DefaultFeatures() Features {
	return Features{
		FontSize: 0.05,
		FontRes:  24,
		Colour:   colour.Black,
		Font:     GoRegular,
	}
}

// scale converts pixels to model units.
func (f Features) scale() float32 {
	if f.FontRes <= 0 {
		return 0
	}
	return f.FontSize / float32(f.FontRes)
}
