package text

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Face measures and rasterises strings at one pixel size.
type Face struct {
	face font.Face
	res  int
}

type faceKey struct {
	font Font
	res  int
}

var (
	facesMu sync.Mutex
	faces   = map[faceKey]*Face{}
)

// LoadFace returns the face for f at res pixels per em. Faces are cached
// for the life of the process.
func LoadFace(f Font, res int) (*Face, error) {
	if res <= 0 {
		return nil, fmt.Errorf("text: font resolution %d", res)
	}
	key := faceKey{f, res}

	facesMu.Lock()
	defer facesMu.Unlock()
	if fc, ok := faces[key]; ok {
		return fc, nil
	}

	var ttf []byte
	switch f {
	case GoRegular:
		ttf = goregular.TTF
	case GoMono:
		ttf = gomono.TTF
	case Basic:
		// fixed 7x13 bitmap; res is ignored
		fc := &Face{face: basicfont.Face7x13, res: 13}
		faces[key] = fc
		return fc, nil
	default:
		return nil, fmt.Errorf("text: unknown font %v", f)
	}

	parsed, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("text: parse %v: %w", f, err)
	}
	ff, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(res),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: face %v: %w", f, err)
	}
	fc := &Face{face: ff, res: res}
	faces[key] = fc
	return fc, nil
}

// Res returns the pixel size the face was built for.
func (f *Face) Res() int { return f.res }

// measure returns the pen advance, ascent and descent of s in whole pixels.
func (f *Face) measure(s string) (advance, ascent, descent int) {
	bounds, adv := font.BoundString(f.face, s)
	advance = adv.Ceil()
	ascent = max(0, (-bounds.Min.Y).Ceil())
	descent = max(0, bounds.Max.Y.Ceil())
	return advance, ascent, descent
}

// Measure returns the geometry of s in pixels.
func (f *Face) Measure(s string) Geometry {
	adv, asc, desc := f.measure(s)
	return Geometry{TotalAdvance: float32(adv), MaxBearingY: float32(asc), MaxDropY: float32(desc)}
}

// Rasterize draws s into a coverage image whose top row is at the greatest
// ascent and whose baseline is at row MaxBearingY. It returns the image and
// the pixel geometry.
func (f *Face) Rasterize(s string) (*image.Alpha, Geometry) {
	adv, asc, desc := f.measure(s)
	w, h := max(1, adv), max(1, asc+desc)
	img := image.NewAlpha(image.Rect(0, 0, w, h))

	d := font.Drawer{
		Dst:  img,
		Src:  image.Opaque,
		Face: f.face,
		Dot:  fixed.P(0, asc),
	}
	d.DrawString(s)

	return img, Geometry{TotalAdvance: float32(adv), MaxBearingY: float32(asc), MaxDropY: float32(desc)}
}
