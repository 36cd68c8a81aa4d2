package text

// Geometry is the extent of a piece of text in model units, measured from
// the start of the baseline.
type Geometry struct {
	// TotalAdvance is the pen advance across the whole string.
	TotalAdvance float32
	// MaxBearingY is the greatest height above the baseline.
	MaxBearingY float32
	// MaxDropY is the greatest depth below the baseline.
	MaxDropY float32
}

func (g Geometry) Width() float32      { return g.TotalAdvance }
func (g Geometry) Height() float32     { return g.MaxBearingY + g.MaxDropY }
func (g Geometry) HalfWidth() float32  { return 0.5 * g.Width() }
func (g Geometry) HalfHeight() float32 { return 0.5 * g.Height() }

func (g Geometry) scaled(s float32) Geometry {
	return Geometry{
		TotalAdvance: g.TotalAdvance * s,
		MaxBearingY:  g.MaxBearingY * s,
		MaxDropY:     g.MaxDropY * s,
	}
}
