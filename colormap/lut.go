package colormap

import (
	"image"
	"math"

	fc "github.com/sruffner/figurecomposer-sub001"
)

// LUT is the dense 256-entry color table materialized from a Map by
// piecewise-linear interpolation between consecutive key frames. A LUT is
// immutable; it is built once per Map and cached, so repeated LUT() calls
// on the same map are cheap.
type LUT struct {
	table [256]RGB
}

// LUT returns the map's lookup table, building it on first use.
func (m *Map) LUT() *LUT {
	m.lutOnce.Do(func() {
		m.lut = buildLUT(m.frames)
		fc.Logger().Debug("colormap: LUT built", "map", m.name, "frames", len(m.frames))
	})
	return m.lut
}

// buildLUT fills every table position between consecutive key frames
// (idx0,c0) and (idx1,c1) with round(c0 + (j-idx0)*(c1-c0)/(idx1-idx0))
// per channel. Endpoint positions take the key-frame colors exactly.
func buildLUT(frames []KeyFrame) *LUT {
	l := &LUT{}
	for i := 1; i < len(frames); i++ {
		f0, f1 := frames[i-1], frames[i]
		span := f1.Index - f0.Index
		for j := f0.Index; j <= f1.Index; j++ {
			l.table[j] = RGBOf(
				lerpChannel(f0.Color.R(), f1.Color.R(), j-f0.Index, span),
				lerpChannel(f0.Color.G(), f1.Color.G(), j-f0.Index, span),
				lerpChannel(f0.Color.B(), f1.Color.B(), j-f0.Index, span),
			)
		}
	}
	return l
}

func lerpChannel(c0, c1 uint8, num, den int) uint8 {
	v := float64(c0) + float64(num)*(float64(c1)-float64(c0))/float64(den)
	return uint8(math.Round(v))
}

// Get returns the table entry at index i, clamped to [0, MaxIndex].
// With reversed set, the lookup happens at MaxIndex-i instead, so one
// table serves as two logical ramps without duplicating storage.
func (l *LUT) Get(i int, reversed bool) RGB {
	if i < 0 {
		i = 0
	} else if i > MaxIndex {
		i = MaxIndex
	}
	if reversed {
		i = MaxIndex - i
	}
	return l.table[i]
}

// MapIndex maps a real value against the range [min, max] to a table index
// in [0, MaxIndex], clamping out-of-range values. In logarithmic mode the
// same linear formula is applied to log(v), log(min) and log(max); the
// caller is responsible for keeping the range strictly positive in that
// mode, consistent with how axis ranges are validated elsewhere.
func (l *LUT) MapIndex(v, min, max float64, logScale bool) int {
	if logScale {
		v, min, max = math.Log(v), math.Log(min), math.Log(max)
	}
	t := math.Round(MaxIndex * (v - min) / (max - min))
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > MaxIndex {
		return MaxIndex
	}
	return int(t)
}

// MapColor maps a value to its table color, combining MapIndex and Get.
func (l *LUT) MapColor(v, min, max float64, logScale, reversed bool) RGB {
	return l.Get(l.MapIndex(v, min, max, logScale), reversed)
}

// Image renders the ramp as a horizontal color-bar strip of the given
// size, low values on the left (or right when reversed). Used by legend
// and color-bar presentation code.
func (l *LUT) Image(w, h int, reversed bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		idx := 0
		if w > 1 {
			idx = MaxIndex * x / (w - 1)
		}
		c := l.Get(idx, reversed).Color()
		for y := 0; y < h; y++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
