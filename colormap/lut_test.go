package colormap

import (
	"bytes"
	"log/slog"
	"math"
	"strings"
	"testing"

	fc "github.com/sruffner/figurecomposer-sub001"
)

func TestLUT_EndpointExactness(t *testing.T) {
	for _, m := range Builtins() {
		lut := m.LUT()
		first := m.Frame(0).Color
		last := m.Frame(m.FrameCount() - 1).Color
		if got := lut.Get(0, false); got != first {
			t.Errorf("%s: Get(0) = %06X, want %06X", m.Name(), uint32(got), uint32(first))
		}
		if got := lut.Get(255, false); got != last {
			t.Errorf("%s: Get(255) = %06X, want %06X", m.Name(), uint32(got), uint32(last))
		}
		// Every key frame lands exactly on its color.
		for i := 0; i < m.FrameCount(); i++ {
			f := m.Frame(i)
			if got := lut.Get(f.Index, false); got != f.Color {
				t.Errorf("%s: Get(%d) = %06X, want key frame color %06X",
					m.Name(), f.Index, uint32(got), uint32(f.Color))
			}
		}
	}
}

func TestLUT_GrayScenario(t *testing.T) {
	lut := Gray.LUT()
	if got := lut.Get(0, false); got != 0x000000 {
		t.Errorf("gray Get(0) = %06X, want black", uint32(got))
	}
	if got := lut.Get(255, false); got != 0xFFFFFF {
		t.Errorf("gray Get(255) = %06X, want white", uint32(got))
	}
	mid := lut.Get(128, false)
	if mid.R() != mid.G() || mid.G() != mid.B() {
		t.Errorf("gray Get(128) = %06X, want equal channels", uint32(mid))
	}
	if mid.R() == 0 || mid.R() == 255 {
		t.Errorf("gray Get(128) = %06X, want a mid gray", uint32(mid))
	}
}

func TestLUT_ReverseSymmetry(t *testing.T) {
	lut := Jet.LUT()
	for i := 0; i <= 255; i++ {
		if lut.Get(i, true) != lut.Get(255-i, false) {
			t.Fatalf("Get(%d, true) != Get(%d, false)", i, 255-i)
		}
	}
}

func TestLUT_Clamping(t *testing.T) {
	lut := Hot.LUT()
	if lut.Get(-10, false) != lut.Get(0, false) {
		t.Error("negative index must clamp to 0")
	}
	if lut.Get(1000, false) != lut.Get(255, false) {
		t.Error("large index must clamp to 255")
	}
	if lut.Get(-10, true) != lut.Get(255, false) {
		t.Error("negative reversed index must clamp to the far end")
	}
}

func TestLUT_MonotonicInterpolation(t *testing.T) {
	for _, m := range Builtins() {
		lut := m.LUT()
		for i := 1; i < m.FrameCount(); i++ {
			f0, f1 := m.Frame(i-1), m.Frame(i)
			checkMonotonic(t, m.Name(), "R", lut, f0.Index, f1.Index,
				func(c RGB) uint8 { return c.R() }, f0.Color.R() <= f1.Color.R())
			checkMonotonic(t, m.Name(), "G", lut, f0.Index, f1.Index,
				func(c RGB) uint8 { return c.G() }, f0.Color.G() <= f1.Color.G())
			checkMonotonic(t, m.Name(), "B", lut, f0.Index, f1.Index,
				func(c RGB) uint8 { return c.B() }, f0.Color.B() <= f1.Color.B())
		}
	}
}

func checkMonotonic(t *testing.T, name, ch string, lut *LUT, i0, i1 int, get func(RGB) uint8, rising bool) {
	t.Helper()
	for j := i0 + 1; j <= i1; j++ {
		prev, cur := get(lut.Get(j-1, false)), get(lut.Get(j, false))
		if rising && cur < prev {
			t.Fatalf("%s %s: decreasing at %d (%d -> %d)", name, ch, j, prev, cur)
		}
		if !rising && cur > prev {
			t.Fatalf("%s %s: increasing at %d (%d -> %d)", name, ch, j, prev, cur)
		}
	}
}

func TestLUT_Cached(t *testing.T) {
	m := mustNew(t, "cached", ramp)
	if m.LUT() != m.LUT() {
		t.Error("LUT() must return the same cached table for one map")
	}
	if Gray.LUT() != Gray.LUT() {
		t.Error("built-in LUT not cached")
	}
}

func TestLUT_BuildLogsDebug(t *testing.T) {
	t.Cleanup(func() { fc.SetLogger(nil) })

	var buf bytes.Buffer
	fc.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	m := mustNew(t, "logged", ramp)
	m.LUT()
	if !strings.Contains(buf.String(), "LUT built") {
		t.Errorf("first LUT() emitted no debug record: %q", buf.String())
	}

	// The cached path stays silent.
	buf.Reset()
	m.LUT()
	if buf.Len() != 0 {
		t.Errorf("cached LUT() logged again: %q", buf.String())
	}
}

func TestLUT_MapIndex(t *testing.T) {
	lut := Gray.LUT()
	tests := []struct {
		name     string
		v        float64
		min, max float64
		log      bool
		want     int
	}{
		{"at min", 0, 0, 10, false, 0},
		{"at max", 10, 0, 10, false, 255},
		{"midpoint", 5, 0, 10, false, 128},
		{"quarter", 2.5, 0, 10, false, 64},
		{"below range clamps", -5, 0, 10, false, 0},
		{"above range clamps", 50, 0, 10, false, 255},
		{"log at min", 1, 1, 100, true, 0},
		{"log at max", 100, 1, 100, true, 255},
		{"log geometric midpoint", 10, 1, 100, true, 128},
		{"log below range clamps", 0.5, 1, 100, true, 0},
		{"nan maps to zero", math.NaN(), 0, 10, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lut.MapIndex(tt.v, tt.min, tt.max, tt.log); got != tt.want {
				t.Errorf("MapIndex(%v, %v, %v, %v) = %d, want %d",
					tt.v, tt.min, tt.max, tt.log, got, tt.want)
			}
		})
	}
}

func TestLUT_MapColor(t *testing.T) {
	lut := Gray.LUT()
	if got := lut.MapColor(10, 0, 10, false, false); got != 0xFFFFFF {
		t.Errorf("MapColor at max = %06X, want white", uint32(got))
	}
	if got := lut.MapColor(10, 0, 10, false, true); got != 0x000000 {
		t.Errorf("reversed MapColor at max = %06X, want black", uint32(got))
	}
}

func TestLUT_Image(t *testing.T) {
	img := Gray.LUT().Image(256, 4, false)
	if img.Bounds().Dx() != 256 || img.Bounds().Dy() != 4 {
		t.Fatalf("Image bounds = %v", img.Bounds())
	}
	left := img.RGBAAt(0, 0)
	right := img.RGBAAt(255, 0)
	if left.R != 0 || right.R != 255 {
		t.Errorf("Image ends = %v .. %v, want black..white", left, right)
	}
}
