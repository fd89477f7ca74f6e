// Package colormap implements the color-map and lookup-table subsystem of
// the surface rendering core: immutable maps defined by 2-10 key frames,
// a dense 256-entry LUT materialized from each map, and the value-to-color
// mapping used by color-mapped mesh rendering.
package colormap

import (
	"errors"
	"fmt"
	"hash/fnv"
	"image/color"
	"strconv"
	"strings"
	"sync"
)

// Key-frame structural limits. A map has at least MinFrames and at most
// MaxFrames control points, with the first pinned to index 0 and the last
// to MaxIndex.
const (
	MinFrames = 2
	MaxFrames = 10
	MaxIndex  = 255
)

var (
	// ErrName indicates an empty name or a name with characters outside
	// [A-Za-z0-9_].
	ErrName = errors.New("colormap: invalid name")

	// ErrFrames indicates a key-frame sequence that violates the
	// structural invariants (count, endpoints, strict ascending order).
	ErrFrames = errors.New("colormap: invalid key frames")

	// ErrDuplicate indicates a definition that collides with a built-in
	// map, either by name or by exact key-frame content.
	ErrDuplicate = errors.New("colormap: duplicates a built-in map")

	// ErrEncoding indicates a persisted form that cannot be parsed.
	ErrEncoding = errors.New("colormap: malformed encoding")
)

// RGB is a packed opaque color, 0xRRGGBB in the low 24 bits.
type RGB uint32

// RGBOf packs three 8-bit channels into an RGB value.
func RGBOf(r, g, b uint8) RGB {
	return RGB(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// R returns the red channel.
func (c RGB) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c RGB) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c RGB) B() uint8 { return uint8(c) }

// Color converts the packed value to a fully opaque color.RGBA.
func (c RGB) Color() color.RGBA {
	return color.RGBA{R: c.R(), G: c.G(), B: c.B(), A: 0xFF}
}

// KeyFrame is one control point of a color map: a LUT index in [0, MaxIndex]
// and the opaque color pinned at that index.
type KeyFrame struct {
	Index int
	Color RGB
}

// packed encodes the key frame as index<<24 | RGB, the persisted form.
func (f KeyFrame) packed() uint32 {
	return uint32(f.Index)<<24 | uint32(f.Color)&0xFFFFFF
}

// unpackFrame is the inverse of packed.
func unpackFrame(v uint32) KeyFrame {
	return KeyFrame{Index: int(v >> 24), Color: RGB(v & 0xFFFFFF)}
}

// Map is an immutable color ramp description. All mutating operations
// return a new instance; the zero value is not usable — construct maps
// with New or use one of the built-ins.
type Map struct {
	name   string
	custom bool
	frames []KeyFrame

	lutOnce sync.Once
	lut     *LUT
}

// New creates a validated custom map. It fails if the name is empty or
// contains characters outside [A-Za-z0-9_], the key frames violate the
// structural invariants, or the definition duplicates a built-in map by
// name or by exact key-frame content. Key-frame colors are masked to
// their low 24 bits, so duplicate detection and the persisted form see
// the same values the map stores.
func New(name string, frames []KeyFrame) (*Map, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %q", ErrName, name)
	}
	if err := validateFrames(frames); err != nil {
		return nil, err
	}
	if _, ok := Lookup(name); ok {
		return nil, fmt.Errorf("%w: name %q", ErrDuplicate, name)
	}
	frames = cloneFrames(frames)
	for i := range frames {
		frames[i].Color &= 0xFFFFFF
	}
	for _, b := range builtins {
		if framesEqual(b.frames, frames) {
			return nil, fmt.Errorf("%w: same key frames as %q", ErrDuplicate, b.name)
		}
	}
	return &Map{name: name, custom: true, frames: frames}, nil
}

// newBuiltin constructs a built-in map at init time, bypassing the
// duplicate checks that only apply to user definitions.
func newBuiltin(name string, frames []KeyFrame) *Map {
	if !validName(name) {
		panic("colormap: bad built-in name " + name)
	}
	if err := validateFrames(frames); err != nil {
		panic("colormap: bad built-in " + name + ": " + err.Error())
	}
	return &Map{name: name, frames: cloneFrames(frames)}
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case 'A' <= c && c <= 'Z':
		case 'a' <= c && c <= 'z':
		case '0' <= c && c <= '9':
		case c == '_':
		default:
			return false
		}
	}
	return true
}

func validateFrames(frames []KeyFrame) error {
	if len(frames) < MinFrames || len(frames) > MaxFrames {
		return fmt.Errorf("%w: %d frames", ErrFrames, len(frames))
	}
	if frames[0].Index != 0 {
		return fmt.Errorf("%w: first index %d != 0", ErrFrames, frames[0].Index)
	}
	if frames[len(frames)-1].Index != MaxIndex {
		return fmt.Errorf("%w: last index %d != %d", ErrFrames, frames[len(frames)-1].Index, MaxIndex)
	}
	for i := 1; i < len(frames); i++ {
		if frames[i].Index <= frames[i-1].Index {
			return fmt.Errorf("%w: indices not strictly ascending at %d", ErrFrames, i)
		}
	}
	return nil
}

func cloneFrames(frames []KeyFrame) []KeyFrame {
	out := make([]KeyFrame, len(frames))
	copy(out, frames)
	return out
}

func framesEqual(a, b []KeyFrame) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Name returns the map's identifier.
func (m *Map) Name() string { return m.name }

// IsCustom reports whether the map is user-defined (as opposed to one of
// the built-in maps).
func (m *Map) IsCustom() bool { return m.custom }

// FrameCount returns the number of key frames.
func (m *Map) FrameCount() int { return len(m.frames) }

// Frame returns the key frame at pos. It panics if pos is out of range.
func (m *Map) Frame(pos int) KeyFrame { return m.frames[pos] }

// Frames returns a copy of the key-frame sequence.
func (m *Map) Frames() []KeyFrame { return cloneFrames(m.frames) }

// Equal reports whether two maps have identical key-frame sequences.
// Names are excluded, so a custom map that reproduces a built-in's ramp
// compares equal to it.
func (m *Map) Equal(other *Map) bool {
	if m == nil || other == nil {
		return m == other
	}
	return framesEqual(m.frames, other.frames)
}

// Hash returns a hash over the key-frame sequence, consistent with Equal.
func (m *Map) Hash() uint32 {
	h := fnv.New32a()
	var buf [4]byte
	for _, f := range m.frames {
		v := f.packed()
		buf[0] = byte(v >> 24)
		buf[1] = byte(v >> 16)
		buf[2] = byte(v >> 8)
		buf[3] = byte(v)
		h.Write(buf[:])
	}
	return h.Sum32()
}

// WithFrameIndex returns a map with the key frame at pos moved to index idx.
// The first and last frames are pinned at 0 and MaxIndex, and an interior
// move must preserve strict ascending order with both neighbors; any
// violation (or an out-of-range pos) returns the original map.
func (m *Map) WithFrameIndex(pos, idx int) *Map {
	if pos <= 0 || pos >= len(m.frames)-1 {
		return m
	}
	if idx <= m.frames[pos-1].Index || idx >= m.frames[pos+1].Index {
		return m
	}
	frames := cloneFrames(m.frames)
	frames[pos].Index = idx
	return &Map{name: m.name, custom: true, frames: frames}
}

// WithFrameColor returns a map with the key frame at pos recolored.
// An out-of-range pos returns the original map.
func (m *Map) WithFrameColor(pos int, c RGB) *Map {
	if pos < 0 || pos >= len(m.frames) {
		return m
	}
	frames := cloneFrames(m.frames)
	frames[pos].Color = c & 0xFFFFFF
	return &Map{name: m.name, custom: true, frames: frames}
}

// WithFrameCount resamples the map to n key frames. The first and last
// frames keep their colors; interior frames are placed at evenly spaced
// indices and take their colors from the current 256-entry LUT. An n
// outside [MinFrames, MaxFrames] (or equal to the current count) returns
// the original map.
func (m *Map) WithFrameCount(n int) *Map {
	if n < MinFrames || n > MaxFrames || n == len(m.frames) {
		return m
	}
	lut := m.LUT()
	frames := make([]KeyFrame, n)
	frames[0] = KeyFrame{Index: 0, Color: m.frames[0].Color}
	frames[n-1] = KeyFrame{Index: MaxIndex, Color: m.frames[len(m.frames)-1].Color}
	for i := 1; i < n-1; i++ {
		idx := (MaxIndex*i + (n-1)/2) / (n - 1)
		frames[i] = KeyFrame{Index: idx, Color: lut.Get(idx, false)}
	}
	return &Map{name: m.name, custom: true, frames: frames}
}

// Rename returns a copy of the map under a new name. The original map is
// returned unchanged if m is a built-in, the name is invalid, or the name
// collides with a built-in's.
func (m *Map) Rename(name string) *Map {
	if !m.custom || !validName(name) {
		return m
	}
	if _, ok := Lookup(name); ok {
		return m
	}
	return &Map{name: name, custom: true, frames: cloneFrames(m.frames)}
}

// String renders the persisted text form: a built-in encodes as just its
// name; a custom map as name[F1 F2 ... Fn] with each frame packed as
// index<<24 | RGB and rendered as 8 upper-case hex digits.
func (m *Map) String() string {
	if !m.custom {
		return m.name
	}
	var sb strings.Builder
	sb.WriteString(m.name)
	sb.WriteByte('[')
	for i, f := range m.frames {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%08X", f.packed())
	}
	sb.WriteByte(']')
	return sb.String()
}

// Parse is the inverse of String. A bare name must match a built-in map;
// the bracketed form is validated exactly as New validates a definition.
func Parse(s string) (*Map, error) {
	open := strings.IndexByte(s, '[')
	if open < 0 {
		m, ok := Lookup(s)
		if !ok {
			return nil, fmt.Errorf("%w: unknown built-in %q", ErrEncoding, s)
		}
		return m, nil
	}
	if !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("%w: missing ']'", ErrEncoding)
	}
	name := s[:open]
	tokens := strings.Fields(s[open+1 : len(s)-1])
	if len(tokens) < MinFrames || len(tokens) > MaxFrames {
		return nil, fmt.Errorf("%w: %d key-frame tokens", ErrEncoding, len(tokens))
	}
	frames := make([]KeyFrame, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseUint(tok, 16, 32)
		if err != nil || len(tok) != 8 {
			return nil, fmt.Errorf("%w: bad hex %q", ErrEncoding, tok)
		}
		frames[i] = unpackFrame(uint32(v))
	}
	return New(name, frames)
}
