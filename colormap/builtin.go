package colormap

// The built-in maps: a grayscale ramp plus the perceptually-oriented ramps
// offered by the figure editor. They are constructed once at init and never
// change; user maps can neither reuse their names nor reproduce their exact
// key-frame sequences.
var (
	Gray = newBuiltin("gray", []KeyFrame{
		{0, 0x000000}, {255, 0xFFFFFF},
	})
	Hot = newBuiltin("hot", []KeyFrame{
		{0, 0x000000}, {96, 0xFF0000}, {192, 0xFFFF00}, {255, 0xFFFFFF},
	})
	Cool = newBuiltin("cool", []KeyFrame{
		{0, 0x00FFFF}, {255, 0xFF00FF},
	})
	Autumn = newBuiltin("autumn", []KeyFrame{
		{0, 0xFF0000}, {255, 0xFFFF00},
	})
	Winter = newBuiltin("winter", []KeyFrame{
		{0, 0x0000FF}, {255, 0x00FF80},
	})
	Spring = newBuiltin("spring", []KeyFrame{
		{0, 0xFF00FF}, {255, 0xFFFF00},
	})
	Summer = newBuiltin("summer", []KeyFrame{
		{0, 0x008066}, {255, 0xFFFF66},
	})
	Copper = newBuiltin("copper", []KeyFrame{
		{0, 0x000000}, {255, 0xFFC77F},
	})
	Bone = newBuiltin("bone", []KeyFrame{
		{0, 0x000000}, {96, 0x515C74}, {192, 0xA3C7C7}, {255, 0xFFFFFF},
	})
	Pink = newBuiltin("pink", []KeyFrame{
		{0, 0x3C0000}, {128, 0xC48E8E}, {255, 0xFFFFFF},
	})
	Jet = newBuiltin("jet", []KeyFrame{
		{0, 0x00008F}, {31, 0x0000FF}, {95, 0x00FFFF},
		{159, 0xFFFF00}, {223, 0xFF0000}, {255, 0x8F0000},
	})
	HSV = newBuiltin("hsv", []KeyFrame{
		{0, 0xFF0000}, {43, 0xFFFF00}, {85, 0x00FF00}, {128, 0x00FFFF},
		{170, 0x0000FF}, {213, 0xFF00FF}, {255, 0xFF0000},
	})
	Viridis = newBuiltin("viridis", []KeyFrame{
		{0, 0x440154}, {64, 0x3B528B}, {128, 0x21918C},
		{192, 0x5EC962}, {255, 0xFDE725},
	})
	Turbo = newBuiltin("turbo", []KeyFrame{
		{0, 0x30123B}, {64, 0x1FC9DD}, {128, 0xA2FC3C},
		{192, 0xF36315}, {255, 0x7A0403},
	})
)

// builtins is the static registry, in presentation order.
var builtins = []*Map{
	Gray, Hot, Cool, Autumn, Winter, Spring, Summer,
	Copper, Bone, Pink, Jet, HSV, Viridis, Turbo,
}

// builtinByName indexes the registry for Lookup.
var builtinByName = func() map[string]*Map {
	byName := make(map[string]*Map, len(builtins))
	for _, m := range builtins {
		byName[m.name] = m
	}
	return byName
}()

// Builtins returns the built-in maps in presentation order.
// The returned slice is a copy; the maps themselves are shared and immutable.
func Builtins() []*Map {
	out := make([]*Map, len(builtins))
	copy(out, builtins)
	return out
}

// Lookup finds a built-in map by name.
func Lookup(name string) (*Map, bool) {
	m, ok := builtinByName[name]
	return m, ok
}
