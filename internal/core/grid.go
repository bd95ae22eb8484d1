package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Size reports the grid dimensions.
func (g *ByteGrid) Size() Size { return Size{W: g.W, H: g.H} }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// At returns the value stored at (x, y).
func (g *ByteGrid) At(x, y int) uint8 { return g.data[g.Index(x, y)] }

// Count tallies how many cells hold each value.
func (g *ByteGrid) Count() map[uint8]int {
	counts := make(map[uint8]int)
	for _, v := range g.data {
		counts[v]++
	}
	return counts
}

// FloatGrid stores a 2D grid of float64 values in row-major order.
type FloatGrid struct {
	W, H int
	data []float64
}

// NewFloatGrid allocates a zeroed grid with the given dimensions.
func NewFloatGrid(w, h int) *FloatGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &FloatGrid{W: w, H: h, data: make([]float64, w*h)}
}

// Values exposes the backing slice.
func (g *FloatGrid) Values() []float64 { return g.data }

// Size reports the grid dimensions.
func (g *FloatGrid) Size() Size { return Size{W: g.W, H: g.H} }

// Index returns the linear slice index for coordinates (x, y).
func (g *FloatGrid) Index(x, y int) int { return y*g.W + x }

// At returns the value stored at (x, y).
func (g *FloatGrid) At(x, y int) float64 { return g.data[g.Index(x, y)] }

// Set stores v at (x, y).
func (g *FloatGrid) Set(x, y int, v float64) { g.data[g.Index(x, y)] = v }

// Clone returns an independent copy of the grid.
func (g *FloatGrid) Clone() *FloatGrid {
	out := &FloatGrid{W: g.W, H: g.H, data: make([]float64, len(g.data))}
	copy(out.data, g.data)
	return out
}
