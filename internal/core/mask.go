package core

// Mask is a bitmap silhouette used for overlap tests at sub-rectangle precision.
// A set bit marks a solid pixel; bit (x, y) is stored row-major.
type Mask struct {
	w, h int
	bits []uint64
}

// NewMask creates an empty mask of the given size.
func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Mask{
		w:    w,
		h:    h,
		bits: make([]uint64, (w*h+63)/64),
	}
}

// SolidMask returns a mask with every pixel set.
func SolidMask(w, h int) *Mask {
	m := NewMask(w, h)
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			m.Set(x, y)
		}
	}
	return m
}

// EllipseMask returns a mask with the ellipse inscribed in a w×h box set.
func EllipseMask(w, h int) *Mask {
	m := NewMask(w, h)
	if w == 0 || h == 0 {
		return m
	}
	rx := float64(w) / 2
	ry := float64(h) / 2
	for y := 0; y < h; y++ {
		dy := (float64(y) + 0.5 - ry) / ry
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - rx) / rx
			if dx*dx+dy*dy <= 1 {
				m.Set(x, y)
			}
		}
	}
	return m
}

// Width returns the mask width.
func (m *Mask) Width() int { return m.w }

// Height returns the mask height.
func (m *Mask) Height() int { return m.h }

// Bounds returns the mask area anchored at the origin.
func (m *Mask) Bounds() Rect {
	return NewRect(0, 0, m.w, m.h)
}

// Set marks a pixel as solid. Out-of-bounds coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return
	}
	i := y*m.w + x
	m.bits[i/64] |= 1 << (uint(i) % 64)
}

// Get reports whether a pixel is solid. Out-of-bounds pixels are empty.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || x >= m.w || y < 0 || y >= m.h {
		return false
	}
	i := y*m.w + x
	return m.bits[i/64]&(1<<(uint(i)%64)) != 0
}

// Count returns the number of solid pixels.
func (m *Mask) Count() int {
	n := 0
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.Get(x, y) {
				n++
			}
		}
	}
	return n
}

// Overlap reports whether this mask and other share a solid pixel when other is
// placed at offset (dx, dy) relative to this mask's origin.
func (m *Mask) Overlap(other *Mask, dx, dy int) bool {
	area := m.Bounds().Intersection(other.Bounds().Translate(dx, dy))
	if area.Empty() {
		return false
	}
	for y := area.Y; y < area.Bottom(); y++ {
		for x := area.X; x < area.Right(); x++ {
			if m.Get(x, y) && other.Get(x-dx, y-dy) {
				return true
			}
		}
	}
	return false
}
