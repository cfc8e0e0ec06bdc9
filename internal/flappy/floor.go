package flappy

// FloorTileWidth is the width of one repeating floor segment.
const FloorTileWidth = 672

// Floor is the cosmetic scrolling ground made of two tiled segments.
type Floor struct {
	Y        int
	X1, X2   float64
	velocity float64
}

// NewFloor creates a floor at y scrolling at the obstacle velocity.
func NewFloor(y int, velocity float64) Floor {
	return Floor{
		Y:        y,
		X1:       0,
		X2:       FloorTileWidth,
		velocity: velocity,
	}
}

// Advance scrolls both segments and wraps the one that left the field.
func (f *Floor) Advance() {
	f.X1 -= f.velocity
	f.X2 -= f.velocity

	if f.X1+FloorTileWidth < 0 {
		f.X1 = f.X2 + FloorTileWidth
	}
	if f.X2+FloorTileWidth < 0 {
		f.X2 = f.X1 + FloorTileWidth
	}
}
