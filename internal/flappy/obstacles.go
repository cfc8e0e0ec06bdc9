package flappy

import (
	"math/rand"

	"github.com/vovakirdan/neuroflap/internal/config"
	"github.com/vovakirdan/neuroflap/internal/core"
)

// Obstacle is a top/bottom barrier pair with a fixed vertical gap.
type Obstacle struct {
	X         float64 // Left edge, decreases every tick
	GapCenter int     // Y where the top barrier ends
	Top       int     // Y of the top barrier's upper edge
	Bottom    int     // Y where the bottom barrier starts
	Passed    bool    // Set once an agent has flown past X

	width    int
	velocity float64
	top      *core.Mask
	bottom   *core.Mask
}

// Advance scrolls the obstacle left by its velocity.
func (o *Obstacle) Advance() {
	o.X -= o.velocity
}

// Width returns the barrier width.
func (o *Obstacle) Width() int {
	return o.width
}

// Right returns the x-coordinate of the right edge.
func (o *Obstacle) Right() float64 {
	return o.X + float64(o.width)
}

// Gap returns the opening between the top barrier and the bottom barrier.
func (o *Obstacle) Gap() int {
	return o.Bottom - o.GapCenter
}

// TopRect returns the bounds of the top barrier.
func (o *Obstacle) TopRect() core.Rect {
	return core.NewRect(core.Round(o.X), o.Top, o.width, o.top.Height())
}

// BottomRect returns the bounds of the bottom barrier.
func (o *Obstacle) BottomRect() core.Rect {
	return core.NewRect(core.Round(o.X), o.Bottom, o.width, o.bottom.Height())
}

// CollidesWith reports whether the agent's silhouette overlaps either barrier.
// The result depends only on the two positions and silhouettes.
func (o *Obstacle) CollidesWith(a *Agent, silhouette *core.Mask) bool {
	dx := core.Round(o.X) - a.X
	ay := a.RoundedY()
	if silhouette.Overlap(o.top, dx, o.Top-ay) {
		return true
	}
	return silhouette.Overlap(o.bottom, dx, o.Bottom-ay)
}

// ObstacleFactory creates obstacles with gap positions drawn from an injected source.
type ObstacleFactory struct {
	rng    *rand.Rand
	cfg    config.ObstacleConfig
	top    *core.Mask
	bottom *core.Mask
}

// NewObstacleFactory creates a factory drawing from rng.
func NewObstacleFactory(cfg config.ObstacleConfig, rng *rand.Rand) *ObstacleFactory {
	barrier := core.SolidMask(cfg.Width, cfg.BarrierHeight)
	return &ObstacleFactory{
		rng:    rng,
		cfg:    cfg,
		top:    barrier,
		bottom: barrier,
	}
}

// New creates an obstacle at x with a gap center in [MinGapCenter, MaxGapCenter).
func (f *ObstacleFactory) New(x float64) *Obstacle {
	center := f.cfg.MinGapCenter + f.rng.Intn(f.cfg.MaxGapCenter-f.cfg.MinGapCenter)
	return f.At(x, center)
}

// At creates an obstacle with a fixed gap center, bypassing the random source.
func (f *ObstacleFactory) At(x float64, gapCenter int) *Obstacle {
	return &Obstacle{
		X:         x,
		GapCenter: gapCenter,
		Top:       gapCenter - f.top.Height(),
		Bottom:    gapCenter + f.cfg.Gap,
		width:     f.cfg.Width,
		velocity:  f.cfg.Velocity,
		top:       f.top,
		bottom:    f.bottom,
	}
}
