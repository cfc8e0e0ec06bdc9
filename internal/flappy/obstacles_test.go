package flappy

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/neuroflap/internal/config"
	"github.com/vovakirdan/neuroflap/internal/core"
)

func TestGapIsConstant(t *testing.T) {
	cfg := config.DefaultSimConfig().Obstacles
	f := NewObstacleFactory(cfg, rand.New(rand.NewSource(1)))

	for center := cfg.MinGapCenter; center < cfg.MaxGapCenter; center++ {
		o := f.At(700, center)
		if o.Gap() != 200 {
			t.Fatalf("center %d: gap = %d, want 200", center, o.Gap())
		}
		if o.Top != center-cfg.BarrierHeight {
			t.Fatalf("center %d: top = %d, want %d", center, o.Top, center-cfg.BarrierHeight)
		}
	}
}

func TestFactoryDrawsInRange(t *testing.T) {
	cfg := config.DefaultSimConfig().Obstacles
	f := NewObstacleFactory(cfg, rand.New(rand.NewSource(7)))

	for i := 0; i < 1000; i++ {
		o := f.New(600)
		if o.GapCenter < cfg.MinGapCenter || o.GapCenter >= cfg.MaxGapCenter {
			t.Fatalf("gap center %d outside [%d, %d)", o.GapCenter, cfg.MinGapCenter, cfg.MaxGapCenter)
		}
		if o.Gap() != cfg.Gap {
			t.Fatalf("gap = %d, want %d", o.Gap(), cfg.Gap)
		}
	}
}

func TestFactoryDeterministic(t *testing.T) {
	cfg := config.DefaultSimConfig().Obstacles
	f1 := NewObstacleFactory(cfg, rand.New(rand.NewSource(42)))
	f2 := NewObstacleFactory(cfg, rand.New(rand.NewSource(42)))

	for i := 0; i < 50; i++ {
		a, b := f1.New(600), f2.New(600)
		if a.GapCenter != b.GapCenter {
			t.Fatalf("draw %d: %d != %d", i, a.GapCenter, b.GapCenter)
		}
	}
}

func TestObstacleAdvance(t *testing.T) {
	cfg := config.DefaultSimConfig().Obstacles
	o := NewObstacleFactory(cfg, rand.New(rand.NewSource(1))).At(700, 250)

	o.Advance()
	if o.X != 695 {
		t.Errorf("X = %v, want 695", o.X)
	}
	if o.Right() != 799 {
		t.Errorf("Right = %v, want 799", o.Right())
	}
}

func TestCollidesWith(t *testing.T) {
	sim := config.DefaultSimConfig()
	f := NewObstacleFactory(sim.Obstacles, rand.New(rand.NewSource(1)))
	box := core.SolidMask(sim.Agent.Width, sim.Agent.Height)
	ellipse := core.EllipseMask(sim.Agent.Width, sim.Agent.Height)
	phys := PhysicsFromConfig(sim.Agent)

	tests := []struct {
		name       string
		obstacleX  float64
		agentY     float64
		silhouette *core.Mask
		want       bool
	}{
		{"far right", 700, 300, box, false},
		{"inside gap", 230, 300, box, false},
		{"hits top barrier", 230, 240, box, true},
		{"hits bottom barrier", 230, 420, box, true},
		{"touching bottom edge", 230, 403, box, true},
		{"clear of bottom edge", 230, 402, box, false},
		{"half pixel rounds to even and clears", 230, 402.5, box, false},
		{"half pixel rounds to even and touches", 230, 403.5, box, true},
		{"just past obstacle", 230 - 104, 100, box, false},
		{"corner only box", 297, 240, box, true},
		{"corner only ellipse", 297, 240, ellipse, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := f.At(tt.obstacleX, 250)
			a := NewAgent(230, tt.agentY, phys)
			if got := o.CollidesWith(a, tt.silhouette); got != tt.want {
				t.Errorf("CollidesWith() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCollisionDeterministic(t *testing.T) {
	sim := config.DefaultSimConfig()
	f := NewObstacleFactory(sim.Obstacles, rand.New(rand.NewSource(1)))
	silhouette := Silhouette(sim.Agent)
	phys := PhysicsFromConfig(sim.Agent)

	for x := 100.0; x < 320; x += 5 {
		for y := 150.0; y < 480; y += 7 {
			o := f.At(x, 250)
			a := NewAgent(230, y, phys)
			first := o.CollidesWith(a, silhouette)
			for i := 0; i < 3; i++ {
				if o.CollidesWith(a, silhouette) != first {
					t.Fatalf("x=%v y=%v: result changed between calls", x, y)
				}
			}
		}
	}
}

func TestBarrierRects(t *testing.T) {
	cfg := config.DefaultSimConfig().Obstacles
	o := NewObstacleFactory(cfg, rand.New(rand.NewSource(1))).At(412.5, 250)

	// X rounds half to even.
	if got, want := o.TopRect(), core.NewRect(412, -390, 104, 640); got != want {
		t.Errorf("TopRect() = %+v, want %+v", got, want)
	}
	if got, want := o.BottomRect(), core.NewRect(412, 450, 104, 640); got != want {
		t.Errorf("BottomRect() = %+v, want %+v", got, want)
	}
	if o.TopRect().Bottom() != o.GapCenter || o.BottomRect().Y-o.TopRect().Bottom() != cfg.Gap {
		t.Error("barrier rects do not frame the gap")
	}
}
