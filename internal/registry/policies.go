package registry

import "github.com/vovakirdan/neuroflap/internal/flappy"

func init() {
	Register("never", "never jumps; falls to the floor", func() flappy.Controller {
		return Constant(0)
	})
	Register("always", "jumps every tick; leaves through the top", func() flappy.Controller {
		return Constant(1)
	})
	Register("cadence", "jumps every 12 ticks regardless of obstacles", func() flappy.Controller {
		return NewCadence(12)
	})
	Register("gap", "jumps when close to the bottom barrier of the gap", func() flappy.Controller {
		return Gap{Threshold: 85, GapSize: 200}
	})
}

// Constant always returns the same decision.
type Constant float64

// Activate returns the constant decision.
func (c Constant) Activate([]float64) ([]float64, error) {
	return []float64{float64(c)}, nil
}

// Cadence jumps once every Period activations.
type Cadence struct {
	Period int
	count  int
}

// NewCadence creates a cadence controller with the given period.
func NewCadence(period int) *Cadence {
	return &Cadence{Period: period}
}

// Activate counts ticks since the last jump and jumps when Period is reached.
func (c *Cadence) Activate([]float64) ([]float64, error) {
	c.count++
	if c.count >= c.Period {
		c.count = 0
		return []float64{1}, nil
	}
	return []float64{0}, nil
}

// Gap jumps while the agent is within Threshold above the bottom barrier or
// already below it. GapSize tells "below the bottom barrier" apart from
// "above the gap center" using the two distance observations.
type Gap struct {
	Threshold float64
	GapSize   float64
}

// Activate reads [y, |y - gapCenter|, |y - bottom|].
func (g Gap) Activate(obs []float64) ([]float64, error) {
	if len(obs) < 3 {
		return []float64{0}, nil
	}
	toCenter, toBottom := obs[1], obs[2]
	below := toCenter-toBottom >= g.GapSize-1
	if toBottom < g.Threshold || below {
		return []float64{1}, nil
	}
	return []float64{0}, nil
}
