package flappy

// Controller decides whether an agent jumps.
// Activate receives [y, |y - gapCenter|, |y - bottom|] for the active obstacle;
// element 0 of the result is read as a decision in [0, 1].
type Controller interface {
	Activate(observations []float64) ([]float64, error)
}

// ControllerFunc adapts a plain function to the Controller interface.
type ControllerFunc func(observations []float64) ([]float64, error)

// Activate calls f(observations).
func (f ControllerFunc) Activate(observations []float64) ([]float64, error) {
	return f(observations)
}

// Genome is the fitness record the episode writes into.
type Genome interface {
	Fitness() float64
	SetFitness(f float64)
}

// Tally is a minimal Genome for callers without an evolutionary record,
// such as human play and policy replays.
type Tally struct {
	Value float64
}

// Fitness returns the accumulated value.
func (t *Tally) Fitness() float64 { return t.Value }

// SetFitness replaces the accumulated value.
func (t *Tally) SetFitness(f float64) { t.Value = f }

// Contestant binds one controller to the genome that receives its fitness.
type Contestant struct {
	ID         int
	Controller Controller
	Genome     Genome
}

func addFitness(g Genome, delta float64) {
	g.SetFitness(g.Fitness() + delta)
}
