package fitness

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/neuroflap/internal/config"
	"github.com/vovakirdan/neuroflap/internal/flappy"
)

// policyGenome carries a fixed jump decision for the factory to read.
type policyGenome struct {
	flappy.Tally
	jump   bool
	broken bool
}

func factory(g flappy.Genome) (flappy.Controller, error) {
	pg := g.(*policyGenome)
	if pg.broken {
		return nil, errors.New("no phenotype")
	}
	out := 0.0
	if pg.jump {
		out = 1
	}
	return flappy.ControllerFunc(func([]float64) ([]float64, error) {
		return []float64{out}, nil
	}), nil
}

func newEvaluator(seed int64) *Evaluator {
	return NewEvaluator(config.DefaultSimConfig(), rand.New(rand.NewSource(seed)), nil)
}

func TestEvaluateResetsAndScores(t *testing.T) {
	never := &policyGenome{Tally: flappy.Tally{Value: 42}}
	always := &policyGenome{Tally: flappy.Tally{Value: -3}, jump: true}

	res, err := newEvaluator(1).Evaluate(context.Background(), []Entry{
		{ID: 10, Genome: never},
		{ID: 11, Genome: always},
	}, factory)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if res.State != flappy.StateExtinct {
		t.Errorf("state = %v, want extinct", res.State)
	}
	if res.Flown != 2 {
		t.Errorf("flown = %d, want 2", res.Flown)
	}
	if math.Abs(never.Value-2.4) > 1e-9 {
		t.Errorf("never fitness = %v, want 2.4", never.Value)
	}
	if always.Value <= never.Value {
		t.Errorf("always fitness = %v, want more than %v", always.Value, never.Value)
	}
	if res.BestID != 11 || res.BestFitness != always.Value {
		t.Errorf("best = %d (%v), want 11 (%v)", res.BestID, res.BestFitness, always.Value)
	}
}

func TestEvaluateSkipsUnbuildableGenomes(t *testing.T) {
	broken := &policyGenome{Tally: flappy.Tally{Value: 9}, broken: true}
	ok := &policyGenome{}

	res, err := newEvaluator(1).Evaluate(context.Background(), []Entry{
		{ID: 0, Genome: broken},
		{ID: 1, Genome: ok},
	}, factory)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if res.BuildFailures != 1 || res.Flown != 1 {
		t.Errorf("failures = %d, flown = %d, want 1, 1", res.BuildFailures, res.Flown)
	}
	if broken.Value != 0 {
		t.Errorf("broken genome fitness = %v, want 0", broken.Value)
	}
	if ok.Value == 0 {
		t.Error("buildable genome was not evaluated")
	}
}

func TestEvaluateEmptyPopulation(t *testing.T) {
	res, err := newEvaluator(1).Evaluate(context.Background(), nil, factory)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if res.State != flappy.StateExtinct || res.Ticks != 0 || res.Score != 0 {
		t.Errorf("result = %+v, want extinct at tick 0", res)
	}
	if res.BestID != -1 {
		t.Errorf("best id = %d, want -1", res.BestID)
	}
}

func TestEvaluateInterrupted(t *testing.T) {
	g := &policyGenome{Tally: flappy.Tally{Value: 5}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newEvaluator(1).Evaluate(ctx, []Entry{{ID: 0, Genome: g}}, factory)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Evaluate() error = %v, want context.Canceled", err)
	}
	if res.State != flappy.StateInterrupted {
		t.Errorf("state = %v, want interrupted", res.State)
	}
	if g.Value != 0 {
		t.Errorf("fitness = %v, want 0 after reset", g.Value)
	}
}

func TestEvaluateDeterministicPerSeed(t *testing.T) {
	run := func() Result {
		ev := newEvaluator(5)
		var res Result
		for i := 0; i < 3; i++ {
			r, err := ev.Evaluate(context.Background(), []Entry{
				{ID: 0, Genome: &policyGenome{jump: true}},
				{ID: 1, Genome: &policyGenome{}},
			}, factory)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			res = r
		}
		return res
	}

	if a, b := run(), run(); a != b {
		t.Errorf("results differ: %+v vs %+v", a, b)
	}
}
