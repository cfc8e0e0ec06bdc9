package evolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/yaricom/goNEAT/v4/neat"
	"github.com/yaricom/goNEAT/v4/neat/genetics"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/neuroflap/internal/config"
	"github.com/vovakirdan/neuroflap/internal/fitness"
	"github.com/vovakirdan/neuroflap/internal/flappy"
	"github.com/vovakirdan/neuroflap/internal/storage"
	"github.com/vovakirdan/neuroflap/internal/telemetry"
)

// Recorder persists run history. *storage.Store implements it.
type Recorder interface {
	CreateRun(r storage.Run) error
	FinishRun(id, status string, bestFitness float64, bestScore int) error
	SaveGeneration(g storage.Generation) (int64, error)
	SaveChampion(c storage.Champion) (int64, error)
}

var _ Recorder = (*storage.Store)(nil)

// DriverConfig holds everything a training run needs.
type DriverConfig struct {
	Sim    config.SimConfig
	NEAT   *neat.Options // DefaultOptions when nil
	Seed   int64
	RunID  string // Generated when empty
	Logger *log.Logger

	// Optional sinks.
	Recorder Recorder
	Output   *telemetry.Output
}

// GenerationStats summarises one evaluated generation.
type GenerationStats struct {
	Generation  int
	Best        float64
	Mean        float64
	StdDev      float64
	Min         float64
	Score       int
	Ticks       int
	Species     int
	Faults      int
	State       flappy.State
	Elapsed     time.Duration
	BestGenome  *genetics.Genome
	BuildFailed int
}

// Summary is the outcome of a training run.
type Summary struct {
	RunID       string
	Status      string
	Generations int // Generations evaluated
	BestFitness float64
	BestScore   int
	Champion    *genetics.Genome
}

// Driver runs the generation loop: evaluate, record, advance the epoch.
type Driver struct {
	cfg    DriverConfig
	opts   *neat.Options
	logger *log.Logger

	// OnGeneration is called after every generation is recorded.
	OnGeneration func(GenerationStats)
}

// NewDriver validates the configuration and prepares a run.
func NewDriver(cfg DriverConfig) (*Driver, error) {
	if err := cfg.Sim.Validate(); err != nil {
		return nil, err
	}

	opts := cfg.NEAT
	if opts == nil {
		opts = DefaultOptions()
	}
	if cfg.Sim.Evolution.PopSize > 0 {
		opts.PopSize = cfg.Sim.Evolution.PopSize
	}
	if opts.PopSize <= 0 {
		return nil, errors.New("evolve: population size must be positive")
	}

	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Driver{
		cfg:    cfg,
		opts:   opts,
		logger: logger.WithPrefix("evolve"),
	}, nil
}

// RunID returns the identifier of the run.
func (d *Driver) RunID() string { return d.cfg.RunID }

// Options returns the NEAT options in effect.
func (d *Driver) Options() *neat.Options { return d.opts }

// Run evolves the population for the configured number of generations, stopping
// early once a generation reaches the score cap. Interruption returns the
// context error with the summary of the generations completed so far.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	sum := Summary{RunID: d.cfg.RunID, Status: storage.RunRunning}
	sim := d.cfg.Sim

	rng := rand.New(rand.NewSource(d.cfg.Seed))
	eval := fitness.NewEvaluator(sim, rng, d.logger)

	pop, err := genetics.NewPopulation(StartGenome(1, rng), d.opts)
	if err != nil {
		return sum, fmt.Errorf("evolve: cannot create population: %w", err)
	}

	if err := d.createRun(); err != nil {
		return sum, err
	}

	executor := &genetics.SequentialPopulationEpochExecutor{}
	neatCtx := neat.NewContext(ctx, d.opts)

	generations := sim.Evolution.Generations
	if generations <= 0 {
		generations = d.opts.NumGenerations
	}

	d.logger.Info("training started",
		"run", d.cfg.RunID,
		"generations", generations,
		"population", d.opts.PopSize,
		"seed", d.cfg.Seed,
	)

	runErr := func() error {
		for gen := 0; gen < generations; gen++ {
			stats, err := d.evaluate(ctx, eval, pop, gen)
			if err != nil {
				return err
			}
			sum.Generations++

			if sum.Champion == nil || stats.Best > sum.BestFitness {
				sum.BestFitness = stats.Best
				sum.Champion = stats.BestGenome
			}
			if stats.Score > sum.BestScore {
				sum.BestScore = stats.Score
			}

			if err := d.record(stats); err != nil {
				return err
			}

			if sim.Episode.MaxScore > 0 && stats.Score >= sim.Episode.MaxScore {
				d.logger.Info("score cap reached", "generation", gen, "score", stats.Score)
				return nil
			}

			if gen == generations-1 {
				return nil
			}
			if err := executor.NextEpoch(neatCtx, gen+1, pop); err != nil {
				return fmt.Errorf("evolve: epoch %d failed: %w", gen+1, err)
			}
		}
		return nil
	}()

	switch {
	case runErr == nil:
		sum.Status = storage.RunFinished
	case errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded):
		sum.Status = storage.RunInterrupted
	default:
		sum.Status = storage.RunFailed
	}

	if d.cfg.Recorder != nil {
		if err := d.cfg.Recorder.FinishRun(d.cfg.RunID, sum.Status, sum.BestFitness, sum.BestScore); err != nil {
			d.logger.Error("could not finish run", "error", err)
		}
	}

	d.logger.Info("training stopped",
		"status", sum.Status,
		"generations", sum.Generations,
		"best", sum.BestFitness,
		"score", sum.BestScore,
	)

	return sum, runErr
}

// evaluate flies the whole population once and summarises the fitness spread.
func (d *Driver) evaluate(ctx context.Context, eval *fitness.Evaluator, pop *genetics.Population, gen int) (GenerationStats, error) {
	start := time.Now()

	entries := make([]fitness.Entry, len(pop.Organisms))
	for i, org := range pop.Organisms {
		entries[i] = fitness.Entry{ID: i, Genome: &organismGenome{org: org}}
	}

	res, err := eval.Evaluate(ctx, entries, NetworkFactory)
	if err != nil {
		return GenerationStats{}, fmt.Errorf("evolve: generation %d: %w", gen, err)
	}

	fits := make([]float64, len(pop.Organisms))
	for i, org := range pop.Organisms {
		fits[i] = org.Fitness
	}

	stats := GenerationStats{
		Generation:  gen,
		Score:       res.Score,
		Ticks:       res.Ticks,
		Species:     len(pop.Species),
		Faults:      res.ControllerFaults,
		BuildFailed: res.BuildFailures,
		State:       res.State,
		Elapsed:     time.Since(start),
	}
	if len(fits) > 0 {
		stats.Mean, stats.StdDev = stat.MeanStdDev(fits, nil)
		stats.Best = floats.Max(fits)
		stats.Min = floats.Min(fits)
		stats.BestGenome = pop.Organisms[floats.MaxIdx(fits)].Genotype
	}
	return stats, nil
}

func (d *Driver) createRun() error {
	if d.cfg.Recorder == nil {
		return nil
	}

	cfgText, err := yaml.Marshal(d.cfg.Sim)
	if err != nil {
		return fmt.Errorf("evolve: cannot encode config: %w", err)
	}

	generations := d.cfg.Sim.Evolution.Generations
	if generations <= 0 {
		generations = d.opts.NumGenerations
	}

	return d.cfg.Recorder.CreateRun(storage.Run{
		ID:          d.cfg.RunID,
		Seed:        d.cfg.Seed,
		Generations: generations,
		PopSize:     d.opts.PopSize,
		Config:      string(cfgText),
	})
}

// record logs the generation and forwards it to the configured sinks.
func (d *Driver) record(s GenerationStats) error {
	d.logger.Info("generation",
		"n", s.Generation,
		"best", s.Best,
		"mean", s.Mean,
		"score", s.Score,
		"ticks", s.Ticks,
		"species", s.Species,
	)
	if s.Faults > 0 || s.BuildFailed > 0 {
		d.logger.Warn("controller faults", "generation", s.Generation, "faults", s.Faults, "unbuildable", s.BuildFailed)
	}

	if d.cfg.Recorder != nil {
		_, err := d.cfg.Recorder.SaveGeneration(storage.Generation{
			RunID:       d.cfg.RunID,
			Generation:  s.Generation,
			BestFitness: s.Best,
			MeanFitness: s.Mean,
			StdDev:      s.StdDev,
			MinFitness:  s.Min,
			Score:       s.Score,
			Ticks:       s.Ticks,
			Species:     s.Species,
			Faults:      s.Faults,
			State:       s.State.String(),
		})
		if err != nil {
			return err
		}

		if s.BestGenome != nil {
			text, err := EncodeGenome(s.BestGenome)
			if err != nil {
				return err
			}
			_, err = d.cfg.Recorder.SaveChampion(storage.Champion{
				RunID:      d.cfg.RunID,
				Generation: s.Generation,
				Fitness:    s.Best,
				Score:      s.Score,
				Genome:     text,
			})
			if err != nil {
				return err
			}
		}
	}

	if err := d.cfg.Output.WriteGeneration(telemetry.GenerationRecord{
		RunID:       d.cfg.RunID,
		Generation:  s.Generation,
		BestFitness: s.Best,
		MeanFitness: s.Mean,
		StdDev:      s.StdDev,
		MinFitness:  s.Min,
		Score:       s.Score,
		Ticks:       s.Ticks,
		Species:     s.Species,
		Faults:      s.Faults,
		State:       s.State.String(),
		ElapsedMS:   s.Elapsed.Milliseconds(),
	}); err != nil {
		return err
	}

	if d.OnGeneration != nil {
		d.OnGeneration(s)
	}
	return nil
}
