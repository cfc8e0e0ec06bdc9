// Package fitness scores a population of genomes by flying them through one
// shared episode.
package fitness

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neuroflap/internal/config"
	"github.com/vovakirdan/neuroflap/internal/flappy"
)

// Entry is one genome of the population under evaluation.
type Entry struct {
	ID     int
	Genome flappy.Genome
}

// ControllerFactory builds the controller that flies a genome.
type ControllerFactory func(g flappy.Genome) (flappy.Controller, error)

// Result summarises one evaluation.
type Result struct {
	State            flappy.State
	Score            int
	Ticks            int
	Flown            int // Genomes that got an agent
	BuildFailures    int // Genomes whose controller could not be built
	ControllerFaults int
	BestID           int
	BestFitness      float64
}

// Evaluator runs evaluation episodes with a shared configuration.
// Successive evaluations draw obstacle gaps from the same source.
type Evaluator struct {
	cfg    config.SimConfig
	rng    *rand.Rand
	logger *log.Logger
}

// NewEvaluator creates an evaluator. A nil logger discards output.
func NewEvaluator(cfg config.SimConfig, rng *rand.Rand, logger *log.Logger) *Evaluator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Evaluator{cfg: cfg, rng: rng, logger: logger}
}

// Evaluate resets every genome's fitness to zero, flies one agent per genome
// until the episode ends, and leaves the accumulated fitness in the genomes.
// On interruption the partial fitness stays in place and the context error is returned.
func (ev *Evaluator) Evaluate(ctx context.Context, entries []Entry, factory ControllerFactory) (Result, error) {
	res := Result{BestID: -1}

	contestants := make([]flappy.Contestant, 0, len(entries))
	for _, e := range entries {
		e.Genome.SetFitness(0)

		ctrl, err := factory(e.Genome)
		if err != nil {
			res.BuildFailures++
			ev.logger.Warn("controller build failed", "genome", e.ID, "error", err)
			continue
		}
		contestants = append(contestants, flappy.Contestant{
			ID:         e.ID,
			Controller: ctrl,
			Genome:     e.Genome,
		})
	}
	res.Flown = len(contestants)

	ep := flappy.NewEpisode(ev.cfg, ev.rng, contestants)
	err := ep.Run(ctx)

	res.State = ep.State()
	res.Score = ep.Score()
	res.Ticks = ep.Tick()
	res.ControllerFaults = ep.Faults()

	for _, e := range entries {
		if f := e.Genome.Fitness(); res.BestID < 0 || f > res.BestFitness {
			res.BestID = e.ID
			res.BestFitness = f
		}
	}

	if err != nil {
		return res, fmt.Errorf("fitness: episode interrupted at tick %d: %w", res.Ticks, err)
	}

	ev.logger.Debug("episode finished",
		"state", res.State,
		"score", res.Score,
		"ticks", res.Ticks,
		"faults", res.ControllerFaults,
	)
	return res, nil
}
