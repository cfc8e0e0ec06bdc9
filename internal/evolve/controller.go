package evolve

import (
	"errors"
	"fmt"

	"github.com/yaricom/goNEAT/v4/neat/genetics"
	"github.com/yaricom/goNEAT/v4/neat/network"

	"github.com/vovakirdan/neuroflap/internal/flappy"
)

// NetworkController flies an agent with a genome's phenotype network.
type NetworkController struct {
	net   *network.Network
	depth int
}

// NewNetworkController builds the phenotype of g.
func NewNetworkController(g *genetics.Genome) (*NetworkController, error) {
	net, err := g.Genesis(g.Id)
	if err != nil {
		return nil, fmt.Errorf("evolve: failed to build network from genome %d: %w", g.Id, err)
	}

	depth, err := net.MaxActivationDepth()
	if err != nil || depth < 1 {
		depth = 5
	}

	return &NetworkController{net: net, depth: depth}, nil
}

// Activate propagates the observations through the network and returns its outputs.
func (c *NetworkController) Activate(observations []float64) ([]float64, error) {
	if len(observations) != Inputs {
		return nil, fmt.Errorf("evolve: expected %d inputs, got %d", Inputs, len(observations))
	}

	if err := c.net.LoadSensors(observations); err != nil {
		return nil, fmt.Errorf("evolve: failed to load sensors: %w", err)
	}

	for i := 0; i < c.depth; i++ {
		if _, err := c.net.Activate(); err != nil {
			return nil, fmt.Errorf("evolve: activation failed: %w", err)
		}
	}

	outputs := c.net.ReadOutputs()

	if _, err := c.net.Flush(); err != nil {
		return nil, fmt.Errorf("evolve: flush failed: %w", err)
	}

	return outputs, nil
}

// organismGenome exposes an organism's fitness to the episode.
type organismGenome struct {
	org *genetics.Organism
}

func (g *organismGenome) Fitness() float64     { return g.org.Fitness }
func (g *organismGenome) SetFitness(f float64) { g.org.Fitness = f }

var errNotOrganism = errors.New("evolve: genome is not a NEAT organism")

// NetworkFactory builds controllers for organisms handed to the evaluator.
func NetworkFactory(g flappy.Genome) (flappy.Controller, error) {
	og, ok := g.(*organismGenome)
	if !ok {
		return nil, errNotOrganism
	}
	return NewNetworkController(og.org.Genotype)
}

// ChampionController decodes a stored champion genome and builds its controller.
func ChampionController(encoded string) (*NetworkController, error) {
	g, err := DecodeGenome(encoded)
	if err != nil {
		return nil, err
	}
	return NewNetworkController(g)
}
