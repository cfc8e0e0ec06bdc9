// Package evolve drives neuro-evolution of flappy controllers with goNEAT.
// It owns the population and its epochs; scoring is delegated to the
// fitness package and results go to storage and telemetry.
package evolve

import (
	"fmt"

	"github.com/yaricom/goNEAT/v4/neat"
	neatmath "github.com/yaricom/goNEAT/v4/neat/math"
)

// DefaultOptions returns NEAT options tuned for a three-input, one-output controller.
func DefaultOptions() *neat.Options {
	return &neat.Options{
		// Trait mutation
		TraitParamMutProb:  0.5,
		TraitMutationPower: 1.0,

		// Weight mutation
		WeightMutPower: 2.5,

		// Structural mutation rates
		MutateAddNodeProb:      0.03,
		MutateAddLinkProb:      0.08,
		MutateToggleEnableProb: 0.01,
		MutateGeneReenableProb: 0.01,

		MutateLinkWeightsProb: 0.9,
		MutateOnlyProb:        0.25,
		MutateRandomTraitProb: 0.1,
		MutateLinkTraitProb:   0.1,
		MutateNodeTraitProb:   0.1,

		// Mating probabilities
		MateMultipointProb:    0.6,
		MateMultipointAvgProb: 0.4,
		MateSinglepointProb:   0.0,
		MateOnlyProb:          0.2,
		RecurOnlyProb:         0.0,
		InterspeciesMateRate:  0.001,

		// Speciation
		CompatThreshold: 3.0,
		DisjointCoeff:   1.0,
		ExcessCoeff:     1.0,
		MutdiffCoeff:    0.4,

		// Species management
		DropOffAge:      15,
		SurvivalThresh:  0.2,
		AgeSignificance: 1.0,
		BabiesStolen:    0,
		NewLinkTries:    20,

		PopSize:        20,
		NumGenerations: 50,

		EpochExecutorType: neat.EpochExecutorTypeSequential,
		GenCompatMethod:   neat.GenomeCompatibilityMethodFast,

		NodeActivators:     []neatmath.NodeActivationType{neatmath.SigmoidSteepenedActivation},
		NodeActivatorsProb: []float64{1},
	}
}

// LoadOptions reads a goNEAT options file (plain .neat or YAML).
// An empty path returns DefaultOptions.
func LoadOptions(path string) (*neat.Options, error) {
	if path == "" {
		return DefaultOptions(), nil
	}

	opts, err := neat.ReadNeatOptionsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("evolve: cannot read NEAT options %s: %w", path, err)
	}

	// New hidden nodes need at least one activation to draw from.
	if len(opts.NodeActivators) == 0 {
		opts.NodeActivators = []neatmath.NodeActivationType{neatmath.SigmoidSteepenedActivation}
		opts.NodeActivatorsProb = []float64{1}
	}
	return opts, nil
}
