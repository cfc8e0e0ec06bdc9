package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultSimYAML []byte

// DefaultSimConfig returns the built-in simulation configuration.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		World: WorldConfig{
			Width:  500,
			Height: 800,
			Floor:  730,
		},
		Agent: AgentConfig{
			X:               230,
			Y:               350,
			Width:           68,
			Height:          48,
			EffectiveHeight: 38,
			Shape:           ShapeEllipse,
			TopMargin:       -50,
			JumpVelocity:    -10.5,
			Gravity:         3,
			Terminal:        16,
			LiftBoost:       2,
			MaxTilt:         25,
			MinTilt:         -90,
			TiltStep:        20,
			TiltLookahead:   50,
		},
		Obstacles: ObstacleConfig{
			Gap:           200,
			Velocity:      5,
			Width:         104,
			BarrierHeight: 640,
			MinGapCenter:  50,
			MaxGapCenter:  450,
			FirstX:        700,
			SpawnX:        600,
		},
		Fitness: FitnessConfig{
			SurvivalIncrement: 0.1,
			CollisionPenalty:  1,
			PassBonus:         5,
			JumpThreshold:     0.5,
		},
		Episode: EpisodeConfig{
			MaxTicks: 0,
			MaxScore: 50,
			TickRate: 30,
		},
		Evolution: EvolutionConfig{
			Generations: 50,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultSimYAML
}
