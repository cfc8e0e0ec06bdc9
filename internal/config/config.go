// Package config provides YAML-based simulation and evolution configuration.
package config

// SimConfig contains every constant the simulation and its evaluation loop use.
type SimConfig struct {
	World     WorldConfig     `yaml:"world"`
	Agent     AgentConfig     `yaml:"agent"`
	Obstacles ObstacleConfig  `yaml:"obstacles"`
	Fitness   FitnessConfig   `yaml:"fitness"`
	Episode   EpisodeConfig   `yaml:"episode"`
	Evolution EvolutionConfig `yaml:"evolution"`
}

// WorldConfig defines the playing field in world units.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Floor  int `yaml:"floor"` // Y of the floor line
}

// AgentConfig defines spawn point, silhouette and flight physics of an agent.
type AgentConfig struct {
	X               int     `yaml:"x"`
	Y               float64 `yaml:"y"`
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	EffectiveHeight int     `yaml:"effective_height"` // Height used for the floor check
	Shape           string  `yaml:"shape"`            // "box" or "ellipse"
	TopMargin       float64 `yaml:"top_margin"`       // Y below which the agent has left the field

	JumpVelocity float64 `yaml:"jump_velocity"` // Negative = up
	Gravity      float64 `yaml:"gravity"`
	Terminal     float64 `yaml:"terminal_displacement"`
	LiftBoost    float64 `yaml:"lift_boost"`

	MaxTilt       float64 `yaml:"max_tilt"`
	MinTilt       float64 `yaml:"min_tilt"`
	TiltStep      float64 `yaml:"tilt_step"`
	TiltLookahead float64 `yaml:"tilt_lookahead"`
}

// ObstacleConfig defines gap obstacles and their placement.
type ObstacleConfig struct {
	Gap           int     `yaml:"gap"`
	Velocity      float64 `yaml:"velocity"`
	Width         int     `yaml:"width"`
	BarrierHeight int     `yaml:"barrier_height"`
	MinGapCenter  int     `yaml:"min_gap_center"`
	MaxGapCenter  int     `yaml:"max_gap_center"` // Exclusive
	FirstX        float64 `yaml:"first_x"`
	SpawnX        float64 `yaml:"spawn_x"`
}

// FitnessConfig defines the fitness signal and the decision threshold.
type FitnessConfig struct {
	SurvivalIncrement float64 `yaml:"survival_increment"`
	CollisionPenalty  float64 `yaml:"collision_penalty"`
	PassBonus         float64 `yaml:"pass_bonus"`
	JumpThreshold     float64 `yaml:"jump_threshold"`
}

// EpisodeConfig defines episode caps and pacing. Zero caps disable them.
type EpisodeConfig struct {
	MaxTicks int `yaml:"max_ticks"`
	MaxScore int `yaml:"max_score"`
	TickRate int `yaml:"tick_rate"`
}

// EvolutionConfig defines the generation loop around the external NEAT library.
type EvolutionConfig struct {
	Generations int    `yaml:"generations"`
	PopSize     int    `yaml:"pop_size"`     // Overrides the NEAT options when > 0
	NEATOptions string `yaml:"neat_options"` // Optional goNEAT options file
	OutputDir   string `yaml:"output_dir"`   // CSV telemetry directory, empty disables
}
