// Package flappy implements the flappy-bird simulation used to evaluate
// controllers: agent flight physics, gap obstacles, and the per-tick episode loop.
// It never draws; views read positions through the exported accessors.
package flappy

import (
	"github.com/vovakirdan/neuroflap/internal/config"
	"github.com/vovakirdan/neuroflap/internal/core"
)

// Physics holds the flight constants of an agent.
type Physics struct {
	JumpVelocity  float64 // Velocity set by a jump (negative = up)
	Gravity       float64 // Downward acceleration per tick²
	Terminal      float64 // Maximum downward displacement per tick
	LiftBoost     float64 // Extra upward displacement while rising
	MaxTilt       float64 // Nose-up tilt in degrees
	MinTilt       float64 // Nose-down tilt limit in degrees
	TiltStep      float64 // Tilt decay per tick
	TiltLookahead float64 // Stay nose-up while within this distance below the jump height
}

// PhysicsFromConfig extracts flight constants from the agent configuration.
func PhysicsFromConfig(cfg config.AgentConfig) Physics {
	return Physics{
		JumpVelocity:  cfg.JumpVelocity,
		Gravity:       cfg.Gravity,
		Terminal:      cfg.Terminal,
		LiftBoost:     cfg.LiftBoost,
		MaxTilt:       cfg.MaxTilt,
		MinTilt:       cfg.MinTilt,
		TiltStep:      cfg.TiltStep,
		TiltLookahead: cfg.TiltLookahead,
	}
}

// Agent is one flying entity. X never changes during an episode.
type Agent struct {
	X          int     // Fixed horizontal lane (left edge)
	Y          float64 // Vertical position (top edge), grows downward
	Velocity   float64 // Velocity baseline since the last jump
	TickCount  int     // Ticks since the last jump or spawn
	Tilt       float64 // Presentation only, in [MinTilt, MaxTilt]
	JumpHeight float64 // Y at the last jump or spawn

	phys Physics
}

// NewAgent creates an agent at rest at the given spawn point.
func NewAgent(x int, y float64, phys Physics) *Agent {
	return &Agent{
		X:          x,
		Y:          y,
		JumpHeight: y,
		phys:       phys,
	}
}

// Jump resets the displacement baseline to an upward velocity.
func (a *Agent) Jump() {
	a.Velocity = a.phys.JumpVelocity
	a.TickCount = 0
	a.JumpHeight = a.Y
}

// Advance moves the agent by one tick and returns the applied displacement.
func (a *Agent) Advance() float64 {
	a.TickCount++
	t := float64(a.TickCount)

	d := a.Velocity*t + 0.5*a.phys.Gravity*t*t
	if d >= a.phys.Terminal {
		d = a.phys.Terminal
	}
	if d < 0 {
		d -= a.phys.LiftBoost
	}

	a.Y += d

	if d < 0 || a.Y < a.JumpHeight+a.phys.TiltLookahead {
		if a.Tilt < a.phys.MaxTilt {
			a.Tilt = a.phys.MaxTilt
		}
	} else if a.Tilt > a.phys.MinTilt {
		a.Tilt = core.ClampF(a.Tilt-a.phys.TiltStep, a.phys.MinTilt, a.phys.MaxTilt)
	}

	return d
}

// RoundedY returns the agent's vertical position on the collision grid.
func (a *Agent) RoundedY() int {
	return core.Round(a.Y)
}
