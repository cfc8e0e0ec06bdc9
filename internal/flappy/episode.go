package flappy

import (
	"context"
	"math"
	"math/rand"

	"github.com/vovakirdan/neuroflap/internal/config"
	"github.com/vovakirdan/neuroflap/internal/core"
)

// State is the lifecycle state of an episode.
type State int

const (
	StateRunning     State = iota
	StateExtinct           // Every agent has been removed
	StateInterrupted       // Stopped by the caller's context
	StateCompleted         // Tick or score cap reached with agents still alive
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateExtinct:
		return "extinct"
	case StateInterrupted:
		return "interrupted"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the episode can no longer advance.
func (s State) Terminal() bool {
	return s != StateRunning
}

// StepResult describes what happened during one tick.
type StepResult struct {
	State       State
	Score       int
	Passed      bool  // An obstacle was passed this tick
	Collided    []int // Contestant IDs removed by a barrier
	OutOfBounds []int // Contestant IDs removed by the floor or the top margin
}

// slot is a live contestant with its agent.
type slot struct {
	Contestant
	agent *Agent
}

// Episode runs one population through the obstacle course.
// It is not safe for concurrent use; one goroutine owns it for its lifetime.
type Episode struct {
	cfg        config.SimConfig
	factory    *ObstacleFactory
	silhouette *core.Mask

	live      []*slot
	obstacles []*Obstacle
	floor     Floor

	state  State
	score  int
	tick   int
	faults int
	active int // Index of the obstacle agents observed this tick
}

// NewEpisode spawns one agent per contestant at the shared spawn point.
// Obstacle gaps are drawn from rng. An episode without contestants starts extinct.
func NewEpisode(cfg config.SimConfig, rng *rand.Rand, contestants []Contestant) *Episode {
	e := &Episode{
		cfg:        cfg,
		factory:    NewObstacleFactory(cfg.Obstacles, rng),
		silhouette: Silhouette(cfg.Agent),
		floor:      NewFloor(cfg.World.Floor, cfg.Obstacles.Velocity),
	}

	phys := PhysicsFromConfig(cfg.Agent)
	e.live = make([]*slot, 0, len(contestants))
	for _, c := range contestants {
		e.live = append(e.live, &slot{
			Contestant: c,
			agent:      NewAgent(cfg.Agent.X, cfg.Agent.Y, phys),
		})
	}

	e.obstacles = []*Obstacle{e.factory.New(cfg.Obstacles.FirstX)}

	if len(e.live) == 0 {
		e.state = StateExtinct
	}
	return e
}

// Silhouette builds the agent collision mask for the configured shape.
func Silhouette(cfg config.AgentConfig) *core.Mask {
	if cfg.Shape == config.ShapeBox {
		return core.SolidMask(cfg.Width, cfg.Height)
	}
	return core.EllipseMask(cfg.Width, cfg.Height)
}

// Step advances the episode by one tick. A done context moves the episode to
// StateInterrupted before anything is mutated and returns the context error.
func (e *Episode) Step(ctx context.Context) (StepResult, error) {
	if e.state.Terminal() {
		return e.result(), nil
	}
	if err := ctx.Err(); err != nil {
		e.state = StateInterrupted
		return e.result(), err
	}

	e.tick++
	res := StepResult{}

	e.active = e.activeObstacle()
	e.think()

	// Collisions and passes. Removal is deferred until every obstacle has been
	// checked against every agent that was alive when the pass began.
	collided := make(map[*slot]bool)
	spawn := false
	kept := e.obstacles[:0]
	for _, o := range e.obstacles {
		o.Advance()
		for _, s := range e.live {
			if !collided[s] && o.CollidesWith(s.agent, e.silhouette) {
				collided[s] = true
				addFitness(s.Genome, -e.cfg.Fitness.CollisionPenalty)
			}
			if !o.Passed && o.X < float64(s.agent.X) {
				o.Passed = true
				spawn = true
			}
		}
		if o.Right() >= 0 {
			kept = append(kept, o)
		}
	}
	e.obstacles = kept

	if len(collided) > 0 {
		e.live, res.Collided = e.remove(func(s *slot) bool { return collided[s] })
	}

	if spawn {
		e.score++
		res.Passed = true
		for _, s := range e.live {
			addFitness(s.Genome, e.cfg.Fitness.PassBonus)
		}
		e.obstacles = append(e.obstacles, e.factory.New(e.cfg.Obstacles.SpawnX))
	}

	e.live, res.OutOfBounds = e.remove(e.outOfBounds)

	e.floor.Advance()

	switch {
	case len(e.live) == 0:
		e.state = StateExtinct
	case e.cfg.Episode.MaxTicks > 0 && e.tick >= e.cfg.Episode.MaxTicks:
		e.state = StateCompleted
	case e.cfg.Episode.MaxScore > 0 && e.score >= e.cfg.Episode.MaxScore:
		e.state = StateCompleted
	}

	res.State = e.state
	res.Score = e.score
	return res, nil
}

// Run steps the episode until it reaches a terminal state.
func (e *Episode) Run(ctx context.Context) error {
	for !e.state.Terminal() {
		if _, err := e.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// activeObstacle picks the obstacle every agent observes this tick: the first one,
// or the second once the lead agent is past the first one's right edge.
func (e *Episode) activeObstacle() int {
	if len(e.live) == 0 || len(e.obstacles) < 2 {
		return 0
	}
	if float64(e.live[0].agent.X) > e.obstacles[0].Right() {
		return 1
	}
	return 0
}

// think accrues survival fitness, moves every agent and applies its decision.
func (e *Episode) think() {
	var target *Obstacle
	if e.active < len(e.obstacles) {
		target = e.obstacles[e.active]
	}

	for _, s := range e.live {
		addFitness(s.Genome, e.cfg.Fitness.SurvivalIncrement)
		s.agent.Advance()
		if e.decide(s, observe(s.agent, target)) {
			s.agent.Jump()
		}
	}
}

// observe builds the controller input. Without an obstacle both distances are zero.
func observe(a *Agent, o *Obstacle) []float64 {
	obs := []float64{a.Y, 0, 0}
	if o != nil {
		obs[1] = math.Abs(a.Y - float64(o.GapCenter))
		obs[2] = math.Abs(a.Y - float64(o.Bottom))
	}
	return obs
}

// decide queries the controller. Errors and empty or non-numeric output mean no jump.
func (e *Episode) decide(s *slot, obs []float64) bool {
	if s.Controller == nil {
		return false
	}
	out, err := s.Controller.Activate(obs)
	if err != nil || len(out) == 0 || math.IsNaN(out[0]) {
		e.faults++
		return false
	}
	return out[0] > e.cfg.Fitness.JumpThreshold
}

// outOfBounds reports whether the agent touched the floor or left through the top.
func (e *Episode) outOfBounds(s *slot) bool {
	a := s.agent
	if a.Y+float64(e.cfg.Agent.EffectiveHeight) >= float64(e.cfg.World.Floor) {
		return true
	}
	return a.Y < e.cfg.Agent.TopMargin
}

// remove splits the live set, returning the survivors and the removed IDs.
func (e *Episode) remove(drop func(*slot) bool) ([]*slot, []int) {
	var removed []int
	kept := e.live[:0]
	for _, s := range e.live {
		if drop(s) {
			removed = append(removed, s.ID)
			continue
		}
		kept = append(kept, s)
	}
	return kept, removed
}

func (e *Episode) result() StepResult {
	return StepResult{State: e.state, Score: e.score}
}

// State returns the current lifecycle state.
func (e *Episode) State() State { return e.state }

// Score returns the number of obstacles passed so far.
func (e *Episode) Score() int { return e.score }

// Tick returns the number of ticks simulated.
func (e *Episode) Tick() int { return e.tick }

// Alive returns the number of agents still flying.
func (e *Episode) Alive() int { return len(e.live) }

// Faults returns how many controller queries failed or returned no decision.
func (e *Episode) Faults() int { return e.faults }

// Floor returns the cosmetic floor state.
func (e *Episode) Floor() Floor { return e.floor }

// ActiveObstacle returns the index of the obstacle observed during the last tick.
func (e *Episode) ActiveObstacle() int { return e.active }

// AgentView is a read-only snapshot of a live agent.
type AgentView struct {
	ID   int
	X    int
	Y    float64
	Tilt float64
}

// Agents returns snapshots of the live agents in spawn order.
func (e *Episode) Agents() []AgentView {
	views := make([]AgentView, len(e.live))
	for i, s := range e.live {
		views[i] = AgentView{ID: s.ID, X: s.agent.X, Y: s.agent.Y, Tilt: s.agent.Tilt}
	}
	return views
}

// Obstacles returns copies of the live obstacles, leading one first.
func (e *Episode) Obstacles() []Obstacle {
	out := make([]Obstacle, len(e.obstacles))
	for i, o := range e.obstacles {
		out[i] = *o
	}
	return out
}
