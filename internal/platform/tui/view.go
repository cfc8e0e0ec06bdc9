package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/neuroflap/internal/config"
	"github.com/vovakirdan/neuroflap/internal/core"
	"github.com/vovakirdan/neuroflap/internal/flappy"
)

// floorPattern is the width in world units of one floor tile stripe.
const floorPattern = 48

// Frame is a read-only snapshot of an episode ready to be drawn.
type Frame struct {
	Agents    []flappy.AgentView
	Obstacles []flappy.Obstacle
	Floor     flappy.Floor
	Score     int
	Tick      int
	Alive     int
	Total     int
	State     flappy.State
	Label     string // Shown on the left of the HUD
	Paused    bool
}

// FrameOf captures the current state of e.
func FrameOf(e *flappy.Episode, total int, label string) Frame {
	return Frame{
		Agents:    e.Agents(),
		Obstacles: e.Obstacles(),
		Floor:     e.Floor(),
		Score:     e.Score(),
		Tick:      e.Tick(),
		Alive:     e.Alive(),
		Total:     total,
		State:     e.State(),
		Label:     label,
	}
}

// Renderer draws frames onto a screen, scaling world units to cells.
// The bottom row of the screen is reserved for the HUD.
type Renderer struct {
	theme Theme
	world config.WorldConfig
	agent config.AgentConfig
}

// NewRenderer creates a renderer for the given world geometry.
func NewRenderer(theme Theme, sim config.SimConfig) *Renderer {
	return &Renderer{theme: theme, world: sim.World, agent: sim.Agent}
}

// cellX maps a world x-coordinate to a column.
func (r *Renderer) cellX(s *core.Screen, wx float64) int {
	return int(math.Floor(wx * float64(s.Width()) / float64(r.world.Width)))
}

// cellY maps a world y-coordinate to a row above the HUD.
func (r *Renderer) cellY(s *core.Screen, wy float64) int {
	return int(math.Floor(wy * float64(s.Height()-1) / float64(r.world.Height)))
}

// Draw clears s and renders f onto it.
func (r *Renderer) Draw(s *core.Screen, f Frame) {
	s.Clear()
	if s.Width() == 0 || s.Height() < 2 {
		return
	}

	floorRow := core.Clamp(r.cellY(s, float64(r.world.Floor)), 0, s.Height()-1)

	for i := range f.Obstacles {
		r.drawObstacle(s, &f.Obstacles[i], floorRow)
	}
	r.drawFloor(s, f.Floor, floorRow)
	r.drawAgents(s, f.Agents)
	r.drawHUD(s, f)

	switch {
	case f.Paused:
		r.banner(s, "PAUSED", "p to resume")
	case f.State.Terminal():
		r.banner(s, fmt.Sprintf("%s - score %d", f.State, f.Score), "r to restart, q to quit")
	}
}

// cellRect maps a world rectangle to cells, clipped vertically to the rows above
// the floor. A barrier always covers at least one column.
func (r *Renderer) cellRect(s *core.Screen, wr core.Rect, floorRow int) core.Rect {
	x0 := r.cellX(s, float64(wr.X))
	x1 := core.Max(r.cellX(s, float64(wr.Right())), x0+1)
	y0 := core.Clamp(r.cellY(s, float64(wr.Y)), 0, floorRow)
	y1 := core.Clamp(r.cellY(s, float64(wr.Bottom())), 0, floorRow)
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

func (r *Renderer) drawObstacle(s *core.Screen, o *flappy.Obstacle, floorRow int) {
	top := r.cellRect(s, o.TopRect(), floorRow)
	bottom := r.cellRect(s, o.BottomRect(), floorRow)
	if top.Right() <= 0 || top.X >= s.Width() {
		return
	}

	s.DrawRect(top, r.theme.Barrier, r.theme.BarrierColor)
	s.DrawRect(bottom, r.theme.Barrier, r.theme.BarrierColor)

	// The top barrier's lip faces the gap.
	if !top.Empty() {
		for x := top.X; x < top.Right(); x++ {
			s.SetColor(x, top.Bottom()-1, r.theme.BarrierEdge, r.theme.BarrierColor)
		}
	}
}

func (r *Renderer) drawFloor(s *core.Screen, fl flappy.Floor, floorRow int) {
	for y := floorRow; y < s.Height()-1; y++ {
		for x := range s.Width() {
			wx := (float64(x)+0.5)*float64(r.world.Width)/float64(s.Width()) - fl.X1
			stripe := int(math.Floor(wx/floorPattern)) & 1
			s.SetColor(x, y, r.theme.Floor[stripe], r.theme.FloorColor)
		}
	}
}

// drawAgents draws every live agent at its vertical center; the leader last.
func (r *Renderer) drawAgents(s *core.Screen, agents []flappy.AgentView) {
	for i := len(agents) - 1; i >= 0; i-- {
		a := agents[i]
		x := r.cellX(s, float64(a.X)+float64(r.agent.Width)/2)
		y := r.cellY(s, a.Y+float64(r.agent.Height)/2)
		if y < 0 || y >= s.Height()-1 {
			continue
		}

		glyph := r.theme.AgentDown
		if a.Tilt > 0 {
			glyph = r.theme.AgentUp
		}
		color := r.theme.AgentColor
		if i == 0 {
			color = r.theme.LeaderColor
		}
		s.SetColor(x, y, glyph, color)
	}
}

func (r *Renderer) drawHUD(s *core.Screen, f Frame) {
	row := s.Height() - 1
	status := fmt.Sprintf("score %d  tick %d  alive %d/%d  %s", f.Score, f.Tick, f.Alive, f.Total, f.State)
	if f.Label != "" {
		status = f.Label + "  " + status
	}
	s.DrawTextColor(0, row, status, r.theme.HUDColor)
}

func (r *Renderer) banner(s *core.Screen, title, hint string) {
	y := (s.Height() - 1) / 2
	r.centered(s, y-1, title)
	r.centered(s, y, hint)
}

func (r *Renderer) centered(s *core.Screen, y int, text string) {
	x := (s.Width() - len([]rune(text))) / 2
	s.DrawTextColor(core.Max(x, 0), y, text, r.theme.BannerColor)
}
