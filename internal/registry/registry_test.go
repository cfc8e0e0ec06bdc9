package registry

import (
	"context"
	"math/rand"
	"testing"

	"github.com/vovakirdan/neuroflap/internal/config"
	"github.com/vovakirdan/neuroflap/internal/flappy"
)

func TestListSorted(t *testing.T) {
	list := List()
	want := []string{"always", "cadence", "gap", "never"}
	if len(list) != len(want) {
		t.Fatalf("List() = %v, want %v", list, want)
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("List()[%d] = %q, want %q", i, list[i].ID, id)
		}
		if list[i].Description == "" {
			t.Errorf("policy %q has no description", id)
		}
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("nope"); err == nil {
		t.Error("expected error for unknown policy")
	}
	if Exists("nope") {
		t.Error("Exists() = true for unknown policy")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("never", "again", func() flappy.Controller { return Constant(0) })
}

func TestCadenceInstancesIndependent(t *testing.T) {
	a, _ := Create("cadence")
	b, _ := Create("cadence")

	for i := 0; i < 5; i++ {
		a.Activate(nil)
	}
	out, _ := b.Activate(nil)
	if out[0] != 0 {
		t.Error("fresh cadence controller jumped on its first tick")
	}
}

func TestCadencePeriod(t *testing.T) {
	c := NewCadence(3)
	var jumps []int
	for i := 1; i <= 9; i++ {
		out, _ := c.Activate(nil)
		if out[0] > 0.5 {
			jumps = append(jumps, i)
		}
	}
	if len(jumps) != 3 || jumps[0] != 3 || jumps[1] != 6 || jumps[2] != 9 {
		t.Errorf("jumps at %v, want [3 6 9]", jumps)
	}
}

func TestGapDecisions(t *testing.T) {
	g := Gap{Threshold: 85, GapSize: 200}

	tests := []struct {
		name string
		y    float64
		want float64
	}{
		{"above center", 200, 0},
		{"upper half", 300, 0},
		{"near bottom", 400, 1},
		{"below bottom", 470, 1},
	}

	const center, bottom = 250.0, 450.0
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obs := []float64{tt.y, abs(tt.y - center), abs(tt.y - bottom)}
			out, err := g.Activate(obs)
			if err != nil {
				t.Fatalf("Activate() error = %v", err)
			}
			if out[0] != tt.want {
				t.Errorf("Activate() = %v, want %v", out[0], tt.want)
			}
		})
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestGapPolicyReachesScoreCap(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		cfg := config.DefaultSimConfig()
		cfg.Episode.MaxScore = 5

		ctrl, err := Create("gap")
		if err != nil {
			t.Fatal(err)
		}
		ep := flappy.NewEpisode(cfg, rand.New(rand.NewSource(seed)), []flappy.Contestant{
			{ID: 0, Controller: ctrl, Genome: &flappy.Tally{}},
		})
		if err := ep.Run(context.Background()); err != nil {
			t.Fatalf("seed %d: Run() error = %v", seed, err)
		}
		if ep.State() != flappy.StateCompleted || ep.Score() != 5 {
			t.Errorf("seed %d: state %v score %d, want completed with 5", seed, ep.State(), ep.Score())
		}
	}
}
