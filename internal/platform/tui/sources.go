package tui

import (
	"fmt"

	"github.com/vovakirdan/neuroflap/internal/evolve"
	"github.com/vovakirdan/neuroflap/internal/flappy"
	"github.com/vovakirdan/neuroflap/internal/registry"
	"github.com/vovakirdan/neuroflap/internal/storage"
)

// FallbackPolicy flies spectator sessions when no champion has been stored.
const FallbackPolicy = "gap"

// ChampionFinder looks up stored champions. *storage.Store implements it.
type ChampionFinder interface {
	BestChampion(runID string) (*storage.Champion, error)
}

var _ ChampionFinder = (*storage.Store)(nil)

// PolicySource flies n agents with the named heuristic policy.
func PolicySource(id string, n int) (ContestantSource, error) {
	if !registry.Exists(id) {
		return nil, fmt.Errorf("tui: unknown policy %q", id)
	}
	if n < 1 {
		n = 1
	}

	return func() ([]flappy.Contestant, error) {
		contestants := make([]flappy.Contestant, n)
		for i := range contestants {
			ctrl, err := registry.Create(id)
			if err != nil {
				return nil, err
			}
			contestants[i] = flappy.Contestant{ID: i, Controller: ctrl, Genome: &flappy.Tally{}}
		}
		return contestants, nil
	}, nil
}

// ChampionSource flies the best stored champion of runID, or of every run when
// runID is empty. Without a store or a champion it falls back to the gap
// policy. The returned mode labels the view.
func ChampionSource(finder ChampionFinder, runID string) (src ContestantSource, mode string, err error) {
	var champ *storage.Champion
	if finder != nil {
		champ, err = finder.BestChampion(runID)
		if err != nil {
			return nil, "", err
		}
	}

	if champ == nil {
		if runID != "" {
			return nil, "", fmt.Errorf("tui: no champion stored for run %q", runID)
		}
		src, err = PolicySource(FallbackPolicy, 1)
		return src, "policy:" + FallbackPolicy, err
	}

	// Decode once up front so a corrupt genome fails before the view opens.
	if _, err := evolve.ChampionController(champ.Genome); err != nil {
		return nil, "", err
	}

	genome := champ.Genome
	src = func() ([]flappy.Contestant, error) {
		ctrl, err := evolve.ChampionController(genome)
		if err != nil {
			return nil, err
		}
		return []flappy.Contestant{{ID: 0, Controller: ctrl, Genome: &flappy.Tally{}}}, nil
	}
	return src, fmt.Sprintf("champion:%s/%d", shortID(champ.RunID), champ.Generation), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
