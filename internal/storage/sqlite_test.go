package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.CreateRun(Run{ID: "r1", Seed: 1, Generations: 5, PopSize: 10}); err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	run, err := store.RunByID("r1")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil {
		t.Fatal("run lost after reopening")
	}
}

func TestStoreRunLifecycle(t *testing.T) {
	store := openTestStore(t)

	err := store.CreateRun(Run{ID: "run-a", Seed: 42, Generations: 50, PopSize: 20, Config: "world: {}"})
	if err != nil {
		t.Fatalf("CreateRun() failed: %v", err)
	}

	run, err := store.RunByID("run-a")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run.Status != RunRunning {
		t.Errorf("Expected status %q, got %q", RunRunning, run.Status)
	}
	if run.Seed != 42 || run.PopSize != 20 || run.Config != "world: {}" {
		t.Errorf("Unexpected run: %+v", run)
	}
	if !run.FinishedAt.IsZero() {
		t.Errorf("Unfinished run has finish time %v", run.FinishedAt)
	}

	if err := store.FinishRun("run-a", RunFinished, 31.5, 4); err != nil {
		t.Fatalf("FinishRun() failed: %v", err)
	}

	run, err = store.RunByID("run-a")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run.Status != RunFinished || run.BestFitness != 31.5 || run.BestScore != 4 {
		t.Errorf("Unexpected finished run: %+v", run)
	}
	if run.FinishedAt.IsZero() {
		t.Error("Finished run has no finish time")
	}
}

func TestStoreFinishUnknownRun(t *testing.T) {
	store := openTestStore(t)

	if err := store.FinishRun("missing", RunFinished, 0, 0); err == nil {
		t.Error("Expected error finishing unknown run")
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	run, err := store.RunByID("missing")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run != nil {
		t.Errorf("Expected nil run, got %+v", run)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"first", "second", "third"} {
		if err := store.CreateRun(Run{ID: id}); err != nil {
			t.Fatalf("CreateRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs with limit, got %d", len(runs))
	}
	if runs[0].ID != "third" || runs[1].ID != "second" {
		t.Errorf("Runs not in expected order: %s, %s", runs[0].ID, runs[1].ID)
	}
}

func TestStoreGenerations(t *testing.T) {
	store := openTestStore(t)
	store.CreateRun(Run{ID: "r"})
	store.CreateRun(Run{ID: "other"})

	for gen := 2; gen >= 0; gen-- {
		_, err := store.SaveGeneration(Generation{
			RunID:       "r",
			Generation:  gen,
			BestFitness: float64(gen) * 10,
			MeanFitness: float64(gen),
			Species:     3,
			State:       "extinct",
		})
		if err != nil {
			t.Fatalf("SaveGeneration() failed: %v", err)
		}
	}
	store.SaveGeneration(Generation{RunID: "other", Generation: 0, State: "completed"})

	gens, err := store.Generations("r")
	if err != nil {
		t.Fatalf("Generations() failed: %v", err)
	}
	if len(gens) != 3 {
		t.Fatalf("Expected 3 generations, got %d", len(gens))
	}
	for i, g := range gens {
		if g.Generation != i {
			t.Errorf("Generation %d out of order: %d", i, g.Generation)
		}
		if g.BestFitness != float64(i)*10 || g.Species != 3 || g.State != "extinct" {
			t.Errorf("Unexpected generation: %+v", g)
		}
	}
}

func TestStoreDuplicateGenerationRejected(t *testing.T) {
	store := openTestStore(t)
	store.CreateRun(Run{ID: "r"})

	if _, err := store.SaveGeneration(Generation{RunID: "r", Generation: 1, State: "extinct"}); err != nil {
		t.Fatalf("SaveGeneration() failed: %v", err)
	}
	if _, err := store.SaveGeneration(Generation{RunID: "r", Generation: 1, State: "extinct"}); err == nil {
		t.Error("Expected error saving the same generation twice")
	}
}

func TestStoreBestChampion(t *testing.T) {
	store := openTestStore(t)
	store.CreateRun(Run{ID: "a"})
	store.CreateRun(Run{ID: "b"})

	none, err := store.BestChampion("")
	if err != nil {
		t.Fatalf("BestChampion() failed: %v", err)
	}
	if none != nil {
		t.Fatalf("Expected no champion, got %+v", none)
	}

	store.SaveChampion(Champion{RunID: "a", Generation: 0, Fitness: 5, Genome: "g-a0"})
	store.SaveChampion(Champion{RunID: "a", Generation: 1, Fitness: 12, Score: 2, Genome: "g-a1"})
	store.SaveChampion(Champion{RunID: "b", Generation: 0, Fitness: 30, Score: 6, Genome: "g-b0"})

	best, err := store.BestChampion("a")
	if err != nil {
		t.Fatalf("BestChampion() failed: %v", err)
	}
	if best == nil || best.Genome != "g-a1" || best.Score != 2 {
		t.Errorf("Expected champion g-a1 of run a, got %+v", best)
	}

	overall, err := store.BestChampion("")
	if err != nil {
		t.Fatalf("BestChampion() failed: %v", err)
	}
	if overall == nil || overall.Genome != "g-b0" {
		t.Errorf("Expected overall champion g-b0, got %+v", overall)
	}
}

func TestStoreSaveAndRetrieveScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("human", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	// Different mode
	if _, err := store.SaveScore("policy:gap", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("human", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	policyScores, err := store.TopScores("policy:gap", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(policyScores) != 1 {
		t.Errorf("Expected 1 policy score, got %d", len(policyScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("human", (i+1)*100)
	}

	scores, err := store.TopScores("human", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("human")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty mode, got %d", high)
	}

	store.SaveScore("human", 10)
	store.SaveScore("human", 30)
	store.SaveScore("human", 20)

	high, err = store.HighScore("human")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 30 {
		t.Errorf("Expected high score of 30, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("human", 1)
	store.SaveScore("human", 2)
	store.SaveScore("policy:always", 3)

	if err := store.ClearScores("human"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	humanScores, _ := store.TopScores("human", 10)
	if len(humanScores) != 0 {
		t.Errorf("Expected 0 human scores after clear, got %d", len(humanScores))
	}

	policyScores, _ := store.TopScores("policy:always", 10)
	if len(policyScores) != 1 {
		t.Errorf("Policy scores should not be affected by clearing human scores")
	}
}

func TestStoreAllModeStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("human", 2)
	store.SaveScore("human", 4)
	store.SaveScore("policy:gap", 9)

	stats, err := store.AllModeStats()
	if err != nil {
		t.Fatalf("AllModeStats() failed: %v", err)
	}

	human := stats["human"]
	if human == nil {
		t.Fatal("Missing human stats")
	}
	if human.GamesCount != 2 || human.HighScore != 4 || human.AvgScore != 3 {
		t.Errorf("Unexpected human stats: %+v", human)
	}
	if stats["policy:gap"] == nil || stats["policy:gap"].HighScore != 9 {
		t.Errorf("Unexpected policy stats: %+v", stats["policy:gap"])
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
