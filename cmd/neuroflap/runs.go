package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neuroflap/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List training runs",
	Long: `List the most recent training runs with their outcome.

Examples:
  neuroflap runs
  neuroflap runs --limit 5`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum number of runs to show")
}

// requireStore opens the database for commands that cannot work without it.
func requireStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}
	return store, nil
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := requireStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No training runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'neuroflap train' to start one.")
		return nil
	}

	fmt.Printf("  %-36s  %-11s  %5s  %5s  %10s  %5s  %s\n",
		"Run", "Status", "Gens", "Pop", "Best", "Score", "Started")
	fmt.Printf("  %-36s  %-11s  %5s  %5s  %10s  %5s  %s\n",
		"---", "------", "----", "---", "----", "-----", "-------")

	for _, r := range runs {
		fmt.Printf("  %-36s  %-11s  %5d  %5d  %10s  %5d  %s\n",
			r.ID, r.Status, r.Generations, r.PopSize,
			humanize.FormatFloat("#,###.##", r.BestFitness), r.BestScore,
			humanize.Time(r.StartedAt))
	}
	return nil
}

var errNoRuns = errors.New("no training runs recorded yet")

// latestRun returns the most recent run ID.
func latestRun(store *storage.Store) (string, error) {
	runs, err := store.RecentRuns(1)
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "", errNoRuns
	}
	return runs[0].ID, nil
}
