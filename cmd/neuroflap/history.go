package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neuroflap/internal/platform/tui"
	"github.com/vovakirdan/neuroflap/internal/storage"
	"github.com/vovakirdan/neuroflap/internal/telemetry"
)

var (
	flagHistoryPlain bool
	flagHistoryCSV   string
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show the generations of a training run",
	Long: `Browse per-generation statistics of stored training runs.

In a terminal this opens an interactive table; Tab switches runs. With
--plain, or when stdout is not a terminal, the generations of one run
(the most recent by default) are printed. --csv prints a generations.csv
file written by 'neuroflap train --out'.

Examples:
  neuroflap history
  neuroflap history 3f2a9c1e-... --plain
  neuroflap history --csv ./out/run1/generations.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagHistoryPlain, "plain", false, "Print instead of opening the table view")
	historyCmd.Flags().StringVar(&flagHistoryCSV, "csv", "", "Read a generations.csv file instead of the database")
}

func runHistory(_ *cobra.Command, args []string) error {
	if flagHistoryCSV != "" {
		return printCSVHistory(flagHistoryCSV)
	}

	store, err := requireStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runID := ""
	if len(args) == 1 {
		runID = args[0]
	}

	if !flagHistoryPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, runID, width, height)
	}

	if runID == "" {
		if runID, err = latestRun(store); err != nil {
			return err
		}
	}
	run, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("unknown run %q", runID)
	}

	gens, err := store.Generations(runID)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s (%s, seed %d)\n\n", run.ID, run.Status, run.Seed)
	printGenerationHeader()
	for _, g := range gens {
		printGeneration(g)
	}
	return nil
}

func printCSVHistory(path string) error {
	records, err := telemetry.ReadGenerations(path)
	if err != nil {
		return err
	}

	printGenerationHeader()
	for _, r := range records {
		printGeneration(storage.Generation{
			RunID:       r.RunID,
			Generation:  r.Generation,
			BestFitness: r.BestFitness,
			MeanFitness: r.MeanFitness,
			StdDev:      r.StdDev,
			Score:       r.Score,
			Ticks:       r.Ticks,
			Species:     r.Species,
			State:       r.State,
		})
	}
	return nil
}

func printGenerationHeader() {
	fmt.Printf("  %4s  %9s  %9s  %8s  %5s  %6s  %7s  %s\n",
		"Gen", "Best", "Mean", "StdDev", "Score", "Ticks", "Species", "State")
	fmt.Printf("  %4s  %9s  %9s  %8s  %5s  %6s  %7s  %s\n",
		"---", "----", "----", "------", "-----", "-----", "-------", "-----")
}

func printGeneration(g storage.Generation) {
	fmt.Printf("  %4d  %9.1f  %9.1f  %8.2f  %5d  %6d  %7d  %s\n",
		g.Generation, g.BestFitness, g.MeanFitness, g.StdDev, g.Score, g.Ticks, g.Species, g.State)
}
