package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show play scores",
	Long: `Without an argument, summarise every mode that has scores. With a
mode ("human" or "policy:<name>"), show its top 10 scores.

Examples:
  neuroflap scores
  neuroflap scores human
  neuroflap scores policy:gap --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete the scores of the given mode")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := requireStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClearScores {
			return errors.New("--clear needs a mode")
		}
		stats, err := store.AllModeStats()
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Println("No scores recorded yet.")
			fmt.Println()
			fmt.Println("Run 'neuroflap play' to set the first high score!")
			return nil
		}

		modes := make([]string, 0, len(stats))
		for m := range stats {
			modes = append(modes, m)
		}
		sort.Strings(modes)

		fmt.Printf("  %-20s  %6s  %6s  %8s  %s\n", "Mode", "Played", "Best", "Average", "Last played")
		fmt.Printf("  %-20s  %6s  %6s  %8s  %s\n", "----", "------", "----", "-------", "-----------")
		for _, m := range modes {
			s := stats[m]
			fmt.Printf("  %-20s  %6s  %6d  %8.1f  %s\n",
				s.Mode, humanize.Comma(int64(s.GamesCount)), s.HighScore, s.AvgScore, humanize.Time(s.LastPlayed))
		}
		return nil
	}

	mode := args[0]
	if flagClearScores {
		if err := store.ClearScores(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s\n", mode)
		return nil
	}

	scores, err := store.TopScores(mode, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", mode)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "When")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, humanize.Time(entry.CreatedAt))
	}

	fmt.Println()
	if best, err := store.HighScore(mode); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}
