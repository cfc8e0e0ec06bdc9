package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neuroflap/internal/evolve"
	"github.com/vovakirdan/neuroflap/internal/telemetry"
)

var (
	flagGenerations int
	flagPopSize     int
	flagNEATOptions string
	flagOutputDir   string
	flagRunID       string
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Evolve controllers with NEAT",
	Long: `Evolve a population of neural network controllers.

Every generation flies the whole population through one episode. Fitness
grows with survival time and passed obstacles and drops on collisions.
Generation statistics and the best genome are stored in the database;
--out also writes them to generations.csv.

Training stops after --generations or when a generation reaches the
configured score cap. Ctrl+C stops it cleanly after the current tick.

Examples:
  neuroflap train
  neuroflap train --generations 100 --pop 50
  neuroflap train --neat ./flappy.neat --out ./out/run1
  neuroflap train --seed 42 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	trainCmd.Flags().IntVar(&flagGenerations, "generations", 0, "Number of generations (0 = config value)")
	trainCmd.Flags().IntVar(&flagPopSize, "pop", 0, "Population size (0 = config or NEAT options value)")
	trainCmd.Flags().StringVar(&flagNEATOptions, "neat", "", "goNEAT options file (.neat or .yml)")
	trainCmd.Flags().StringVar(&flagOutputDir, "out", "", "Directory for generations.csv (empty = config value)")
	trainCmd.Flags().StringVar(&flagRunID, "run-id", "", "Run identifier (generated when empty)")
}

func runTrain(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	sim, err := loadSim()
	if err != nil {
		return err
	}
	if flagGenerations > 0 {
		sim.Evolution.Generations = flagGenerations
	}
	if flagPopSize > 0 {
		sim.Evolution.PopSize = flagPopSize
	}
	if flagNEATOptions != "" {
		sim.Evolution.NEATOptions = flagNEATOptions
	}
	if flagOutputDir != "" {
		sim.Evolution.OutputDir = flagOutputDir
	}

	opts, err := evolve.LoadOptions(sim.Evolution.NEATOptions)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	out, err := telemetry.NewOutput(sim.Evolution.OutputDir)
	if err != nil {
		return err
	}
	defer out.Close()

	cfg := evolve.DriverConfig{
		Sim:    sim,
		NEAT:   opts,
		Seed:   seed,
		RunID:  flagRunID,
		Logger: logger,
		Output: out,
	}
	if store := openStore(); store != nil {
		defer store.Close()
		cfg.Recorder = store
	}

	driver, err := evolve.NewDriver(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	sum, err := driver.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Println()
	fmt.Printf("Run %s %s after %d generations (%s)\n",
		sum.RunID, sum.Status, sum.Generations, time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Best fitness: %s\n", humanize.FormatFloat("#,###.##", sum.BestFitness))
	fmt.Printf("  Best score:   %s\n", humanize.Comma(int64(sum.BestScore)))
	if p := out.Path(telemetry.GenerationsFile); p != "" {
		fmt.Printf("  Telemetry:    %s\n", p)
	}
	if cfg.Recorder != nil && sum.Champion != nil {
		fmt.Printf("\nWatch the champion with 'neuroflap watch --run %s'\n", sum.RunID)
	}
	return err
}
