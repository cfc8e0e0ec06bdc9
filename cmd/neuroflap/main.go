// neuroflap evolves neural controllers for a side-scrolling gap-flying game
// and shows them in the terminal.
//
// Usage:
//
//	neuroflap                     - Launcher menu
//	neuroflap train               - Evolve a population with NEAT
//	neuroflap play                - Fly yourself
//	neuroflap watch [policy]      - Watch the champion or a heuristic policy
//	neuroflap serve               - Let SSH clients watch the champion
//	neuroflap runs                - List training runs
//	neuroflap history [run-id]    - Browse the generations of a run
//	neuroflap scores [mode]       - Show play scores
//	neuroflap policies            - List heuristic policies
//
// Global flags:
//
//	--seed <value>      - RNG seed for obstacle placement
//	--db <path>         - Database path (default: ~/.neuroflap/neuroflap.db)
//	--config <path>     - Simulation config YAML
//	--fps <rate>        - Tick rate of live views
//	--log-level <level> - debug, info, warn or error
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/neuroflap/internal/config"
	"github.com/vovakirdan/neuroflap/internal/core"
	"github.com/vovakirdan/neuroflap/internal/platform/tui"
	"github.com/vovakirdan/neuroflap/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	logger *log.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "neuroflap",
	Short: "Neuroevolution for a gap-flying game, in your terminal",
	Long: `neuroflap evolves neural network controllers with NEAT for a
side-scrolling game where agents fly through gaps between barriers.

Without a subcommand it opens the launcher menu.

Examples:
  neuroflap train --generations 30
  neuroflap watch
  neuroflap watch gap --agents 5
  neuroflap play
  neuroflap serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
	RunE:              runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate of live views (0 = config value)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.neuroflap/neuroflap.db", "Path to the database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(policiesCmd)
}

func setupLogger(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "neuroflap",
		Level:           level,
	})
	return nil
}

// loadSim loads the simulation config and applies the global flags.
func loadSim() (config.SimConfig, error) {
	sim, err := config.LoadSim(flagConfig)
	if err != nil {
		return config.SimConfig{}, err
	}
	if flagFPS > 0 {
		sim.Episode.TickRate = flagFPS
	}
	return sim, nil
}

// openStore opens the database, logging instead of failing when it is unavailable.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// scoreSaver and championFinder keep a nil store from becoming a non-nil interface.
func scoreSaver(store *storage.Store) tui.ScoreSaver {
	if store == nil {
		return nil
	}
	return store
}

func championFinder(store *storage.Store) tui.ChampionFinder {
	if store == nil {
		return nil
	}
	return store
}

// runtimeConfig sizes live views to the terminal.
func runtimeConfig(sim config.SimConfig) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = sim.Episode.TickRate
	cfg.Seed = flagSeed
	return cfg
}
