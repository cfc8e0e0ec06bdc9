package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neuroflap/internal/platform/tui"
)

var (
	flagWatchRun    string
	flagWatchAgents int
	flagPlain       bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [policy]",
	Short: "Watch the champion network or a heuristic policy fly",
	Long: `Replay an episode in the terminal.

Without an argument the best stored champion flies; --run limits the
search to one training run. When no champion has been stored yet the
gap policy flies instead. With a policy name, --agents copies of that
policy fly together.

Examples:
  neuroflap watch
  neuroflap watch --run 3f2a9c1e-...
  neuroflap watch gap
  neuroflap watch cadence --agents 10`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchRun, "run", "", "Training run whose champion flies")
	watchCmd.Flags().IntVar(&flagWatchAgents, "agents", 1, "Number of agents for a policy")
	watchCmd.Flags().BoolVar(&flagPlain, "plain", false, "ASCII-only glyphs")
}

func runWatch(cmd *cobra.Command, args []string) error {
	sim, err := loadSim()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	theme := tui.DefaultTheme()
	if flagPlain {
		theme = tui.PlainTheme()
	}
	opts := tui.Options{
		Sim:     sim,
		Runtime: runtimeConfig(sim),
		Theme:   theme,
		Logger:  logger,
	}

	if len(args) == 1 {
		src, err := tui.PolicySource(args[0], flagWatchAgents)
		if err != nil {
			return err
		}
		opts.Source = src
		opts.Mode = "policy:" + args[0]
		opts.Scores = scoreSaver(store)
	} else {
		src, mode, err := tui.ChampionSource(championFinder(store), flagWatchRun)
		if err != nil {
			return err
		}
		opts.Source = src
		opts.Mode = mode
	}

	return tui.Run(cmd.Context(), opts)
}
