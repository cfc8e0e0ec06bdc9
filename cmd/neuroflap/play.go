package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neuroflap/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fly through the obstacles yourself",
	Long: `Fly a single agent with the keyboard. The agent uses the same
physics and obstacles as the evolved networks.

Controls:
  Space/Up/W  - Jump
  P           - Pause
  R           - Restart (after the episode ends)
  Q/Esc       - Quit
  Ctrl+S      - Save a screenshot

Examples:
  neuroflap play
  neuroflap play --fps 20
  neuroflap play --config ./wide-gaps.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	sim, err := loadSim()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.Run(cmd.Context(), tui.Options{
		Sim:     sim,
		Runtime: runtimeConfig(sim),
		Theme:   tui.DefaultTheme(),
		Mode:    "human",
		Scores:  scoreSaver(store),
		Logger:  logger,
	})
}
