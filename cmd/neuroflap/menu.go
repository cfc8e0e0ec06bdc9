package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neuroflap/internal/platform/tui"
)

func runMenu(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	sim, err := loadSim()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig(sim)

	for ctx.Err() == nil {
		res, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}
		cfg = res.Config
		if res.Quit {
			return nil
		}

		opts := tui.Options{Sim: sim, Runtime: cfg, Theme: tui.DefaultTheme(), Logger: logger}

		switch res.Item.Kind {
		case tui.MenuPlay:
			opts.Mode = "human"
			opts.Scores = scoreSaver(store)

		case tui.MenuWatchChampion:
			src, mode, err := tui.ChampionSource(championFinder(store), "")
			if err != nil {
				logger.Error("cannot load champion", "error", err)
				continue
			}
			opts.Source, opts.Mode = src, mode

		case tui.MenuWatchPolicy:
			src, err := tui.PolicySource(res.Item.Policy, 1)
			if err != nil {
				logger.Error("cannot load policy", "error", err)
				continue
			}
			opts.Source, opts.Mode = src, "policy:"+res.Item.Policy
			opts.Scores = scoreSaver(store)

		case tui.MenuHistory:
			if store == nil {
				logger.Warn("history needs the database")
				continue
			}
			if err := tui.RunHistory(store, "", cfg.ScreenW, cfg.ScreenH); err != nil {
				return err
			}
			continue
		}

		if err := tui.Run(ctx, opts); err != nil {
			return err
		}
	}
	return ctx.Err()
}
