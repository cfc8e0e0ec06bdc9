package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neuroflap/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeRun    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Let SSH clients watch the champion",
	Long: `Start an SSH server where every connection watches the best stored
champion fly. The champion is looked up again for each connection, so a
training run in another terminal shows up for new spectators.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.neuroflap/host_key

Examples:
  neuroflap serve
  neuroflap serve --ssh :2222
  neuroflap serve --run 3f2a9c1e-...

Spectators connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeRun, "run", "", "Training run whose champion is shown")
}

func runServe(cmd *cobra.Command, _ []string) error {
	sim, err := loadSim()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.RunID = flagServeRun
	cfg.Sim = sim

	server, err := tui.NewSSHServer(cfg, championFinder(store), logger)
	if err != nil {
		return err
	}

	logger.Info("press Ctrl+C to stop", "address", server.Addr())
	return server.ListenAndServe(cmd.Context())
}
