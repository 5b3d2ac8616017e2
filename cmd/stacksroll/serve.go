package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacks-roll/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeConfig string
	flagServeDiff   string
	serveAdvisor    advisorFlags
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Stacks Roll SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own game; the SSH user name is recorded with
every run. All sessions share one leaderboard and one advisor backend.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.stacksroll/host_key

Examples:
  stacksroll serve                           # Listen on :23234 with auto-generated key
  stacksroll serve --ssh :2222               # Listen on port 2222
  stacksroll serve --host-key ./my_host_key  # Use specific host key
  stacksroll serve --advisor http --advisor-url http://advisor:8787/v1/difficulty

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom game config YAML")
	serveCmd.Flags().StringVar(&flagServeDiff, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	serveAdvisor.register(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig(flagServeConfig, flagServeDiff)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	_, settings, err := serveAdvisor.settings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	adv, err := newAdvisor(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating advisor: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(os.Stderr, "stacksroll-ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(cfg, gameCfg, adv, settings.Backend, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Stacks Roll SSH server on %s (advisor: %s)\n", server.Addr(), settings.Backend)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
