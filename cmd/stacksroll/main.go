// stacksroll is a terminal endless runner: steer the ball, grab coins and gems,
// dodge the spikes.
//
// Usage:
//
//	stacksroll play          - Play in this terminal
//	stacksroll serve         - Start SSH server for remote play
//	stacksroll advisor       - Serve a difficulty advisor over HTTP
//	stacksroll scores        - Browse recorded runs
//	stacksroll sim           - Run a headless autopilot session
//	stacksroll backends      - List advisor backends
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.stacksroll/runs.db)
//	--log-level <level> - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stacksroll",
	Short: "Stacks Roll - an endless runner in your terminal",
	Long: `Stacks Roll is a terminal endless runner. A ball rolls down a track
while coins, gems, pillars, bars and spikes fall towards it. An advisor
retunes speed, spawn frequency and fall velocity every ten seconds.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  advisor   - Serve a difficulty advisor over HTTP
  scores    - Browse recorded runs
  sim       - Run a headless autopilot session
  backends  - List advisor backends

Examples:
  stacksroll play
  stacksroll play --difficulty hard --advisor heuristic
  stacksroll serve --ssh :2222
  stacksroll advisor --listen :8787
  stacksroll scores --plain`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stacksroll/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(advisorCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(backendsCmd)
}
