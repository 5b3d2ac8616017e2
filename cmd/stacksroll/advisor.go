package main

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacks-roll/internal/advisor"
	"github.com/vovakirdan/stacks-roll/internal/config"
	"github.com/vovakirdan/stacks-roll/internal/registry"
)

var (
	flagListen     string
	advisorBackend advisorFlags
)

var advisorCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Serve a difficulty advisor over HTTP",
	Long: `Expose an advisor backend over HTTP so games on other machines can use it
with --advisor http or --advisor genkit.

Routes:
  POST /v1/difficulty                plain JSON performance -> difficulty
  POST /genkit/adjustDifficultyFlow  Genkit flow envelope {"data": ...} -> {"result": ...}
  GET  /healthz                      liveness and backend name

The served backend defaults to heuristic. Serving an http or genkit backend
proxies to another advisor.

Examples:
  stacksroll advisor
  stacksroll advisor --listen :9000
  stacksroll advisor --advisor genkit --advisor-url http://localhost:3400/adjustDifficultyFlow`,
	Args: cobra.NoArgs,
	Run:  runAdvisor,
}

func init() {
	advisorCmd.Flags().StringVar(&flagListen, "listen", "", "HTTP listen address (default :8787)")
	advisorBackend.register(advisorCmd)
}

func runAdvisor(cmd *cobra.Command, _ []string) {
	v, settings, err := advisorBackend.settings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := v.BindPFlag(config.KeyListenAddr, cmd.Flags().Lookup("listen")); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The off backend is served as-is so clients see 502s rather than no server.
	adv, err := registry.Create(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating advisor: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'stacksroll backends' to see available backends.")
		os.Exit(1)
	}

	logger, err := newLogger(os.Stderr, "stacksroll-advisor")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	server := advisor.NewServer(advisor.ServerConfig{
		Address: v.GetString(config.KeyListenAddr),
		Backend: settings.Backend,
		Timeout: settings.Timeout,
	}, adv, logger)

	addr := v.GetString(config.KeyListenAddr)
	fmt.Printf("Serving %s advisor on %s\n", settings.Backend, addr)
	fmt.Printf("Try: curl -s -X POST localhost:%s%s -d '{\"score\":120,\"distanceTraveled\":80,\"coinsCollected\":3,\"timeElapsed\":10}'\n",
		portOf(addr), advisor.PathDifficulty)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// portOf returns the port of a host:port address, or the address itself.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
