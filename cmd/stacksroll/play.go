package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stacks-roll/internal/core"
	"github.com/vovakirdan/stacks-roll/internal/game"
	"github.com/vovakirdan/stacks-roll/internal/platform/tui"
	"github.com/vovakirdan/stacks-roll/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
	playAdvisor    advisorFlags
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a run in this terminal.

Controls:
  Mouse       - Steer the ball
  Left/Right  - Nudge the ball (also A/D, H/L)
  Enter/Space - Start
  R           - Play again (after game over)
  X           - Convert score to STX (after game over)
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Start at 0.8x multipliers, advisor enabled
  normal - Start at 1.0x multipliers, advisor enabled
  hard   - Start at 1.25x multipliers, advisor enabled
  fixed  - No advisor, multipliers stay at 1.0x

Advisor settings come from flags, STACKSROLL_ADVISOR_* environment variables
or ~/.stacksroll/stacksroll.json, in that order.

Examples:
  stacksroll play
  stacksroll play --difficulty easy
  stacksroll play --advisor genkit --advisor-url http://localhost:3400/adjustDifficultyFlow
  stacksroll play --config ./my-tuning.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with your runs (default: current user)")
	playAdvisor.register(playCmd)
}

func runPlay(cmd *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig(flagConfig, flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	_, settings, err := playAdvisor.settings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	adv, err := newAdvisor(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating advisor: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'stacksroll backends' to see available backends.")
		os.Exit(1)
	}

	logFile, err := openLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger, err := newLogger(logFile, "stacksroll")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rc := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	rc.TickRate = flagFPS
	rc.Seed = resolveSeed()

	g, err := game.New(gameCfg, adv, rc.Seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	defer g.Close()

	// Open run storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	logger.Info("starting run", "advisor", settings.Backend, "seed", rc.Seed, "fps", rc.TickRate)

	runErr := tui.Run(tui.Options{
		Game:     g,
		Store:    store,
		Logger:   logger,
		Player:   playerName(),
		Advisor:  settings.Backend,
		TickRate: rc.TickRate,
		Width:    rc.ScreenW,
		Height:   rc.ScreenH,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// playerName returns --player, falling back to the OS user name.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "anonymous"
}
