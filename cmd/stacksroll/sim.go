package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stacks-roll/internal/core"
	"github.com/vovakirdan/stacks-roll/internal/game"
	"github.com/vovakirdan/stacks-roll/internal/leaderboard"
	"github.com/vovakirdan/stacks-roll/internal/storage"
)

var (
	flagSimTicks  int
	flagSimSave   bool
	flagSimConfig string
	flagSimDiff   string
	simAdvisor    advisorFlags
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless autopilot session",
	Long: `Play one run without a terminal UI, steering with a simple autopilot.

The simulation runs as fast as the CPU allows and waits for every advisor
call, so with --seed and a deterministic backend a run replays exactly.
Useful for tuning configs and exercising advisor services.

Examples:
  stacksroll sim --seed 7
  stacksroll sim --ticks 36000 --advisor http --log-level debug
  stacksroll sim --difficulty hard --save`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Maximum ticks to simulate")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store the run in the runs database")
	simCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom game config YAML")
	simCmd.Flags().StringVar(&flagSimDiff, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	simAdvisor.register(simCmd)
}

func runSim(cmd *cobra.Command, _ []string) {
	gameCfg, err := loadGameConfig(flagSimConfig, flagSimDiff)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	_, settings, err := simAdvisor.settings(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	adv, err := newAdvisor(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating advisor: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(os.Stderr, "stacksroll-sim")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := resolveSeed()
	g, err := game.New(gameCfg, adv, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	defer g.Close()

	logger.Info("simulating", "seed", seed, "ticks", flagSimTicks, "advisor", settings.Backend)
	logger.Debug("spawn mix", "kinds", formatSpawnMix(g.SpawnMix()))
	snap := simulate(g, flagSimTicks, logger)

	outcome := "survived"
	if snap.Phase == game.PhaseGameOver {
		outcome = "crashed"
	}
	fmt.Printf("Run %s after %.1fs\n", outcome, snap.ElapsedTime)
	fmt.Printf("  Distance: %s\n", leaderboard.FormatDistance(snap.Distance))
	fmt.Printf("  Score:    %s (%.4f STX)\n", leaderboard.FormatScore(snap.Score), snap.STX())
	fmt.Printf("  Coins:    %d\n", snap.CoinsCollected)
	fmt.Printf("  Speed x%.2f  Frequency x%.2f  Velocity x%.2f\n",
		snap.Difficulty.GameSpeedMultiplier, snap.Difficulty.ObstacleFrequency, snap.Difficulty.ObstacleVelocityMultiplier)

	if !flagSimSave {
		return
	}

	runID, err := saveSimRun(flagDBPath, snap, settings.Backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving run: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("  Saved as %s\n", runID)
}

// formatSpawnMix renders spawn shares as "pillar 35% bar 20% ...".
func formatSpawnMix(mix []game.KindShare) string {
	parts := make([]string, 0, len(mix))
	for _, row := range mix {
		parts = append(parts, fmt.Sprintf("%s %.0f%%", row.Kind, row.Share*100))
	}
	return strings.Join(parts, " ")
}

// saveSimRun stores the final frame as an autopilot run and returns its id.
func saveSimRun(dbPath string, snap game.Snapshot, backend string) (string, error) {
	store, err := storage.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer store.Close()

	return store.SaveRun(storage.Run{
		Player:   "autopilot",
		Score:    snap.Score,
		Distance: snap.Distance,
		Coins:    snap.CoinsCollected,
		Duration: snap.ElapsedTime,
		Advisor:  backend,
	})
}

// simulate plays one session with the autopilot for at most maxTicks ticks
// and returns the final frame.
func simulate(g *game.Game, maxTicks int, logger *log.Logger) game.Snapshot {
	g.Start()
	for g.Phase() == game.PhaseCountdown {
		g.CountdownTick(g.Generation())
	}

	pilot := game.NewAutopilot(g.Geometry())
	for i := 0; i < maxTicks && g.Phase() == game.PhasePlaying; i++ {
		res := g.Tick(core.InputFrame{PointerX: pilot.Steer(g.Snapshot())})
		if res.Advice == nil {
			continue
		}

		err := g.ApplyAdvice(g.AdviceCall(*res.Advice)())
		switch {
		case err == nil:
			d := g.Difficulty()
			logger.Debug("difficulty adjusted", "t", res.Advice.Performance.TimeElapsed,
				"speed", d.GameSpeedMultiplier, "frequency", d.ObstacleFrequency, "velocity", d.ObstacleVelocityMultiplier)
		case errors.Is(err, game.ErrStaleAdvice):
			// Run ended on the dispatching tick
		default:
			logger.Warn("advisor failed, keeping difficulty", "err", err)
		}
	}
	return g.Snapshot()
}
