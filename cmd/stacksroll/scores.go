package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stacks-roll/internal/leaderboard"
	"github.com/vovakirdan/stacks-roll/internal/platform/tui"
	"github.com/vovakirdan/stacks-roll/internal/storage"
)

var (
	flagPlain       bool
	flagScoreLimit  int
	flagScorePlayer string
	flagScoreRun    string
	flagScoreClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Browse recorded runs",
	Long: `Show the Top Rollers leaderboard and the runs stored in the database.

By default opens an interactive browser; --plain prints the leaderboard and
summary statistics to stdout instead.

Examples:
  stacksroll scores
  stacksroll scores --plain
  stacksroll scores --plain --limit 20
  stacksroll scores --run 6f1c2a9e-...
  stacksroll scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print to stdout instead of the interactive browser")
	scoresCmd.Flags().IntVar(&flagScoreLimit, "limit", 10, "Rows to print with --plain")
	scoresCmd.Flags().StringVar(&flagScorePlayer, "player", "", "Player for the 'My runs' view (default: current user)")
	scoresCmd.Flags().StringVar(&flagScoreRun, "run", "", "Print one run by its id")
	scoresCmd.Flags().BoolVar(&flagScoreClear, "clear", false, "Delete every stored run")
}

func runScores(_ *cobra.Command, _ []string) {
	if err := showScores(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// showScores opens the store once and runs the selected scores action.
func showScores() error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoreClear:
		if err := store.ClearRuns(); err != nil {
			return fmt.Errorf("clearing runs: %w", err)
		}
		fmt.Println("All runs deleted.")
		return nil
	case flagScoreRun != "":
		return printRun(store, flagScoreRun)
	case flagPlain:
		if err := printScores(store, flagScoreLimit); err != nil {
			return fmt.Errorf("retrieving runs: %w", err)
		}
		return nil
	}

	player := flagScorePlayer
	if player == "" {
		player = playerName()
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	return tui.RunScoreboard(store, player, width, height)
}

func printScores(store *storage.Store, limit int) error {
	runs, err := store.TopRuns(limit)
	if err != nil {
		return err
	}

	fmt.Println(leaderboard.Title)
	fmt.Println()

	// Print header
	fmt.Printf("  %-4s  %-12s  %10s  %10s\n", "Rank", "Name", "Distance", "Score")
	fmt.Printf("  %-4s  %-12s  %10s  %10s\n", "----", "----", "--------", "-----")

	for _, e := range leaderboard.Board(0, runs, limit) {
		fmt.Printf("  %-4s  %-12s  %10s  %10s\n",
			leaderboard.FormatRank(e), e.Name, leaderboard.FormatDistance(e.Distance), leaderboard.FormatEntryScore(e))
	}

	stats, err := store.GetStats()
	if err != nil {
		return err
	}

	fmt.Println()
	if stats.Runs == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'stacksroll play' to get on the board!")
		return nil
	}

	fmt.Printf("Runs: %d  Best: %s  Avg score: %.1f  Coins: %d\n",
		stats.Runs, leaderboard.FormatDistance(stats.BestDistance), stats.AvgScore, stats.TotalCoins)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRun(store *storage.Store, runID string) error {
	run, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with id %q", runID)
	}

	best, err := store.BestDistance()
	if err != nil {
		return err
	}

	fmt.Printf("Run %s\n", run.RunID)
	fmt.Printf("  Player:   %s\n", run.Player)
	fmt.Printf("  Distance: %s\n", leaderboard.FormatDistance(run.Distance))
	fmt.Printf("  Score:    %s\n", leaderboard.FormatScore(run.Score))
	fmt.Printf("  Coins:    %d\n", run.Coins)
	fmt.Printf("  Time:     %.1fs\n", run.Duration)
	fmt.Printf("  Advisor:  %s\n", run.Advisor)
	fmt.Printf("  Played:   %s\n", run.CreatedAt.Format("2006-01-02 15:04"))
	if run.Distance >= best {
		fmt.Println("  Best run on this machine!")
	}
	if leaderboard.IsTopPlayer(run.Distance) {
		fmt.Println("  Made the Top Rollers!")
	}
	return nil
}
