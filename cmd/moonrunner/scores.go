package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/moonrunner/internal/games/moonrunner"
	"github.com/vovakirdan/moonrunner/internal/registry"
	"github.com/vovakirdan/moonrunner/internal/storage"
)

var (
	flagRecent      int
	flagScoresLimit int
	flagScoresClear bool
	flagScoresAll   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and recent runs for a game",
	Long: `Display the top high scores, aggregate statistics and the most
recent runs for the specified game (default: moonrunner).

Examples:
  moonrunner scores
  moonrunner scores moonrunner_tap --recent 20
  moonrunner scores --limit 0      # every recorded score
  moonrunner scores --all          # one summary line per game
  moonrunner scores --clear        # forget scores and runs of the game`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent runs to show")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of top scores to show (0 = all)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the scores and runs of the game")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show a summary of every game")
}

func runScores(cmd *cobra.Command, args []string) {
	if flagScoresAll {
		runScoresSummary()
		return
	}

	gameID := moonrunner.IDImmediate
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'moonrunner list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores and runs of %s.\n", title)
		return
	}

	var scores []storage.ScoreEntry
	if flagScoresLimit > 0 {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	} else {
		scores, err = store.AllScores(gameID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'moonrunner play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d   Runs: %d   Average: %.1f   Longest: %.1fs\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.LongestRun)
	}

	if counts, err := store.CauseCounts(gameID); err == nil && len(counts) > 0 {
		causes := make([]string, 0, len(counts))
		for c := range counts {
			causes = append(causes, c)
		}
		sort.Strings(causes)
		fmt.Print("Endings:")
		for _, c := range causes {
			fmt.Printf("  %s %d", c, counts[c])
		}
		fmt.Println()
	}

	if flagRecent <= 0 {
		return
	}
	runs, err := store.RecentRuns(gameID, flagRecent)
	if err != nil || len(runs) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent runs:")
	fmt.Printf("  %-16s  %-6s  %-7s  %-8s  %-10s  %s\n", "When", "Score", "Time", "Distance", "Encounters", "Cause")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-6d  %-7s  %-8.0f  %-10d  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Score,
			fmt.Sprintf("%.1fs", r.Elapsed),
			r.Distance,
			r.Encounters,
			r.Cause,
		)
	}
}

// runScoresSummary prints one line per game that has scores.
func runScoresSummary() {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	all, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-16s  %-6s  %-6s  %-8s  %s\n", "Game", "Runs", "Best", "Average", "Last played")
	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-16s  %-6d  %-6d  %-8.1f  %s\n",
			id, st.GamesCount, st.HighScore, st.AvgScore, st.LastPlayed.Format("2006-01-02 15:04"))
	}
}
