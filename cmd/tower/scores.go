package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bear-tower/internal/games/tower"
	"github.com/vovakirdan/bear-tower/internal/registry"
	"github.com/vovakirdan/bear-tower/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [stage]",
	Short: "Show the best runs of a stage",
	Long: `Display the best runs for the specified stage (default: tower).
Cleared runs rank first, fastest clear first; the rest rank by height.

Examples:
  tower scores
  tower scores debug --limit 20
  tower scores debug --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all runs of the stage")
}

func runScores(_ *cobra.Command, args []string) error {
	stageID := "tower"
	if len(args) > 0 {
		stageID = args[0]
	}
	if !registry.Exists(stageID) {
		return fmt.Errorf("unknown stage %q, run 'tower list' to see available stages", stageID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearRuns(stageID); err != nil {
			return err
		}
		fmt.Printf("Cleared all runs of %s.\n", stageID)
		return nil
	}

	runs, err := store.TopRuns(stageID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	title := stageID
	for _, s := range registry.List() {
		if s.ID == stageID {
			title = s.Title
		}
	}
	fmt.Printf("Best Runs - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tower play %s' to set the first record!\n", stageID)
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-8s  %-5s  %-5s  %-6s  %-12s  %s\n",
		"Rank", "Height", "Time", "Falls", "Clear", "Level", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-8s  %-5s  %-5s  %-6s  %-12s  %s\n",
		"----", "------", "----", "-----", "-----", "-----", "------", "----")
	for i, r := range runs {
		mark := ""
		if r.Cleared {
			mark = "yes"
		}
		fmt.Printf("  %-4d  %-7s  %-8s  %-5d  %-5s  %-6s  %-12s  %s\n",
			i+1,
			fmt.Sprintf("%.0fm", r.MaxHeight/tower.UnitsPerMetre),
			formatSeconds(r.Duration),
			r.Falls,
			mark,
			r.Difficulty,
			r.Player,
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	fmt.Println()
	if best, err := store.BestHeight(stageID); err == nil {
		fmt.Printf("Best height: %.0fm\n", best/tower.UnitsPerMetre)
	}
	if st, err := store.Stats(stageID); err == nil && st.BestClear > 0 {
		fmt.Printf("Fastest clear: %s (%d of %d runs cleared)\n", formatSeconds(st.BestClear), st.Clears, st.Runs)
	}
	return nil
}

// formatSeconds renders seconds as mm:ss.t.
func formatSeconds(secs float64) string {
	tenths := int(secs * 10)
	return fmt.Sprintf("%02d:%02d.%d", tenths/600, (tenths/10)%60, tenths%10)
}
