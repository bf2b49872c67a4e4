// tower runs the bear tower climb in the terminal.
//
// Usage:
//
//	tower play [stage]       - Climb a stage directly
//	tower list               - List available stages
//	tower menu               - Start the main menu
//	tower serve              - Start SSH server for remote play
//	tower scores [stage]     - Show the best runs of a stage
//	tower settings           - Show or change saved preferences
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--db <path>     - Set database path (default: ~/.bear-tower/runs.db)
//	--log <path>    - Set log file (default: ~/.bear-tower/tower.log)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the tower to register its stages
	_ "github.com/vovakirdan/bear-tower/internal/games/tower"
)

var (
	// Global flags
	flagFPS     int
	flagDBPath  string
	flagLogPath string
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tower",
	Short: "Bear Tower - a charge-jump climb in your terminal",
	Long: `Bear Tower is a vertical platformer played in the terminal.
Hold jump to charge, release to leap, and climb past hazards,
emitters and homing missiles to the goal at the top.

Available commands:
  play      - Climb a stage directly
  list      - Show all stages
  menu      - Main menu with records and settings
  serve     - Start SSH server for remote play
  scores    - View the best runs of a stage
  settings  - Show or change preferences

Examples:
  tower menu
  tower play
  tower play debug --difficulty easy
  tower serve --ssh :2222
  tower scores tower`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.bear-tower/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Log file (default ~/.bear-tower/tower.log)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
}
